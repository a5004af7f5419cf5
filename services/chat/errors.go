package chat

import (
	"errors"
	"fmt"
)

var (
	ErrPanelClosed  = errors.New("no chat panel is open")
	ErrEmptyMessage = errors.New("message is empty")
)

// ChatError carries a machine-readable code for request-level chat failures.
type ChatError struct {
	Code    string
	Message string
	Err     error
}

func (e *ChatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ChatError) Unwrap() error { return e.Err }

func newChatError(code, msg string, err error) error {
	return &ChatError{Code: code, Message: msg, Err: err}
}

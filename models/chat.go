package models

import "time"

// MessageType tags the content of a chat message.
type MessageType string

const (
	MessageTypeText     MessageType = "text"
	MessageTypeImage    MessageType = "image"
	MessageTypeVoice    MessageType = "voice"
	MessageTypeLocation MessageType = "location"
)

// CurrentUserID is the sender id used for messages typed by the signed-in user.
const CurrentUserID = "current-user"

// ChatMessage lives only in the open chat panel's memory.
type ChatMessage struct {
	ID            string      `json:"id"`
	SenderID      string      `json:"senderId"`
	ReceiverID    string      `json:"receiverId"`
	Content       string      `json:"content"`
	Type          MessageType `json:"type"`
	Timestamp     time.Time   `json:"timestamp"`
	AttachmentURL string      `json:"attachmentUrl,omitempty"`
}

// FromCurrentUser reports whether the message was sent by the signed-in user.
func (m ChatMessage) FromCurrentUser() bool {
	return m.SenderID == CurrentUserID
}

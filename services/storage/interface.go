package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/google/uuid"
)

// AttachmentFolder is where chat attachments are uploaded.
const AttachmentFolder = "chat-attachments"

// StorageService stores chat attachments and returns a URL the chat can link to.
type StorageService interface {
	UploadAttachment(ctx context.Context, filename string, content io.Reader) (string, error)
}

// MemoryStorageService keeps uploads in process memory. Used for the demo and in tests.
type MemoryStorageService struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewMemoryStorageService() *MemoryStorageService {
	return &MemoryStorageService{objects: make(map[string][]byte)}
}

func (s *MemoryStorageService) UploadAttachment(ctx context.Context, filename string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("MemoryStorageService: failed to read upload: %w", err)
	}
	key := path.Join(AttachmentFolder, uuid.NewString(), path.Base(filename))

	s.mu.Lock()
	s.objects[key] = data
	s.mu.Unlock()
	return "memory://" + key, nil
}

// Object returns a stored upload by the key embedded in its URL.
func (s *MemoryStorageService) Object(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	return data, ok
}

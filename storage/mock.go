package storage

import (
	"context"
	"io"
	"sync"
)

// Mock is an in-memory FileUploader for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	UploadFunc func(ctx context.Context, key string, contentType string, body []byte) (*UploadResult, error)
	DeleteFunc func(ctx context.Context, key string) error

	Objects     map[string][]byte
	UploadCalls []UploadCall
	DeleteCalls []string
}

// UploadCall holds the arguments for a call to Upload.
type UploadCall struct {
	Key         string
	ContentType string
	Body        []byte
}

func NewMock() *Mock {
	return &Mock{Objects: make(map[string][]byte)}
}

func (m *Mock) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error) {
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls = append(m.UploadCalls, UploadCall{Key: key, ContentType: contentType, Body: body})
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, key, contentType, body)
	}
	m.Objects[key] = body
	return &UploadResult{Key: key, Location: m.GetPublicURL(key)}, nil
}

func (m *Mock) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	delete(m.Objects, key)
	return nil
}

func (m *Mock) GetPublicURL(key string) string {
	return publicURL("https://archive.test/", key)
}

// Object returns the stored body for key.
func (m *Mock) Object(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.Objects[key]
	return body, ok
}

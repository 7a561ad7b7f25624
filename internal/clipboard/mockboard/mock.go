// Package mockboard provides an in-memory clipboard for testing.
package mockboard

import (
	"bytes"
	"io"
)

// MockClipboard holds clipboard content in memory.
type MockClipboard struct {
	data []byte
}

// New creates an empty MockClipboard.
func New() *MockClipboard {
	return &MockClipboard{}
}

// Read returns the stored content.
func (m *MockClipboard) Read() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

// Write replaces the stored content.
func (m *MockClipboard) Write(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.data = data
	return nil
}

// IsSupported always reports true.
func (m *MockClipboard) IsSupported() bool {
	return true
}

// SetData sets the content directly.
func (m *MockClipboard) SetData(data []byte) {
	m.data = data
}

// Data returns the current content.
func (m *MockClipboard) Data() []byte {
	return m.data
}

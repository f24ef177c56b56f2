package filesystem

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	mu         sync.RWMutex
	files      map[string][]byte
	perms      map[string]os.FileMode
	readErrors map[string]error
	statErrors map[string]error
	reads      int
}

// NewMockFileSystem creates a new MockFileSystem instance
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string][]byte),
		perms:      make(map[string]os.FileMode),
		readErrors: make(map[string]error),
		statErrors: make(map[string]error),
	}
}

// AddFile adds a file to the mock filesystem
func (m *MockFileSystem) AddFile(path string, data []byte, perm os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	m.perms[path] = perm
}

// SetReadError makes ReadFile fail for path.
func (m *MockFileSystem) SetReadError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrors[path] = err
}

// SetStatError makes Stat fail for path.
func (m *MockFileSystem) SetStatError(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statErrors[path] = err
}

// Reads returns how many times ReadFile was called.
func (m *MockFileSystem) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++

	if err, ok := m.readErrors[path]; ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: err}
	}
	if data, ok := m.files[path]; ok {
		return data, nil
	}
	return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
}

func (m *MockFileSystem) Stat(path string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err, ok := m.statErrors[path]; ok {
		return nil, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
	}
	return &mockFileInfo{
		name: filepath.Base(path),
		size: int64(len(data)),
		mode: m.perms[path],
	}, nil
}

// mockFileInfo implements os.FileInfo
type mockFileInfo struct {
	name string
	size int64
	mode os.FileMode
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (m *mockFileInfo) IsDir() bool        { return false }
func (m *mockFileInfo) Sys() interface{}   { return nil }

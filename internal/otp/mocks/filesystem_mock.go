// Package mocks はテスト用のモック実装を提供します
package mocks

import (
	"io/fs"
	"path/filepath"
)

// MockFileSystem はテスト用のファイルシステムモック
type MockFileSystem struct {
	Files map[string][]byte
	Dirs  map[string]bool

	// ReadError/WriteError が設定されている場合、該当する操作はそのエラーを返す
	ReadError  error
	WriteError error

	// WriteCount は WriteFile が成功した回数
	WriteCount int
}

// NewMockFileSystem は新しいMockFileSystemを作成します
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		Files: make(map[string][]byte),
		Dirs:  make(map[string]bool),
	}
}

// ReadFile はファイルを読み込みます
func (m *MockFileSystem) ReadFile(filename string) ([]byte, error) {
	if m.ReadError != nil {
		return nil, m.ReadError
	}
	data, exists := m.Files[filepath.Clean(filename)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filename, Err: fs.ErrNotExist}
	}
	return data, nil
}

// WriteFile はファイルを書き込みます
func (m *MockFileSystem) WriteFile(filename string, data []byte, perm uint32) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	m.Files[filepath.Clean(filename)] = append([]byte(nil), data...)
	m.WriteCount++
	return nil
}

// MkdirAll はディレクトリを作成します
func (m *MockFileSystem) MkdirAll(path string, perm uint32) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	m.Dirs[filepath.Clean(path)] = true
	return nil
}

// SetFile はテスト用にファイル内容を設定します
func (m *MockFileSystem) SetFile(filename, content string) {
	m.Files[filepath.Clean(filename)] = []byte(content)
}

// File は書き込まれたファイル内容を返します
func (m *MockFileSystem) File(filename string) (string, bool) {
	data, ok := m.Files[filepath.Clean(filename)]
	return string(data), ok
}

// Package store は1行のテキストをファイルに読み書きする TextStore を提供します
package store

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	otperrors "github.com/shiroemons/go-onetimepad/internal/otp/errors"
	"github.com/shiroemons/go-onetimepad/internal/otp/interfaces"
)

// 書き込むファイルとディレクトリのパーミッション
const (
	filePerm = 0644
	dirPerm  = 0755
)

// TextStore はファイルの先頭1行を読み書きします。
// 平文ファイルの文字コードは encoding で変換します。
type TextStore struct {
	fs       interfaces.FileSystem
	encoding encoding.Encoding
}

// New は指定した文字コードの TextStore を作成します。
// charset は "utf8" または "latin1" です。
func New(fs interfaces.FileSystem, charset string) (*TextStore, error) {
	enc, err := LookupCharset(charset)
	if err != nil {
		return nil, err
	}
	if fs == nil {
		fs = NewOSFileSystem()
	}
	return &TextStore{fs: fs, encoding: enc}, nil
}

// LookupCharset は文字コード名から encoding.Encoding を返します
func LookupCharset(charset string) (encoding.Encoding, error) {
	switch strings.ToLower(charset) {
	case "", "utf8", "utf-8":
		return unicode.UTF8, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCharset, charset)
	}
}

// ReadLine はファイルの先頭1行を読み込みます。改行文字は含みません。
// 空のファイルの場合は空文字列を返します。
func (s *TextStore) ReadLine(path string) (string, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return "", otperrors.NewIOError("読み込み", path, err)
	}

	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		data = data[:i]
	}
	data = bytes.TrimSuffix(data, []byte{'\r'})

	text, _, err := transform.Bytes(s.encoding.NewDecoder(), data)
	if err != nil {
		return "", otperrors.NewIOError("文字コード変換", path, fmt.Errorf("%w: %w", ErrDecode, err))
	}
	return string(text), nil
}

// WriteLine はテキストをファイルに書き込みます。末尾に改行は付けません。
// 親ディレクトリが存在しない場合は作成します。
func (s *TextStore) WriteLine(path string, text string) error {
	data, _, err := transform.Bytes(s.encoding.NewEncoder(), []byte(text))
	if err != nil {
		return otperrors.NewIOError("文字コード変換", path, fmt.Errorf("%w: %w", ErrEncode, err))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return otperrors.NewIOError("ディレクトリ作成", dir, err)
		}
	}
	if err := s.fs.WriteFile(path, data, filePerm); err != nil {
		return otperrors.NewIOError("書き込み", path, err)
	}
	return nil
}

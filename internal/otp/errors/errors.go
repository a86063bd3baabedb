// Package errors は境界層 (ファイル入出力・コマンド解析) のエラータイプを提供します
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrIOFailure はファイルの読み書きに失敗した場合のエラー
	ErrIOFailure = errors.New("ファイルの入出力に失敗しました")

	// ErrUsage はコマンドの使い方が誤っている場合のエラー
	ErrUsage = errors.New("コマンドの使い方が正しくありません")
)

// IOError はファイル入出力のエラー
type IOError struct {
	Op   string // 実行していた操作
	Path string // ファイルパス
	Err  error  // 元のエラー
}

// Error はエラーメッセージを返します
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap は ErrIOFailure と元のエラーを返します
func (e *IOError) Unwrap() []error {
	return []error{ErrIOFailure, e.Err}
}

// NewIOError は新しいIOErrorを作成します
func NewIOError(op, path string, err error) *IOError {
	return &IOError{
		Op:   op,
		Path: path,
		Err:  err,
	}
}

// UsageError はコマンド解析のエラー
type UsageError struct {
	Command string // サブコマンド名 (空の場合は全体)
	Msg     string
}

// Error はエラーメッセージを返します
func (e *UsageError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: %s", e.Command, e.Msg)
	}
	return e.Msg
}

// Unwrap は ErrUsage を返します
func (e *UsageError) Unwrap() error {
	return ErrUsage
}

// NewUsageError は新しいUsageErrorを作成します
func NewUsageError(command, format string, a ...any) *UsageError {
	return &UsageError{
		Command: command,
		Msg:     fmt.Sprintf(format, a...),
	}
}

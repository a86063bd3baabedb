package store

import "errors"

var (
	// ErrUnknownCharset は対応していない文字コードが指定された場合のエラー
	ErrUnknownCharset = errors.New("対応していない文字コードです")

	// ErrDecode はファイル内容の文字コード変換に失敗した場合のエラー
	ErrDecode = errors.New("ファイル内容の文字コード変換に失敗しました")

	// ErrEncode はテキストを指定の文字コードに変換できない場合のエラー
	ErrEncode = errors.New("テキストを指定の文字コードに変換できません")
)

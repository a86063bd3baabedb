package otp

import "errors"

var (
	// ErrLengthMismatch は鍵とデータのビット長が一致しない場合のエラー
	ErrLengthMismatch = errors.New("鍵とデータのビット長が一致しません")

	// ErrInvalidArgument は引数が不正な場合のエラー
	ErrInvalidArgument = errors.New("引数が不正です")

	// ErrInvalidBit はビット列に 0/1 以外の文字が含まれる場合のエラー
	ErrInvalidBit = errors.New("ビット列に0と1以外の文字が含まれています")

	// ErrCodePointOverflow は8ビットで表現できない文字が含まれる場合のエラー
	ErrCodePointOverflow = errors.New("8ビットで表現できない文字が含まれています")

	// ErrRandomSource は乱数源からビットを取り出せない場合のエラー
	ErrRandomSource = errors.New("乱数源の読み込みに失敗しました")
)

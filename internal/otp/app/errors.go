package app

import "errors"

var (
	// ErrEncrypt は暗号化に失敗した場合のエラー
	ErrEncrypt = errors.New("暗号化に失敗しました")

	// ErrDecrypt は復号に失敗した場合のエラー
	ErrDecrypt = errors.New("復号に失敗しました")

	// ErrKeyGen は鍵の生成に失敗した場合のエラー
	ErrKeyGen = errors.New("鍵の生成に失敗しました")

	// ErrKeyFreq は鍵分布の計測に失敗した場合のエラー
	ErrKeyFreq = errors.New("鍵分布の計測に失敗しました")

	// ErrEncRuntime は処理時間の計測に失敗した場合のエラー
	ErrEncRuntime = errors.New("処理時間の計測に失敗しました")
)

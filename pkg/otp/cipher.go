// Package otp はワンタイムパッド暗号の鍵生成・ビット変換・XOR変換と統計計測を提供します。
//
// 鍵は平文と同じビット長で、一度だけ使う必要があります。
// 鍵の再利用は検出しません。
package otp

import (
	"fmt"
	"strings"
)

// Transform は鍵とデータのビット列を1ビットずつ XOR します。
// 暗号化と復号のどちらにも使えます。
// ビット長が異なる場合は ErrLengthMismatch を返し、結果は空になります。
func Transform(key, data string) (string, error) {
	if len(key) != len(data) {
		return "", fmt.Errorf("%w: 鍵 %d ビット, データ %d ビット", ErrLengthMismatch, len(key), len(data))
	}
	if err := ValidateBits(key); err != nil {
		return "", fmt.Errorf("鍵: %w", err)
	}
	if err := ValidateBits(data); err != nil {
		return "", fmt.Errorf("データ: %w", err)
	}

	var builder strings.Builder
	builder.Grow(len(key))
	for i := 0; i < len(key); i++ {
		builder.WriteByte('0' + (key[i]^data[i])&1)
	}
	return builder.String(), nil
}

// Encrypt は平文をビット列に変換して鍵で暗号化します
func Encrypt(key, plaintext string) (string, error) {
	bits, err := Encode(plaintext)
	if err != nil {
		return "", err
	}
	return Transform(key, bits)
}

// Decrypt は暗号文を鍵で復号して平文に戻します
func Decrypt(key, ciphertext string) (string, error) {
	bits, err := Transform(key, ciphertext)
	if err != nil {
		return "", err
	}
	return Decode(bits)
}

package otp

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// BitsPerChar は1文字あたりのビット数
const BitsPerChar = 8

// Encode はテキストの各文字を8ビットのビット列に変換して連結します。
// コードポイントが255を超える文字を含む場合は ErrCodePointOverflow を返します。
func Encode(text string) (string, error) {
	packed := make([]byte, 0, len(text))
	for i, r := range text {
		if r > 0xFF {
			return "", fmt.Errorf("%w: %w: 位置 %d の文字 %q (U+%04X)", ErrInvalidArgument, ErrCodePointOverflow, i, r, r)
		}
		packed = append(packed, byte(r))
	}

	var builder strings.Builder
	builder.Grow(len(packed) * BitsPerChar)

	reader := NewBitReader(bytes.NewReader(packed))
	for {
		bit, err := reader.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		builder.WriteByte('0' + bit)
	}
	return builder.String(), nil
}

// Decode はビット列を8ビットずつ区切って文字に戻します。
// 末尾が8ビットに満たない場合も、その断片を符号なし2進数として解釈します。
func Decode(bits string) (string, error) {
	if err := ValidateBits(bits); err != nil {
		return "", err
	}

	var builder strings.Builder
	for start := 0; start < len(bits); start += BitsPerChar {
		end := min(start+BitsPerChar, len(bits))
		val, err := strconv.ParseUint(bits[start:end], 2, BitsPerChar)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		builder.WriteRune(rune(val))
	}
	return builder.String(), nil
}

// DecodeView は診断表示用にビット列を文字列化します。
// 不正な文字を含む断片は '?' として表示し、エラーは返しません。
func DecodeView(bits string) string {
	var builder strings.Builder
	for start := 0; start < len(bits); start += BitsPerChar {
		end := min(start+BitsPerChar, len(bits))
		val, err := strconv.ParseUint(bits[start:end], 2, BitsPerChar)
		if err != nil {
			builder.WriteByte('?')
			continue
		}
		builder.WriteRune(rune(val))
	}
	return builder.String()
}

// ValidateBits はビット列が 0 と 1 のみで構成されているか確認します
func ValidateBits(bits string) error {
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return fmt.Errorf("%w: %w: 位置 %d の文字 %q", ErrInvalidArgument, ErrInvalidBit, i, bits[i])
		}
	}
	return nil
}

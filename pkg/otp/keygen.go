package otp

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxKeyBits は生成できる鍵の最大ビット長
const MaxKeyBits = math.MaxInt32

// KeyGenerator は RandomSource からビット列の鍵を生成します
type KeyGenerator struct {
	source RandomSource
}

// NewKeyGenerator は新しい KeyGenerator を作成します。
// source が nil の場合は CryptoSource を使います。
func NewKeyGenerator(source RandomSource) *KeyGenerator {
	if source == nil {
		source = NewCryptoSource()
	}
	return &KeyGenerator{source: source}
}

// Generate は n ビットの鍵を生成します。
// n が 0 から MaxKeyBits の範囲外の場合は乱数を消費せずに ErrInvalidArgument を返します。
func (g *KeyGenerator) Generate(n int) (string, error) {
	if err := checkBitLength(n); err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.Grow(n)
	for i := 0; i < n; i++ {
		bit, err := g.source.Bit()
		if err != nil {
			return "", err
		}
		builder.WriteByte('0' + bit&1)
	}
	return builder.String(), nil
}

// ParseBitLength はコマンドライン等から渡されたビット長を解釈します
func ParseBitLength(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: ビット長が数値ではないか範囲外です: %q", ErrInvalidArgument, s)
	}
	if err := checkBitLength(n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkBitLength(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: 鍵のビット長は0以上である必要があります: %d", ErrInvalidArgument, n)
	}
	if n > MaxKeyBits {
		return fmt.Errorf("%w: 鍵のビット長は%d以下である必要があります: %d", ErrInvalidArgument, MaxKeyBits, n)
	}
	return nil
}

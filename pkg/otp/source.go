package otp

import (
	"bufio"
	"crypto/rand"
	"fmt"
	"io"
	mathrand "math/rand/v2"
)

// RandomSource は鍵生成に使う1ビット単位の乱数源です。
// Bit は 0 か 1 を返します。乱数を取り出せない場合はエラーを返します。
type RandomSource interface {
	Bit() (uint8, error)
}

// CryptoSource は OS のエントロピー源から読み込む RandomSource です。
type CryptoSource struct {
	reader *BitReader
}

// NewCryptoSource は crypto/rand を使う CryptoSource を作成します
func NewCryptoSource() *CryptoSource {
	return newReaderSource(rand.Reader)
}

func newReaderSource(r io.Reader) *CryptoSource {
	return &CryptoSource{reader: NewBitReader(bufio.NewReader(r))}
}

// Bit は1ビット返します。
// エントロピー源の読み込みに失敗した場合は ErrRandomSource を返します。
func (s *CryptoSource) Bit() (uint8, error) {
	bit, err := s.reader.ReadBit()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrRandomSource, err)
	}
	return bit, nil
}

// MathSource はプロセス共有の疑似乱数 (math/rand/v2) を使う RandomSource です。
// 暗号学的に安全ではなく、デモ用途に限ります。
type MathSource struct{}

// Bit は1ビット返します
func (MathSource) Bit() (uint8, error) {
	return uint8(mathrand.IntN(2)), nil
}

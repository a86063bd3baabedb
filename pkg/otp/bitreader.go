package otp

import (
	"fmt"
	"io"
)

// BitReader は io.Reader から上位ビット優先でビット単位に読み込みます。
type BitReader struct {
	reader io.Reader
	buffer byte
	count  uint // バッファに残っているビット数 (0-8)
	buf    [1]byte
}

// NewBitReader は新しい BitReader を作成します。
func NewBitReader(r io.Reader) *BitReader {
	return &BitReader{reader: r}
}

// ReadBit は1ビット読み込みます。データが尽きた場合は io.EOF を返します。
func (br *BitReader) ReadBit() (uint8, error) {
	if br.count == 0 {
		n, err := br.reader.Read(br.buf[:])
		if n == 0 {
			if err == nil || err == io.EOF {
				return 0, io.EOF
			}
			return 0, fmt.Errorf("read 0 bytes: %w", err)
		}
		if err != nil && err != io.EOF {
			return 0, err
		}
		br.buffer = br.buf[0]
		br.count = 8
	}

	bit := (br.buffer >> 7) & 1
	br.buffer <<= 1
	br.count--
	return bit, nil
}

// Read は指定されたビット数を読み込み、その値を返します。
// 途中で EOF になった場合は、それまでに読み込めた値と io.EOF を返します。
func (br *BitReader) Read(numBits uint) (int, error) {
	if numBits == 0 || numBits > 32 {
		return 0, fmt.Errorf("invalid number of bits to read: %d", numBits)
	}

	value := 0
	for i := uint(0); i < numBits; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			return value, err
		}
		value = (value << 1) | int(bit)
	}
	return value, nil
}

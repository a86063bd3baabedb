package otp

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// MTSource はメルセンヌ・ツイスタ (MT19937) による RandomSource です。
// 同じシードからは常に同じ鍵が生成されるため、テストや再現実行に使います。
// 暗号学的に安全ではありません。
type MTSource struct {
	mt  [mtN]uint32
	mti int

	// 32ビット値を1ビットずつ切り出すための残り
	word uint32
	left uint
}

// NewMTSource は指定されたシードで MTSource を初期化して返します。
func NewMTSource(seed uint32) *MTSource {
	s := &MTSource{}
	s.mt[0] = seed
	for s.mti = 1; s.mti < mtN; s.mti++ {
		s.mt[s.mti] = 1812433253*(s.mt[s.mti-1]^(s.mt[s.mti-1]>>30)) + uint32(s.mti)
	}
	return s
}

// Uint32 は次の32ビット符号なし乱数を返します。
func (s *MTSource) Uint32() uint32 {
	var y uint32
	mag01 := [2]uint32{0x0, mtMatrixA}

	if s.mti >= mtN {
		var kk int
		for kk = 0; kk < mtN-mtM; kk++ {
			y = (s.mt[kk] & mtUpperMask) | (s.mt[kk+1] & mtLowerMask)
			s.mt[kk] = s.mt[kk+mtM] ^ (y >> 1) ^ mag01[y&0x1]
		}
		for ; kk < mtN-1; kk++ {
			y = (s.mt[kk] & mtUpperMask) | (s.mt[kk+1] & mtLowerMask)
			s.mt[kk] = s.mt[kk+(mtM-mtN)] ^ (y >> 1) ^ mag01[y&0x1]
		}
		y = (s.mt[mtN-1] & mtUpperMask) | (s.mt[0] & mtLowerMask)
		s.mt[mtN-1] = s.mt[mtM-1] ^ (y >> 1) ^ mag01[y&0x1]

		s.mti = 0
	}

	y = s.mt[s.mti]
	s.mti++

	// Tempering
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18

	return y
}

// Bit は上位ビットから順に1ビットずつ返します。
func (s *MTSource) Bit() (uint8, error) {
	if s.left == 0 {
		s.word = s.Uint32()
		s.left = 32
	}
	bit := uint8(s.word >> 31)
	s.word <<= 1
	s.left--
	return bit, nil
}

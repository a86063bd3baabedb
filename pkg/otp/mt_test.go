package otp

import "testing"

func TestMTSource_Deterministic(t *testing.T) {
	// 同じシードで初期化すると同じシーケンスが得られることを確認
	s1 := NewMTSource(12345)
	s2 := NewMTSource(12345)

	for i := 0; i < 1000; i++ {
		v1 := s1.Uint32()
		v2 := s2.Uint32()
		if v1 != v2 {
			t.Errorf("シーケンスが異なる: i=%d, v1=0x%08X, v2=0x%08X", i, v1, v2)
			return
		}
	}
}

func TestMTSource_ReferenceValues(t *testing.T) {
	// MT19937 参照実装 (init_genrand(5489)) の先頭の出力
	s := NewMTSource(5489)
	expected := []uint32{3499211612, 581869302, 3890346734, 3586334585, 545404204}
	for i, want := range expected {
		if got := s.Uint32(); got != want {
			t.Errorf("index=%d: got=%d, want=%d", i, got, want)
		}
	}
}

func TestMTSource_BitFollowsWord(t *testing.T) {
	// Bit は Uint32 の上位ビットから順に返す
	word := NewMTSource(1).Uint32()
	s := NewMTSource(1)
	for i := 31; i >= 0; i-- {
		want := uint8((word >> uint(i)) & 1)
		got, err := s.Bit()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("bit %d: got=%d, want=%d", i, got, want)
		}
	}
}

func TestMTSource_LargeSequence(t *testing.T) {
	// 大量の乱数を生成してもパニックしないことを確認
	s := NewMTSource(42)
	for i := 0; i < 100000; i++ {
		_, _ = s.Bit()
	}
}

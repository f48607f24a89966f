package services

import "testing"

func TestLCGSequence(t *testing.T) {
	// Hand-computed values of (1103515245*seed + 12345) mod 2^32.
	cases := []struct {
		seed uint64
		want uint64
	}{
		{0, 12345},
		{1, 1103527590},
		{2, 2207042835},
		{7, 3429651764},
		{42, 3397979675},
		{12345, 3554416254},
	}
	for _, tt := range cases {
		if got := lcgNext(tt.seed); got != tt.want {
			t.Errorf("lcgNext(%d) = %d, want %d", tt.seed, got, tt.want)
		}
	}
}

func TestDrawIndex(t *testing.T) {
	cases := []struct {
		seed    uint64
		poolLen int
		want    int
	}{
		{0, 4, 1},
		{1, 4, 2},
		{7, 4, 0},
		{42, 4, 3},
		{7, 3, 2},
		{7, 5, 4},
		{0, 1, 0},
	}
	for _, tt := range cases {
		if got := drawIndex(tt.seed, tt.poolLen); got != tt.want {
			t.Errorf("drawIndex(%d, %d) = %d, want %d", tt.seed, tt.poolLen, got, tt.want)
		}
	}
}

func TestRoundCounter(t *testing.T) {
	counter := NewRoundCounter(10)
	for want := uint64(11); want <= 13; want++ {
		if got := counter.Seed(); got != want {
			t.Errorf("Seed() = %d, want %d", got, want)
		}
	}
}

func TestFixedSeeds(t *testing.T) {
	t.Run("replays the sequence and repeats the last seed", func(t *testing.T) {
		seeds := NewFixedSeeds(3, 8)
		for _, want := range []uint64{3, 8, 8, 8} {
			if got := seeds.Seed(); got != want {
				t.Errorf("Seed() = %d, want %d", got, want)
			}
		}
	})

	t.Run("empty sequence yields zero", func(t *testing.T) {
		if got := NewFixedSeeds().Seed(); got != 0 {
			t.Errorf("Seed() = %d, want 0", got)
		}
	})
}

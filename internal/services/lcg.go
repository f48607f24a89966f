package services

import "sync"

// Draw selection uses a linear-congruential generator over a caller-
// supplied seed. The generator is intentionally weak: anyone who can
// predict the seed can predict the draw. That reproducibility is part of
// the campaign's contract and must not be replaced with a secure source.
const (
	lcgMultiplier uint64 = 1103515245
	lcgIncrement  uint64 = 12345
	lcgModulus    uint64 = 1 << 32
)

func lcgNext(seed uint64) uint64 {
	return (lcgMultiplier*seed + lcgIncrement) % lcgModulus
}

// drawIndex maps a seed to an index into a pool of the given length.
func drawIndex(seed uint64, poolLen int) int {
	return int(lcgNext(seed) % uint64(poolLen))
}

// SeedSource supplies the seed for each automatic draw. In a blockchain
// deployment this would be the current block height; outside one, any
// monotonic environment counter serves.
type SeedSource interface {
	Seed() uint64
}

// RoundCounter is the default seed source: a monotonic round number that
// advances once per draw.
type RoundCounter struct {
	mu    sync.Mutex
	round uint64
}

func NewRoundCounter(start uint64) *RoundCounter {
	return &RoundCounter{round: start}
}

func (c *RoundCounter) Seed() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.round++
	return c.round
}

// FixedSeeds replays a predetermined seed sequence; draws past the end
// of the sequence reuse the last seed. Intended for tests and replays.
type FixedSeeds struct {
	mu    sync.Mutex
	seeds []uint64
	next  int
}

func NewFixedSeeds(seeds ...uint64) *FixedSeeds {
	return &FixedSeeds{seeds: seeds}
}

func (f *FixedSeeds) Seed() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.seeds) == 0 {
		return 0
	}
	if f.next >= len(f.seeds) {
		return f.seeds[len(f.seeds)-1]
	}
	seed := f.seeds[f.next]
	f.next++
	return seed
}

package filetransfer

import (
	"fmt"
	"math/rand/v2"

	"github.com/bits-and-blooms/bitset"
)

// Strategy selects the order in which a ChunkDistributor hands out chunks.
type Strategy uint8

const (
	// StrategyLinear hands out chunks from the start of the file.
	StrategyLinear Strategy = iota
	// StrategyRandom hands out chunks in random order.
	StrategyRandom
)

// ParseStrategy maps a configuration name to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "linear":
		return StrategyLinear, nil
	case "random":
		return StrategyRandom, nil
	default:
		return 0, fmt.Errorf("unknown chunk strategy %q", name)
	}
}

// String returns the configuration name of the strategy.
func (s Strategy) String() string {
	if s == StrategyRandom {
		return "random"
	}
	return "linear"
}

// ChunkDistributor decides which chunk to fetch next. It reads a chunk map
// that its owner keeps mutating and never returns a chunk marked present.
type ChunkDistributor struct {
	chunkMap *bitset.BitSet
	total    uint
	strategy Strategy

	next  uint
	given *bitset.BitSet
}

// NewChunkDistributor creates a distributor over the first total bits of chunkMap.
func NewChunkDistributor(chunkMap *bitset.BitSet, total uint, strategy Strategy) *ChunkDistributor {
	return &ChunkDistributor{
		chunkMap: chunkMap,
		total:    total,
		strategy: strategy,
		given:    bitset.New(total),
	}
}

// NextChunk returns the next chunk to fetch, or false when none is left.
func (d *ChunkDistributor) NextChunk() (uint, bool) {
	if d.strategy == StrategyRandom {
		return d.nextRandom()
	}
	return d.nextLinear()
}

func (d *ChunkDistributor) nextLinear() (uint, bool) {
	for i := d.next; i < d.total; i++ {
		if !d.chunkMap.Test(i) {
			d.next = i + 1
			return i, true
		}
	}
	d.next = d.total
	return 0, false
}

// nextRandom returns every unset chunk at most once.
func (d *ChunkDistributor) nextRandom() (uint, bool) {
	candidates := make([]uint, 0, d.total)
	for i := uint(0); i < d.total; i++ {
		if !d.chunkMap.Test(i) && !d.given.Test(i) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}

	chunk := candidates[rand.IntN(len(candidates))]
	d.given.Set(chunk)
	return chunk, true
}

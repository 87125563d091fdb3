package games

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
	"sync"
)

// PRNG pool for high concurrency; each PRNG is seeded from crypto/rand.
var prngPool = &sync.Pool{
	New: func() any {
		var seedBytes [8]byte
		_, _ = rand.Read(seedBytes[:])
		seed := int64(binary.LittleEndian.Uint64(seedBytes[:]))
		return mathrand.New(mathrand.NewSource(seed))
	},
}

func randFloat() float64 {
	r := prngPool.Get().(*mathrand.Rand)
	f := r.Float64()
	prngPool.Put(r)
	return f
}

func randIndex(length int) int {
	if length <= 0 {
		return 0
	}
	r := prngPool.Get().(*mathrand.Rand)
	idx := r.Intn(length)
	prngPool.Put(r)
	return idx
}

// weightedPick returns an index into weights, chosen proportionally.
func weightedPick(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0
	}
	target := randFloat() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return i
		}
	}
	return len(weights) - 1
}

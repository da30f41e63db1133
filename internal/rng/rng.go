package rng

import (
	"hash/fnv"
	"math/rand"
	"time"
)

// Source implements ports.RNG. A zero base seed keeps the historical
// non-deterministic behavior (time-seeded streams); any other value makes
// every named stream reproducible, with the name folded into the seed so
// different operations never share a stream.
type Source struct {
	baseSeed int64
}

// New creates a source with the given base seed (0 for time-seeded)
func New(baseSeed int64) *Source {
	return &Source{baseSeed: baseSeed}
}

// Stream returns the generator for a named operation
func (s *Source) Stream(name string) *rand.Rand {
	if s.baseSeed == 0 {
		return rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	return rand.New(rand.NewSource(s.baseSeed ^ int64(h.Sum64())))
}

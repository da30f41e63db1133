package ports

import (
	"math/rand"
)

// RNG provides random number streams for resampling. The bootstrap estimator
// is the only stochastic component; everything else in the engine is
// deterministic. Implementations decide whether named streams are
// reproducible (seeded) or not (time-seeded, the historical default).
type RNG interface {
	// Stream returns the generator for a named operation
	Stream(name string) *rand.Rand
}

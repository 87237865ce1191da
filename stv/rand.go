package stv

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// randomness is the seedable PRNG service. No component other than the
// tie-breaking primitives may read it directly, and it is scoped to the
// lifetime of a single Count call.
type randomness struct {
	r *rand.Rand
}

// newRandomness seeds the PRNG and emits the %SEED record before any
// value is drawn from it. A nil seed falls back to OS entropy as the
// non-deterministic source of last resort.
func newRandomness(seed *uint64, logger Logger) *randomness {
	var a, b uint64
	if seed != nil {
		a, b = *seed, *seed
		logf(logger, TagSeed, "%d", *seed)
	} else {
		a = osEntropy()
		b = osEntropy()
		logf(logger, TagSeed, "none (system entropy)")
	}

	return &randomness{r: rand.New(rand.NewPCG(a, b))}
}

// osEntropy reads a uint64 from the OS entropy source. It panics on
// failure: if the system cannot produce randomness, nothing downstream
// can proceed either, and this is only reached when the caller did not
// supply a seed.
func osEntropy() uint64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("stv: reading OS entropy: %v", err))
	}
	return binary.BigEndian.Uint64(buf[:])
}

// float64 returns a uniform real in [0, 1).
func (rs *randomness) float64() float64 {
	return rs.r.Float64()
}

// shuffle performs an in-place Fisher-Yates shuffle of a slice of length
// n using the service's PRNG, via the swap callback.
func (rs *randomness) shuffle(n int, swap func(i, j int)) {
	rs.r.Shuffle(n, swap)
}

package sumcheck

import (
	"crypto/rand"
	"math/big"
)

// RandomSource draws verifier challenges from crypto/rand, matching the
// teacher's crypto/rand.Int(rand.Reader, ...) convention for every
// field-element sample in bulletproofs/bp.go and group/modsafeprime.go.
// This is the ChallengeSource an interactive (non-Fiat-Shamir) verifier
// uses.
type RandomSource struct {
	p *big.Int
}

// NewRandomSource returns a ChallengeSource sampling uniformly from [0, p).
func NewRandomSource(p *big.Int) *RandomSource {
	return &RandomSource{p: p}
}

// Challenge returns a uniformly random field element, ignoring msg.
func (r *RandomSource) Challenge(msg []*big.Int) *big.Int {
	c, err := rand.Int(rand.Reader, r.p)
	if err != nil {
		panic(err)
	}
	return c
}

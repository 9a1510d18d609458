// Package field implements modular arithmetic over a prime p supplied by the
// caller. It is deliberately thin: everything bottoms out in
// github.com/ing-bank/zkrp/util/bn, the same modular-big.Int helper the
// teacher's bulletproofs and voteproof packages lean on for every field
// operation (bn.Add/bn.Sub/bn.Multiply/bn.Mod/bn.ModInverse), so a prover and
// verifier built on this package reduce the same way the rest of the pack
// already does.
package field

import (
	"math/big"

	"github.com/ing-bank/zkrp/util/bn"
)

// Field is modular arithmetic mod P. P is expected to be prime; the package
// does not verify primality (the spec's core accepts a supplied prime).
type Field struct {
	P *big.Int
}

// New returns the field Z/pZ. p must be positive.
func New(p *big.Int) *Field {
	return &Field{P: new(big.Int).Set(p)}
}

// Canon reduces a into the canonical representative in [0, p).
func (f *Field) Canon(a *big.Int) *big.Int {
	return bn.Mod(a, f.P)
}

// Add returns (a+b) mod p.
func (f *Field) Add(a, b *big.Int) *big.Int {
	return bn.Mod(bn.Add(a, b), f.P)
}

// Sub returns (a-b) mod p.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	return bn.Mod(bn.Sub(a, b), f.P)
}

// Mul returns (a*b) mod p.
func (f *Field) Mul(a, b *big.Int) *big.Int {
	return bn.Mod(bn.Multiply(a, b), f.P)
}

// Neg returns (-a) mod p.
func (f *Field) Neg(a *big.Int) *big.Int {
	return bn.Mod(bn.Sub(big.NewInt(0), a), f.P)
}

// Inv returns the modular multiplicative inverse of a, via the extended
// Euclidean algorithm (bn.ModInverse delegates to math/big.Int.ModInverse,
// which is the extended Euclidean algorithm).
func (f *Field) Inv(a *big.Int) *big.Int {
	return bn.ModInverse(f.Canon(a), f.P)
}

// Equal reports whether a and b denote the same field element.
func (f *Field) Equal(a, b *big.Int) bool {
	return f.Canon(a).Cmp(f.Canon(b)) == 0
}

// IsZero reports whether a is the additive identity mod p.
func (f *Field) IsZero(a *big.Int) bool {
	return f.Canon(a).Sign() == 0
}

// Zero returns the additive identity.
func (f *Field) Zero() *big.Int {
	return big.NewInt(0)
}

// One returns the multiplicative identity.
func (f *Field) One() *big.Int {
	return big.NewInt(1)
}

// Package gkr implements the GKR protocol: an interactive sum-check-based
// argument for Sum_{x,y} f1(g,x,y)*f2(x)*f3(y), where f1 is a sparse
// wiring predicate and f2, f3 are dense layer polynomials, run as two
// chained product sum-checks (one over x, one over y).
package gkr

import (
	"math/big"

	"github.com/sumcheck-gkr/core/errs"
	"github.com/sumcheck-gkr/core/field"
)

// Circuit bundles the three functions a single GKR layer reduction needs.
// F1 is sparse: its keys are little-endian 3L-bit arguments, bit-split into
// z (bits [0,L)), x (bits [L,2L)), y (bits [2L,3L)) — see ThreeSplit. F2 and
// F3 are dense, each of size 2^L.
type Circuit struct {
	F1 map[int]*big.Int
	F2 []*big.Int
	F3 []*big.Int
	P  *big.Int
	L  int
}

// NewCircuit validates shapes and builds a Circuit.
func NewCircuit(f1 map[int]*big.Int, f2, f3 []*big.Int, p *big.Int, l int) (*Circuit, error) {
	if len(f2) != 1<<uint(l) {
		return nil, errs.New(errs.ShapeMismatch, "f2 has size %d, want 2^%d", len(f2), l)
	}
	if len(f3) != 1<<uint(l) {
		return nil, errs.New(errs.ShapeMismatch, "f3 has size %d, want 2^%d", len(f3), l)
	}
	limit := 1 << uint(3*l)
	for k := range f1 {
		if k >= limit || k < 0 {
			return nil, errs.New(errs.TermOutOfRange, "f1 has invalid term %#x, not representable by %d variables", k, 3*l)
		}
	}

	f1c := make(map[int]*big.Int, len(f1))
	for k, v := range f1 {
		f1c[k] = new(big.Int).Set(v)
	}
	f2c := make([]*big.Int, len(f2))
	copy(f2c, f2)
	f3c := make([]*big.Int, len(f3))
	copy(f3c, f3)

	return &Circuit{F1: f1c, F2: f2c, F3: f3c, P: new(big.Int).Set(p), L: l}, nil
}

// Precompute builds the multilinear Lagrange kernel table over {0,1}^L at
// point g: G[b] = Product_i (g_i if bit i of b is set else 1-g_i). Built by
// iterative doubling, grounded on GKRProver.py's precompute.
func Precompute(g []*big.Int, p *big.Int) []*big.Int {
	f := field.New(p)
	l := len(g)
	gTable := make([]*big.Int, 1<<uint(l))
	gTable[0] = f.Sub(f.One(), g[0])
	gTable[1] = new(big.Int).Set(g[0])
	for i := 1; i < l; i++ {
		old := make([]*big.Int, 1<<uint(i))
		copy(old, gTable[:1<<uint(i)])
		for b := 0; b < 1<<uint(i); b++ {
			gTable[b] = f.Mul(old[b], f.Sub(f.One(), g[i]))
			gTable[b+(1<<uint(i))] = f.Mul(old[b], g[i])
		}
	}
	return gTable
}

// ThreeSplit splits a little-endian 3L-bit argument into its z (first L
// bits), x (second L bits), and y (last L bits) components.
func ThreeSplit(arg, l int) (z, x, y int) {
	mask := (1 << uint(l)) - 1
	z = arg & mask
	x = (arg >> uint(l)) & mask
	y = (arg >> uint(2*l)) & mask
	return z, x, y
}

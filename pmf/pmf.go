// Package pmf implements a product of multilinear factors: a polynomial
// expressed as Product_i multiplicand_i, without ever expanding the product
// into a single MVLinear (which would generally not be multilinear).
package pmf

import (
	"math/big"

	"github.com/sumcheck-gkr/core/errs"
	"github.com/sumcheck-gkr/core/field"
	"github.com/sumcheck-gkr/core/mvlinear"
)

// PMF is Product_i Multiplicands[i]. NumVariables is the max across factors,
// matching the convention that a factor may not depend on every variable.
type PMF struct {
	NumVariables int
	P            *big.Int
	Multiplicands []*mvlinear.MVLinear
	f            *field.Field

	// dummy PMFs carry no real multiplicands and refuse Eval; they stand in
	// for a polynomial whose value the holder never needs to recompute,
	// only its degree and variable count (used by checksum-only verifiers).
	dummy bool
}

// New builds a PMF from its multiplicands. At least one multiplicand is
// required, and all must share the same field.
func New(multiplicands []*mvlinear.MVLinear) (*PMF, error) {
	if len(multiplicands) == 0 {
		return nil, errs.New(errs.ShapeMismatch, "multiplicands are empty")
	}
	p := multiplicands[0].P
	n := multiplicands[0].NumVariables
	for _, m := range multiplicands {
		if m.P.Cmp(p) != 0 {
			return nil, errs.New(errs.FieldMismatch, "%s != %s", m.P.String(), p.String())
		}
		if m.NumVariables > n {
			n = m.NumVariables
		}
	}
	cloned := make([]*mvlinear.MVLinear, len(multiplicands))
	for i, m := range multiplicands {
		cloned[i] = m.Clone()
	}
	return &PMF{NumVariables: n, P: new(big.Int).Set(p), Multiplicands: cloned, f: field.New(p)}, nil
}

// NewDummy builds a placeholder PMF of the given shape that refuses Eval.
// It exists purely so an inner sum-check verifier can be told "here is the
// degree and variable count of the polynomial being checked" without the
// verifier ever holding (or needing) the actual factors.
func NewDummy(numVariables, numMultiplicands int, p *big.Int) *PMF {
	return &PMF{NumVariables: numVariables, P: new(big.Int).Set(p), Multiplicands: make([]*mvlinear.MVLinear, numMultiplicands), f: field.New(p), dummy: true}
}

// IsDummy reports whether this PMF refuses evaluation.
func (pr *PMF) IsDummy() bool { return pr.dummy }

// NumMultiplicands returns the factor count, i.e. the total degree bound
// per variable (each factor contributes at most degree 1 per variable).
func (pr *PMF) NumMultiplicands() int { return len(pr.Multiplicands) }

// Eval returns Product_i Multiplicands[i].Eval(at). It fails if pr is a
// dummy PMF.
func (pr *PMF) Eval(at []*big.Int) (*big.Int, error) {
	if pr.dummy {
		return nil, errs.New(errs.ShapeMismatch, "cannot evaluate a dummy PMF")
	}
	result := pr.f.One()
	for _, m := range pr.Multiplicands {
		result = pr.f.Mul(result, m.Eval(at))
	}
	return result, nil
}

// Mul returns a new PMF with other appended as an additional factor.
func (pr *PMF) Mul(other *mvlinear.MVLinear) (*PMF, error) {
	extended := append(append([]*mvlinear.MVLinear{}, pr.Multiplicands...), other)
	return New(extended)
}

// Clone returns a deep copy.
func (pr *PMF) Clone() *PMF {
	if pr.dummy {
		return NewDummy(pr.NumVariables, len(pr.Multiplicands), pr.P)
	}
	cp, _ := New(pr.Multiplicands)
	return cp
}

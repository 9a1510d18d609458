// Package mle builds and evaluates multilinear extensions: given an array
// (dense or sparse) indexed by the binary expansion of 0..2^L-1, it produces
// or directly evaluates the unique multilinear polynomial that agrees with
// the array on the Boolean hypercube {0,1}^L.
package mle

import (
	"math/big"

	"github.com/sumcheck-gkr/core/errs"
	"github.com/sumcheck-gkr/core/field"
	"github.com/sumcheck-gkr/core/mvlinear"
)

// product1mx is the divide-and-conquer product of (1-xs[lo])*...*(1-xs[hi]),
// mirroring multilinear_extension.py's _product1mx: splitting the range
// keeps the intermediate MVLinears small instead of folding left-to-right.
func product1mx(xs []*mvlinear.MVLinear, lo, hi int, f *field.Field, numVar int, p *big.Int) (*mvlinear.MVLinear, error) {
	if lo > hi {
		one, err := mvlinear.New(numVar, map[int]*big.Int{0: f.One()}, p)
		return one, err
	}
	if lo == hi {
		one, err := mvlinear.New(numVar, map[int]*big.Int{0: f.One()}, p)
		if err != nil {
			return nil, err
		}
		return one.Sub(xs[lo])
	}
	mid := lo + (hi-lo)/2
	left, err := product1mx(xs, lo, mid, f, numVar, p)
	if err != nil {
		return nil, err
	}
	right, err := product1mx(xs, mid+1, hi, f, numVar, p)
	if err != nil {
		return nil, err
	}
	return left.Mul(right)
}

// varPolys builds the l generator variables x_0 .. x_{l-1} as MVLinears.
func varPolys(numVar int, p *big.Int) ([]*mvlinear.MVLinear, error) {
	xs := make([]*mvlinear.MVLinear, numVar)
	for i := 0; i < numVar; i++ {
		m, err := mvlinear.New(numVar, map[int]*big.Int{1 << uint(i): big.NewInt(1)}, p)
		if err != nil {
			return nil, err
		}
		xs[i] = m
	}
	return xs, nil
}

// Extend builds the MVLinear P(x_0,...,x_{l-1}) = data[b] for b in {0,1}^l,
// encoded little-endian, from a dense array of length 2^l.
func Extend(data []*big.Int, numVar int, p *big.Int) (*mvlinear.MVLinear, error) {
	sparse := make(map[int]*big.Int, len(data))
	for b, v := range data {
		sparse[b] = v
	}
	return ExtendSparse(sparse, numVar, p)
}

// ExtendSparse is the sparse analogue of Extend: only the non-default
// entries of data need to be supplied.
func ExtendSparse(data map[int]*big.Int, numVar int, p *big.Int) (*mvlinear.MVLinear, error) {
	f := field.New(p)
	xs, err := varPolys(numVar, p)
	if err != nil {
		return nil, err
	}
	acc, err := mvlinear.New(numVar, map[int]*big.Int{}, p)
	if err != nil {
		return nil, err
	}
	for b, v := range data {
		if f.IsZero(v) {
			continue
		}
		subPoly, err := mvlinear.New(numVar, map[int]*big.Int{b: v}, p)
		if err != nil {
			return nil, err
		}
		var xi0 []*mvlinear.MVLinear
		for i := 0; i < numVar; i++ {
			if (b>>uint(i))&1 == 0 {
				xi0 = append(xi0, xs[i])
			}
		}
		prefix, err := product1mx(xi0, 0, len(xi0)-1, f, numVar, p)
		if err != nil {
			return nil, err
		}
		subPoly, err = subPoly.Mul(prefix)
		if err != nil {
			return nil, err
		}
		acc, err = acc.Add(subPoly)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Evaluate evaluates the multilinear extension of a dense bookkeeping table
// at arguments, in linear time via the in-place halving fold:
// A[b] = A[2b]*(1-r) + A[2b+1]*r. The fold runs on a private copy of data
// (zero-padded to 2^len(arguments)), so data itself is left unchanged.
func Evaluate(data []*big.Int, arguments []*big.Int, p *big.Int) (*big.Int, error) {
	f := field.New(p)
	L := len(arguments)
	if len(data) > 1<<uint(L) {
		return nil, errs.New(errs.ShapeMismatch, "data length %d exceeds 2^%d", len(data), L)
	}
	a := make([]*big.Int, 1<<uint(L))
	for i := range a {
		if i < len(data) {
			a[i] = new(big.Int).Set(data[i])
		} else {
			a[i] = f.Zero()
		}
	}
	for i := 1; i <= L; i++ {
		r := arguments[i-1]
		oneMinusR := f.Sub(f.One(), r)
		half := 1 << uint(L-i)
		for b := 0; b < half; b++ {
			a[b] = f.Add(f.Mul(a[b<<1], oneMinusR), f.Mul(a[(b<<1)+1], r))
		}
	}
	return a[0], nil
}

// EvaluateSparse is the sparse analogue of Evaluate: data need only hold
// the non-zero entries, and the dp generations are built as maps instead of
// full-length arrays, so the cost tracks the number of non-zero entries at
// each fold step rather than 2^L.
func EvaluateSparse(data map[int]*big.Int, arguments []*big.Int, p *big.Int) (*big.Int, error) {
	f := field.New(p)
	dp0 := make(map[int]*big.Int, len(data))
	for k, v := range data {
		dp0[k] = new(big.Int).Set(v)
	}
	L := len(arguments)
	for i := 0; i < L; i++ {
		r := arguments[i]
		oneMinusR := f.Sub(f.One(), r)
		dp1 := make(map[int]*big.Int)
		for k, v := range dp0 {
			half := k >> 1
			contribution := f.Mul(v, oneMinusR)
			if k&1 == 1 {
				contribution = f.Mul(v, r)
			}
			if existing, ok := dp1[half]; ok {
				dp1[half] = f.Add(existing, contribution)
			} else {
				dp1[half] = contribution
			}
		}
		dp0 = dp1
	}
	if v, ok := dp0[0]; ok {
		return v, nil
	}
	return f.Zero(), nil
}

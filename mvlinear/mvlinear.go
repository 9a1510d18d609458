// Package mvlinear implements a sparse multilinear polynomial over a prime
// field: a sum of monomials, each a product of distinct variables, keyed by
// a bitmask where bit i set means variable x_i appears in that term.
package mvlinear

import (
	"math/big"

	"github.com/sumcheck-gkr/core/errs"
	"github.com/sumcheck-gkr/core/field"
)

// MVLinear is a multilinear polynomial in NumVariables variables over a
// prime field. Terms maps a term key (a bitmask in [0, 2^NumVariables)) to
// its coefficient in [0, P). Zero coefficients are never stored.
type MVLinear struct {
	NumVariables int
	Terms        map[int]*big.Int
	P            *big.Int
	f            *field.Field
}

// New builds an MVLinear, reducing every coefficient mod p and dropping zero
// entries. It returns TermOutOfRange if any key is >= 2^numVariables.
func New(numVariables int, terms map[int]*big.Int, p *big.Int) (*MVLinear, error) {
	f := field.New(p)
	m := &MVLinear{NumVariables: numVariables, Terms: make(map[int]*big.Int), P: new(big.Int).Set(p), f: f}
	limit := 1 << numVariables
	for k, v := range terms {
		if k >= limit || k < 0 {
			return nil, errs.New(errs.TermOutOfRange, "term key %d is out of range for %d variables", k, numVariables)
		}
		m.addTerm(k, v)
	}
	return m, nil
}

func (m *MVLinear) addTerm(k int, v *big.Int) {
	reduced := m.f.Canon(v)
	if existing, ok := m.Terms[k]; ok {
		reduced = m.f.Add(existing, reduced)
	}
	if m.f.IsZero(reduced) {
		delete(m.Terms, k)
		return
	}
	m.Terms[k] = reduced
}

func (m *MVLinear) checkSameField(other *MVLinear) error {
	if m.P.Cmp(other.P) != 0 {
		return errs.New(errs.FieldMismatch, "%s != %s", m.P.String(), other.P.String())
	}
	return nil
}

// Clone returns a deep copy.
func (m *MVLinear) Clone() *MVLinear {
	terms := make(map[int]*big.Int, len(m.Terms))
	for k, v := range m.Terms {
		terms[k] = new(big.Int).Set(v)
	}
	return &MVLinear{NumVariables: m.NumVariables, Terms: terms, P: new(big.Int).Set(m.P), f: m.f}
}

// Coeff returns the coefficient of term key k, or 0 if absent.
func (m *MVLinear) Coeff(k int) *big.Int {
	if v, ok := m.Terms[k]; ok {
		return new(big.Int).Set(v)
	}
	return big.NewInt(0)
}

// Add returns m + other.
func (m *MVLinear) Add(other *MVLinear) (*MVLinear, error) {
	if err := m.checkSameField(other); err != nil {
		return nil, err
	}
	n := m.NumVariables
	if other.NumVariables > n {
		n = other.NumVariables
	}
	ans := m.Clone()
	ans.NumVariables = n
	for k, v := range other.Terms {
		ans.addTerm(k, v)
	}
	return ans, nil
}

// Sub returns m - other.
func (m *MVLinear) Sub(other *MVLinear) (*MVLinear, error) {
	if err := m.checkSameField(other); err != nil {
		return nil, err
	}
	n := m.NumVariables
	if other.NumVariables > n {
		n = other.NumVariables
	}
	ans := m.Clone()
	ans.NumVariables = n
	for k, v := range other.Terms {
		ans.addTerm(k, m.f.Neg(v))
	}
	return ans, nil
}

// Neg returns -m.
func (m *MVLinear) Neg() *MVLinear {
	terms := make(map[int]*big.Int, len(m.Terms))
	for k, v := range m.Terms {
		terms[k] = m.f.Neg(v)
	}
	return &MVLinear{NumVariables: m.NumVariables, Terms: terms, P: new(big.Int).Set(m.P), f: m.f}
}

// Mul returns m * other. It fails with NonMultilinear if any pair of term
// keys shares a set bit, since that would square a variable.
func (m *MVLinear) Mul(other *MVLinear) (*MVLinear, error) {
	if err := m.checkSameField(other); err != nil {
		return nil, err
	}
	terms := make(map[int]*big.Int)
	n := m.NumVariables
	if other.NumVariables > n {
		n = other.NumVariables
	}
	ans := &MVLinear{NumVariables: n, Terms: terms, P: new(big.Int).Set(m.P), f: m.f}
	for sk, sv := range m.Terms {
		for ok, ov := range other.Terms {
			if sk&ok != 0 {
				return nil, errs.New(errs.NonMultilinear, "terms %#x and %#x share a variable", sk, ok)
			}
			nk := sk | ok
			ans.addTerm(nk, m.f.Mul(sv, ov))
		}
	}
	return ans, nil
}

// Eval evaluates the polynomial at an arbitrary field point at[0..n).
func (m *MVLinear) Eval(at []*big.Int) *big.Int {
	s := m.f.Zero()
	for term, coeff := range m.Terms {
		val := new(big.Int).Set(coeff)
		i := 0
		k := term
		for k != 0 {
			if k&1 == 1 {
				val = m.f.Mul(val, at[i])
			}
			if m.f.IsZero(val) {
				break
			}
			k >>= 1
			i++
		}
		s = m.f.Add(s, val)
	}
	return s
}

// EvalBin evaluates the polynomial at a Boolean point encoded little-endian
// by the bits of at: bit i of at is the value of x_i.
func (m *MVLinear) EvalBin(at int) *big.Int {
	args := make([]*big.Int, m.NumVariables)
	for i := 0; i < m.NumVariables; i++ {
		args[i] = big.NewInt(int64((at >> i) & 1))
	}
	return m.Eval(args)
}

// EvalPart fixes the first len(args) variables to args, returning a
// polynomial in (NumVariables - len(args)) variables.
//
// The bit surgery here — clear each fixed bit position with `t &^ (1<<k)`
// before right-shifting by s at the end — matches polynomial.py's eval_part
// exactly; shifting every remaining key down by s only works because the
// fixed bits are cleared first, not merely "subtracted out."
func (m *MVLinear) EvalPart(args []*big.Int) (*MVLinear, error) {
	s := len(args)
	if s > m.NumVariables {
		return nil, errs.New(errs.ShapeMismatch, "len(args)=%d > numVariables=%d", s, m.NumVariables)
	}
	newTerms := make(map[int]*big.Int)
	ans := &MVLinear{NumVariables: m.NumVariables - s, Terms: newTerms, P: new(big.Int).Set(m.P), f: m.f}
	for t, v := range m.Terms {
		val := new(big.Int).Set(v)
		tk := t
		for k := 0; k < s; k++ {
			if tk&(1<<uint(k)) != 0 {
				val = m.f.Mul(val, args[k])
				tk &^= 1 << uint(k)
			}
		}
		tShifted := tk >> uint(s)
		ans.addTerm(tShifted, val)
	}
	return ans, nil
}

// CollapseLeft drops the first n variables, which must not actually appear
// in any term (i.e. must be "redundant unused" variables).
func (m *MVLinear) CollapseLeft(n int) (*MVLinear, error) {
	mask := (1 << uint(n)) - 1
	newTerms := make(map[int]*big.Int)
	for t, v := range m.Terms {
		if t&mask != 0 {
			return nil, errs.New(errs.ShapeMismatch, "cannot collapse: variable in mask %#x present in term %#x", mask, t)
		}
		newTerms[t>>uint(n)] = new(big.Int).Set(v)
	}
	return &MVLinear{NumVariables: m.NumVariables - n, Terms: newTerms, P: new(big.Int).Set(m.P), f: m.f}, nil
}

// CollapseRight drops the last n variables (the high-order n bits of the key).
func (m *MVLinear) CollapseRight(n int) (*MVLinear, error) {
	mask := ((1 << uint(n)) - 1) << uint(m.NumVariables-n)
	antiMask := (1 << uint(m.NumVariables-n)) - 1
	newTerms := make(map[int]*big.Int)
	for t, v := range m.Terms {
		if t&mask != 0 {
			return nil, errs.New(errs.ShapeMismatch, "cannot collapse: variable in mask %#x present in term %#x", mask, t)
		}
		newTerms[t&antiMask] = new(big.Int).Set(v)
	}
	return &MVLinear{NumVariables: m.NumVariables - n, Terms: newTerms, P: new(big.Int).Set(m.P), f: m.f}, nil
}

// Equal reports whether m and other denote the same polynomial: m - other
// has no terms.
func (m *MVLinear) Equal(other *MVLinear) (bool, error) {
	diff, err := m.Sub(other)
	if err != nil {
		return false, err
	}
	return len(diff.Terms) == 0, nil
}

package sumcheck

import (
	"math/big"

	"github.com/sumcheck-gkr/core/field"
)

// interpolate evaluates at r the unique degree-len(points)-1 polynomial Q
// such that Q(i) = points[i] for i = 0, ..., len(points)-1, using Lagrange
// interpolation. Grounded on IPPMFVerifier.py's interpolate/modInverse pair,
// generalized here to reuse the field package's cached-free Inv (math/big's
// ModInverse is already the extended Euclidean algorithm, same as the
// reference's hand-rolled modInverse).
func interpolate(f *field.Field, points []*big.Int, r *big.Int) *big.Int {
	n := len(points)
	result := f.Zero()
	for i := 0; i < n; i++ {
		term := new(big.Int).Set(points[i])
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			num := f.Sub(r, big.NewInt(int64(j)))
			den := f.Inv(f.Sub(big.NewInt(int64(i)), big.NewInt(int64(j))))
			term = f.Mul(f.Mul(term, num), den)
		}
		result = f.Add(result, term)
	}
	return result
}

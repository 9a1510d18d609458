package sumcheck

import (
	"math/big"

	"github.com/sumcheck-gkr/core/errs"
	"github.com/sumcheck-gkr/core/field"
	"github.com/sumcheck-gkr/core/pmf"
)

// Prover runs the linear-time dynamic-programming sum-check prover for a
// PMF, grounded on IPPMFProver.py's calculateAllBookKeepingTables/
// attemptProve: one bookkeeping table per multiplicand, each halved in place
// every round after the verifier's challenge arrives.
type Prover struct {
	poly *pmf.PMF
	f    *field.Field
}

// NewProver wraps poly for proving.
func NewProver(poly *pmf.PMF) *Prover {
	return &Prover{poly: poly, f: field.New(poly.P)}
}

func binaryToList(b, numVariables int) []*big.Int {
	lst := make([]*big.Int, numVariables)
	for i := range lst {
		lst[i] = big.NewInt(0)
	}
	i := 0
	for b != 0 {
		lst[i] = big.NewInt(int64(b & 1))
		b >>= 1
		i++
	}
	return lst
}

// BookkeepingTables evaluates every multiplicand of the PMF on the full
// Boolean hypercube, returning one dense table per multiplicand plus their
// combined sum.
func (pr *Prover) BookkeepingTables() ([][]*big.Int, *big.Int, error) {
	n := pr.poly.NumVariables
	size := 1 << uint(n)
	s := make([]*big.Int, size)
	for i := range s {
		s[i] = pr.f.One()
	}
	tables := make([][]*big.Int, pr.poly.NumMultiplicands())
	for j, m := range pr.poly.Multiplicands {
		a := make([]*big.Int, size)
		for b := 0; b < size; b++ {
			a[b] = m.Eval(binaryToList(b, n))
			s[b] = pr.f.Mul(s[b], a[b])
		}
		tables[j] = a
	}
	sum := pr.f.Zero()
	for _, x := range s {
		sum = pr.f.Add(sum, x)
	}
	return tables, sum, nil
}

// Prove drives the full protocol against verifier, feeding it the round
// messages derived from tables (which are consumed destructively) and
// collecting every message sent, in order — the transcript a Fiat-Shamir
// wrapper needs to replay the challenges.
func (pr *Prover) Prove(tables [][]*big.Int, verifier *Verifier) ([][]*big.Int, error) {
	n := pr.poly.NumVariables
	k := pr.poly.NumMultiplicands()
	var transcript [][]*big.Int

	for i := 1; i <= n; i++ {
		productsSum := make([]*big.Int, k+1)
		for t := range productsSum {
			productsSum[t] = pr.f.Zero()
		}
		half := 1 << uint(n-i)
		for b := 0; b < half; b++ {
			for t := 0; t <= k; t++ {
				product := pr.f.One()
				tb := big.NewInt(int64(t))
				oneMinusT := pr.f.Sub(pr.f.One(), tb)
				for j := 0; j < k; j++ {
					a := tables[j]
					val := pr.f.Add(pr.f.Mul(a[b<<1], oneMinusT), pr.f.Mul(a[(b<<1)+1], tb))
					product = pr.f.Mul(product, val)
				}
				productsSum[t] = pr.f.Add(productsSum[t], product)
			}
		}

		ok, r, err := verifier.Talk(productsSum)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errs.New(errs.NotConvinced, "verifier rejected round %d", i)
		}
		transcript = append(transcript, productsSum)

		for j := 0; j < k; j++ {
			a := tables[j]
			for b := 0; b < half; b++ {
				a[b] = pr.f.Add(pr.f.Mul(a[b<<1], pr.f.Sub(pr.f.One(), r)), pr.f.Mul(a[(b<<1)+1], r))
			}
		}
	}
	return transcript, nil
}

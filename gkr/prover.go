package gkr

import (
	"math/big"

	"github.com/sumcheck-gkr/core/errs"
	"github.com/sumcheck-gkr/core/field"
)

// Prover drives both phases of the GKR protocol for a single circuit,
// grounded on GKRProver.py's initialize_PhaseOne/initialize_PhaseTwo and
// _talk_process.
type Prover struct {
	circuit *Circuit
	f       *field.Field
}

// NewProver wraps circuit for proving.
func NewProver(circuit *Circuit) *Prover {
	return &Prover{circuit: circuit, f: field.New(circuit.P)}
}

// InitializePhaseOne builds A_hg, the bookkeeping table of
// h_g(x) = Sum_y f1(g,x,y) * f3(y), by walking f1's sparse entries once and
// scattering each contribution into A_hg[x] weighted by G[z]*f3[y]. It also
// returns G = Precompute(g,p), reused unchanged in phase two.
func (pr *Prover) InitializePhaseOne(g []*big.Int) (aHg, gTable []*big.Int, sum *big.Int) {
	l := pr.circuit.L
	gTable = Precompute(g, pr.circuit.P)
	aHg = make([]*big.Int, 1<<uint(l))
	for i := range aHg {
		aHg[i] = pr.f.Zero()
	}
	for arg, ev := range pr.circuit.F1 {
		z, x, y := ThreeSplit(arg, l)
		contribution := pr.f.Mul(pr.f.Mul(gTable[z], ev), pr.circuit.F3[y])
		aHg[x] = pr.f.Add(aHg[x], contribution)
	}

	sum = pr.f.Zero()
	for i := range aHg {
		sum = pr.f.Add(sum, pr.f.Mul(aHg[i], pr.circuit.F2[i]))
	}
	return aHg, gTable, sum
}

// InitializePhaseTwo builds A_f1, the bookkeeping table of
// f1(g,u,y) = Sum over the sparse f1 entries fixed at x=u, using the
// already-computed G = Precompute(g,p) and a fresh U = Precompute(u,p).
func (pr *Prover) InitializePhaseTwo(gTable []*big.Int, u []*big.Int) []*big.Int {
	l := len(u)
	uTable := Precompute(u, pr.circuit.P)
	aF1 := make([]*big.Int, 1<<uint(l))
	for i := range aF1 {
		aF1[i] = pr.f.Zero()
	}
	for arg, ev := range pr.circuit.F1 {
		z, x, y := ThreeSplit(arg, l)
		contribution := pr.f.Mul(pr.f.Mul(gTable[z], uTable[x]), ev)
		aF1[y] = pr.f.Add(aF1[y], contribution)
	}
	return aF1
}

// talkProcess runs one sum-check phase (two bookkeeping tables, a product
// of two factors) to completion against talker, halving both tables in
// place after every round. Grounded on GKRProver.py's _talk_process.
func (pr *Prover) talkProcess(as [2][]*big.Int, l int, talker func([]*big.Int) (bool, *big.Int, error)) ([][]*big.Int, error) {
	const numMultiplicands = 2
	var messages [][]*big.Int
	for i := 1; i <= l; i++ {
		productSum := make([]*big.Int, numMultiplicands+1)
		for t := range productSum {
			productSum[t] = pr.f.Zero()
		}
		half := 1 << uint(l-i)
		for b := 0; b < half; b++ {
			for t := 0; t <= numMultiplicands; t++ {
				product := pr.f.One()
				tb := big.NewInt(int64(t))
				oneMinusT := pr.f.Sub(pr.f.One(), tb)
				for j := 0; j < numMultiplicands; j++ {
					a := as[j]
					val := pr.f.Add(pr.f.Mul(a[b<<1], oneMinusT), pr.f.Mul(a[(b<<1)+1], tb))
					product = pr.f.Mul(product, val)
				}
				productSum[t] = pr.f.Add(productSum[t], product)
			}
		}

		ok, r, err := talker(productSum)
		if err != nil {
			return messages, err
		}
		messages = append(messages, productSum)
		if !ok {
			return messages, errs.New(errs.NotConvinced, "verifier rejected round %d", i)
		}

		for j := 0; j < numMultiplicands; j++ {
			a := as[j]
			for b := 0; b < half; b++ {
				a[b] = pr.f.Add(pr.f.Mul(a[b<<1], pr.f.Sub(pr.f.One(), r)), pr.f.Mul(a[(b<<1)+1], r))
			}
		}
	}
	return messages, nil
}

// ProvePhase1 runs the phase-1 sum-check (A_hg against f2) against verifier,
// returning f2(u) read off the collapsed f2 table at the end, along with
// every round message sent.
func (pr *Prover) ProvePhase1(aHg []*big.Int, verifier *Verifier) (*big.Int, [][]*big.Int, error) {
	l := pr.circuit.L
	f2Copy := make([]*big.Int, len(pr.circuit.F2))
	copy(f2Copy, pr.circuit.F2)
	as := [2][]*big.Int{aHg, f2Copy}
	messages, err := pr.talkProcess(as, l, verifier.TalkPhase1)
	if err != nil {
		return nil, messages, err
	}
	return as[1][0], messages, nil
}

// ProvePhase2 runs the phase-2 sum-check (A_f1 against f3 scaled by f2(u))
// against verifier, returning every round message sent.
func (pr *Prover) ProvePhase2(aF1 []*big.Int, f2u *big.Int, verifier *Verifier) ([][]*big.Int, error) {
	l := pr.circuit.L
	scaledF3 := make([]*big.Int, len(pr.circuit.F3))
	for i, v := range pr.circuit.F3 {
		scaledF3[i] = pr.f.Mul(v, f2u)
	}
	as := [2][]*big.Int{aF1, scaledF3}
	return pr.talkProcess(as, l, verifier.TalkPhase2)
}

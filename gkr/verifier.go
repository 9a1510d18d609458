package gkr

import (
	"math/big"

	"github.com/sumcheck-gkr/core/errs"
	"github.com/sumcheck-gkr/core/field"
	"github.com/sumcheck-gkr/core/mle"
	"github.com/sumcheck-gkr/core/pmf"
	"github.com/sumcheck-gkr/core/sumcheck"
)

// State is the GKR verifier's phase, mirroring GKRVerifierState in
// GKRVerifier.py.
type State int

const (
	PhaseOneListening State = iota
	PhaseTwoListening
	Accept
	Reject
)

// Verifier drives the two chained sum-checks of a single GKR layer
// reduction. Phase 1 runs an inner sum-check over x on the product
// h_g(x) * f2(x) (h_g folds in f1 and f3 via g); phase 2 runs an inner
// sum-check over y on f1(g,u,y) * (f2(u)*f3(y)). Neither inner verifier
// ever touches the real f1/f2/f3 — they're checksum-only, and the outer
// verdict method performs the three oracle evaluations directly.
type Verifier struct {
	circuit *Circuit
	g       []*big.Int
	l       int

	State State

	phase1 *sumcheck.Verifier
	phase2 *sumcheck.Verifier

	phase2Src func() sumcheck.ChallengeSource
	epsilon   float64
}

// NewVerifier constructs a GKR verifier for circuit, claiming that
// Sum_{x,y} f1(g,x,y)*f2(x)*f3(y) = assertedSum.
//
// src1 supplies the phase-1 inner sum-check's challenges; phase2SrcFactory
// builds the phase-2 inner sum-check's source once phase 1 convinces (it is
// a factory, not a value, because an interactive verifier wants a fresh
// random source per phase while a Fiat-Shamir verifier wants the same
// transcript carried across both).
func NewVerifier(circuit *Circuit, g []*big.Int, assertedSum *big.Int, src1 sumcheck.ChallengeSource, phase2SrcFactory func() sumcheck.ChallengeSource, epsilon float64) (*Verifier, error) {
	if len(g) != circuit.L {
		return nil, errs.New(errs.ShapeMismatch, "g has length %d, want %d", len(g), circuit.L)
	}
	l := circuit.L
	// Both factors of the phase-1 product (h_g and f2) range over the same
	// L variables of x; giving them matching variable counts here keeps
	// the inner sum-check's round count at L, lining up with the prover's
	// talkProcess (which folds the bookkeeping tables L times, once per
	// variable of x).
	dummyPoly := pmf.NewDummy(l, 2, circuit.P)

	phase1, err := sumcheck.NewVerifier(src1, dummyPoly, assertedSum, epsilon, true)
	if err != nil {
		return nil, err
	}

	return &Verifier{
		circuit: circuit, g: g, l: l,
		State: PhaseOneListening, phase1: phase1, phase2Src: phase2SrcFactory, epsilon: epsilon,
	}, nil
}

// TalkPhase1 feeds the verifier one round message of the phase-1 inner
// sum-check.
func (v *Verifier) TalkPhase1(msgs []*big.Int) (bool, *big.Int, error) {
	if v.State != PhaseOneListening {
		return false, nil, errs.New(errs.WrongPhase, "verifier is not in phase 1")
	}
	_, r, err := v.phase1.Talk(msgs)
	if err != nil {
		return false, nil, err
	}
	if v.phase1.Convinced {
		_, subSum, err := v.phase1.SubClaim()
		if err != nil {
			return false, nil, err
		}
		l := v.l
		dummyPoly := pmf.NewDummy(l, 2, v.circuit.P)
		phase2, verr := sumcheck.NewVerifier(v.phase2Src(), dummyPoly, subSum, v.epsilon, true)
		if verr != nil {
			return false, nil, verr
		}
		v.phase2 = phase2
		v.State = PhaseTwoListening
		return true, r, nil
	}
	if !v.phase1.Active && !v.phase1.Convinced {
		v.State = Reject
		return false, r, nil
	}
	return true, r, nil
}

// TalkPhase2 feeds the verifier one round message of the phase-2 inner
// sum-check. Once phase 2 convinces, the verifier computes its verdict via
// the three oracle queries.
func (v *Verifier) TalkPhase2(msgs []*big.Int) (bool, *big.Int, error) {
	if v.State != PhaseTwoListening {
		return false, nil, errs.New(errs.WrongPhase, "verifier is not in phase 2")
	}
	_, r, err := v.phase2.Talk(msgs)
	if err != nil {
		return false, nil, err
	}
	if v.phase2.Convinced {
		verdict, err := v.verdict()
		if err != nil {
			return false, nil, err
		}
		return verdict, r, nil
	}
	if !v.phase2.Active && !v.phase2.Convinced {
		v.State = Reject
		return false, r, nil
	}
	return true, r, nil
}

// verdict checks the phase-2 sub-claim against the real f1, f2, f3 via
// exactly three oracle evaluations: one sparse evaluation of f1 at
// g||u||v, and one dense evaluation each of f2 at u and f3 at v.
func (v *Verifier) verdict() (bool, error) {
	if v.State != PhaseTwoListening {
		return false, errs.New(errs.WrongPhase, "verifier is not in phase 2")
	}
	if !v.phase2.Convinced {
		return false, errs.New(errs.NotConvinced, "phase 2 verifier has not convinced")
	}
	u, _, err := v.phase1.SubClaim()
	if err != nil {
		return false, err
	}
	y, expected, err := v.phase2.SubClaim()
	if err != nil {
		return false, err
	}

	l := v.l
	arg := make([]*big.Int, 0, 3*l)
	arg = append(arg, v.g...)
	arg = append(arg, u...)
	arg = append(arg, y...)

	m1, err := mle.EvaluateSparse(v.circuit.F1, arg, v.circuit.P)
	if err != nil {
		return false, err
	}
	f2u, err := mle.Evaluate(append([]*big.Int{}, v.circuit.F2...), u, v.circuit.P)
	if err != nil {
		return false, err
	}
	f3y, err := mle.Evaluate(append([]*big.Int{}, v.circuit.F3...), y, v.circuit.P)
	if err != nil {
		return false, err
	}

	f := field.New(v.circuit.P)
	m2 := f.Mul(f3y, f2u)
	want := f.Mul(m1, m2)

	if !f.Equal(expected, want) {
		v.State = Reject
		return false, nil
	}
	v.State = Accept
	return true, nil
}

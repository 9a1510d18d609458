package gkr

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/sumcheck-gkr/core/errs"
	"github.com/sumcheck-gkr/core/sumcheck"
	"github.com/sumcheck-gkr/core/transcript"
)

// Theorem is the non-interactive GKR statement: Sum_{x,y}
// f1(g,x,y)*f2(x)*f3(y) = AssertedSum. Grounded on FSGKR.py's Theorem.
type Theorem struct {
	Circuit     *Circuit
	G           []*big.Int
	AssertedSum *big.Int
	Epsilon     float64
}

func (t Theorem) epsilon() float64 {
	if t.Epsilon == 0 {
		return sumcheck.DefaultMaxSoundnessError
	}
	return t.Epsilon
}

// Proof carries both phases' round messages, in order. Grounded on
// FSGKR.py's Proof.
type Proof struct {
	Phase1Messages [][]*big.Int
	Phase2Messages [][]*big.Int
}

// circuitDigest hashes the circuit's shape and contents once, up front,
// standing in for getGKRHash's pickle.dumps(gkr) in FSGKR.py.
func circuitDigest(thm Theorem) []byte {
	var buf []byte
	buf = append(buf, []byte(fmt.Sprintf("gkr|L=%d|p=%s|g=%v|sum=%s|f2=%v|f3=%v|",
		thm.Circuit.L, thm.Circuit.P.String(), thm.G, thm.AssertedSum.String(), thm.Circuit.F2, thm.Circuit.F3))...)
	keys := make([]int, 0, len(thm.Circuit.F1))
	for k := range thm.Circuit.F1 {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		buf = append(buf, []byte(fmt.Sprintf("%d:%s,", k, thm.Circuit.F1[k].String()))...)
	}
	return transcript.StatementDigest(buf)
}

// transcriptSource is a Fiat-Shamir ChallengeSource backed by a single
// transcript spanning both GKR phases, matching FSGKR.py's PseudoRandomGen
// (one hash chain across phase1Msg and phase2Msg).
type transcriptSource struct {
	tr *transcript.Transcript
}

func (s *transcriptSource) Challenge(msg []*big.Int) *big.Int {
	s.tr.Append(msg)
	return s.tr.Challenge()
}

// GenerateProof runs the honest prover against a Fiat-Shamir verifier built
// from thm, returning the resulting two-phase proof.
func GenerateProof(thm Theorem) (*Proof, error) {
	tr := transcript.New(thm.Circuit.P, circuitDigest(thm))
	src := &transcriptSource{tr: tr}

	verifier, err := NewVerifier(thm.Circuit, thm.G, thm.AssertedSum, src, func() sumcheck.ChallengeSource { return src }, thm.epsilon())
	if err != nil {
		return nil, err
	}

	prover := NewProver(thm.Circuit)
	aHg, gTable, _ := prover.InitializePhaseOne(thm.G)

	f2u, phase1Msgs, err := prover.ProvePhase1(aHg, verifier)
	if err != nil {
		return nil, err
	}
	if verifier.State != PhaseTwoListening {
		return nil, errs.New(errs.NotConvinced, "phase 1 did not convince; theorem may be false")
	}

	u, _, err := verifier.phase1.SubClaim()
	if err != nil {
		return nil, err
	}
	aF1 := prover.InitializePhaseTwo(gTable, u)

	phase2Msgs, err := prover.ProvePhase2(aF1, f2u, verifier)
	if err != nil {
		return nil, err
	}
	if verifier.State != Accept {
		return nil, errs.New(errs.NotConvinced, "phase 2 did not convince; theorem may be false")
	}

	return &Proof{Phase1Messages: phase1Msgs, Phase2Messages: phase2Msgs}, nil
}

// VerifyProof replays proof against thm using an independent Fiat-Shamir
// transcript; it returns true only if the verifier reaches Accept.
func VerifyProof(thm Theorem, proof *Proof) (bool, error) {
	tr := transcript.New(thm.Circuit.P, circuitDigest(thm))
	src := &transcriptSource{tr: tr}

	verifier, err := NewVerifier(thm.Circuit, thm.G, thm.AssertedSum, src, func() sumcheck.ChallengeSource { return src }, thm.epsilon())
	if err != nil {
		return false, err
	}

	for _, msg := range proof.Phase1Messages {
		ok, _, err := verifier.TalkPhase1(msg)
		if err != nil {
			return false, err
		}
		if !ok && verifier.State == Reject {
			return false, nil
		}
	}
	if verifier.State != PhaseTwoListening {
		return false, nil
	}
	for _, msg := range proof.Phase2Messages {
		ok, _, err := verifier.TalkPhase2(msg)
		if err != nil {
			return false, err
		}
		if !ok && verifier.State == Reject {
			return false, nil
		}
	}
	return verifier.State == Accept, nil
}

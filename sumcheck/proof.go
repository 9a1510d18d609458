package sumcheck

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/sumcheck-gkr/core/pmf"
	"github.com/sumcheck-gkr/core/transcript"
)

// Theorem is the non-interactive statement: poly sums to AssertedSum over
// {0,1}^poly.NumVariables. Grounded on FSPMFVerifier.py's Theorem. Epsilon
// overrides DefaultMaxSoundnessError when non-zero; small test fields need
// a looser bound than production-size primes.
type Theorem struct {
	Poly        *pmf.PMF
	AssertedSum *big.Int
	Epsilon     float64
}

func (t Theorem) epsilon() float64 {
	if t.Epsilon == 0 {
		return DefaultMaxSoundnessError
	}
	return t.Epsilon
}

// Proof is the list of round messages the prover sent, in order. Grounded
// on FSPMFVerifier.py's Proof.
type Proof struct {
	Messages [][]*big.Int
}

// digest derives a deterministic statement digest from a theorem's shape
// and coefficients, standing in for pickle.dumps(poly) in the reference —
// any injective encoding of the polynomial's terms works, since the digest
// only needs to bind the transcript to this specific statement.
func digest(thm Theorem) []byte {
	var buf []byte
	buf = append(buf, []byte(fmt.Sprintf("sumcheck|vars=%d|mul=%d|p=%s|sum=%s|",
		thm.Poly.NumVariables, thm.Poly.NumMultiplicands(), thm.Poly.P.String(), thm.AssertedSum.String()))...)
	for _, m := range thm.Poly.Multiplicands {
		keys := make([]int, 0, len(m.Terms))
		for k := range m.Terms {
			keys = append(keys, k)
		}
		sort.Ints(keys)
		for _, k := range keys {
			buf = append(buf, []byte(fmt.Sprintf("%d:%s,", k, m.Terms[k].String()))...)
		}
		buf = append(buf, '|')
	}
	return transcript.StatementDigest(buf)
}

// recordingSource adapts a *transcript.Transcript to ChallengeSource: every
// round message is appended to the transcript before the next challenge is
// derived from it, matching FSPMFVerifier.py's PseudoRandomGen (record
// message, then hash).
type recordingSource struct {
	tr *transcript.Transcript
}

func (s *recordingSource) Challenge(msg []*big.Int) *big.Int {
	s.tr.Append(msg)
	return s.tr.Challenge()
}

// GenerateProof runs the honest prover against a Fiat-Shamir verifier built
// from thm, returning the resulting proof.
func GenerateProof(thm Theorem) (*Proof, error) {
	tr := transcript.New(thm.Poly.P, digest(thm))
	src := &recordingSource{tr: tr}

	verifier, err := NewVerifier(src, thm.Poly, thm.AssertedSum, thm.epsilon(), false)
	if err != nil {
		return nil, err
	}
	if !verifier.Active {
		return &Proof{}, nil
	}

	prover := NewProver(thm.Poly)
	tables, _, err := prover.BookkeepingTables()
	if err != nil {
		return nil, err
	}
	messages, err := prover.Prove(tables, verifier)
	if err != nil {
		return nil, err
	}
	return &Proof{Messages: messages}, nil
}

// VerifyProof replays proof against thm using an independent Fiat-Shamir
// transcript; it returns true only if every round is consistent and the
// final round's implied evaluation matches thm.Poly.
func VerifyProof(thm Theorem, proof *Proof) (bool, error) {
	tr := transcript.New(thm.Poly.P, digest(thm))
	src := &recordingSource{tr: tr}

	verifier, err := NewVerifier(src, thm.Poly, thm.AssertedSum, thm.epsilon(), false)
	if err != nil {
		return false, err
	}
	if !verifier.Active {
		return verifier.Convinced, nil
	}
	for _, msg := range proof.Messages {
		ok, _, err := verifier.Talk(msg)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return verifier.Convinced, nil
}

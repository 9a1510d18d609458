package gkr

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sumcheck-gkr/core/sumcheck"
)

var p17 = big.NewInt(17)

func bi(x int64) *big.Int { return big.NewInt(x) }

// buildCircuit wires a two-bit (L=2) layer where f1 gates z=x=y (a diagonal
// wiring predicate), so that d(z) = f2(z)*f3(z) for each of the 4 gates.
func buildCircuit(t *testing.T) *Circuit {
	f1 := map[int]*big.Int{
		0:  bi(1), // z=0,x=0,y=0
		21: bi(1), // z=1,x=1,y=1 (1 | 1<<2 | 1<<4 = 1+4+16=21)
		42: bi(1), // z=2,x=2,y=2 (2 | 2<<2 | 2<<4 = 2+8+32=42)
		63: bi(1), // z=3,x=3,y=3 (3 | 3<<2 | 3<<4 = 3+12+48=63)
	}
	f2 := []*big.Int{bi(2), bi(3), bi(5), bi(7)}
	f3 := []*big.Int{bi(1), bi(1), bi(1), bi(1)}
	c, err := NewCircuit(f1, f2, f3, p17, 2)
	require.NoError(t, err)
	return c
}

func TestInteractiveGKRCompletenessAtBooleanG(t *testing.T) {
	circuit := buildCircuit(t)
	g := []*big.Int{bi(0), bi(0)}

	prover := NewProver(circuit)
	aHg, gTable, sum := prover.InitializePhaseOne(g)
	require.Equal(t, int64(2), sum.Int64()) // at g=(0,0), only z=0 contributes: f2(0)*f3(0) = 2

	src1 := sumcheck.NewRandomSource(p17)
	verifier, err := NewVerifier(circuit, g, sum, src1, func() sumcheck.ChallengeSource { return sumcheck.NewRandomSource(p17) }, 1.0)
	require.NoError(t, err)

	f2u, _, err := prover.ProvePhase1(aHg, verifier)
	require.NoError(t, err)
	require.Equal(t, PhaseTwoListening, verifier.State)

	u, _, err := verifier.phase1.SubClaim()
	require.NoError(t, err)
	aF1 := prover.InitializePhaseTwo(gTable, u)

	_, err = prover.ProvePhase2(aF1, f2u, verifier)
	require.NoError(t, err)
	require.Equal(t, Accept, verifier.State)
}

// buildCircuitL1 wires a single-bit (L=1) layer, diagonal as buildCircuit
// is, to exercise NewVerifier's checksumOnly path at poly.NumVariables==1
// (the dummy phase PMFs here have exactly one variable).
func buildCircuitL1(t *testing.T) *Circuit {
	f1 := map[int]*big.Int{
		0: bi(1), // z=0,x=0,y=0
		7: bi(1), // z=1,x=1,y=1 (1 | 1<<1 | 1<<2 = 1+2+4=7)
	}
	f2 := []*big.Int{bi(2), bi(3)}
	f3 := []*big.Int{bi(5), bi(7)}
	c, err := NewCircuit(f1, f2, f3, p17, 1)
	require.NoError(t, err)
	return c
}

func TestInteractiveGKRCompletenessAtL1(t *testing.T) {
	circuit := buildCircuitL1(t)
	g := []*big.Int{bi(0)}

	prover := NewProver(circuit)
	aHg, gTable, sum := prover.InitializePhaseOne(g)
	require.Equal(t, int64(10), sum.Int64()) // at g=0, only z=0 contributes: f2(0)*f3(0) = 10

	src1 := sumcheck.NewRandomSource(p17)
	verifier, err := NewVerifier(circuit, g, sum, src1, func() sumcheck.ChallengeSource { return sumcheck.NewRandomSource(p17) }, 1.0)
	require.NoError(t, err)

	f2u, _, err := prover.ProvePhase1(aHg, verifier)
	require.NoError(t, err)
	require.Equal(t, PhaseTwoListening, verifier.State)

	u, _, err := verifier.phase1.SubClaim()
	require.NoError(t, err)
	aF1 := prover.InitializePhaseTwo(gTable, u)

	_, err = prover.ProvePhase2(aF1, f2u, verifier)
	require.NoError(t, err)
	require.Equal(t, Accept, verifier.State)
}

func TestFiatShamirGKRRoundTripAtL1(t *testing.T) {
	circuit := buildCircuitL1(t)
	g := []*big.Int{bi(0)}
	sum := bi(10)

	thm := Theorem{Circuit: circuit, G: g, AssertedSum: sum, Epsilon: 1.0}
	proof, err := GenerateProof(thm)
	require.NoError(t, err)

	ok, err := VerifyProof(thm, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFiatShamirGKRRoundTrip(t *testing.T) {
	circuit := buildCircuit(t)
	g := []*big.Int{bi(0), bi(0)}
	sum := bi(2)

	thm := Theorem{Circuit: circuit, G: g, AssertedSum: sum, Epsilon: 1.0}
	proof, err := GenerateProof(thm)
	require.NoError(t, err)

	ok, err := VerifyProof(thm, proof)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFiatShamirGKRRejectsForgedSum(t *testing.T) {
	circuit := buildCircuit(t)
	g := []*big.Int{bi(0), bi(0)}

	thm := Theorem{Circuit: circuit, G: g, AssertedSum: bi(9), Epsilon: 1.0} // wrong sum
	_, err := GenerateProof(thm)
	require.Error(t, err)
}

func TestFiatShamirGKRRejectsTamperedProof(t *testing.T) {
	circuit := buildCircuit(t)
	g := []*big.Int{bi(0), bi(0)}
	sum := bi(2)

	thm := Theorem{Circuit: circuit, G: g, AssertedSum: sum, Epsilon: 1.0}
	proof, err := GenerateProof(thm)
	require.NoError(t, err)
	require.NotEmpty(t, proof.Phase2Messages)
	proof.Phase2Messages[len(proof.Phase2Messages)-1][0] = bi(proof.Phase2Messages[len(proof.Phase2Messages)-1][0].Int64() + 1)

	ok, err := VerifyProof(thm, proof)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestNewCircuitRejectsOutOfRangeF1Term(t *testing.T) {
	f1 := map[int]*big.Int{8: bi(1)} // 3*L=3 bits -> max key 7
	f2 := []*big.Int{bi(1), bi(1)}
	f3 := []*big.Int{bi(1), bi(1)}
	_, err := NewCircuit(f1, f2, f3, p17, 1)
	require.Error(t, err)
}

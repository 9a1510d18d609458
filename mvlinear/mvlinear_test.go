package mvlinear

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var p17 = big.NewInt(17)

func bi(x int64) *big.Int { return big.NewInt(x) }

func TestNewDropsZeroCoefficients(t *testing.T) {
	m, err := New(2, map[int]*big.Int{0: bi(0), 1: bi(5), 3: bi(17)}, p17)
	require.NoError(t, err)
	require.Len(t, m.Terms, 1)
	require.Equal(t, bi(5), m.Coeff(1))
	require.Equal(t, bi(0), m.Coeff(3))
}

func TestNewTermOutOfRange(t *testing.T) {
	_, err := New(2, map[int]*big.Int{4: bi(1)}, p17)
	require.Error(t, err)
}

func TestEvalConstant(t *testing.T) {
	m, err := New(2, map[int]*big.Int{0: bi(7)}, p17)
	require.NoError(t, err)
	require.Equal(t, bi(7), m.Eval([]*big.Int{bi(3), bi(5)}))
}

// 2 + 3*x0 + 5*x1 - 2*x0*x1, at x0=1, x1=1 -> 2+3+5-2 = 8
func TestEvalLinearCombination(t *testing.T) {
	m, err := New(2, map[int]*big.Int{0: bi(2), 1: bi(3), 2: bi(5), 3: bi(-2)}, p17)
	require.NoError(t, err)
	got := m.Eval([]*big.Int{bi(1), bi(1)})
	require.Equal(t, int64(8)%17, got.Int64())
}

func TestEvalBinMatchesEval(t *testing.T) {
	m, err := New(3, map[int]*big.Int{0: bi(1), 1: bi(2), 2: bi(3), 4: bi(4), 7: bi(5)}, p17)
	require.NoError(t, err)
	for at := 0; at < 8; at++ {
		args := make([]*big.Int, 3)
		for i := 0; i < 3; i++ {
			args[i] = bi(int64((at >> i) & 1))
		}
		require.Equal(t, m.Eval(args), m.EvalBin(at))
	}
}

func TestMulNonMultilinearFails(t *testing.T) {
	a, err := New(1, map[int]*big.Int{1: bi(1)}, p17)
	require.NoError(t, err)
	b, err := New(1, map[int]*big.Int{1: bi(1)}, p17)
	require.NoError(t, err)
	_, err = a.Mul(b)
	require.Error(t, err)
}

func TestMulDistinctVariables(t *testing.T) {
	a, err := New(2, map[int]*big.Int{1: bi(2)}, p17) // 2*x0
	require.NoError(t, err)
	b, err := New(2, map[int]*big.Int{2: bi(3)}, p17) // 3*x1
	require.NoError(t, err)
	prod, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, bi(6), prod.Coeff(3))
}

func TestEvalPartThenEvalMatchesDirectEval(t *testing.T) {
	m, err := New(3, map[int]*big.Int{0: bi(1), 1: bi(2), 2: bi(3), 4: bi(4), 6: bi(5), 7: bi(6)}, p17)
	require.NoError(t, err)
	args := []*big.Int{bi(2), bi(4)}
	partial, err := m.EvalPart(args)
	require.NoError(t, err)
	got := partial.Eval([]*big.Int{bi(1)})
	want := m.Eval([]*big.Int{bi(2), bi(4), bi(1)})
	require.Equal(t, want, got)
}

func TestCollapseLeftRoundTrips(t *testing.T) {
	m, err := New(3, map[int]*big.Int{4: bi(2), 0: bi(1)}, p17) // no x0, x1 appear
	require.NoError(t, err)
	c, err := m.CollapseLeft(2)
	require.NoError(t, err)
	require.Equal(t, 1, c.NumVariables)
	require.Equal(t, bi(2), c.Coeff(1))
}

func TestCollapseLeftFailsWhenVariablePresent(t *testing.T) {
	m, err := New(2, map[int]*big.Int{1: bi(1)}, p17)
	require.NoError(t, err)
	_, err = m.CollapseLeft(1)
	require.Error(t, err)
}

func TestEqual(t *testing.T) {
	a, err := New(2, map[int]*big.Int{1: bi(3), 2: bi(5)}, p17)
	require.NoError(t, err)
	b, err := New(2, map[int]*big.Int{1: bi(3), 2: bi(5)}, p17)
	require.NoError(t, err)
	eq, err := a.Equal(b)
	require.NoError(t, err)
	require.True(t, eq)

	c, err := New(2, map[int]*big.Int{1: bi(4), 2: bi(5)}, p17)
	require.NoError(t, err)
	eq, err = a.Equal(c)
	require.NoError(t, err)
	require.False(t, eq)
}

func TestFieldMismatch(t *testing.T) {
	a, err := New(1, map[int]*big.Int{1: bi(1)}, p17)
	require.NoError(t, err)
	b, err := New(1, map[int]*big.Int{1: bi(1)}, big.NewInt(19))
	require.NoError(t, err)
	_, err = a.Add(b)
	require.Error(t, err)
}

package mle

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var p17 = big.NewInt(17)

func bi(x int64) *big.Int { return big.NewInt(x) }

func TestEvaluateOnHypercubeMatchesData(t *testing.T) {
	data := []*big.Int{bi(3), bi(5), bi(9), bi(2)} // L=2
	for b := 0; b < 4; b++ {
		args := []*big.Int{bi(int64((b >> 0) & 1)), bi(int64((b >> 1) & 1))}
		got, err := Evaluate(append([]*big.Int{}, data...), args, p17)
		require.NoError(t, err)
		require.Equal(t, data[b].Int64()%17, got.Int64())
	}
}

func TestExtendMatchesDataOnHypercube(t *testing.T) {
	data := []*big.Int{bi(3), bi(5), bi(9), bi(2)}
	poly, err := Extend(data, 2, p17)
	require.NoError(t, err)
	for b := 0; b < 4; b++ {
		require.Equal(t, data[b].Int64()%17, poly.EvalBin(b).Int64())
	}
}

func TestExtendMatchesEvaluateOffHypercube(t *testing.T) {
	data := []*big.Int{bi(3), bi(5), bi(9), bi(2)}
	poly, err := Extend(data, 2, p17)
	require.NoError(t, err)
	args := []*big.Int{bi(6), bi(11)}
	want := poly.Eval(args)
	got, err := Evaluate(append([]*big.Int{}, data...), args, p17)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestEvaluateSparseMatchesDenseEvaluate(t *testing.T) {
	sparse := map[int]*big.Int{1: bi(4), 3: bi(6)}
	dense := []*big.Int{bi(0), bi(4), bi(0), bi(6)}
	args := []*big.Int{bi(5), bi(9)}
	wantDense, err := Evaluate(dense, args, p17)
	require.NoError(t, err)
	gotSparse, err := EvaluateSparse(sparse, args, p17)
	require.NoError(t, err)
	require.Equal(t, wantDense, gotSparse)
}

func TestExtendSparseEmptyIsZero(t *testing.T) {
	poly, err := ExtendSparse(map[int]*big.Int{}, 3, p17)
	require.NoError(t, err)
	require.Len(t, poly.Terms, 0)
}

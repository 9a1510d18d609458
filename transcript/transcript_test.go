package transcript

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

var p17 = big.NewInt(17)

func TestChallengeIsInField(t *testing.T) {
	tr := New(p17, StatementDigest([]byte("statement")))
	tr.Append([]*big.Int{big.NewInt(3), big.NewInt(5)})
	c := tr.Challenge()
	require.True(t, c.Sign() >= 0)
	require.True(t, c.Cmp(p17) < 0)
}

func TestChallengeIsDeterministic(t *testing.T) {
	digest := StatementDigest([]byte("statement"))
	tr1 := New(p17, digest)
	tr1.Append([]*big.Int{big.NewInt(3)})
	c1 := tr1.Challenge()

	tr2 := New(p17, digest)
	tr2.Append([]*big.Int{big.NewInt(3)})
	c2 := tr2.Challenge()

	require.Equal(t, c1, c2)
}

func TestDifferentMessagesYieldDifferentChallengesUsually(t *testing.T) {
	digest := StatementDigest([]byte("statement"))
	tr1 := New(p17, digest)
	tr1.Append([]*big.Int{big.NewInt(3)})
	c1 := tr1.Challenge()

	tr2 := New(p17, digest)
	tr2.Append([]*big.Int{big.NewInt(4)})
	c2 := tr2.Challenge()

	require.NotEqual(t, c1, c2)
}

func TestStatementDigestLength(t *testing.T) {
	d := StatementDigest([]byte("abc"))
	require.Len(t, d, 64)
}

// Package transcript turns the interactive sum-check and GKR verifiers into
// non-interactive ones via Fiat-Shamir: every verifier challenge is replaced
// by a hash of the statement being proven and every prover message sent so
// far, keeping the prover and verifier in lock-step without a live channel
// between them.
package transcript

import (
	"math/big"

	"golang.org/x/crypto/blake2b"
)

// Transcript accumulates prover messages and derives field challenges from
// them, following FSPMFVerifier.py/FSGKR.py's randomElement: a keyed,
// variable-digest-size blake2b hash seeded with a statement digest, with
// each field element in a message separated by a 'N' byte and each message
// terminated by an 'X' byte, and out-of-range digests resampled by
// appending a 0xFF byte and rehashing (rejection sampling).
type Transcript struct {
	p          *big.Int
	byteLength int
	state      []byte
}

// New seeds a transcript for modulus p with an initial statement digest
// (e.g. a hash of the theorem being proven). digest may be nil for an
// unseeded transcript.
func New(p *big.Int, digest []byte) *Transcript {
	byteLength := (p.BitLen() + 7) / 8
	t := &Transcript{p: new(big.Int).Set(p), byteLength: byteLength}
	t.state = append(t.state, digest...)
	return t
}

// StatementDigest hashes an arbitrary serialized statement to a fixed
// 64-byte digest, matching FSGKR.py's getGKRHash (blake2b digest_size=64).
func StatementDigest(serialized []byte) []byte {
	h, err := blake2b.New(64, nil)
	if err != nil {
		panic(err)
	}
	h.Write(serialized)
	return h.Sum(nil)
}

// Append records one prover message (a slice of field elements) into the
// transcript, little-endian fixed-width encoded and 'N'-separated, ending
// with an 'X' terminator.
func (t *Transcript) Append(msg []*big.Int) {
	for _, point := range msg {
		t.state = append(t.state, 'N')
		t.state = append(t.state, leBytes(point, t.byteLength)...)
	}
	t.state = append(t.state, 'X')
}

// Challenge derives the next field challenge from everything recorded so
// far, without mutating the recorded message history (only the internal
// resampling retries see the 0xFF suffix).
func (t *Transcript) Challenge() *big.Int {
	h, err := blake2b.New(t.byteLength, nil)
	if err != nil {
		panic(err)
	}
	h.Write(t.state)
	digest := h.Sum(nil)
	result := leToInt(digest)
	for result.Cmp(t.p) >= 0 {
		h.Write([]byte{0xFF})
		digest = h.Sum(nil)
		result = leToInt(digest)
	}
	return result
}

func leBytes(x *big.Int, length int) []byte {
	b := x.Bytes() // big-endian
	out := make([]byte, length)
	for i := 0; i < len(b) && i < length; i++ {
		out[i] = b[len(b)-1-i]
	}
	return out
}

func leToInt(b []byte) *big.Int {
	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-1-i] = v
	}
	return new(big.Int).SetBytes(be)
}

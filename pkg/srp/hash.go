package srp

import (
	"crypto/subtle"
	"math/big"
)

// Hash returns H(data) using a fresh state of digest d.
func Hash(d Digest, data ...[]byte) []byte {
	h := d.New()
	for _, b := range data {
		_, _ = h.Write(b)
	}
	return h.Sum(nil)
}

// HashInt returns H(n) over the minimal unsigned big-endian encoding of n.
func HashInt(d Digest, n *big.Int) []byte {
	return Hash(d, bytesOf(n))
}

// HashNg returns H(N) XOR H(g), binding a proof to the negotiated parameter set.
//
//nolint:gocritic // N is capitalized per RFC 5054 SRP-6a specification
func HashNg(d Digest, N, g *big.Int) []byte {
	hashN := HashInt(d, N)
	hashG := HashInt(d, g)

	out := make([]byte, len(hashN))
	for i := range out {
		out[i] = hashN[i] ^ hashG[i]
	}
	return out
}

// ComputeM1 computes the client proof M1 = H(H(N) XOR H(g) | H(I) | s | A | B | K).
// Field order is fixed; any other order does not interoperate.
//
//nolint:gocritic // N, A, B, K are capitalized per RFC 5054 SRP-6a specification
func ComputeM1(d Digest, N, g *big.Int, identity, salt []byte, A, B *big.Int, K []byte) []byte {
	return Hash(d,
		HashNg(d, N, g),
		Hash(d, identity),
		salt,
		bytesOf(A),
		bytesOf(B),
		K,
	)
}

// ComputeM2 computes the server proof M2 = H(A | M1 | K).
//
//nolint:gocritic // A, M1, K are capitalized per RFC 5054 SRP-6a specification
func ComputeM2(d Digest, A *big.Int, M1, K []byte) []byte {
	return Hash(d, bytesOf(A), M1, K)
}

// sessionKey derives K = H(S).
//
//nolint:gocritic // S is capitalized per RFC 5054 SRP-6a specification
func sessionKey(d Digest, S *big.Int) []byte {
	return HashInt(d, S)
}

// proofsEqual compares two proofs without short-circuiting on the first differing byte.
func proofsEqual(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// bytesOf encodes x as unsigned big-endian bytes without a sign byte.
// Zero encodes as a single zero byte.
func bytesOf(x *big.Int) []byte {
	if x.Sign() == 0 {
		return []byte{0}
	}
	return x.Bytes()
}

// pad encodes x as unsigned big-endian bytes left-padded with zeros to n bytes.
func pad(x *big.Int, n int) []byte {
	b := x.Bytes()
	if len(b) >= n {
		return b
	}
	p := make([]byte, n)
	copy(p[n-len(b):], b)
	return p
}

package srp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// DefaultSaltLength is the salt size in bytes used by GenerateSalt callers that have no preference.
const DefaultSaltLength = 32

// ComputeX derives the private key x = H(salt | H(identity | ":" | password)).
func ComputeX(d Digest, salt, identity, password []byte) *big.Int {
	inner := Hash(d, identity, []byte(":"), password)
	return new(big.Int).SetBytes(Hash(d, salt, inner))
}

// ComputeVerifier computes the password verifier v = g^x mod N that the server stores
// in place of the password.
func ComputeVerifier(group *Group, d Digest, salt, identity, password []byte) *big.Int {
	x := ComputeX(d, salt, identity, password)
	return new(big.Int).Exp(group.G, x, group.N)
}

// GenerateSalt reads n random bytes from r, or from crypto/rand when r is nil.
func GenerateSalt(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("salt length must be positive, got %d", n)
	}
	if r == nil {
		r = rand.Reader
	}

	salt := make([]byte, n)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("failed to generate random salt: %w", err)
	}
	return salt, nil
}

package protocol

import (
	"fmt"
	"math/big"
)

// The handshake takes two round trips:
//
//	client -> server: InitRequest{identity}
//	server -> client: InitResponse{handshake_id, salt, B}
//	client -> server: VerifyRequest{handshake_id, A, M1}
//	server -> client: VerifyResponse{M2}
//
// Byte fields are base64-encoded in JSON. Public values are unsigned big-endian.

// InitRequest starts an SRP-6a handshake.
type InitRequest struct {
	Identity string `json:"identity"`
}

// InitResponse carries the salt and the server public value.
type InitResponse struct {
	HandshakeID string `json:"handshake_id"`
	Salt        []byte `json:"salt"`
	B           []byte `json:"B"`
}

// VerifyRequest carries the client public value and proof for a pending handshake.
type VerifyRequest struct {
	HandshakeID string `json:"handshake_id"`
	A           []byte `json:"A"`
	M1          []byte `json:"M1"`
}

// VerifyResponse carries the server proof after a successful client proof.
type VerifyResponse struct {
	M2 []byte `json:"M2"`
}

// Validate checks that all required fields are present.
func (r *InitRequest) Validate() error {
	if r.Identity == "" {
		return NewInvalidRequestError("missing field: identity")
	}
	return nil
}

// PublicValue decodes B.
func (r *InitResponse) PublicValue() *big.Int {
	return new(big.Int).SetBytes(r.B)
}

// Validate checks that all required fields are present and the proof has the expected size.
func (r *VerifyRequest) Validate(proofSize int) error {
	if r.HandshakeID == "" {
		return NewInvalidRequestError("missing field: handshake_id")
	}
	if len(r.A) == 0 {
		return NewInvalidRequestError("missing field: A")
	}
	if len(r.M1) != proofSize {
		return NewInvalidRequestError(fmt.Sprintf("M1 must be %d bytes, got %d", proofSize, len(r.M1)))
	}
	return nil
}

// PublicValue decodes A.
//
//nolint:gocritic // A is capitalized per RFC 5054 SRP-6a specification
func (r *VerifyRequest) PublicValue() *big.Int {
	return new(big.Int).SetBytes(r.A)
}

package srp

import (
	"fmt"
	"math/big"
)

// Server is the server side of an SRP-6a session.
// The server holds the password verifier for one identity and never learns the password.
type Server struct {
	agreement ServerAgreement
	state     State

	identity []byte
	salt     []byte
	key      []byte // K
}

// NewServer creates a server session bound to the stored verifier, identity and salt,
// using the built-in key agreement.
func NewServer(group *Group, digest Digest, verifier *big.Int, identity, salt []byte, opts ...*Options) *Server {
	return NewServerWithAgreement(NewServerExchange(group, digest, verifier, opts...), identity, salt)
}

// NewServerWithAgreement creates a server session on top of the given key-agreement primitive.
// The agreement must already be bound to the verifier of identity.
func NewServerWithAgreement(agreement ServerAgreement, identity, salt []byte) *Server {
	return &Server{
		agreement: agreement,
		identity:  identity,
		salt:      salt,
	}
}

// GenerateCredentials computes the server public value B.
func (s *Server) GenerateCredentials() (*big.Int, error) {
	requireState("GenerateCredentials", s.state, StateUninitialized)

	B, err := s.agreement.GenerateServerCredentials()
	if err != nil {
		s.state = StateAborted
		return nil, fmt.Errorf("failed to generate server credentials: %w", err)
	}

	s.state = StateCredentialsGenerated
	return B, nil
}

// ComputeSecretAndKey computes the shared secret S from the client's public value and derives K = H(S).
// A degenerate A aborts the session with an error wrapping ErrDegenerateValue.
//
//nolint:gocritic // clientA is capitalized per RFC 5054 SRP-6a specification
func (s *Server) ComputeSecretAndKey(clientA *big.Int) (*big.Int, error) {
	requireState("ComputeSecretAndKey", s.state, StateCredentialsGenerated)

	S, err := s.agreement.CalculateSecret(clientA)
	if err != nil {
		s.state = StateAborted
		return nil, fmt.Errorf("failed to calculate server secret: %w", err)
	}

	s.key = sessionKey(s.agreement.Digest(), S)
	s.state = StateSecretComputed
	return S, nil
}

// VerifyClientProof checks the client proof M1 and returns the server proof M2.
// On mismatch the session is rejected and no M2 is computed.
func (s *Server) VerifyClientProof(m1 []byte) ([]byte, error) {
	requireState("VerifyClientProof", s.state, StateSecretComputed)

	g := s.agreement.Group()
	d := s.agreement.Digest()
	expected := ComputeM1(d, g.N, g.G, s.identity, s.salt, s.agreement.A(), s.agreement.B(), s.key)
	if !proofsEqual(expected, m1) {
		s.state = StateRejected
		return nil, ErrProofMismatch
	}

	s.state = StateProofVerified
	return ComputeM2(d, s.agreement.A(), expected, s.key), nil
}

// State returns the current session state.
func (s *Server) State() State {
	return s.state
}

// Identity returns the identity the session is bound to.
func (s *Server) Identity() []byte {
	return s.identity
}

// Salt returns the salt the session is bound to.
func (s *Server) Salt() []byte {
	return s.salt
}

// SessionKey returns K, or nil before the secret was computed.
func (s *Server) SessionKey() []byte {
	return s.key
}

// ExportKey derives length bytes of keying material from K for the given purpose.
// It is only available once the client proof was verified.
func (s *Server) ExportKey(info []byte, length int) ([]byte, error) {
	if s.state != StateProofVerified {
		return nil, ErrNotVerified
	}
	return exportKey(s.agreement.Digest(), s.key, info, length)
}

// ClearSecrets zeroes the session key and the private value of the built-in key agreement.
func (s *Server) ClearSecrets() {
	clearBytes(s.key)
	s.key = nil
	if cl, ok := s.agreement.(clearer); ok {
		cl.clear()
	}
}

package srp

import (
	"fmt"
	"math/big"
)

// Client is the client side of an SRP-6a session.
// A Client is used for exactly one protocol run by one caller and then discarded.
type Client struct {
	agreement ClientAgreement
	state     State

	identity []byte
	salt     []byte
	key      []byte // K
	m1       []byte
	verified bool
}

// NewClient creates a client session using the built-in key agreement.
func NewClient(group *Group, digest Digest, opts ...*Options) *Client {
	return NewClientWithAgreement(NewClientExchange(group, digest, opts...))
}

// NewClientWithAgreement creates a client session on top of the given key-agreement primitive.
// The session takes ownership of the agreement.
func NewClientWithAgreement(agreement ClientAgreement) *Client {
	return &Client{agreement: agreement}
}

// GenerateCredentials computes the client public value A and remembers salt and identity for the proof.
func (c *Client) GenerateCredentials(salt, identity, password []byte) (*big.Int, error) {
	requireState("GenerateCredentials", c.state, StateUninitialized)

	A, err := c.agreement.GenerateClientCredentials(salt, identity, password)
	if err != nil {
		c.state = StateAborted
		return nil, fmt.Errorf("failed to generate client credentials: %w", err)
	}

	c.salt = salt
	c.identity = identity
	c.state = StateCredentialsGenerated
	return A, nil
}

// ComputeSecretAndKey computes the shared secret S from the server's public value and derives K = H(S).
// A degenerate B aborts the session with an error wrapping ErrDegenerateValue.
//
//nolint:gocritic // serverB is capitalized per RFC 5054 SRP-6a specification
func (c *Client) ComputeSecretAndKey(serverB *big.Int) (*big.Int, error) {
	requireState("ComputeSecretAndKey", c.state, StateCredentialsGenerated)

	S, err := c.agreement.CalculateSecret(serverB)
	if err != nil {
		c.state = StateAborted
		return nil, fmt.Errorf("failed to calculate client secret: %w", err)
	}

	c.key = sessionKey(c.agreement.Digest(), S)
	c.state = StateSecretComputed
	return S, nil
}

// ComputeProof computes the client proof M1 to send to the server.
func (c *Client) ComputeProof() []byte {
	requireState("ComputeProof", c.state, StateSecretComputed)

	g := c.agreement.Group()
	c.m1 = ComputeM1(c.agreement.Digest(), g.N, g.G, c.identity, c.salt, c.agreement.A(), c.agreement.B(), c.key)
	c.state = StateProofSent
	return c.m1
}

// VerifyPeerProof reports whether m2 is the server proof expected for this session.
//
//nolint:gocritic // m2 names the RFC 5054 server proof
func (c *Client) VerifyPeerProof(m2 []byte) bool {
	requireState("VerifyPeerProof", c.state, StateProofSent)

	expected := ComputeM2(c.agreement.Digest(), c.agreement.A(), c.m1, c.key)
	c.verified = proofsEqual(expected, m2)
	return c.verified
}

// State returns the current session state.
func (c *Client) State() State {
	return c.state
}

// Verified reports whether the server proof was accepted.
func (c *Client) Verified() bool {
	return c.verified
}

// SessionKey returns K, or nil before the secret was computed.
func (c *Client) SessionKey() []byte {
	return c.key
}

// ExportKey derives length bytes of keying material from K for the given purpose.
// It is only available once the server proof was verified.
func (c *Client) ExportKey(info []byte, length int) ([]byte, error) {
	if !c.verified {
		return nil, ErrNotVerified
	}
	return exportKey(c.agreement.Digest(), c.key, info, length)
}

// ClearSecrets zeroes the session key, the proof and the private value of the built-in key agreement.
func (c *Client) ClearSecrets() {
	clearBytes(c.key)
	clearBytes(c.m1)
	c.key = nil
	c.m1 = nil
	c.verified = false
	if cl, ok := c.agreement.(clearer); ok {
		cl.clear()
	}
}

package srp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// ClientAgreement is the client half of the SRP-6a key agreement.
// Sessions own one instance and never share it.
type ClientAgreement interface {
	// GenerateClientCredentials selects the private value a and returns A = g^a mod N.
	GenerateClientCredentials(salt, identity, password []byte) (*big.Int, error)
	// CalculateSecret validates the server's B and returns the raw shared secret S.
	CalculateSecret(serverB *big.Int) (*big.Int, error)
	Group() *Group
	Digest() Digest
	A() *big.Int
	B() *big.Int
}

// ServerAgreement is the server half of the SRP-6a key agreement.
type ServerAgreement interface {
	// GenerateServerCredentials selects the private value b and returns B = (k*v + g^b) mod N.
	GenerateServerCredentials() (*big.Int, error)
	// CalculateSecret validates the client's A and returns the raw shared secret S.
	CalculateSecret(clientA *big.Int) (*big.Int, error)
	Group() *Group
	Digest() Digest
	A() *big.Int
	B() *big.Int
}

// Options override internally generated values.
// Only use PrivateValue for known-answer tests: reusing a private value across sessions breaks forward secrecy.
type Options struct {
	// Random is the source for private values. Defaults to crypto/rand.Reader.
	Random io.Reader
	// PrivateValue fixes a (client) or b (server) instead of drawing it from Random.
	PrivateValue *big.Int
}

func (o *Options) random() io.Reader {
	if o == nil || o.Random == nil {
		return rand.Reader
	}
	return o.Random
}

func firstOptions(opts []*Options) *Options {
	if len(opts) == 0 {
		return nil
	}
	return opts[0]
}

// exchange holds the state common to both halves of the key agreement.
type exchange struct {
	group  *Group
	digest Digest
	opts   *Options

	private *big.Int // a or b
	xA      *big.Int
	xB      *big.Int
}

func (e *exchange) Group() *Group  { return e.group }
func (e *exchange) Digest() Digest { return e.digest }
func (e *exchange) A() *big.Int    { return e.xA }
func (e *exchange) B() *big.Int    { return e.xB }

// selectPrivateValue draws a uniformly from [2^(min(256, |N|/2) - 1), N - 1].
func (e *exchange) selectPrivateValue() (*big.Int, error) {
	if e.opts != nil && e.opts.PrivateValue != nil {
		return new(big.Int).Set(e.opts.PrivateValue), nil
	}

	minBits := min(256, e.group.Bits()/2)
	lower := new(big.Int).Lsh(big.NewInt(1), uint(minBits-1))
	upper := new(big.Int).Sub(e.group.N, big.NewInt(1))

	span := new(big.Int).Sub(upper, lower)
	span.Add(span, big.NewInt(1))

	r, err := rand.Int(e.opts.random(), span)
	if err != nil {
		return nil, fmt.Errorf("failed to generate private value: %w", err)
	}
	return r.Add(r, lower), nil
}

// multiplier computes k = H(N | PAD(g)).
func (e *exchange) multiplier() *big.Int {
	n := e.group.byteLen()
	return new(big.Int).SetBytes(Hash(e.digest, pad(e.group.N, n), pad(e.group.G, n)))
}

// scrambler computes u = H(PAD(A) | PAD(B)).
func (e *exchange) scrambler() *big.Int {
	n := e.group.byteLen()
	return new(big.Int).SetBytes(Hash(e.digest, pad(e.xA, n), pad(e.xB, n)))
}

// validatePublicValue rejects peer values congruent to 0 mod N and returns the reduced value.
func validatePublicValue(N, v *big.Int) (*big.Int, error) {
	if v == nil {
		return nil, ErrDegenerateValue
	}
	r := new(big.Int).Mod(v, N)
	if r.Sign() == 0 {
		return nil, ErrDegenerateValue
	}
	return r, nil
}

// ClientExchange is the built-in RFC 5054 client key agreement.
type ClientExchange struct {
	exchange
	x *big.Int
}

// NewClientExchange creates a client key agreement for the given group and digest.
func NewClientExchange(group *Group, digest Digest, opts ...*Options) *ClientExchange {
	return &ClientExchange{
		exchange: exchange{group: group, digest: digest, opts: firstOptions(opts)},
	}
}

// GenerateClientCredentials derives x from the password and returns A = g^a mod N.
func (c *ClientExchange) GenerateClientCredentials(salt, identity, password []byte) (*big.Int, error) {
	a, err := c.selectPrivateValue()
	if err != nil {
		return nil, err
	}

	c.x = ComputeX(c.digest, salt, identity, password)
	c.private = a
	c.xA = new(big.Int).Exp(c.group.G, a, c.group.N)
	return c.xA, nil
}

// CalculateSecret computes S = (B - k*g^x)^(a + u*x) mod N.
func (c *ClientExchange) CalculateSecret(serverB *big.Int) (*big.Int, error) {
	if c.xA == nil || c.private == nil {
		return nil, ErrCredentialsMissing
	}

	B, err := validatePublicValue(c.group.N, serverB)
	if err != nil {
		return nil, err
	}
	c.xB = B

	u := c.scrambler()
	if u.Sign() == 0 {
		return nil, ErrDegenerateValue
	}

	N := c.group.N
	kgx := new(big.Int).Exp(c.group.G, c.x, N)
	kgx.Mul(kgx, c.multiplier())
	kgx.Mod(kgx, N)

	base := new(big.Int).Sub(B, kgx)
	base.Mod(base, N)

	exp := new(big.Int).Mul(u, c.x)
	exp.Add(exp, c.private)

	return new(big.Int).Exp(base, exp, N), nil
}

// ServerExchange is the built-in RFC 5054 server key agreement.
type ServerExchange struct {
	exchange
	v *big.Int
}

// NewServerExchange creates a server key agreement bound to the stored password verifier.
func NewServerExchange(group *Group, digest Digest, verifier *big.Int, opts ...*Options) *ServerExchange {
	return &ServerExchange{
		exchange: exchange{group: group, digest: digest, opts: firstOptions(opts)},
		v:        verifier,
	}
}

// GenerateServerCredentials returns B = (k*v + g^b) mod N.
func (s *ServerExchange) GenerateServerCredentials() (*big.Int, error) {
	b, err := s.selectPrivateValue()
	if err != nil {
		return nil, err
	}

	N := s.group.N
	kv := new(big.Int).Mul(s.multiplier(), s.v)
	gb := new(big.Int).Exp(s.group.G, b, N)

	s.private = b
	s.xB = kv.Add(kv, gb).Mod(kv, N)
	return s.xB, nil
}

// CalculateSecret computes S = (A * v^u)^b mod N.
func (s *ServerExchange) CalculateSecret(clientA *big.Int) (*big.Int, error) {
	if s.xB == nil || s.private == nil {
		return nil, ErrCredentialsMissing
	}

	A, err := validatePublicValue(s.group.N, clientA)
	if err != nil {
		return nil, err
	}
	s.xA = A

	N := s.group.N
	avu := new(big.Int).Exp(s.v, s.scrambler(), N)
	avu.Mul(avu, A)
	avu.Mod(avu, N)

	return new(big.Int).Exp(avu, s.private, N), nil
}

// clear zeroes the private value.
func (e *exchange) clear() {
	if e.private != nil {
		e.private.SetInt64(0)
		e.private = nil
	}
}

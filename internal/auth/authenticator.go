// Package auth coordinates server-side SRP-6a handshakes: verifier lookup, pending handshakes and brute force protection.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"sync"

	"golang.org/x/crypto/hkdf"

	"github.com/fzdarsky/srp6a/internal/config"
	"github.com/fzdarsky/srp6a/internal/logging"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// SessionKeyInfo is the HKDF info label of the key handed out after a verified handshake.
const SessionKeyInfo = "srp6a session key"

// MaxDecoyRecords bounds the number of cached decoy records for unknown identities.
const MaxDecoyRecords = 4096

// Result describes a verified handshake.
type Result struct {
	Identity   string
	SessionKey []byte // Derived from K with SessionKeyInfo, one digest output long
}

// Authenticator runs the server side of the SRP-6a handshake for many concurrent clients.
//
// Every failure that depends on the password (degenerate A, proof mismatch, unknown identity) is
// reported as the same authentication failure and counted by the rate limiter.
type Authenticator struct {
	group      *srp.Group
	digest     srp.Digest
	saltLength int
	verifiers  VerifierSource
	store      *HandshakeStore
	limiter    *RateLimiter
	logger     *logging.Logger
	decoySeed  []byte
	decoysMu   sync.Mutex
	decoys     map[string]*VerifierRecord
}

// NewAuthenticator creates an authenticator from cfg.
// An invalid configuration is reported as an INVALID_CONFIGURATION error response.
// Without rate limit settings, DefaultPolicy applies.
func NewAuthenticator(cfg *config.Config, verifiers VerifierSource, logger *logging.Logger) (*Authenticator, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, protocol.NewInvalidConfigurationError(err.Error())
	}

	group, err := cfg.SRPGroup()
	if err != nil {
		return nil, err
	}
	digest, err := cfg.SRPDigest()
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.GetHandshakeTTL()
	if err != nil {
		return nil, err
	}
	delays, lockout, err := cfg.GetRateLimitDelays()
	if err != nil {
		return nil, err
	}

	policy := DefaultPolicy()
	if len(delays) > 0 || lockout > 0 {
		policy = Policy{Delays: delays, Lockout: lockout}
	}

	seed := make([]byte, digest.Size())
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("failed to generate decoy seed: %w", err)
	}

	return &Authenticator{
		group:      group,
		digest:     digest,
		saltLength: cfg.SRP.SaltLength,
		verifiers:  verifiers,
		store:      NewHandshakeStore(ttl),
		limiter:    NewRateLimiter(policy),
		logger:     logger,
		decoySeed:  seed,
		decoys:     make(map[string]*VerifierRecord),
	}, nil
}

// Group returns the configured SRP group.
func (a *Authenticator) Group() *srp.Group {
	return a.group
}

// Digest returns the configured digest.
func (a *Authenticator) Digest() srp.Digest {
	return a.digest
}

// Init starts a handshake for the identity in req and returns the salt and server public value B.
func (a *Authenticator) Init(clientID string, req *protocol.InitRequest) (*protocol.InitResponse, error) {
	log := a.logger.WithFields(map[string]any{"client_id": clientID})

	if errResp := a.checkLimit(log, clientID); errResp != nil {
		return nil, errResp
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	log = log.WithFields(map[string]any{"identity": req.Identity})

	record, err := a.verifiers.Lookup(req.Identity)
	switch {
	case errors.Is(err, ErrUnknownIdentity):
		// Continue with a decoy so the handshake fails at verify like a wrong password
		log.Debug("srp_unknown_identity")
		record, err = a.decoyRecord(req.Identity)
		if err != nil {
			log.Error("srp_init_failed", map[string]any{"error": err.Error()})
			return nil, protocol.NewSystemError("failed to start handshake")
		}
	case err != nil:
		log.Error("srp_init_failed", map[string]any{"error": err.Error()})
		return nil, protocol.NewSystemError("failed to look up verifier")
	}

	server := srp.NewServer(a.group, a.digest, record.Verifier, []byte(req.Identity), record.Salt)
	B, err := server.GenerateCredentials()
	if err != nil {
		log.Error("srp_init_failed", map[string]any{"error": err.Error()})
		return nil, protocol.NewSystemError("failed to generate server credentials")
	}

	handshakeID, err := a.store.Store(clientID, server)
	if err != nil {
		server.ClearSecrets()
		log.Error("srp_init_failed", map[string]any{"error": err.Error()})
		return nil, protocol.NewSystemError("failed to store handshake")
	}

	log.Info("srp_init_success", map[string]any{"handshake_id": handshakeID})

	return &protocol.InitResponse{
		HandshakeID: handshakeID,
		Salt:        record.Salt,
		B:           B.Bytes(),
	}, nil
}

// Verify completes a handshake: it computes the shared secret from A, checks M1 and returns M2.
// The handshake is consumed whatever the outcome.
func (a *Authenticator) Verify(clientID string, req *protocol.VerifyRequest) (*protocol.VerifyResponse, *Result, error) {
	log := a.logger.WithFields(map[string]any{"client_id": clientID})

	if errResp := a.checkLimit(log, clientID); errResp != nil {
		return nil, nil, errResp
	}

	if err := req.Validate(a.digest.Size()); err != nil {
		return nil, nil, err
	}
	log = log.WithFields(map[string]any{"handshake_id": req.HandshakeID})

	server, err := a.store.Retrieve(req.HandshakeID, clientID)
	switch {
	case errors.Is(err, ErrHandshakeExpired):
		log.Warn("srp_verify_failed", map[string]any{"reason": "handshake_expired"})
		return nil, nil, protocol.NewSessionExpiredError()
	case errors.Is(err, ErrHandshakeNotOwned):
		log.Warn("srp_verify_failed", map[string]any{"reason": "client_mismatch"})
		return nil, nil, protocol.NewSessionInvalidError()
	case err != nil:
		log.Warn("srp_verify_failed", map[string]any{"reason": "handshake_unknown"})
		return nil, nil, protocol.NewSessionInvalidError()
	}
	defer server.ClearSecrets()

	identity := string(server.Identity())
	log = log.WithFields(map[string]any{"identity": identity})

	if _, err := server.ComputeSecretAndKey(req.PublicValue()); err != nil {
		if !errors.Is(err, srp.ErrDegenerateValue) {
			log.Error("srp_verify_failed", map[string]any{"error": err.Error()})
			return nil, nil, protocol.NewSystemError("failed to compute shared secret")
		}
		return nil, nil, a.authenticationFailed(log, clientID, "degenerate_public_value")
	}

	m2, err := server.VerifyClientProof(req.M1)
	if err != nil {
		return nil, nil, a.authenticationFailed(log, clientID, "proof_mismatch")
	}

	key, err := server.ExportKey([]byte(SessionKeyInfo), a.digest.Size())
	if err != nil {
		log.Error("srp_verify_failed", map[string]any{"error": err.Error()})
		return nil, nil, protocol.NewSystemError("failed to derive session key")
	}

	a.limiter.RecordSuccess(clientID)
	log.Info("srp_verify_success")

	return &protocol.VerifyResponse{M2: m2}, &Result{Identity: identity, SessionKey: key}, nil
}

// PendingHandshakes returns the number of handshakes waiting for verification.
func (a *Authenticator) PendingHandshakes() int {
	return a.store.Count()
}

// TrackedClients returns the number of clients with recent failed attempts.
func (a *Authenticator) TrackedClients() int {
	return a.limiter.GetTrackedClientCount()
}

// Close stops the background cleanup of the handshake store and rate limiter.
func (a *Authenticator) Close() {
	a.store.Stop()
	a.limiter.Stop()
}

func (a *Authenticator) checkLimit(log *logging.ContextLogger, clientID string) *protocol.ErrorResponse {
	locked, retryAfter, err := a.limiter.CheckLimit(clientID)
	if err == nil {
		return nil
	}

	log.Warn("srp_rate_limited", map[string]any{
		"locked":      locked,
		"retry_after": FormatRetryAfter(retryAfter),
	})
	return protocol.NewRateLimitExceededError(FormatRetryAfter(retryAfter))
}

func (a *Authenticator) authenticationFailed(log *logging.ContextLogger, clientID, reason string) *protocol.ErrorResponse {
	delay := a.limiter.RecordFailure(clientID)
	log.Warn("srp_verify_failed", map[string]any{
		"reason":      reason,
		"attempts":    a.limiter.GetAttemptCount(clientID),
		"retry_after": FormatRetryAfter(delay),
	})
	return protocol.NewAuthenticationFailedError()
}

// decoyRecord returns the salt and verifier presented for an unknown identity.
// Both are derived from the decoy seed and the identity, so repeated inits for the same identity
// see the same salt. Records are cached so a repeated init costs a map lookup, like a known identity.
func (a *Authenticator) decoyRecord(identity string) (*VerifierRecord, error) {
	a.decoysMu.Lock()
	defer a.decoysMu.Unlock()

	if record, ok := a.decoys[identity]; ok {
		return record, nil
	}

	r := hkdf.New(a.digest.HashFunc(), a.decoySeed, []byte(identity), []byte("srp6a decoy record"))
	salt := make([]byte, a.saltLength)
	if _, err := io.ReadFull(r, salt); err != nil {
		return nil, fmt.Errorf("failed to derive decoy salt: %w", err)
	}
	xBytes := make([]byte, a.digest.Size())
	if _, err := io.ReadFull(r, xBytes); err != nil {
		return nil, fmt.Errorf("failed to derive decoy verifier: %w", err)
	}
	x := new(big.Int).SetBytes(xBytes)

	record := &VerifierRecord{
		Salt:     salt,
		Verifier: new(big.Int).Exp(a.group.G, x, a.group.N),
	}

	if len(a.decoys) >= MaxDecoyRecords {
		for key := range a.decoys {
			delete(a.decoys, key)
			break
		}
	}
	a.decoys[identity] = record

	return record, nil
}

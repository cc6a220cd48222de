package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

var (
	// ErrHandshakeNotFound is returned for unknown or already consumed handshake IDs.
	ErrHandshakeNotFound = errors.New("handshake not found")

	// ErrHandshakeExpired is returned when a handshake outlived its TTL.
	ErrHandshakeExpired = errors.New("handshake expired")

	// ErrHandshakeNotOwned is returned when a client presents a handshake ID started by another client.
	// The handshake stays pending for its owner.
	ErrHandshakeNotOwned = errors.New("handshake belongs to another client")
)

// CleanupIntervalHandshakes is how often expired handshakes are purged.
const CleanupIntervalHandshakes = 1 * time.Minute

// pendingHandshake holds an SRP server session between the init and verify steps.
type pendingHandshake struct {
	server    *srp.Server
	clientID  string
	expiresAt time.Time
}

// HandshakeStore keeps in-flight SRP server sessions between init and verify.
// It is safe for concurrent use and purges expired handshakes in the background.
type HandshakeStore struct {
	handshakes map[string]*pendingHandshake
	mu         sync.RWMutex
	ttl        time.Duration
	now        func() time.Time
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewHandshakeStore creates a new store with the given TTL.
func NewHandshakeStore(ttl time.Duration) *HandshakeStore {
	store := &HandshakeStore{
		handshakes: make(map[string]*pendingHandshake),
		ttl:        ttl,
		now:        time.Now,
		stopCh:     make(chan struct{}),
	}

	// Start background cleanup goroutine
	go store.cleanupLoop()

	return store
}

// Store saves a server session started by clientID and returns its handshake ID.
func (s *HandshakeStore) Store(clientID string, server *srp.Server) (string, error) {
	// Generate random handshake ID (16 bytes = 128 bits)
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return "", fmt.Errorf("failed to generate handshake ID: %w", err)
	}
	handshakeID := base64.RawURLEncoding.EncodeToString(idBytes)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.handshakes[handshakeID] = &pendingHandshake{
		server:    server,
		clientID:  clientID,
		expiresAt: s.now().Add(s.ttl),
	}

	return handshakeID, nil
}

// Retrieve removes and returns the server session for handshakeID if clientID started it.
// A handshake can be retrieved once; expired handshakes have their secrets cleared.
func (s *HandshakeStore) Retrieve(handshakeID, clientID string) (*srp.Server, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, exists := s.handshakes[handshakeID]
	if !exists {
		return nil, ErrHandshakeNotFound
	}
	if pending.clientID != clientID {
		return nil, ErrHandshakeNotOwned
	}
	delete(s.handshakes, handshakeID)

	if s.now().After(pending.expiresAt) {
		pending.server.ClearSecrets()
		return nil, ErrHandshakeExpired
	}

	return pending.server, nil
}

// Count returns the number of pending handshakes.
func (s *HandshakeStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handshakes)
}

// Stop stops the background cleanup goroutine. It is safe to call more than once.
func (s *HandshakeStore) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
}

// cleanupLoop periodically removes expired handshakes.
func (s *HandshakeStore) cleanupLoop() {
	ticker := time.NewTicker(CleanupIntervalHandshakes)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup removes all expired handshakes.
func (s *HandshakeStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, pending := range s.handshakes {
		if now.After(pending.expiresAt) {
			pending.server.ClearSecrets()
			delete(s.handshakes, id)
		}
	}
}

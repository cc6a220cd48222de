package auth

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

func newTestStore(t *testing.T, ttl time.Duration) (*HandshakeStore, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	store := NewHandshakeStore(ttl)
	store.now = clock.Now
	t.Cleanup(store.Stop)
	return store, clock
}

func newPendingServer(t *testing.T) *srp.Server {
	t.Helper()
	server := srp.NewServer(srp.RFC5054Group1024, srp.SHA256, big.NewInt(4), []byte("alice"), []byte("salt"))
	_, err := server.GenerateCredentials()
	require.NoError(t, err)
	return server
}

func TestHandshakeStore_StoreAndRetrieve(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	server := newPendingServer(t)

	handshakeID, err := store.Store("10.0.0.1", server)
	require.NoError(t, err)
	assert.Len(t, handshakeID, 22, "16 random bytes, unpadded base64")
	assert.Equal(t, 1, store.Count())

	retrieved, err := store.Retrieve(handshakeID, "10.0.0.1")
	require.NoError(t, err)
	assert.Same(t, server, retrieved)
	assert.Zero(t, store.Count())

	// One-time use
	_, err = store.Retrieve(handshakeID, "10.0.0.1")
	assert.ErrorIs(t, err, ErrHandshakeNotFound)
}

func TestHandshakeStore_UniqueIDs(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)

	seen := make(map[string]bool)
	for range 50 {
		id, err := store.Store("c", newPendingServer(t))
		require.NoError(t, err)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestHandshakeStore_UnknownID(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)

	_, err := store.Retrieve("invalid-handshake-id", "c")
	assert.ErrorIs(t, err, ErrHandshakeNotFound)
}

func TestHandshakeStore_Expiry(t *testing.T) {
	store, clock := newTestStore(t, time.Minute)

	handshakeID, err := store.Store("c", newPendingServer(t))
	require.NoError(t, err)

	clock.Advance(time.Minute + time.Second)
	_, err = store.Retrieve(handshakeID, "c")
	require.ErrorIs(t, err, ErrHandshakeExpired)
	assert.Zero(t, store.Count())

	_, err = store.Retrieve(handshakeID, "c")
	assert.ErrorIs(t, err, ErrHandshakeNotFound)
}

func TestHandshakeStore_Cleanup(t *testing.T) {
	store, clock := newTestStore(t, time.Minute)

	_, err := store.Store("old", newPendingServer(t))
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	fresh, err := store.Store("new", newPendingServer(t))
	require.NoError(t, err)

	clock.Advance(45 * time.Second)
	store.cleanup()
	assert.Equal(t, 1, store.Count())

	_, err = store.Retrieve(fresh, "new")
	require.NoError(t, err)
}

func TestHandshakeStore_ForeignClientDoesNotConsume(t *testing.T) {
	store, _ := newTestStore(t, 5*time.Minute)
	server := newPendingServer(t)

	handshakeID, err := store.Store("10.0.0.1", server)
	require.NoError(t, err)

	_, err = store.Retrieve(handshakeID, "10.0.0.2")
	require.ErrorIs(t, err, ErrHandshakeNotOwned)
	assert.Equal(t, 1, store.Count())

	retrieved, err := store.Retrieve(handshakeID, "10.0.0.1")
	require.NoError(t, err)
	assert.Same(t, server, retrieved)
}

package srp_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

func TestClientExchange_SecretBeforeCredentials(t *testing.T) {
	c := srp.NewClientExchange(srp.RFC5054Group1024, srp.SHA1)

	_, err := c.CalculateSecret(big.NewInt(2))
	assert.ErrorIs(t, err, srp.ErrCredentialsMissing)
}

func TestServerExchange_SecretBeforeCredentials(t *testing.T) {
	s := srp.NewServerExchange(srp.RFC5054Group1024, srp.SHA1, big.NewInt(4))

	_, err := s.CalculateSecret(big.NewInt(2))
	assert.ErrorIs(t, err, srp.ErrCredentialsMissing)
}

func TestExchange_StoresReducedPeerValue(t *testing.T) {
	group := srp.RFC5054Group1024
	s := srp.NewServerExchange(group, srp.SHA1, big.NewInt(4))
	_, err := s.GenerateServerCredentials()
	require.NoError(t, err)

	// N + 5 reduces to 5.
	_, err = s.CalculateSecret(new(big.Int).Add(group.N, big.NewInt(5)))
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.A().Int64())
}

func TestExchange_PrivateValueRange(t *testing.T) {
	group := srp.RFC5054Group1024
	for range 20 {
		c := srp.NewClientExchange(group, srp.SHA256)
		A, err := c.GenerateClientCredentials([]byte("salt"), []byte("id"), []byte("pw"))
		require.NoError(t, err)

		assert.Equal(t, 1, A.Sign())
		assert.Equal(t, -1, A.Cmp(group.N))
		assert.Same(t, group, c.Group())
		assert.Equal(t, srp.SHA256, c.Digest())
	}
}

func TestExchange_FixedPrivateValue(t *testing.T) {
	group := srp.RFC5054Group1024
	a := big.NewInt(3)

	c := srp.NewClientExchange(group, srp.SHA1, &srp.Options{PrivateValue: a})
	A, err := c.GenerateClientCredentials(nil, nil, nil)
	require.NoError(t, err)

	// g = 2, so A = 2^3.
	assert.Equal(t, int64(8), A.Int64())
	assert.Equal(t, int64(3), a.Int64(), "caller's private value must not be aliased")
}

func TestComputeVerifier(t *testing.T) {
	group := srp.RFC5054Group1024
	salt := []byte("salt")

	x := srp.ComputeX(srp.SHA256, salt, []byte("alice"), []byte("pw"))
	v := srp.ComputeVerifier(group, srp.SHA256, salt, []byte("alice"), []byte("pw"))
	assert.Equal(t, 0, v.Cmp(new(big.Int).Exp(group.G, x, group.N)))

	other := srp.ComputeVerifier(group, srp.SHA256, []byte("other"), []byte("alice"), []byte("pw"))
	assert.NotEqual(t, 0, v.Cmp(other))
}

func TestGenerateSalt(t *testing.T) {
	salt, err := srp.GenerateSalt(nil, srp.DefaultSaltLength)
	require.NoError(t, err)
	assert.Len(t, salt, srp.DefaultSaltLength)

	again, err := srp.GenerateSalt(nil, srp.DefaultSaltLength)
	require.NoError(t, err)
	assert.NotEqual(t, salt, again)

	_, err = srp.GenerateSalt(nil, 0)
	assert.Error(t, err)
}

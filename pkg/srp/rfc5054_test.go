package srp_test

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// RFC 5054 Appendix B test vector (SHA-1, 1024-bit group).
const (
	vectorIdentity = "alice"
	vectorPassword = "password123"
	vectorSalt     = "BEB25379D1A8581EB5A727673A2441EE"

	vectorVerifier = "7E273DE8696FFC4F4E337D05B4B375BEB0DDE1569E8FA00A9886D812" +
		"9BADA1F1822223CA1A605B530E379BA4729FDC59F105B4787E5186F5" +
		"C671085A1447B52A48CF1970B4FB6F8400BBF4CEBFBB168152E08AB5" +
		"EA53D15C1AFF87B2B9DA6E04E058AD51CC72BFC9033B564E26480D78" +
		"E955A5E29E7AB245DB2BE315E2099AFB"

	vectorPrivateA = "60975527035CF2AD1989806F0407210BC81EDC04E2762A56AFD529DDDA2D4393"
	vectorPublicA  = "61D5E490F6F1B79547B0704C436F523DD0E560F0C64115BB72557EC4" +
		"4352E8903211C04692272D8B2D1A5358A2CF1B6E0BFCF99F921530EC" +
		"8E39356179EAE45E42BA92AEACED825171E1E8B9AF6D9C03E1327F44" +
		"BE087EF06530E69F66615261EEF54073CA11CF5858F0EDFDFE15EFEA" +
		"B349EF5D76988A3672FAC47B0769447B"

	vectorPrivateB = "E487CB59D31AC550471E81F00F6928E01DDA08E974A004F49E61F5D105284D20"
	vectorPublicB  = "BD0C61512C692C0CB6D041FA01BB152D4916A1E77AF46AE105393011" +
		"BAF38964DC46A0670DD125B95A981652236F99D9B681CBF87837EC99" +
		"6C6DA04453728610D0C6DDB58B318885D7D82C7F8DEB75CE7BD4FBAA" +
		"37089E6F9C6059F388838E7A00030B331EB76840910440B1B27AAEAE" +
		"EB4012B7D7665238A8E3FB004B117B58"

	vectorSecret = "B0DC82BABCF30674AE450C0287745E7990A3381F63B387AAF271A10D" +
		"233861E359B48220F7C4693C9AE12B0A6F67809F0876E2D013800D6C" +
		"41BB59B6D5979B5C00A172B4A2A5903A0BDCAF8A709585EB2AFAFA8F" +
		"3499B200210DCC1F10EB33943CD67FC88A2F39A4BE5BEC4EC0A3212D" +
		"C346D7E474B29EDE8A469FFECA686E5A"

	vectorKey = "017eefa1cefc5c2e626e21598987f31e0f1b11bb"
	vectorM1  = "3f3bc67169ea71302599cf1b0f5d408b7b65d347"
	vectorM2  = "9cab3c575a11de37d3ac1421a9f009236a48eb55"
)

func mustHexInt(t *testing.T, s string) *big.Int {
	t.Helper()
	n, ok := new(big.Int).SetString(s, 16)
	require.True(t, ok, "invalid hex integer %q", s)
	return n
}

func mustHexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestRFC5054Vector(t *testing.T) {
	group := srp.RFC5054Group1024
	identity := []byte(vectorIdentity)
	password := []byte(vectorPassword)
	salt := mustHexBytes(t, vectorSalt)

	v := srp.ComputeVerifier(group, srp.SHA1, salt, identity, password)
	require.Equal(t, 0, v.Cmp(mustHexInt(t, vectorVerifier)), "verifier mismatch")

	client := srp.NewClient(group, srp.SHA1, &srp.Options{PrivateValue: mustHexInt(t, vectorPrivateA)})
	server := srp.NewServer(group, srp.SHA1, v, identity, salt, &srp.Options{PrivateValue: mustHexInt(t, vectorPrivateB)})

	A, err := client.GenerateCredentials(salt, identity, password)
	require.NoError(t, err)
	assert.Equal(t, 0, A.Cmp(mustHexInt(t, vectorPublicA)), "A mismatch")

	B, err := server.GenerateCredentials()
	require.NoError(t, err)
	assert.Equal(t, 0, B.Cmp(mustHexInt(t, vectorPublicB)), "B mismatch")

	clientS, err := client.ComputeSecretAndKey(B)
	require.NoError(t, err)
	serverS, err := server.ComputeSecretAndKey(A)
	require.NoError(t, err)

	expectedS := mustHexInt(t, vectorSecret)
	assert.Equal(t, 0, clientS.Cmp(expectedS), "client S mismatch")
	assert.Equal(t, 0, serverS.Cmp(expectedS), "server S mismatch")

	assert.Equal(t, vectorKey, hex.EncodeToString(client.SessionKey()))
	assert.Equal(t, vectorKey, hex.EncodeToString(server.SessionKey()))

	m1 := client.ComputeProof()
	assert.Equal(t, vectorM1, hex.EncodeToString(m1))

	m2, err := server.VerifyClientProof(m1)
	require.NoError(t, err)
	assert.Equal(t, vectorM2, hex.EncodeToString(m2))
	assert.Equal(t, srp.StateProofVerified, server.State())

	assert.True(t, client.VerifyPeerProof(m2))
	assert.True(t, client.Verified())
	assert.Equal(t, srp.StateProofSent, client.State())
}

func TestRFC5054Vector_ProofFunctions(t *testing.T) {
	group := srp.RFC5054Group1024
	K := mustHexBytes(t, vectorKey)
	A := mustHexInt(t, vectorPublicA)
	B := mustHexInt(t, vectorPublicB)

	m1 := srp.ComputeM1(srp.SHA1, group.N, group.G, []byte(vectorIdentity), mustHexBytes(t, vectorSalt), A, B, K)
	assert.Equal(t, vectorM1, hex.EncodeToString(m1))

	m2 := srp.ComputeM2(srp.SHA1, A, m1, K)
	assert.Equal(t, vectorM2, hex.EncodeToString(m2))
}

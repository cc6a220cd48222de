package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/fzdarsky/srp6a/internal/auth"
	"github.com/fzdarsky/srp6a/pkg/protocol"
	"github.com/fzdarsky/srp6a/pkg/srp"
)

// RFC 5054 Appendix B (SHA-1, 1024-bit group).
var rfc5054Vector = struct {
	identity, password      string
	salt                    string
	privateA, privateB      string
	key, clientProof, proof string
}{
	identity:    "alice",
	password:    "password123",
	salt:        "beb25379d1a8581eb5a727673a2441ee",
	privateA:    "60975527035cf2ad1989806f0407210bc81edc04e2762a56afd529ddda2d4393",
	privateB:    "e487cb59d31ac550471e81f00f6928e01dda08e974a004f49e61f5d105284d20",
	key:         "017eefa1cefc5c2e626e21598987f31e0f1b11bb",
	clientProof: "3f3bc67169ea71302599cf1b0f5d408b7b65d347",
	proof:       "9cab3c575a11de37d3ac1421a9f009236a48eb55",
}

// knownAnswerCheck reproduces K, M1 and M2 of the RFC 5054 test vector with both session types.
func knownAnswerCheck() error {
	v := rfc5054Vector
	group := srp.RFC5054Group1024
	identity := []byte(v.identity)
	password := []byte(v.password)
	salt, _ := hex.DecodeString(v.salt)
	a, _ := new(big.Int).SetString(v.privateA, 16)
	b, _ := new(big.Int).SetString(v.privateB, 16)

	verifier := srp.ComputeVerifier(group, srp.SHA1, salt, identity, password)
	client := srp.NewClient(group, srp.SHA1, &srp.Options{PrivateValue: a})
	server := srp.NewServer(group, srp.SHA1, verifier, identity, salt, &srp.Options{PrivateValue: b})

	A, err := client.GenerateCredentials(salt, identity, password)
	if err != nil {
		return err
	}
	B, err := server.GenerateCredentials()
	if err != nil {
		return err
	}
	if _, err := client.ComputeSecretAndKey(B); err != nil {
		return err
	}
	if _, err := server.ComputeSecretAndKey(A); err != nil {
		return err
	}

	if err := expectHex("K", v.key, client.SessionKey()); err != nil {
		return err
	}
	m1 := client.ComputeProof()
	if err := expectHex("M1", v.clientProof, m1); err != nil {
		return err
	}
	m2, err := server.VerifyClientProof(m1)
	if err != nil {
		return fmt.Errorf("server rejected M1: %w", err)
	}
	if err := expectHex("M2", v.proof, m2); err != nil {
		return err
	}
	if !client.VerifyPeerProof(m2) {
		return fmt.Errorf("client rejected M2")
	}

	return nil
}

func expectHex(name, want string, got []byte) error {
	expected, _ := hex.DecodeString(want)
	if !bytes.Equal(expected, got) {
		return fmt.Errorf("%s mismatch: want %s, got %x", name, want, got)
	}
	return nil
}

// loopbackCheck runs a full handshake of an in-process client against the authenticator.
// When wrongPassword is set, the client deliberately uses a different password and the check
// passes only if the authenticator rejects it.
func loopbackCheck(a *auth.Authenticator, clientID, identity string, password []byte, wrongPassword bool) error {
	initResp, err := a.Init(clientID, &protocol.InitRequest{Identity: identity})
	if err != nil {
		return fmt.Errorf("init failed: %w", err)
	}

	clientPassword := password
	if wrongPassword {
		clientPassword = append([]byte("not-"), password...)
	}

	client := srp.NewClient(a.Group(), a.Digest())
	defer client.ClearSecrets()

	A, err := client.GenerateCredentials(initResp.Salt, []byte(identity), clientPassword)
	if err != nil {
		return err
	}
	if _, err := client.ComputeSecretAndKey(initResp.PublicValue()); err != nil {
		return err
	}

	verifyResp, result, err := a.Verify(clientID, &protocol.VerifyRequest{
		HandshakeID: initResp.HandshakeID,
		A:           A.Bytes(),
		M1:          client.ComputeProof(),
	})
	if wrongPassword {
		if err == nil {
			return fmt.Errorf("authenticator accepted a wrong password")
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("verify failed: %w", err)
	}

	if !client.VerifyPeerProof(verifyResp.M2) {
		return fmt.Errorf("client rejected M2")
	}

	key, err := client.ExportKey([]byte(auth.SessionKeyInfo), a.Digest().Size())
	if err != nil {
		return err
	}
	if !bytes.Equal(key, result.SessionKey) {
		return fmt.Errorf("exported session keys differ")
	}

	return nil
}

package protocol_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fzdarsky/srp6a/pkg/protocol"
)

func TestHandshakeMessages_JSON(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{
			name:     "init request",
			input:    protocol.InitRequest{Identity: "alice"},
			expected: `{"identity":"alice"}`,
		},
		{
			name:     "init response",
			input:    protocol.InitResponse{HandshakeID: "abc", Salt: []byte("salt"), B: []byte{0xff}},
			expected: `{"handshake_id":"abc","salt":"c2FsdA==","B":"/w=="}`,
		},
		{
			name:     "verify request",
			input:    protocol.VerifyRequest{HandshakeID: "abc", A: []byte{0x01, 0x02}, M1: []byte{0x00, 0x10}},
			expected: `{"handshake_id":"abc","A":"AQI=","M1":"ABA="}`,
		},
		{
			name:     "verify response",
			input:    protocol.VerifyResponse{M2: []byte{0xfb}},
			expected: `{"M2":"+w=="}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.input)
			require.NoError(t, err)
			assert.JSONEq(t, tt.expected, string(data))
		})
	}
}

func TestInitRequest_Validate(t *testing.T) {
	valid := protocol.InitRequest{Identity: "alice"}
	assert.NoError(t, valid.Validate())

	var missing protocol.InitRequest
	err := missing.Validate()

	var resp *protocol.ErrorResponse
	require.True(t, errors.As(err, &resp))
	assert.Equal(t, protocol.ErrCodeInvalidRequest, resp.Code)
	assert.Contains(t, resp.Details, "identity")
}

func TestVerifyRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     protocol.VerifyRequest
		wantErr string
	}{
		{"valid", protocol.VerifyRequest{HandshakeID: "abc", A: []byte{1}, M1: make([]byte, 32)}, ""},
		{"missing handshake", protocol.VerifyRequest{A: []byte{1}, M1: make([]byte, 32)}, "handshake_id"},
		{"missing A", protocol.VerifyRequest{HandshakeID: "abc", M1: make([]byte, 32)}, "A"},
		{"short proof", protocol.VerifyRequest{HandshakeID: "abc", A: []byte{1}, M1: make([]byte, 20)}, "M1 must be 32 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(32)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var resp *protocol.ErrorResponse
			require.True(t, errors.As(err, &resp))
			assert.Equal(t, protocol.ErrCodeInvalidRequest, resp.Code)
			assert.Contains(t, resp.Details, tt.wantErr)
		})
	}
}

func TestPublicValue(t *testing.T) {
	req := protocol.VerifyRequest{HandshakeID: "abc", A: []byte{0x01, 0x00}}
	assert.Equal(t, int64(256), req.PublicValue().Int64())

	resp := protocol.InitResponse{B: []byte{0x80}}
	assert.Equal(t, int64(128), resp.PublicValue().Int64(), "encoding is unsigned")
}

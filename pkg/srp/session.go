package srp

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// clearer is implemented by key agreements that can zero their private value.
type clearer interface {
	clear()
}

// exportKey expands the session key K with HKDF using the session digest.
func exportKey(d Digest, key, info []byte, length int) ([]byte, error) {
	if len(key) == 0 {
		return nil, errors.New("session key not available")
	}
	if length <= 0 || length > 255*d.Size() {
		return nil, fmt.Errorf("invalid export length %d", length)
	}

	out := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(d.HashFunc(), key, nil, info), out); err != nil {
		return nil, fmt.Errorf("failed to export key: %w", err)
	}
	return out, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

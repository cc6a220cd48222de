package auth

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math/big"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/fzdarsky/srp6a/pkg/srp"
)

// ErrUnknownIdentity is returned by a VerifierSource that holds no record for an identity.
var ErrUnknownIdentity = errors.New("unknown identity")

// VerifierRecord is the password-equivalent state stored for one identity.
type VerifierRecord struct {
	Salt     []byte
	Verifier *big.Int
}

// VerifierSource looks up the verifier record of an identity.
type VerifierSource interface {
	Lookup(identity string) (*VerifierRecord, error)
}

// MemoryVerifiers is an in-memory VerifierSource for one group and digest.
type MemoryVerifiers struct {
	mu      sync.RWMutex
	group   *srp.Group
	digest  srp.Digest
	records map[string]*VerifierRecord
}

// NewMemoryVerifiers creates an empty verifier set.
func NewMemoryVerifiers(group *srp.Group, digest srp.Digest) *MemoryVerifiers {
	return &MemoryVerifiers{
		group:   group,
		digest:  digest,
		records: make(map[string]*VerifierRecord),
	}
}

// Add stores a precomputed record, replacing any existing one.
func (m *MemoryVerifiers) Add(identity string, record *VerifierRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[identity] = record
}

// Register generates a fresh salt and stores the verifier for identity and password.
func (m *MemoryVerifiers) Register(identity string, password []byte, saltLength int) (*VerifierRecord, error) {
	salt, err := srp.GenerateSalt(nil, saltLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	record := &VerifierRecord{
		Salt:     salt,
		Verifier: srp.ComputeVerifier(m.group, m.digest, salt, []byte(identity), password),
	}
	m.Add(identity, record)

	return record, nil
}

// Lookup implements VerifierSource.
func (m *MemoryVerifiers) Lookup(identity string) (*VerifierRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[identity]
	if !ok {
		return nil, ErrUnknownIdentity
	}
	return record, nil
}

// Len returns the number of stored records.
func (m *MemoryVerifiers) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// VerifierFileEntry is one record of a verifier file.
// Either Verifier or PasswordGenerator must be set; a generator is executed at load time
// and its output is used as the password.
type VerifierFileEntry struct {
	Identity          string `json:"identity"`
	Salt              string `json:"salt"`               // Base64-encoded
	Verifier          string `json:"verifier,omitempty"` // Base64-encoded, unsigned big-endian
	PasswordGenerator string `json:"password_generator,omitempty"`
}

// VerifierFile is the on-disk verifier store.
type VerifierFile struct {
	Group     string              `json:"group"`
	Digest    string              `json:"digest"`
	Verifiers []VerifierFileEntry `json:"verifiers"`
}

// LoadVerifierFile loads a verifier file into a new MemoryVerifiers.
// The file must have been written for the given group and digest.
func LoadVerifierFile(ctx context.Context, path string, group *srp.Group, digest srp.Digest) (*MemoryVerifiers, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read verifier file: %w", err)
	}

	var file VerifierFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse verifier file: %w", err)
	}

	if file.Group != group.Name || file.Digest != digest.String() {
		return nil, fmt.Errorf("verifier file is for %s/%s, configured %s/%s",
			file.Group, file.Digest, group.Name, digest)
	}

	verifiers := NewMemoryVerifiers(group, digest)
	for i, entry := range file.Verifiers {
		record, err := entry.record(ctx, group, digest)
		if err != nil {
			return nil, fmt.Errorf("invalid verifier entry %d: %w", i, err)
		}
		verifiers.Add(entry.Identity, record)
	}

	return verifiers, nil
}

func (e *VerifierFileEntry) record(ctx context.Context, group *srp.Group, digest srp.Digest) (*VerifierRecord, error) {
	if e.Identity == "" {
		return nil, fmt.Errorf("identity is required")
	}

	salt, err := base64.StdEncoding.DecodeString(e.Salt)
	if err != nil || len(salt) == 0 {
		return nil, fmt.Errorf("salt must be non-empty base64")
	}

	switch {
	case e.Verifier != "":
		v, err := base64.StdEncoding.DecodeString(e.Verifier)
		if err != nil {
			return nil, fmt.Errorf("verifier must be valid base64: %w", err)
		}
		return &VerifierRecord{Salt: salt, Verifier: new(big.Int).SetBytes(v)}, nil
	case e.PasswordGenerator != "":
		password, err := GeneratePassword(ctx, e.PasswordGenerator)
		if err != nil {
			return nil, err
		}
		defer clear(password)
		return &VerifierRecord{
			Salt:     salt,
			Verifier: srp.ComputeVerifier(group, digest, salt, []byte(e.Identity), password),
		}, nil
	default:
		return nil, fmt.Errorf("verifier or password_generator is required")
	}
}

// Save writes all records to path with owner-only permissions.
func (m *MemoryVerifiers) Save(path string) error {
	m.mu.RLock()
	file := VerifierFile{
		Group:  m.group.Name,
		Digest: m.digest.String(),
	}
	for _, identity := range slices.Sorted(maps.Keys(m.records)) {
		record := m.records[identity]
		file.Verifiers = append(file.Verifiers, VerifierFileEntry{
			Identity: identity,
			Salt:     base64.StdEncoding.EncodeToString(record.Salt),
			Verifier: base64.StdEncoding.EncodeToString(record.Verifier.Bytes()),
		})
	}
	m.mu.RUnlock()

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal verifier file: %w", err)
	}

	if err := os.WriteFile(filepath.Clean(path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write verifier file: %w", err)
	}

	return nil
}

// GeneratePassword executes a password generator and returns its trimmed stdout.
func GeneratePassword(ctx context.Context, generatorPath string) ([]byte, error) {
	//nolint:gosec // G204: Generator path comes from the operator-controlled verifier file
	cmd := exec.CommandContext(ctx, generatorPath)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("password generator exited with error: %s (stderr: %s)", exitErr, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("failed to execute password generator: %w", err)
	}

	password := []byte(strings.TrimSpace(string(output)))
	clear(output)
	if len(password) == 0 {
		return nil, fmt.Errorf("password generator returned empty password")
	}

	return password, nil
}

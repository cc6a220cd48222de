package srp

import (
	"crypto"
	"crypto/sha1" //nolint:gosec // G505: SHA-1 is required for the RFC 5054 reference groups
	"crypto/sha256"
	"crypto/sha512"
	stdhash "hash"
	"io"
	"strings"

	"github.com/bytemare/hash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Digest identifies the one-way hash function used for every SRP computation of a session.
// Both peers must use the same digest.
type Digest uint8

// Supported digests.
const (
	SHA1 Digest = iota + 1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA3_256
	SHA3_512
	BLAKE2b_256
)

// Hasher is the running state of a single digest computation.
type Hasher interface {
	io.Writer
	Sum(b []byte) []byte
	Size() int
}

type digestInfo struct {
	name   string
	id     crypto.Hash
	newStd func() stdhash.Hash
	fixed  bool // served by the bytemare/hash registry
}

var digests = map[Digest]digestInfo{
	SHA1:        {name: "sha1", id: crypto.SHA1, newStd: sha1.New},
	SHA224:      {name: "sha224", id: crypto.SHA224, newStd: sha256.New224},
	SHA256:      {name: "sha256", id: crypto.SHA256, newStd: sha256.New, fixed: true},
	SHA384:      {name: "sha384", id: crypto.SHA384, newStd: sha512.New384, fixed: true},
	SHA512:      {name: "sha512", id: crypto.SHA512, newStd: sha512.New, fixed: true},
	SHA3_256:    {name: "sha3-256", id: crypto.SHA3_256, newStd: sha3.New256},
	SHA3_512:    {name: "sha3-512", id: crypto.SHA3_512, newStd: sha3.New512},
	BLAKE2b_256: {name: "blake2b-256", id: crypto.BLAKE2b_256, newStd: newBlake2b256},
}

func newBlake2b256() stdhash.Hash {
	// Unkeyed BLAKE2b never fails.
	h, _ := blake2b.New256(nil)
	return h
}

// Digests returns all supported digests.
func Digests() []Digest {
	return []Digest{SHA1, SHA224, SHA256, SHA384, SHA512, SHA3_256, SHA3_512, BLAKE2b_256}
}

// ParseDigest returns the digest with the given name, e.g. "sha256" or "SHA3-256".
func ParseDigest(name string) (Digest, error) {
	want := normalizeDigestName(name)
	for d, info := range digests {
		if normalizeDigestName(info.name) == want {
			return d, nil
		}
	}
	return 0, &UnsupportedDigestError{Name: name}
}

func normalizeDigestName(name string) string {
	return strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(name)))
}

// Available reports whether d is a supported digest.
func (d Digest) Available() bool {
	_, ok := digests[d]
	return ok
}

// String returns the digest name.
func (d Digest) String() string {
	if info, ok := digests[d]; ok {
		return info.name
	}
	return "unknown"
}

// Size returns the output length in bytes.
func (d Digest) Size() int {
	return d.info().id.Size()
}

// New returns a fresh running state. States are never shared between calls.
// SHA-256, SHA-384 and SHA-512 are served by the bytemare/hash registry; other digests come from their
// reference implementations.
func (d Digest) New() Hasher {
	info := d.info()
	if info.fixed {
		if h := hash.FromCrypto(info.id); h.Available() {
			return h.GetHashFunction()
		}
	}
	return info.newStd()
}

// HashFunc returns a standard library constructor for HMAC and HKDF constructions.
func (d Digest) HashFunc() func() stdhash.Hash {
	return d.info().newStd
}

func (d Digest) info() digestInfo {
	info, ok := digests[d]
	if !ok {
		panic(&UnsupportedDigestError{Name: d.String()})
	}
	return info
}

// UnsupportedDigestError is returned when a digest name or identifier is not supported.
type UnsupportedDigestError struct {
	Name string
}

func (e *UnsupportedDigestError) Error() string {
	return "unsupported digest: " + e.Name
}

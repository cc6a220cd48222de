// Package srp provides SRP-6a (Secure Remote Password) key agreement with mutual session confirmation.
// This package implements the RFC 5054 key agreement and the M1/M2 proof exchange
//
//	M1 = H(H(N) XOR H(g) | H(I) | s | A | B | K)
//	M2 = H(A | M1 | K)
//
// on both the client and the server side.
//
//go:generate go tool mockgen -destination=mock_agreement.go -package=srp github.com/fzdarsky/srp6a/pkg/srp ClientAgreement,ServerAgreement
package srp

package srp

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateValue is returned when a peer's public value is congruent to 0 mod N.
	// The session must be discarded.
	ErrDegenerateValue = errors.New("degenerate public value")

	// ErrProofMismatch is returned when a received proof does not match the locally computed one.
	ErrProofMismatch = errors.New("proof mismatch")

	// ErrCredentialsMissing is returned by a key agreement asked for a secret before it generated credentials.
	ErrCredentialsMissing = errors.New("credentials not generated")

	// ErrNotVerified is returned when keying material is requested before mutual verification.
	ErrNotVerified = errors.New("session not verified")

	// ErrInvalidStateTransition identifies an operation invoked out of order.
	// It is carried by a *StateError panic and never returned.
	ErrInvalidStateTransition = errors.New("invalid state transition")
)

// State is the position of a session in the confirmation sequence.
type State uint8

// Session states. Clients end in StateProofSent, servers in StateProofVerified or StateRejected.
const (
	StateUninitialized State = iota
	StateCredentialsGenerated
	StateSecretComputed
	StateProofSent
	StateProofVerified
	StateRejected
	StateAborted
)

var stateNames = [...]string{
	StateUninitialized:        "uninitialized",
	StateCredentialsGenerated: "credentials-generated",
	StateSecretComputed:       "secret-computed",
	StateProofSent:            "proof-sent",
	StateProofVerified:        "proof-verified",
	StateRejected:             "rejected",
	StateAborted:              "aborted",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", uint8(s))
}

// StateError is the panic value raised when a session operation is called out of order.
// This is an integration bug, so it is not returned as an ordinary error.
type StateError struct {
	Op   string
	Have State
	Want State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("srp: %s called in state %s, requires %s", e.Op, e.Have, e.Want)
}

// Unwrap lets errors.Is match ErrInvalidStateTransition.
func (e *StateError) Unwrap() error {
	return ErrInvalidStateTransition
}

func requireState(op string, have, want State) {
	if have != want {
		panic(&StateError{Op: op, Have: have, Want: want})
	}
}

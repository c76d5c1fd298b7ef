// Package policy decides whether an identity may perform an operation on a
// listing. Authorization is a plain function of (identity, owner, operation)
// so the rule can be tested without any HTTP or storage machinery.
package policy

import (
	"errors"

	"github.com/google/uuid"
)

// Op classifies an operation by its effect on the resource.
type Op int

const (
	// OpRead covers operations that only observe state.
	OpRead Op = iota
	// OpWrite covers operations that mutate or delete state.
	OpWrite
)

var (
	// ErrUnauthenticated means no identity was presented for an operation
	// that requires one.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrNotOwner means the presented identity does not own the resource.
	ErrNotOwner = errors.New("only the owner may modify this listing")
)

// Authorize reports whether identity may perform op against a resource owned
// by ownerID. Reads are always allowed, including anonymous ones. Writes
// require an identity equal to the owner. A nil identity is anonymous.
func Authorize(identity *uuid.UUID, ownerID uuid.UUID, op Op) error {
	if op == OpRead {
		return nil
	}
	if identity == nil {
		return ErrUnauthenticated
	}
	if *identity != ownerID {
		return ErrNotOwner
	}
	return nil
}

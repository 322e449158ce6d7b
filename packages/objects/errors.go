package objects

import "github.com/cockroachdb/errors"

var (
	// ErrObjectNotFound is returned if no object exists at the requested Address.
	ErrObjectNotFound = errors.New("object not found")
	// ErrObjectExists is returned if an object is supposed to be created at an Address that is already taken.
	ErrObjectExists = errors.New("object already exists")
	// ErrNotDeletable is returned if a DeleteRef is requested for an object that was created as non-deletable.
	ErrNotDeletable = errors.New("object is not deletable")
	// ErrNotOwner is returned if a Signer tries to act on an object it does not own.
	ErrNotOwner = errors.New("signer does not own object")
	// ErrMaxOwnershipDepth is returned if the ownership chain of an object is deeper than MaxOwnershipDepth.
	ErrMaxOwnershipDepth = errors.New("maximum ownership depth exceeded")
)

package types

import "errors"

// Standard errors returned by store and search operations.
//
// Precondition and existence errors are synchronous and surface to the
// caller. Persistence and probe failures are deliberately absent: those are
// logged fire-and-forget and never returned from a mutating operation.
var (
	// ErrInvalidArgument reports a blank or malformed identifier (username,
	// group name, bookmark title or URL) supplied to an operation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrGroupExists reports a create for a group name already present.
	ErrGroupExists = errors.New("group already exists")

	// ErrGroupNotFound reports an operation referencing an absent group.
	ErrGroupNotFound = errors.New("no such group")

	// ErrBookmarkNotFound reports a removal referencing an absent bookmark title.
	ErrBookmarkNotFound = errors.New("no such bookmark")

	// ErrUserExists reports a registration for an already-registered username.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound reports an operation for an unregistered username.
	ErrUserNotFound = errors.New("no such user")
)

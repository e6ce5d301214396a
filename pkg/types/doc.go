// Package types defines the bookmark domain types, collaborator interfaces,
// and standard errors for the linkshelf storage system.
//
// The package is intentionally free of storage and network concerns: a
// Bookmark is an immutable value, a Group is a plain titled collection, and
// everything that talks to disk or the network lives under internal/.
package types

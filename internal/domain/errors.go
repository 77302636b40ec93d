package domain

import "errors"

var (
	// ErrIdentityMismatch is returned when a document's recorded site does
	// not match the site the operation runs against.
	ErrIdentityMismatch = errors.New("document belongs to a different site")

	// ErrNotFound is returned when a fetch by identity finds nothing.
	ErrNotFound = errors.New("post not found")

	// ErrNotYetSynced is returned when an operation requiring an existing
	// identity runs on a document with no sync reference.
	ErrNotYetSynced = errors.New("document has not been published yet")

	// ErrSiteNotConfigured is returned when no usable site exists in the
	// configuration.
	ErrSiteNotConfigured = errors.New("no site configured")
)

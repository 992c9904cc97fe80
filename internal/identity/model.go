package identity

import "errors"

// FID is a Farcaster user id.
type FID uint64

var (
	// ErrIdentityLookup wraps every failure to resolve a requester's custody address.
	ErrIdentityLookup = errors.New("identity lookup failed")
	// ErrUserNotFound is returned by a Directory for unknown fids or addresses.
	ErrUserNotFound = errors.New("user not found")
)

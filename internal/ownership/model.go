package ownership

import "errors"

// ErrOwnershipFetch wraps every failure to load the owner set.
var ErrOwnershipFetch = errors.New("ownership fetch failed")

// Collection identifies the tracked NFT collection. When TokenIDs is empty
// the whole contract is queried.
type Collection struct {
	Contract string
	TokenIDs []string
}

// Set is the owner addresses of a collection at request time. Membership
// is exact and case-sensitive.
type Set struct {
	members map[string]struct{}
	order   []string
}

// NewSet builds a set from addresses, dropping duplicates and keeping first-seen order.
func NewSet(addresses ...string) Set {
	s := Set{members: make(map[string]struct{}, len(addresses))}
	for _, a := range addresses {
		s.add(a)
	}
	return s
}

func (s *Set) add(a string) {
	if _, ok := s.members[a]; ok {
		return
	}
	s.members[a] = struct{}{}
	s.order = append(s.order, a)
}

// Contains reports exact membership.
func (s Set) Contains(addr string) bool {
	_, ok := s.members[addr]
	return ok
}

// Len returns the number of distinct owners.
func (s Set) Len() int {
	return len(s.order)
}

// Empty reports whether the set has no owners.
func (s Set) Empty() bool {
	return len(s.order) == 0
}

// Addresses returns the owners in first-seen order.
func (s Set) Addresses() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

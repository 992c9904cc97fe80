package ownership

import (
	"context"
	"fmt"
)

// Service loads owner sets for a fixed collection.
type Service struct {
	source     Source
	collection Collection
}

// NewService binds a source to the tracked collection.
func NewService(source Source, collection Collection) *Service {
	return &Service{source: source, collection: collection}
}

// Fetch makes a single attempt to load the current owner set. Errors wrap
// ErrOwnershipFetch.
func (s *Service) Fetch(ctx context.Context) (Set, error) {
	owners, err := s.source.Owners(ctx, s.collection)
	if err != nil {
		return Set{}, fmt.Errorf("%w: %s: %v", ErrOwnershipFetch, s.collection.Contract, err)
	}
	return NewSet(owners...), nil
}

// IsValidator reports whether custody is one of the owners.
func IsValidator(custody string, owners Set) bool {
	return owners.Contains(custody)
}

package ownership

import (
	"context"
	"sync"
)

// MemorySource is a concurrency-safe in-memory Source useful for unit tests
// and local development.
type MemorySource struct {
	mu     sync.RWMutex
	owners map[string][]string
	err    error
	calls  int
}

// NewMemorySource builds an empty in-memory source.
func NewMemorySource() *MemorySource {
	return &MemorySource{owners: make(map[string][]string)}
}

// SetOwners replaces the owners of contract.
func (s *MemorySource) SetOwners(contract string, owners ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[contract] = append([]string(nil), owners...)
}

// Fail makes every call return err. A nil err clears the failure.
func (s *MemorySource) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls returns how many times Owners was invoked.
func (s *MemorySource) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

func (s *MemorySource) Owners(_ context.Context, collection Collection) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return append([]string(nil), s.owners[collection.Contract]...), nil
}

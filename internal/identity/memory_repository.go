package identity

import (
	"context"
	"sync"
)

// MemoryDirectory is an in-memory Directory for tests and local development.
type MemoryDirectory struct {
	mu         sync.RWMutex
	custody    map[FID]string
	verified   map[string]FID
	failAddrs  map[string]error
	custodyErr error
}

// NewMemoryDirectory builds an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		custody:   make(map[FID]string),
		verified:  make(map[string]FID),
		failAddrs: make(map[string]error),
	}
}

// AddUser registers fid with a custody address. The custody address also
// counts as a verified address for reverse lookups.
func (d *MemoryDirectory) AddUser(fid FID, custody string, verified ...string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.custody[fid] = custody
	d.verified[custody] = fid
	for _, addr := range verified {
		d.verified[addr] = fid
	}
}

// FailAddress makes reverse lookups of address return err.
func (d *MemoryDirectory) FailAddress(address string, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failAddrs[address] = err
}

// FailCustody makes every custody lookup return err.
func (d *MemoryDirectory) FailCustody(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.custodyErr = err
}

func (d *MemoryDirectory) CustodyAddress(_ context.Context, fid FID) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.custodyErr != nil {
		return "", d.custodyErr
	}
	addr, ok := d.custody[fid]
	if !ok {
		return "", ErrUserNotFound
	}
	return addr, nil
}

func (d *MemoryDirectory) FIDForAddress(_ context.Context, address string) (FID, bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err, ok := d.failAddrs[address]; ok {
		return 0, false, err
	}
	fid, ok := d.verified[address]
	return fid, ok, nil
}

package identity

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Resolver maps requester fids to wallet addresses and back.
type Resolver struct {
	dir    Directory
	logger *slog.Logger
}

// NewResolver creates a resolver over the given directory.
func NewResolver(dir Directory, logger *slog.Logger) *Resolver {
	return &Resolver{dir: dir, logger: logger}
}

// ResolveCustodyAddress returns the custody address of fid. Every failure
// wraps ErrIdentityLookup.
func (r *Resolver) ResolveCustodyAddress(ctx context.Context, fid FID) (string, error) {
	addr, err := r.dir.CustodyAddress(ctx, fid)
	if err != nil {
		return "", fmt.Errorf("%w: fid %d: %v", ErrIdentityLookup, fid, err)
	}
	if addr == "" {
		return "", fmt.Errorf("%w: fid %d has no custody address", ErrIdentityLookup, fid)
	}
	return addr, nil
}

// ResolveIdentifiers reverse-resolves every address concurrently. Addresses
// whose lookup fails or finds nobody are dropped; the batch itself never
// fails. Results keep the order of the input addresses.
func (r *Resolver) ResolveIdentifiers(ctx context.Context, addresses []string) []FID {
	slots := make([]*FID, len(addresses))

	var g errgroup.Group
	for i, addr := range addresses {
		i, addr := i, addr
		g.Go(func() error {
			fid, found, err := r.dir.FIDForAddress(ctx, addr)
			if err != nil {
				if r.logger != nil {
					r.logger.Debug("reverse lookup failed", slog.String("address", addr), slog.Any("error", err))
				}
				return nil
			}
			if found {
				slots[i] = &fid
			}
			return nil
		})
	}
	_ = g.Wait()

	fids := make([]FID, 0, len(addresses))
	for _, fid := range slots {
		if fid != nil {
			fids = append(fids, *fid)
		}
	}
	return fids
}

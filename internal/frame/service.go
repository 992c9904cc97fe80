package frame

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bluntdao/blunt_frame/internal/audit"
	"github.com/bluntdao/blunt_frame/internal/catalog"
	"github.com/bluntdao/blunt_frame/internal/identity"
	"github.com/bluntdao/blunt_frame/internal/metrics"
	"github.com/bluntdao/blunt_frame/internal/ownership"
)

// Message is the authenticated part of an interaction.
type Message struct {
	RequesterFID identity.FID
}

// Request is everything a turn depends on. A nil Message means the request
// carried no (valid) interaction.
type Request struct {
	Message   *Message
	PageQuery *string
}

// HasMessage reports whether the request is an interaction.
func (r Request) HasMessage() bool {
	return r.Message != nil
}

// Deps aggregates the collaborators of Service.
type Deps struct {
	Catalog   *catalog.Catalog
	Resolver  *identity.Resolver
	Ownership *ownership.Service
	Recorder  audit.Recorder
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
	ShareURL  string
}

// Service answers "what card comes next" for each request.
type Service struct {
	catalog   *catalog.Catalog
	resolver  *identity.Resolver
	ownership *ownership.Service
	recorder  audit.Recorder
	metrics   *metrics.Metrics
	logger    *slog.Logger
	shareURL  string
}

// NewService constructs a frame service.
func NewService(d Deps) (*Service, error) {
	switch {
	case d.Catalog == nil:
		return nil, errors.New("catalog is required")
	case d.Resolver == nil:
		return nil, errors.New("identity resolver is required")
	case d.Ownership == nil:
		return nil, errors.New("ownership service is required")
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog:   d.Catalog,
		resolver:  d.Resolver,
		ownership: d.Ownership,
		recorder:  d.Recorder,
		metrics:   d.Metrics,
		logger:    logger,
		shareURL:  d.ShareURL,
	}, nil
}

// Handle produces the response for one request. It never fails: upstream
// errors degrade to the initial card.
func (s *Service) Handle(ctx context.Context, req Request) Response {
	start := time.Now()
	resp := s.handle(ctx, req)
	s.metrics.ObserveResponse(string(resp.Kind), time.Since(start))
	return resp
}

type checkResult struct {
	custody   string
	owners    ownership.Set
	ownerFIDs []identity.FID
}

func (s *Service) handle(ctx context.Context, req Request) Response {
	if !req.HasMessage() {
		return Initial()
	}

	res, err := s.check(ctx, req.Message.RequesterFID)
	if err != nil {
		stage := "unknown"
		switch {
		case errors.Is(err, identity.ErrIdentityLookup):
			stage = "identity"
		case errors.Is(err, ownership.ErrOwnershipFetch):
			stage = "ownership"
		}
		s.metrics.ObserveUpstreamError(stage)
		s.logger.Warn("validator check failed, showing initial frame",
			slog.Uint64("fid", uint64(req.Message.RequesterFID)),
			slog.String("stage", stage),
			slog.Any("error", err),
		)
		return Initial()
	}

	validator := ownership.IsValidator(res.custody, res.owners)

	var resp Response
	switch {
	case res.owners.Empty():
		resp = Empty()
	case validator:
		resp = Validator(s.shareURL)
	default:
		resp = Browse(s.catalog, ComputePage(req.PageQuery, s.catalog.Len()))
	}

	s.record(ctx, req.Message.RequesterFID, res, validator, resp.Kind)
	return resp
}

// check resolves the requester's custody address and the owner set
// concurrently. Owner fids are reverse-resolved once the set is known.
func (s *Service) check(ctx context.Context, fid identity.FID) (checkResult, error) {
	var res checkResult

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr, err := s.resolver.ResolveCustodyAddress(gctx, fid)
		if err != nil {
			return err
		}
		res.custody = addr
		return nil
	})
	g.Go(func() error {
		owners, err := s.ownership.Fetch(gctx)
		if err != nil {
			return err
		}
		res.owners = owners
		res.ownerFIDs = s.resolver.ResolveIdentifiers(gctx, owners.Addresses())
		return nil
	})
	if err := g.Wait(); err != nil {
		return checkResult{}, err
	}
	return res, nil
}

func (s *Service) record(ctx context.Context, fid identity.FID, res checkResult, validator bool, kind Kind) {
	if s.recorder == nil {
		return
	}
	ownerFIDs := make([]uint64, len(res.ownerFIDs))
	for i, f := range res.ownerFIDs {
		ownerFIDs[i] = uint64(f)
	}
	err := s.recorder.Record(ctx, audit.Check{
		RequesterFID: uint64(fid),
		Custody:      res.custody,
		Validator:    validator,
		Owners:       res.owners.Len(),
		OwnerFIDs:    ownerFIDs,
		Outcome:      string(kind),
		At:           time.Now().UTC(),
	})
	if err != nil {
		s.logger.Warn("record validator check", slog.Any("error", err))
	}
}

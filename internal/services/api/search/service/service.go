// Package service executes level searches against the injected stores
package service

import (
	"context"
	"time"

	perr "github.com/sspenst/thinky.gg-sub004/internal/platform/errors"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	ptime "github.com/sspenst/thinky.gg-sub004/internal/platform/time"
	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"

	"golang.org/x/sync/errgroup"
)

// Service defines the service contract for search
type Service interface{ domain.ServicePort }

// Option tunes a Svc
type Option func(*Svc)

// WithClock replaces the wall clock used for time_range windows
func WithClock(c ptime.Clock) Option { return func(s *Svc) { s.now = c.Or() } }

// WithQueryTimeout bounds each search, d <= 0 leaves only the caller's deadline
func WithQueryTimeout(d time.Duration) Option { return func(s *Svc) { s.timeout = d } }

// Svc implements the Service interface
type Svc struct {
	repos   domain.Repos
	now     ptime.Clock
	timeout time.Duration
}

// New creates a search service over repos
func New(repos domain.Repos, opts ...Option) *Svc {
	if repos.Levels == nil || repos.Completions == nil || repos.Users == nil {
		panic("search.Service requires level, completion and user repos")
	}
	s := &Svc{repos: repos, now: ptime.System}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Search builds the filter for in, then fetches one page and the total count concurrently
// userID is empty for anonymous requests
func (s *Svc) Search(ctx context.Context, in domain.SearchParams, userID string) (domain.Result, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	q := domain.Parse(in)
	filter, err := s.filter(ctx, q, userID)
	if err != nil {
		return domain.Result{}, fail(ctx, "filter", err)
	}

	var (
		levels []domain.Level
		total  int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		levels, err = s.repos.Levels.Find(gctx, filter, q.Order(), q.Skip(), domain.PageSize)
		return labelled(err, "levels.find")
	})
	g.Go(func() error {
		var err error
		total, err = s.repos.Levels.Count(gctx, filter)
		return labelled(err, "levels.count")
	})
	if err := g.Wait(); err != nil {
		return domain.Result{}, fail(ctx, "query", err)
	}

	if levels == nil {
		levels = []domain.Level{}
	}
	if userID != "" && len(levels) > 0 {
		s.annotate(ctx, userID, levels)
	}
	return domain.Result{Levels: levels, TotalRows: total}, nil
}

// filter resolves the lookups the query needs; author and progress lookups run concurrently
func (s *Svc) filter(ctx context.Context, q domain.Query, userID string) (domain.Filter, error) {
	f := q.Static(s.now())

	var (
		author   *domain.Predicate
		progress *domain.Predicate
	)
	g, gctx := errgroup.WithContext(ctx)
	if q.AuthorSet {
		g.Go(func() error {
			if q.Author == "" {
				p := domain.None()
				author = &p
				return nil
			}
			id, found, err := s.repos.Users.IDByName(gctx, q.Author)
			if err != nil {
				return labelled(err, "users.id_by_name")
			}
			p := domain.AuthorFilter(id, found)
			author = &p
			return nil
		})
	}
	if userID != "" && q.Show != domain.ShowAll {
		g.Go(func() error {
			ids, err := s.repos.Completions.LevelIDs(gctx, userID, q.Show.WantsComplete())
			if err != nil {
				return labelled(err, "completions.level_ids")
			}
			if p, ok := domain.ProgressFilter(q.Show, ids); ok {
				progress = &p
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if author != nil {
		f = append(f, *author)
	}
	if progress != nil {
		f = append(f, *progress)
	}
	return f, nil
}

// annotate sets userMoves on levels the user has a record for; failures only log
func (s *Svc) annotate(ctx context.Context, userID string, levels []domain.Level) {
	ids := make([]string, len(levels))
	for i, l := range levels {
		ids[i] = l.ID
	}
	moves, err := s.repos.Completions.Moves(ctx, userID, ids)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Str("component", "search").Msg("userMoves annotation skipped")
		return
	}
	for i := range levels {
		if m, ok := moves[levels[i].ID]; ok {
			levels[i].UserMoves = &m
		}
	}
}

// labelled tags a store error with the port call that produced it
func labelled(err error, op string) error {
	if err == nil {
		return nil
	}
	return perr.WithOp(perr.Wrap(err, perr.ErrorCodeDB, "store call failed"), op)
}

// fail logs the store detail and returns the opaque client error
func fail(ctx context.Context, stage string, err error) error {
	code, _ := perr.StoreErrorCode(err)
	ev := logger.C(ctx).Error().
		Err(err).
		Str("component", "search").
		Str("stage", stage).
		Uint16("store_code", uint16(code)).
		Bool("timeout", perr.IsTimeout(err)).
		Bool("retryable", perr.IsRetryable(err))
	if e, ok := perr.As(err); ok && e.Op() != "" {
		ev = ev.Str("op", e.Op())
	}
	ev.Msg("search failed")
	return perr.Wrap(err, perr.ErrorCodeDB, domain.MsgQueryFailed)
}

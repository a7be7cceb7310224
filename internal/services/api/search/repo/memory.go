package repo

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"
)

// Memory serves every search port from an in-process Dataset
type Memory struct {
	mu     sync.RWMutex
	levels []domain.Level
	names  map[string]string
	stats  map[string]map[string]domain.Completion
}

// NewMemory indexes ds; the slices are copied
func NewMemory(ds Dataset) *Memory {
	m := &Memory{
		levels: slices.Clone(ds.Levels),
		names:  make(map[string]string, len(ds.Users)),
		stats:  make(map[string]map[string]domain.Completion),
	}
	for _, u := range ds.Users {
		m.names[u.Name] = u.ID
	}
	for _, c := range ds.Completions {
		byLevel := m.stats[c.UserID]
		if byLevel == nil {
			byLevel = make(map[string]domain.Completion)
			m.stats[c.UserID] = byLevel
		}
		byLevel[c.LevelID] = c
	}
	return m
}

// Repos exposes m as every port
func (m *Memory) Repos() domain.Repos {
	return domain.Repos{Levels: m, Completions: m, Users: m}
}

// Find filters, sorts and pages the levels
func (m *Memory) Find(ctx context.Context, f domain.Filter, sort []domain.SortKey, skip, limit int) ([]domain.Level, error) {
	match, err := compile(f)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	var hits []domain.Level
	for _, l := range m.levels {
		if match(l) {
			hits = append(hits, l)
		}
	}
	m.mu.RUnlock()

	slices.SortStableFunc(hits, func(a, b domain.Level) int { return compareLevels(a, b, sort) })
	if skip >= len(hits) {
		return []domain.Level{}, nil
	}
	hits = hits[skip:]
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return slices.Clone(hits), nil
}

// Count returns how many levels match f
func (m *Memory) Count(ctx context.Context, f domain.Filter) (int64, error) {
	match, err := compile(f)
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, l := range m.levels {
		if match(l) {
			n++
		}
	}
	return n, nil
}

// LevelIDs lists the user's completed or attempted level ids
func (m *Memory) LevelIDs(ctx context.Context, userID string, complete bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []string{}
	for id, c := range m.stats[userID] {
		if c.Complete == complete {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Moves returns the user's move counts for levelIDs
func (m *Memory) Moves(ctx context.Context, userID string, levelIDs []string) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int, len(levelIDs))
	for _, id := range levelIDs {
		if c, ok := m.stats[userID][id]; ok {
			out[id] = c.Moves
		}
	}
	return out, nil
}

// IDByName looks a user up by exact name
func (m *Memory) IDByName(ctx context.Context, name string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.names[name]
	return id, ok, nil
}

// compile turns f into a level matcher
func compile(f domain.Filter) (func(domain.Level) bool, error) {
	tests := make([]func(domain.Level) bool, 0, len(f))
	for _, p := range f {
		t, err := compileOne(p)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return func(l domain.Level) bool {
		for _, t := range tests {
			if !t(l) {
				return false
			}
		}
		return true
	}, nil
}

func compileOne(p domain.Predicate) (func(domain.Level) bool, error) {
	switch p.Kind {
	case domain.KindNone:
		return func(domain.Level) bool { return false }, nil

	case domain.KindNotTrue:
		if _, ok := boolField(domain.Level{}, p.Field); !ok {
			return nil, unknownField(p)
		}
		return func(l domain.Level) bool { v, _ := boolField(l, p.Field); return !v }, nil

	case domain.KindRange:
		if _, ok := numField(domain.Level{}, p.Field); !ok {
			return nil, unknownField(p)
		}
		return func(l domain.Level) bool {
			v, _ := numField(l, p.Field)
			return inBound(v, p.Lower, p.Upper)
		}, nil

	case domain.KindRegex:
		if _, ok := strField(domain.Level{}, p.Field); !ok {
			return nil, unknownField(p)
		}
		pat := p.Pattern
		if p.Fold {
			pat = "(?i)" + pat
		}
		re, err := regexp.Compile(pat)
		if err != nil {
			return nil, fmt.Errorf("memory: %s regex: %w", p.Field, err)
		}
		return func(l domain.Level) bool { v, _ := strField(l, p.Field); return re.MatchString(v) }, nil

	case domain.KindEquals, domain.KindIn, domain.KindNotIn:
		if _, ok := strField(domain.Level{}, p.Field); !ok {
			return nil, unknownField(p)
		}
		set := p.IDs
		if p.Kind == domain.KindEquals {
			set = []string{p.Value}
		}
		want := p.Kind != domain.KindNotIn
		return func(l domain.Level) bool {
			v, _ := strField(l, p.Field)
			return slices.Contains(set, v) == want
		}, nil
	}
	return nil, fmt.Errorf("memory: unsupported predicate %s", p.Kind)
}

func unknownField(p domain.Predicate) error {
	return fmt.Errorf("memory: %s predicate on unknown field %q", p.Kind, p.Field)
}

func inBound(v float64, lo, hi *domain.Bound) bool {
	if lo != nil && (v < lo.Value || (!lo.Inclusive && v == lo.Value)) {
		return false
	}
	if hi != nil && (v > hi.Value || (!hi.Inclusive && v == hi.Value)) {
		return false
	}
	return true
}

func numField(l domain.Level, f string) (float64, bool) {
	switch f {
	case domain.FieldLeastMoves:
		return float64(l.LeastMoves), true
	case domain.FieldTS:
		return float64(l.TS), true
	case domain.FieldReviewsLaplace:
		return l.ReviewsLaplace, true
	case domain.FieldReviewsAvg:
		return l.ReviewsAvg, true
	case domain.FieldReviewsCount:
		return float64(l.ReviewsCount), true
	case domain.FieldPlayersBeaten:
		return float64(l.PlayersBeaten), true
	case domain.FieldDifficulty:
		return l.Difficulty, true
	}
	return 0, false
}

func strField(l domain.Level, f string) (string, bool) {
	switch f {
	case domain.FieldID:
		return l.ID, true
	case domain.FieldName:
		return l.Name, true
	case domain.FieldSlug:
		return l.Slug, true
	case domain.FieldAuthor:
		return l.Author.ID, true
	case domain.FieldData:
		return l.Data, true
	}
	return "", false
}

func boolField(l domain.Level, f string) (bool, bool) {
	switch f {
	case domain.FieldIsDraft:
		return l.IsDraft, true
	case domain.FieldIsDeleted:
		return l.IsDeleted, true
	}
	return false, false
}

func compareLevels(a, b domain.Level, keys []domain.SortKey) int {
	for _, k := range keys {
		var c int
		if av, ok := numField(a, k.Field); ok {
			bv, _ := numField(b, k.Field)
			switch {
			case av < bv:
				c = -1
			case av > bv:
				c = 1
			}
		} else {
			as, _ := strField(a, k.Field)
			bs, _ := strField(b, k.Field)
			c = strings.Compare(as, bs)
		}
		if c != 0 {
			return c * k.Dir
		}
	}
	return 0
}

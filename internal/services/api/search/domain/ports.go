package domain

import "context"

// LevelRepo runs a filter against the level store
type LevelRepo interface {
	Find(ctx context.Context, f Filter, sort []SortKey, skip, limit int) ([]Level, error)
	Count(ctx context.Context, f Filter) (int64, error)
}

// CompletionRepo reads a user's progress
type CompletionRepo interface {
	// LevelIDs returns the ids of levels the user completed (complete=true) or only attempted
	LevelIDs(ctx context.Context, userID string, complete bool) ([]string, error)
	// Moves returns the user's best move count keyed by level id, levels without a record are absent
	Moves(ctx context.Context, userID string, levelIDs []string) (map[string]int, error)
}

// UserRepo resolves authors by display name
type UserRepo interface {
	IDByName(ctx context.Context, name string) (id string, found bool, err error)
}

// Repos bundles the stores a search reads from
type Repos struct {
	Levels      LevelRepo
	Completions CompletionRepo
	Users       UserRepo
}

// ServicePort defines the service contract for search
type ServicePort interface {
	Search(ctx context.Context, in SearchParams, userID string) (Result, error)
}

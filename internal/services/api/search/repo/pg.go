package repo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/repokit"
	perr "github.com/sspenst/thinky.gg-sub004/internal/platform/errors"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/store"
	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"
)

// columns maps domain fields to levels columns
var columns = map[string]string{
	domain.FieldID:             "l.id",
	domain.FieldName:           "l.name",
	domain.FieldSlug:           "l.slug",
	domain.FieldAuthor:         "l.user_id",
	domain.FieldLeastMoves:     "l.least_moves",
	domain.FieldData:           "l.data",
	domain.FieldIsDraft:        "l.is_draft",
	domain.FieldIsDeleted:      "l.is_deleted",
	domain.FieldTS:             "l.ts",
	domain.FieldReviewsLaplace: "l.calc_reviews_score_laplace",
	domain.FieldReviewsAvg:     "l.calc_reviews_score_avg",
	domain.FieldReviewsCount:   "l.calc_reviews_count",
	domain.FieldPlayersBeaten:  "l.calc_stats_players_beaten",
	domain.FieldDifficulty:     "l.calc_difficulty_estimate",
}

type (
	// PG binds the search ports to a Postgres Queryer
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[domain.Repos] { return PG{} }

// Bind binds a Postgres queryer to every port
func (PG) Bind(q repokit.Queryer) domain.Repos {
	r := &queries{q: q}
	return domain.Repos{Levels: r, Completions: r, Users: r}
}

const levelColumns = `l.id, l.name, l.slug, l.user_id, coalesce(u.name, ''), l.least_moves, l.data,
l.is_draft, l.is_deleted, l.ts, l.calc_reviews_score_laplace, l.calc_reviews_score_avg,
l.calc_reviews_count, l.calc_stats_players_beaten, l.calc_difficulty_estimate`

func (r *queries) Find(ctx context.Context, f domain.Filter, sort []domain.SortKey, skip, limit int) ([]domain.Level, error) {
	var b sqlBuilder
	where, err := b.where(f)
	if err != nil {
		return nil, err
	}
	order, err := orderBy(sort)
	if err != nil {
		return nil, err
	}
	sql := "select " + levelColumns + `
from levels l
left join users u on u.id = l.user_id
where ` + where + `
order by ` + order + `
limit ` + b.arg(limit) + ` offset ` + b.arg(skip)

	out, err := store.Many(ctx, r.q, scanLevel, sql, b.args...)
	if out == nil && err == nil {
		out = []domain.Level{}
	}
	return out, err
}

func (r *queries) Count(ctx context.Context, f domain.Filter) (int64, error) {
	var b sqlBuilder
	where, err := b.where(f)
	if err != nil {
		return 0, err
	}
	return store.Scalar[int64](ctx, r.q, "select count(*) from levels l where "+where, b.args...)
}

func (r *queries) LevelIDs(ctx context.Context, userID string, complete bool) ([]string, error) {
	const sql = `select level_id from stats where user_id = $1 and complete = $2 order by level_id`
	out, err := store.Many(ctx, r.q, func(row store.Row) (string, error) {
		var id string
		return id, row.Scan(&id)
	}, sql, userID, complete)
	if out == nil && err == nil {
		out = []string{}
	}
	return out, err
}

func (r *queries) Moves(ctx context.Context, userID string, levelIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(levelIDs))
	if len(levelIDs) == 0 {
		return out, nil
	}
	const sql = `select level_id, moves from stats where user_id = $1 and level_id = any($2)`
	rows, err := r.q.Query(ctx, sql, userID, levelIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var moves int
		if err := rows.Scan(&id, &moves); err != nil {
			return nil, err
		}
		out[id] = moves
	}
	return out, rows.Err()
}

func (r *queries) IDByName(ctx context.Context, name string) (string, bool, error) {
	id, err := store.Scalar[string](ctx, r.q, `select id from users where name = $1`, name)
	if errors.Is(err, perr.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

func scanLevel(row store.Row) (domain.Level, error) {
	var l domain.Level
	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.Slug,
		&l.Author.ID,
		&l.Author.Name,
		&l.LeastMoves,
		&l.Data,
		&l.IsDraft,
		&l.IsDeleted,
		&l.TS,
		&l.ReviewsLaplace,
		&l.ReviewsAvg,
		&l.ReviewsCount,
		&l.PlayersBeaten,
		&l.Difficulty,
	)
	return l, err
}

// sqlBuilder collects positional args while rendering
type sqlBuilder struct{ args []any }

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

// where renders f as an AND of conditions, "true" when empty
func (b *sqlBuilder) where(f domain.Filter) (string, error) {
	if len(f) == 0 {
		return "true", nil
	}
	conds := make([]string, 0, len(f))
	for _, p := range f {
		c, err := b.cond(p)
		if err != nil {
			return "", err
		}
		conds = append(conds, c)
	}
	return strings.Join(conds, "\nand "), nil
}

func (b *sqlBuilder) cond(p domain.Predicate) (string, error) {
	if p.Kind == domain.KindNone {
		return "false", nil
	}
	col, ok := columns[p.Field]
	if !ok {
		return "", fmt.Errorf("pg: %s predicate on unknown field %q", p.Kind, p.Field)
	}
	switch p.Kind {
	case domain.KindNotTrue:
		return col + " is not true", nil
	case domain.KindRange:
		var parts []string
		if p.Lower != nil {
			parts = append(parts, col+pick(p.Lower.Inclusive, " >= ", " > ")+b.arg(p.Lower.Value)+"::float8")
		}
		if p.Upper != nil {
			parts = append(parts, col+pick(p.Upper.Inclusive, " <= ", " < ")+b.arg(p.Upper.Value)+"::float8")
		}
		if len(parts) == 0 {
			return col + " is not null", nil
		}
		return strings.Join(parts, " and "), nil
	case domain.KindRegex:
		return col + pick(p.Fold, " ~* ", " ~ ") + b.arg(p.Pattern), nil
	case domain.KindEquals:
		return col + " = " + b.arg(p.Value), nil
	case domain.KindIn:
		return col + " = any(" + b.arg(nonNil(p.IDs)) + "::text[])", nil
	case domain.KindNotIn:
		return col + " <> all(" + b.arg(nonNil(p.IDs)) + "::text[])", nil
	}
	return "", fmt.Errorf("pg: unsupported predicate %s", p.Kind)
}

// orderBy renders sort keys; ids compare bytewise to match Mongo ObjectID order
func orderBy(keys []domain.SortKey) (string, error) {
	if len(keys) == 0 {
		return `l.id collate "C" desc`, nil
	}
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		col, ok := columns[k.Field]
		if !ok {
			return "", fmt.Errorf("pg: sort on unknown field %q", k.Field)
		}
		if k.Field == domain.FieldID {
			col += ` collate "C"`
		}
		parts = append(parts, col+pick(k.Dir > 0, " asc", " desc"))
	}
	return strings.Join(parts, ", "), nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

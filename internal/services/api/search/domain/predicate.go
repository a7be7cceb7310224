package domain

import (
	"math"

	"github.com/sspenst/thinky.gg-sub004/internal/core/grid"
)

// Level fields the engine filters and sorts on, named as stored in Mongo
const (
	FieldID             = "_id"
	FieldName           = "name"
	FieldSlug           = "slug"
	FieldAuthor         = "userId"
	FieldLeastMoves     = "leastMoves"
	FieldData           = "data"
	FieldIsDraft        = "isDraft"
	FieldIsDeleted      = "isDeleted"
	FieldTS             = "ts"
	FieldReviewsLaplace = "calc_reviews_score_laplace"
	FieldReviewsAvg     = "calc_reviews_score_avg"
	FieldReviewsCount   = "calc_reviews_count"
	FieldPlayersBeaten  = "calc_stats_players_beaten"
	FieldDifficulty     = "calc_difficulty_estimate"
)

// Kind tags a Predicate variant
type Kind uint8

// Predicate kinds
const (
	KindRange Kind = iota + 1
	KindRegex
	KindEquals
	KindIn
	KindNotIn
	KindNotTrue
	KindNone
)

func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindRegex:
		return "regex"
	case KindEquals:
		return "equals"
	case KindIn:
		return "in"
	case KindNotIn:
		return "not_in"
	case KindNotTrue:
		return "not_true"
	case KindNone:
		return "none"
	default:
		return "unknown"
	}
}

// Bound is one side of a range
type Bound struct {
	Value     float64
	Inclusive bool
}

// Predicate is one filter fragment over a single field
// which fields are meaningful depends on Kind
type Predicate struct {
	Kind  Kind
	Field string

	// range
	Lower *Bound
	Upper *Bound

	// regex; Fold makes the match case-insensitive
	Pattern string
	Fold    bool

	// equals
	Value string

	// in / not in
	IDs []string
}

// Filter is the conjunction of its predicates
type Filter []Predicate

// With returns f plus ps, never aliasing f's backing array
func (f Filter) With(ps ...Predicate) Filter {
	out := make(Filter, 0, len(f)+len(ps))
	out = append(out, f...)
	return append(out, ps...)
}

// Has reports whether any predicate of kind k targets field
func (f Filter) Has(k Kind, field string) bool {
	for _, p := range f {
		if p.Kind == k && p.Field == field {
			return true
		}
	}
	return false
}

// Between is an inclusive range
func Between(field string, lo, hi float64) Predicate {
	return Predicate{Kind: KindRange, Field: field, Lower: &Bound{lo, true}, Upper: &Bound{hi, true}}
}

// AtLeast is field >= v
func AtLeast(field string, v float64) Predicate {
	return Predicate{Kind: KindRange, Field: field, Lower: &Bound{v, true}}
}

// After is field > v
func After(field string, v float64) Predicate {
	return Predicate{Kind: KindRange, Field: field, Lower: &Bound{v, false}}
}

// HalfOpen is lo <= field < hi; infinite bounds are dropped
func HalfOpen(field string, lo, hi float64) Predicate {
	p := Predicate{Kind: KindRange, Field: field}
	if !math.IsInf(lo, -1) {
		p.Lower = &Bound{lo, true}
	}
	if !math.IsInf(hi, 1) {
		p.Upper = &Bound{hi, false}
	}
	return p
}

// Matches is a regex on field; fold ignores case
func Matches(field, pattern string, fold bool) Predicate {
	return Predicate{Kind: KindRegex, Field: field, Pattern: pattern, Fold: fold}
}

// Equals is field == v
func Equals(field, v string) Predicate {
	return Predicate{Kind: KindEquals, Field: field, Value: v}
}

// In is field in ids; an empty set matches nothing
func In(field string, ids []string) Predicate {
	return Predicate{Kind: KindIn, Field: field, IDs: ids}
}

// NotIn is field not in ids; an empty set matches everything
func NotIn(field string, ids []string) Predicate {
	return Predicate{Kind: KindNotIn, Field: field, IDs: ids}
}

// NotTrue matches false and absent values
func NotTrue(field string) Predicate { return Predicate{Kind: KindNotTrue, Field: field} }

// None matches nothing
func None() Predicate { return Predicate{Kind: KindNone, Field: FieldID} }

// Visible excludes drafts and soft-deleted levels
func Visible() Filter {
	return Filter{NotTrue(FieldIsDraft), NotTrue(FieldIsDeleted)}
}

// BlockExclusions adds one "class absent from data" regex per set flag
func BlockExclusions(f grid.BlockFlags) []Predicate {
	classes := f.Excluded()
	out := make([]Predicate, 0, len(classes))
	for _, c := range classes {
		out = append(out, Matches(FieldData, c.Absent(), false))
	}
	return out
}

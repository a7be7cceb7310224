package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/core/grid"
	"github.com/sspenst/thinky.gg-sub004/internal/core/normalize"
)

// ShowFilter limits results by the requesting user's progress
type ShowFilter string

// show_filter values
const (
	ShowAll           ShowFilter = ""
	ShowHideWon       ShowFilter = "hide_won"
	ShowOnlyAttempted ShowFilter = "only_attempted"
)

// maxPage keeps skip arithmetic far from int overflow
const maxPage = 1 << 30

// windows maps time_range to its lookback
var windows = map[string]time.Duration{
	"Day":   24 * time.Hour,
	"Week":  7 * 24 * time.Hour,
	"Month": 30 * 24 * time.Hour,
	"Year":  365 * 24 * time.Hour,
}

// Steps is an inclusive leastMoves range
type Steps struct {
	Min float64
	Max float64
}

// Query is SearchParams after defaulting and parsing
type Query struct {
	// Name is the sanitized search text, empty when absent
	Name string

	// AuthorSet is true when searchAuthor was sent, Author is its sanitized value
	AuthorSet bool
	Author    string

	Steps      *Steps
	Window     time.Duration
	Sort       SortSpec
	Dir        int
	Page       int
	Show       ShowFilter
	Blocks     grid.BlockFlags
	Difficulty *Difficulty
}

// Parse turns raw parameters into a Query, invalid values take their defaults
func Parse(in SearchParams) Query {
	q := Query{
		Name:   normalize.Search(in.Search),
		Window: windows[in.TimeRange],
		Sort:   ResolveSort(in.SortBy),
		Dir:    SortDir(in.SortDir),
		Page:   1,
		Show:   parseShow(in.ShowFilter),
	}
	if strings.TrimSpace(in.SearchAuthor) != "" {
		q.AuthorSet = true
		q.Author = normalize.Search(in.SearchAuthor)
	}
	lo, okLo := parseInt(in.MinSteps)
	hi, okHi := parseInt(in.MaxSteps)
	if okLo && okHi {
		q.Steps = &Steps{Min: lo, Max: hi}
	}
	if p, ok := parseInt(in.Page); ok {
		q.Page = int(math.Max(math.Min(p, maxPage), 1))
	}
	if mask, ok := parseInt(in.BlockFilter); ok && mask > 0 && mask <= math.MaxInt32 {
		q.Blocks = grid.DecodeBlockFlags(int(mask))
	}
	if d, ok := DifficultyByName(in.DifficultyFilter); ok {
		q.Difficulty = &d
	}
	return q
}

// Skip is the number of filtered levels before this page
func (q Query) Skip() int { return (q.Page - 1) * PageSize }

// Order is the full sort including the _id tie-break
func (q Query) Order() []SortKey { return q.Sort.Order(q.Dir) }

// Static returns the fragments that need no store lookup
func (q Query) Static(now time.Time) Filter {
	f := Visible()
	if q.Name != "" {
		f = append(f, Matches(FieldName, q.Name, true))
	}
	if q.Steps != nil {
		f = append(f, Between(FieldLeastMoves, q.Steps.Min, q.Steps.Max))
	}
	if q.Window > 0 {
		f = append(f, After(FieldTS, float64(now.Add(-q.Window).Unix())))
	}
	f = append(f, BlockExclusions(q.Blocks)...)
	if q.Difficulty != nil {
		f = append(f, q.Difficulty.Predicate())
	}
	return append(f, q.Sort.Implied...)
}

// AuthorFilter is the fragment for a resolved author lookup
func AuthorFilter(id string, found bool) Predicate {
	if !found || id == "" {
		return None()
	}
	return Equals(FieldAuthor, id)
}

// ProgressFilter is the fragment for a show_filter given the looked-up id set
func ProgressFilter(s ShowFilter, ids []string) (Predicate, bool) {
	switch s {
	case ShowHideWon:
		return NotIn(FieldID, ids), true
	case ShowOnlyAttempted:
		return In(FieldID, ids), true
	default:
		return Predicate{}, false
	}
}

// WantsComplete is the completion flag whose level ids the show_filter needs
func (s ShowFilter) WantsComplete() bool { return s == ShowHideWon }

func parseShow(s string) ShowFilter {
	switch ShowFilter(s) {
	case ShowHideWon, ShowOnlyAttempted:
		return ShowFilter(s)
	default:
		return ShowAll
	}
}

// parseInt reads a decimal number and truncates it toward zero
func parseInt(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return math.Trunc(f), true
}

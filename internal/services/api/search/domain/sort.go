package domain

// SortBy names a sort_by value
type SortBy string

// Accepted sort_by values
const (
	SortLeastMoves    SortBy = "least_moves"
	SortTS            SortBy = "ts"
	SortReviewsScore  SortBy = "reviews_score"
	SortTotalReviews  SortBy = "total_reviews"
	SortPlayersBeaten SortBy = "players_beaten"
	SortDifficulty    SortBy = "calc_difficulty_estimate"
)

// SortKey orders by one field; Dir is 1 or -1
type SortKey struct {
	Field string
	Dir   int
}

// SortSpec is the resolved form of a sort_by value
type SortSpec struct {
	By      SortBy
	Keys    []string
	Implied []Predicate
}

var sortTable = map[SortBy]SortSpec{
	SortLeastMoves: {By: SortLeastMoves, Keys: []string{FieldLeastMoves}},
	SortTS:         {By: SortTS, Keys: []string{FieldTS}},
	SortReviewsScore: {
		By:      SortReviewsScore,
		Keys:    []string{FieldReviewsLaplace, FieldReviewsAvg, FieldReviewsCount},
		Implied: []Predicate{AtLeast(FieldReviewsAvg, 0)},
	},
	SortTotalReviews:  {By: SortTotalReviews, Keys: []string{FieldReviewsCount}},
	SortPlayersBeaten: {By: SortPlayersBeaten, Keys: []string{FieldPlayersBeaten}},
	SortDifficulty: {
		By:      SortDifficulty,
		Keys:    []string{FieldDifficulty},
		Implied: []Predicate{AtLeast(FieldDifficulty, 0)},
	},
}

// ResolveSort maps a sort_by value to its spec, unknown values resolve to ts
func ResolveSort(s string) SortSpec {
	if spec, ok := sortTable[SortBy(s)]; ok {
		return spec
	}
	return sortTable[SortTS]
}

// SortDir maps sort_dir to 1 for "asc" and -1 for anything else
func SortDir(s string) int {
	if s == "asc" {
		return 1
	}
	return -1
}

// Order returns the spec keys followed by the _id tie-break, all in direction dir
func (s SortSpec) Order(dir int) []SortKey {
	out := make([]SortKey, 0, len(s.Keys)+1)
	for _, k := range s.Keys {
		out = append(out, SortKey{Field: k, Dir: dir})
	}
	return append(out, SortKey{Field: FieldID, Dir: dir})
}

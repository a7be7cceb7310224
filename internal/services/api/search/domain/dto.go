// Package domain holds the level search contract: query parameters, filter fragments,
// sort keys, result DTOs and the repository ports
package domain

// PageSize is the fixed number of levels per page
const PageSize = 20

// MsgQueryFailed is the only message a failed search returns to clients
const MsgQueryFailed = "Error querying Levels"

// SearchParams is the raw query string of a search request
// every field is optional and malformed values fall back to their defaults
type SearchParams struct {
	Search           string `query:"search" json:"search,omitempty" example:"tricky"`
	SearchAuthor     string `query:"searchAuthor" json:"searchAuthor,omitempty" example:"sspenst"`
	MinSteps         string `query:"min_steps" json:"min_steps,omitempty" validate:"omitempty,numeric" example:"10"`
	MaxSteps         string `query:"max_steps" json:"max_steps,omitempty" validate:"omitempty,numeric" example:"40"`
	TimeRange        string `query:"time_range" json:"time_range,omitempty" validate:"omitempty,oneof=Day Week Month Year All" example:"Week"`
	SortBy           string `query:"sort_by" json:"sort_by,omitempty" validate:"omitempty,oneof=least_moves ts reviews_score total_reviews players_beaten calc_difficulty_estimate" example:"reviews_score"`
	SortDir          string `query:"sort_dir" json:"sort_dir,omitempty" example:"desc"`
	Page             string `query:"page" json:"page,omitempty" validate:"omitempty,numeric" example:"1"`
	ShowFilter       string `query:"show_filter" json:"show_filter,omitempty" validate:"omitempty,oneof=hide_won only_attempted" example:"hide_won"`
	BlockFilter      string `query:"block_filter" json:"block_filter,omitempty" validate:"omitempty,numeric" example:"2"`
	DifficultyFilter string `query:"difficulty_filter" json:"difficulty_filter,omitempty" example:"Masters"`
}

// Author is the populated level author
type Author struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Level is one search hit
type Level struct {
	ID             string  `json:"_id"`
	Name           string  `json:"name"`
	Slug           string  `json:"slug"`
	Author         Author  `json:"userId"`
	LeastMoves     int     `json:"leastMoves"`
	Data           string  `json:"data"`
	IsDraft        bool    `json:"isDraft"`
	IsDeleted      bool    `json:"isDeleted,omitempty"`
	TS             int64   `json:"ts"`
	ReviewsLaplace float64 `json:"calc_reviews_score_laplace"`
	ReviewsAvg     float64 `json:"calc_reviews_score_avg"`
	ReviewsCount   int     `json:"calc_reviews_count"`
	PlayersBeaten  int     `json:"calc_stats_players_beaten"`
	Difficulty     float64 `json:"calc_difficulty_estimate"`

	// UserMoves is the requesting user's best move count, set only for signed-in searches
	UserMoves *int `json:"userMoves,omitempty"`
}

// Result is one page of levels and the size of the whole filtered set
type Result struct {
	Levels    []Level `json:"levels"`
	TotalRows int64   `json:"totalRows"`
}

// Completion is a user's progress on one level
type Completion struct {
	UserID   string `json:"userId"`
	LevelID  string `json:"levelId"`
	Complete bool   `json:"complete"`
	Moves    int    `json:"moves"`
	TS       int64  `json:"ts"`
}

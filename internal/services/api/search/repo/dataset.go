package repo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"

	"github.com/gosimple/slug"
)

// Dataset is a fully resolved set of users, levels and completions ready to load into a backend
type Dataset struct {
	Users       []domain.Author
	Levels      []domain.Level
	Completions []domain.Completion
}

// Fixture is the human-edited JSON form of a Dataset
// levels and stats reference users and levels by name
type Fixture struct {
	Users  []FixtureUser  `json:"users"`
	Levels []FixtureLevel `json:"levels"`
	Stats  []FixtureStat  `json:"stats"`
}

// FixtureUser is a user entry
type FixtureUser struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name"`
}

// FixtureLevel is a level entry, Author is a user name
type FixtureLevel struct {
	ID             string  `json:"_id,omitempty"`
	Name           string  `json:"name"`
	Author         string  `json:"author"`
	LeastMoves     int     `json:"leastMoves"`
	Data           string  `json:"data"`
	IsDraft        bool    `json:"isDraft,omitempty"`
	IsDeleted      bool    `json:"isDeleted,omitempty"`
	TS             int64   `json:"ts,omitempty"`
	Age            int64   `json:"age,omitempty"`
	ReviewsLaplace float64 `json:"calc_reviews_score_laplace,omitempty"`
	ReviewsAvg     float64 `json:"calc_reviews_score_avg,omitempty"`
	ReviewsCount   int     `json:"calc_reviews_count,omitempty"`
	PlayersBeaten  int     `json:"calc_stats_players_beaten,omitempty"`
	Difficulty     float64 `json:"calc_difficulty_estimate,omitempty"`
}

// FixtureStat is a completion entry, User is a user name and Level a level name
type FixtureStat struct {
	User     string `json:"user"`
	Level    string `json:"level"`
	Complete bool   `json:"complete"`
	Moves    int    `json:"moves"`
	TS       int64  `json:"ts,omitempty"`
}

// ReadFixture decodes a fixture, rejecting unknown fields
func ReadFixture(r io.Reader) (Fixture, error) {
	var fx Fixture
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return Fixture{}, fmt.Errorf("fixture: %w", err)
	}
	return fx, nil
}

// Slug builds the "<author>/<level>" slug of a level
func Slug(author, name string) string { return author + "/" + slug.Make(name) }

// Resolve assigns ids with newID, links names to ids and computes slugs
// levels with Age set get ts = now - Age
func (fx Fixture) Resolve(newID func() string, now int64) (Dataset, error) {
	var ds Dataset
	users := make(map[string]string, len(fx.Users))
	for _, u := range fx.Users {
		name := strings.TrimSpace(u.Name)
		if name == "" {
			return Dataset{}, fmt.Errorf("fixture: user with empty name")
		}
		if _, dup := users[name]; dup {
			return Dataset{}, fmt.Errorf("fixture: duplicate user %q", name)
		}
		id := u.ID
		if id == "" {
			id = newID()
		}
		users[name] = id
		ds.Users = append(ds.Users, domain.Author{ID: id, Name: name})
	}

	levels := make(map[string]string, len(fx.Levels))
	slugs := make(map[string]bool, len(fx.Levels))
	for _, l := range fx.Levels {
		uid, ok := users[l.Author]
		if !ok {
			return Dataset{}, fmt.Errorf("fixture: level %q has unknown author %q", l.Name, l.Author)
		}
		if _, dup := levels[l.Name]; dup {
			return Dataset{}, fmt.Errorf("fixture: duplicate level %q", l.Name)
		}
		s := Slug(l.Author, l.Name)
		if slugs[s] {
			return Dataset{}, fmt.Errorf("fixture: level %q collides on slug %q", l.Name, s)
		}
		slugs[s] = true
		id := l.ID
		if id == "" {
			id = newID()
		}
		levels[l.Name] = id
		ts := l.TS
		if l.Age > 0 {
			ts = now - l.Age
		}
		ds.Levels = append(ds.Levels, domain.Level{
			ID:             id,
			Name:           l.Name,
			Slug:           s,
			Author:         domain.Author{ID: uid, Name: l.Author},
			LeastMoves:     l.LeastMoves,
			Data:           l.Data,
			IsDraft:        l.IsDraft,
			IsDeleted:      l.IsDeleted,
			TS:             ts,
			ReviewsLaplace: l.ReviewsLaplace,
			ReviewsAvg:     l.ReviewsAvg,
			ReviewsCount:   l.ReviewsCount,
			PlayersBeaten:  l.PlayersBeaten,
			Difficulty:     l.Difficulty,
		})
	}

	seen := make(map[[2]string]bool, len(fx.Stats))
	for _, st := range fx.Stats {
		uid, ok := users[st.User]
		if !ok {
			return Dataset{}, fmt.Errorf("fixture: stat for unknown user %q", st.User)
		}
		lid, ok := levels[st.Level]
		if !ok {
			return Dataset{}, fmt.Errorf("fixture: stat for unknown level %q", st.Level)
		}
		key := [2]string{uid, lid}
		if seen[key] {
			return Dataset{}, fmt.Errorf("fixture: duplicate stat %s/%s", st.User, st.Level)
		}
		seen[key] = true
		ds.Completions = append(ds.Completions, domain.Completion{
			UserID: uid, LevelID: lid, Complete: st.Complete, Moves: st.Moves, TS: st.TS,
		})
	}
	return ds, nil
}

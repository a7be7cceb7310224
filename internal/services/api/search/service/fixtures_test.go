package service

import (
	"fmt"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"
	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/repo"
)

var testNow = time.Unix(1_700_000_000, 0)

const (
	solver  = "u-solver"
	authorA = "u-ann"
	authorB = "u-ben"
)

// gridFor gives level i a data string; every third has a hole and every fifth a block
func gridFor(i int) string {
	switch {
	case i%3 == 0:
		return "40\n53"
	case i%5 == 0:
		return "4203"
	default:
		return "4003"
	}
}

// catalogue builds n visible levels, three drafts and one soft-deleted level
// review and move values repeat so sorts need their tie-breaks
func catalogue(n int) repo.Dataset {
	ds := repo.Dataset{Users: []domain.Author{{ID: authorA, Name: "Ann"}, {ID: authorB, Name: "Ben"}, {ID: solver, Name: "solver"}}}
	for i := 0; i < n; i++ {
		author := domain.Author{ID: authorA, Name: "Ann"}
		if i%2 == 1 {
			author = domain.Author{ID: authorB, Name: "Ben"}
		}
		avg := float64(i%4) - 1 // -1 means unreviewed
		ds.Levels = append(ds.Levels, domain.Level{
			ID:             fmt.Sprintf("lvl%03d", i),
			Name:           fmt.Sprintf("Level %d", i),
			Slug:           fmt.Sprintf("%s/level-%d", author.Name, i),
			Author:         author,
			LeastMoves:     100 + i%15,
			Data:           gridFor(i),
			TS:             testNow.Unix() - int64(i%7)*3600,
			ReviewsLaplace: float64(i % 3),
			ReviewsAvg:     avg,
			ReviewsCount:   i % 5,
			PlayersBeaten:  i % 6,
			Difficulty:     float64(i%9)*50 - 50,
		})
	}
	for i := 0; i < 3; i++ {
		ds.Levels = append(ds.Levels, domain.Level{
			ID: fmt.Sprintf("draft%d", i), Name: "Level draft", Author: domain.Author{ID: authorA, Name: "Ann"},
			LeastMoves: 100, Data: "4003", TS: testNow.Unix(), IsDraft: true,
		})
	}
	ds.Levels = append(ds.Levels, domain.Level{
		ID: "gone", Name: "Level gone", Author: domain.Author{ID: authorB, Name: "Ben"},
		LeastMoves: 100, Data: "4003", TS: testNow.Unix(), IsDeleted: true,
	})
	for i := 0; i < n; i += 4 {
		ds.Completions = append(ds.Completions, domain.Completion{UserID: solver, LevelID: fmt.Sprintf("lvl%03d", i), Complete: true, Moves: 100 + i%15})
	}
	for i := 1; i < n; i += 6 {
		ds.Completions = append(ds.Completions, domain.Completion{UserID: solver, LevelID: fmt.Sprintf("lvl%03d", i), Complete: false, Moves: 200})
	}
	return ds
}

//go:build integration_pg || integration_mongo

package repo

import (
	"context"
	"reflect"
	"testing"

	"github.com/sspenst/thinky.gg-sub004/internal/core/grid"
	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func objectIDGen() string { return primitive.NewObjectID().Hex() }

// backendDataset mirrors memFixture with ObjectID ids
func backendDataset(t *testing.T) (Dataset, map[string]string) {
	t.Helper()
	fx := Fixture{
		Users: []FixtureUser{{Name: "Alice"}, {Name: "bob"}},
		Levels: []FixtureLevel{
			{Name: "Tricky Start", Author: "Alice", LeastMoves: 10, Data: "4003", TS: 100, ReviewsAvg: 4},
			{Name: "holey", Author: "bob", LeastMoves: 110, Data: "40\n53", TS: 200, ReviewsAvg: -1},
			{Name: "blocky", Author: "Alice", LeastMoves: 111, Data: "4203", TS: 200, ReviewsAvg: 2},
			{Name: "draft", Author: "bob", LeastMoves: 5, Data: "43", TS: 300, IsDraft: true},
		},
		Stats: []FixtureStat{
			{User: "Alice", Level: "holey", Complete: true, Moves: 110},
			{User: "Alice", Level: "blocky", Complete: false, Moves: 140},
		},
	}
	ds, err := fx.Resolve(objectIDGen, 0)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	byName := map[string]string{}
	for _, l := range ds.Levels {
		byName[l.Name] = l.ID
	}
	for _, u := range ds.Users {
		byName["user:"+u.Name] = u.ID
	}
	return ds, byName
}

// exerciseBackend checks a store-backed Repos against the in-memory evaluator
func exerciseBackend(t *testing.T, repos domain.Repos, ds Dataset, ids map[string]string) {
	t.Helper()
	ctx := context.Background()
	mem := NewMemory(ds)
	alice := ids["user:Alice"]

	filters := map[string]domain.Filter{
		"visible":    domain.Visible(),
		"name":       domain.Visible().With(domain.Matches(domain.FieldName, "TRICKY", true)),
		"steps":      domain.Visible().With(domain.Between(domain.FieldLeastMoves, 0, 110)),
		"after":      domain.Visible().With(domain.After(domain.FieldTS, 100)),
		"no holes":   domain.Visible().With(domain.BlockExclusions(grid.BlockFlags{Hole: true})...),
		"author":     domain.Visible().With(domain.Equals(domain.FieldAuthor, alice)),
		"none":       domain.Visible().With(domain.None()),
		"in empty":   domain.Visible().With(domain.In(domain.FieldID, nil)),
		"not in":     domain.Visible().With(domain.NotIn(domain.FieldID, []string{ids["holey"]})),
		"reviews":    domain.Visible().With(domain.AtLeast(domain.FieldReviewsAvg, 0)),
		"difficulty": domain.Visible().With(domain.HalfOpen(domain.FieldDifficulty, 0, 45)),
	}
	for name, f := range filters {
		for _, by := range []string{"ts", "least_moves", "reviews_score"} {
			for _, dir := range []int{1, -1} {
				sort := domain.ResolveSort(by).Order(dir)
				want, _ := mem.Find(ctx, f, sort, 0, domain.PageSize)
				got, err := repos.Levels.Find(ctx, f, sort, 0, domain.PageSize)
				if err != nil {
					t.Fatalf("%s/%s Find: %v", name, by, err)
				}
				if !reflect.DeepEqual(ids2(got), ids2(want)) {
					t.Fatalf("%s/%s/%d ids = %v, want %v", name, by, dir, ids2(got), ids2(want))
				}
			}
		}
		wantN, _ := mem.Count(ctx, f)
		gotN, err := repos.Levels.Count(ctx, f)
		if err != nil || gotN != wantN {
			t.Fatalf("%s Count = %d, %v; want %d", name, gotN, err, wantN)
		}
	}

	got, _ := repos.Levels.Find(ctx, domain.Visible().With(domain.Equals(domain.FieldID, ids["Tricky Start"])), nil, 0, 1)
	if len(got) != 1 || got[0].Author.Name != "Alice" || got[0].Slug != "Alice/tricky-start" {
		t.Fatalf("populated level = %+v", got)
	}

	won, err := repos.Completions.LevelIDs(ctx, alice, true)
	if err != nil || !reflect.DeepEqual(won, []string{ids["holey"]}) {
		t.Fatalf("won = %v, %v", won, err)
	}
	moves, err := repos.Completions.Moves(ctx, alice, []string{ids["holey"], ids["blocky"], ids["draft"]})
	if err != nil || moves[ids["holey"]] != 110 || moves[ids["blocky"]] != 140 || len(moves) != 2 {
		t.Fatalf("moves = %v, %v", moves, err)
	}
	if id, ok, err := repos.Users.IDByName(ctx, "Alice"); err != nil || !ok || id != alice {
		t.Fatalf("IDByName = %q %v %v", id, ok, err)
	}
	if _, ok, err := repos.Users.IDByName(ctx, "carol"); err != nil || ok {
		t.Fatalf("missing user = %v %v", ok, err)
	}
}

func ids2(ls []domain.Level) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.ID)
	}
	return out
}

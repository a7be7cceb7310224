package repo

import (
	"context"
	"strings"
	"testing"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/repokit"
	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMongoFilter(t *testing.T) {
	t.Parallel()
	uid := primitive.NewObjectID()
	f := domain.Visible().With(
		domain.Matches(domain.FieldName, "tricky", true),
		domain.Between(domain.FieldLeastMoves, 1, 9),
		domain.HalfOpen(domain.FieldDifficulty, 45, 120),
		domain.Equals(domain.FieldAuthor, uid.Hex()),
		domain.NotIn(domain.FieldID, []string{uid.Hex(), "not-hex"}),
	)
	got, err := MongoFilter(f)
	if err != nil {
		t.Fatalf("MongoFilter: %v", err)
	}
	clauses := got[0].Value.(bson.A)
	if got[0].Key != "$and" || len(clauses) != len(f) {
		t.Fatalf("unexpected shape %v", got)
	}

	draft := clauses[0].(bson.D)
	if draft[0].Key != "isDraft" || draft[0].Value.(bson.D)[0].Key != "$ne" {
		t.Fatalf("draft clause %v", draft)
	}
	re := clauses[2].(bson.D)[0].Value.(primitive.Regex)
	if re.Pattern != "tricky" || re.Options != "i" {
		t.Fatalf("regex clause %v", re)
	}
	steps := clauses[3].(bson.D)[0].Value.(bson.D)
	if steps[0].Key != "$gte" || steps[1].Key != "$lte" {
		t.Fatalf("steps clause %v", steps)
	}
	diff := clauses[4].(bson.D)[0].Value.(bson.D)
	if diff[0].Key != "$gte" || diff[1].Key != "$lt" {
		t.Fatalf("difficulty clause %v", diff)
	}
	if v := clauses[5].(bson.D)[0].Value; v != uid {
		t.Fatalf("author clause %v", v)
	}
	nin := clauses[6].(bson.D)[0].Value.(bson.D)[0]
	if nin.Key != "$nin" || len(nin.Value.(bson.A)) != 1 {
		t.Fatalf("nin clause %v", nin)
	}
}

func TestMongoFilter_BadAuthorMatchesNothing(t *testing.T) {
	t.Parallel()
	got, err := MongoFilter(domain.Filter{domain.Equals(domain.FieldAuthor, "zzz")})
	if err != nil {
		t.Fatal(err)
	}
	c := got[0].Value.(bson.A)[0].(bson.D)[0]
	if c.Key != "_id" || len(c.Value.(bson.D)[0].Value.(bson.A)) != 0 {
		t.Fatalf("expected match-none clause, got %v", c)
	}
}

func TestMongoSortAndFilterEmpty(t *testing.T) {
	t.Parallel()
	s := mongoSort(domain.ResolveSort("least_moves").Order(1))
	if len(s) != 2 || s[0].Key != "leastMoves" || s[1].Key != "_id" || s[1].Value != 1 {
		t.Fatalf("sort = %v", s)
	}
	if got, _ := MongoFilter(nil); len(got) != 0 {
		t.Fatalf("empty filter = %v", got)
	}
}

func TestSQLWhere(t *testing.T) {
	t.Parallel()
	var b sqlBuilder
	where, err := b.where(domain.Visible().With(
		domain.Matches(domain.FieldName, "tricky", true),
		domain.Between(domain.FieldLeastMoves, 1, 9),
		domain.Matches(domain.FieldData, "^[^5]*$", false),
		domain.In(domain.FieldID, nil),
		domain.NotIn(domain.FieldID, []string{"x"}),
		domain.None(),
	))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"l.is_draft is not true",
		"l.is_deleted is not true",
		"l.name ~* $1",
		"l.least_moves >= $2::float8 and l.least_moves <= $3::float8",
		"l.data ~ $4",
		"l.id = any($5::text[])",
		"l.id <> all($6::text[])",
		"\nand false",
	} {
		if !strings.Contains(where, want) {
			t.Fatalf("where missing %q:\n%s", want, where)
		}
	}
	if len(b.args) != 6 {
		t.Fatalf("args = %v", b.args)
	}
	if ids, ok := b.args[4].([]string); !ok || ids == nil {
		t.Fatalf("empty id set must bind as a non-nil array, got %#v", b.args[4])
	}
}

func TestSQLOrderBy(t *testing.T) {
	t.Parallel()
	got, err := orderBy(domain.ResolveSort("reviews_score").Order(-1))
	if err != nil {
		t.Fatal(err)
	}
	want := `l.calc_reviews_score_laplace desc, l.calc_reviews_score_avg desc, l.calc_reviews_count desc, l.id collate "C" desc`
	if got != want {
		t.Fatalf("order = %s", got)
	}
	if _, err := orderBy([]domain.SortKey{{Field: "bogus", Dir: 1}}); err == nil {
		t.Fatal("expected unknown sort field error")
	}
}

type recQ struct {
	sql  []string
	args [][]any
}

func (r *recQ) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (r *recQ) Query(_ context.Context, sql string, args ...any) (repokit.Rows, error) {
	r.sql = append(r.sql, sql)
	r.args = append(r.args, args)
	return emptyRows{}, nil
}
func (r *recQ) QueryRow(_ context.Context, sql string, args ...any) repokit.Row {
	r.sql = append(r.sql, sql)
	r.args = append(r.args, args)
	return countRow(7)
}

type emptyRows struct{}

func (emptyRows) Next() bool        { return false }
func (emptyRows) Scan(...any) error { return nil }
func (emptyRows) Err() error        { return nil }
func (emptyRows) Close()            {}

type countRow int64

func (c countRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = int64(c)
	return nil
}

func TestPG_FindAndCountShareFilter(t *testing.T) {
	t.Parallel()
	q := &recQ{}
	repos := NewPG().Bind(q)
	f := domain.Visible().With(domain.Equals(domain.FieldAuthor, "u1"))

	levels, err := repos.Levels.Find(context.Background(), f, domain.ResolveSort("ts").Order(-1), 40, 20)
	if err != nil || levels == nil || len(levels) != 0 {
		t.Fatalf("Find = %v, %v", levels, err)
	}
	n, err := repos.Levels.Count(context.Background(), f)
	if err != nil || n != 7 {
		t.Fatalf("Count = %d, %v", n, err)
	}

	findWhere := q.sql[0][strings.Index(q.sql[0], "where"):strings.Index(q.sql[0], "order by")]
	if !strings.Contains(q.sql[1], strings.TrimSpace(findWhere)) {
		t.Fatalf("count where differs:\n%s\n%s", q.sql[0], q.sql[1])
	}
	if got := q.args[0]; len(got) != 3 || got[1] != 20 || got[2] != 40 {
		t.Fatalf("find args = %v", got)
	}
	if !strings.Contains(q.sql[0], "left join users u on u.id = l.user_id") {
		t.Fatal("find must populate the author")
	}
}

package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names
const (
	CollLevels = "levels"
	CollUsers  = "users"
	CollStats  = "stats"
)

// idFields hold ObjectIDs in Mongo and hex strings in the domain
var idFields = map[string]bool{domain.FieldID: true, domain.FieldAuthor: true}

type (
	levelDoc struct {
		ID             primitive.ObjectID `bson:"_id"`
		Name           string             `bson:"name"`
		Slug           string             `bson:"slug"`
		UserID         primitive.ObjectID `bson:"userId"`
		LeastMoves     int                `bson:"leastMoves"`
		Data           string             `bson:"data"`
		IsDraft        bool               `bson:"isDraft"`
		IsDeleted      bool               `bson:"isDeleted,omitempty"`
		TS             int64              `bson:"ts"`
		ReviewsLaplace float64            `bson:"calc_reviews_score_laplace"`
		ReviewsAvg     float64            `bson:"calc_reviews_score_avg"`
		ReviewsCount   int                `bson:"calc_reviews_count"`
		PlayersBeaten  int                `bson:"calc_stats_players_beaten"`
		Difficulty     float64            `bson:"calc_difficulty_estimate"`

		// Author is filled by $lookup and never stored
		Author *userDoc `bson:"author,omitempty"`
	}

	userDoc struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}

	statDoc struct {
		UserID   primitive.ObjectID `bson:"userId"`
		LevelID  primitive.ObjectID `bson:"levelId"`
		Complete bool               `bson:"complete"`
		Moves    int                `bson:"moves"`
		TS       int64              `bson:"ts"`
	}
)

// Mongo serves every search port from a Mongo database
type Mongo struct {
	levels *mongo.Collection
	users  *mongo.Collection
	stats  *mongo.Collection
}

// NewMongo binds the search collections of db
func NewMongo(db *mongo.Database) *Mongo {
	if db == nil {
		panic("search repo: nil mongo database")
	}
	return &Mongo{
		levels: db.Collection(CollLevels),
		users:  db.Collection(CollUsers),
		stats:  db.Collection(CollStats),
	}
}

// Repos exposes m as every port
func (m *Mongo) Repos() domain.Repos {
	return domain.Repos{Levels: m, Completions: m, Users: m}
}

// Find runs the filter as an aggregation and populates each author
func (m *Mongo) Find(ctx context.Context, f domain.Filter, sort []domain.SortKey, skip, limit int) ([]domain.Level, error) {
	match, err := MongoFilter(f)
	if err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{{{Key: "$match", Value: match}}}
	if len(sort) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: mongoSort(sort)}})
	}
	pipeline = append(pipeline, mongo.Pipeline{
		{{Key: "$skip", Value: int64(skip)}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: CollUsers},
			{Key: "localField", Value: domain.FieldAuthor},
			{Key: "foreignField", Value: "_id"},
			{Key: "pipeline", Value: mongo.Pipeline{{{Key: "$project", Value: bson.D{{Key: "name", Value: 1}}}}}},
			{Key: "as", Value: "author"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$author"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}...)
	cur, err := m.levels.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []levelDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Level, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// Count counts the documents matching f
func (m *Mongo) Count(ctx context.Context, f domain.Filter) (int64, error) {
	match, err := MongoFilter(f)
	if err != nil {
		return 0, err
	}
	return m.levels.CountDocuments(ctx, match)
}

// LevelIDs lists the user's completed or attempted level ids
func (m *Mongo) LevelIDs(ctx context.Context, userID string, complete bool) ([]string, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return []string{}, nil
	}
	cur, err := m.stats.Find(ctx,
		bson.D{{Key: "userId", Value: uid}, {Key: "complete", Value: complete}},
		options.Find().SetProjection(bson.D{{Key: "levelId", Value: 1}, {Key: "_id", Value: 0}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []statDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.LevelID.Hex())
	}
	return out, nil
}

// Moves returns the user's move counts for levelIDs
func (m *Mongo) Moves(ctx context.Context, userID string, levelIDs []string) (map[string]int, error) {
	out := make(map[string]int, len(levelIDs))
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil || len(levelIDs) == 0 {
		return out, nil
	}
	cur, err := m.stats.Find(ctx,
		bson.D{{Key: "userId", Value: uid}, {Key: "levelId", Value: bson.D{{Key: "$in", Value: objectIDs(levelIDs)}}}},
		options.Find().SetProjection(bson.D{{Key: "levelId", Value: 1}, {Key: "moves", Value: 1}, {Key: "_id", Value: 0}}),
	)
	if err != nil {
		return nil, err
	}
	var docs []statDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		out[d.LevelID.Hex()] = d.Moves
	}
	return out, nil
}

// IDByName looks a user up by exact name
func (m *Mongo) IDByName(ctx context.Context, name string) (string, bool, error) {
	var u userDoc
	err := m.users.FindOne(ctx,
		bson.D{{Key: "name", Value: name}},
		options.FindOne().SetProjection(bson.D{{Key: "_id", Value: 1}}),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return u.ID.Hex(), true, nil
}

// MongoFilter renders f as one $and of single-field clauses
func MongoFilter(f domain.Filter) (bson.D, error) {
	clauses := make(bson.A, 0, len(f))
	for _, p := range f {
		c, err := mongoClause(p)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, c)
	}
	if len(clauses) == 0 {
		return bson.D{}, nil
	}
	return bson.D{{Key: "$and", Value: clauses}}, nil
}

func mongoClause(p domain.Predicate) (bson.D, error) {
	var cond any
	switch p.Kind {
	case domain.KindNone:
		return bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{}}}}}, nil
	case domain.KindNotTrue:
		cond = bson.D{{Key: "$ne", Value: true}}
	case domain.KindRange:
		r := bson.D{}
		if p.Lower != nil {
			r = append(r, bson.E{Key: pick(p.Lower.Inclusive, "$gte", "$gt"), Value: p.Lower.Value})
		}
		if p.Upper != nil {
			r = append(r, bson.E{Key: pick(p.Upper.Inclusive, "$lte", "$lt"), Value: p.Upper.Value})
		}
		if len(r) == 0 {
			r = append(r, bson.E{Key: "$exists", Value: true})
		}
		cond = r
	case domain.KindRegex:
		re := primitive.Regex{Pattern: p.Pattern}
		if p.Fold {
			re.Options = "i"
		}
		cond = re
	case domain.KindEquals:
		if !idFields[p.Field] {
			cond = p.Value
			break
		}
		oid, err := primitive.ObjectIDFromHex(p.Value)
		if err != nil {
			return bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{}}}}}, nil
		}
		cond = oid
	case domain.KindIn:
		cond = bson.D{{Key: "$in", Value: idValues(p.Field, p.IDs)}}
	case domain.KindNotIn:
		cond = bson.D{{Key: "$nin", Value: idValues(p.Field, p.IDs)}}
	default:
		return nil, fmt.Errorf("mongo: unsupported predicate %s", p.Kind)
	}
	return bson.D{{Key: p.Field, Value: cond}}, nil
}

func mongoSort(keys []domain.SortKey) bson.D {
	out := make(bson.D, 0, len(keys))
	for _, k := range keys {
		out = append(out, bson.E{Key: k.Field, Value: k.Dir})
	}
	return out
}

func idValues(field string, ids []string) bson.A {
	if !idFields[field] {
		out := make(bson.A, 0, len(ids))
		for _, id := range ids {
			out = append(out, id)
		}
		return out
	}
	return objectIDs(ids)
}

// objectIDs converts hex ids, dropping malformed ones since no document can carry them
func objectIDs(ids []string) bson.A {
	out := make(bson.A, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func (d levelDoc) toDomain() domain.Level {
	l := domain.Level{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Slug:           d.Slug,
		Author:         domain.Author{ID: d.UserID.Hex()},
		LeastMoves:     d.LeastMoves,
		Data:           d.Data,
		IsDraft:        d.IsDraft,
		IsDeleted:      d.IsDeleted,
		TS:             d.TS,
		ReviewsLaplace: d.ReviewsLaplace,
		ReviewsAvg:     d.ReviewsAvg,
		ReviewsCount:   d.ReviewsCount,
		PlayersBeaten:  d.PlayersBeaten,
		Difficulty:     d.Difficulty,
	}
	if d.Author != nil {
		l.Author.Name = d.Author.Name
	}
	return l
}

func levelToDoc(l domain.Level) (levelDoc, error) {
	id, err := primitive.ObjectIDFromHex(l.ID)
	if err != nil {
		return levelDoc{}, fmt.Errorf("level %q: %w", l.Name, err)
	}
	uid, err := primitive.ObjectIDFromHex(l.Author.ID)
	if err != nil {
		return levelDoc{}, fmt.Errorf("level %q author: %w", l.Name, err)
	}
	return levelDoc{
		ID:             id,
		Name:           l.Name,
		Slug:           l.Slug,
		UserID:         uid,
		LeastMoves:     l.LeastMoves,
		Data:           l.Data,
		IsDraft:        l.IsDraft,
		IsDeleted:      l.IsDeleted,
		TS:             l.TS,
		ReviewsLaplace: l.ReviewsLaplace,
		ReviewsAvg:     l.ReviewsAvg,
		ReviewsCount:   l.ReviewsCount,
		PlayersBeaten:  l.PlayersBeaten,
		Difficulty:     l.Difficulty,
	}, nil
}

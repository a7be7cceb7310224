package repo

import (
	"context"
	"fmt"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/repokit"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Schema creates the Postgres tables and indexes the search reads
const Schema = `
create table if not exists users (
  id   text primary key,
  name text not null unique
);

create table if not exists levels (
  id                         text primary key,
  name                       text not null,
  slug                       text not null unique,
  user_id                    text not null references users(id),
  least_moves                integer not null,
  data                       text not null,
  is_draft                   boolean not null default false,
  is_deleted                 boolean not null default false,
  ts                         bigint not null,
  calc_reviews_score_laplace double precision not null default 0,
  calc_reviews_score_avg     double precision not null default -1,
  calc_reviews_count         integer not null default 0,
  calc_stats_players_beaten  integer not null default 0,
  calc_difficulty_estimate   double precision not null default -1
);

create index if not exists levels_visible_ts on levels (ts desc) where is_draft is not true and is_deleted is not true;
create index if not exists levels_user_id on levels (user_id);
create index if not exists levels_least_moves on levels (least_moves);

create table if not exists stats (
  user_id  text not null references users(id),
  level_id text not null references levels(id),
  complete boolean not null,
  moves    integer not null,
  ts       bigint not null default 0,
  primary key (user_id, level_id)
);
`

// SeedPG creates the schema and inserts ds in one transaction
func SeedPG(ctx context.Context, tx repokit.TxRunner, ds Dataset) error {
	return repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		if _, err := q.Exec(ctx, Schema); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
		for _, u := range ds.Users {
			if _, err := q.Exec(ctx,
				`insert into users (id, name) values ($1, $2) on conflict (id) do update set name = excluded.name`,
				u.ID, u.Name); err != nil {
				return fmt.Errorf("user %q: %w", u.Name, err)
			}
		}
		for _, l := range ds.Levels {
			if _, err := q.Exec(ctx, `
insert into levels (id, name, slug, user_id, least_moves, data, is_draft, is_deleted, ts,
  calc_reviews_score_laplace, calc_reviews_score_avg, calc_reviews_count, calc_stats_players_beaten, calc_difficulty_estimate)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
on conflict (id) do nothing`,
				l.ID, l.Name, l.Slug, l.Author.ID, l.LeastMoves, l.Data, l.IsDraft, l.IsDeleted, l.TS,
				l.ReviewsLaplace, l.ReviewsAvg, l.ReviewsCount, l.PlayersBeaten, l.Difficulty); err != nil {
				return fmt.Errorf("level %q: %w", l.Name, err)
			}
		}
		for _, c := range ds.Completions {
			if _, err := q.Exec(ctx, `
insert into stats (user_id, level_id, complete, moves, ts) values ($1, $2, $3, $4, $5)
on conflict (user_id, level_id) do update set complete = excluded.complete, moves = excluded.moves, ts = excluded.ts`,
				c.UserID, c.LevelID, c.Complete, c.Moves, c.TS); err != nil {
				return fmt.Errorf("stat %s/%s: %w", c.UserID, c.LevelID, err)
			}
		}
		return nil
	})
}

// EnsureMongoIndexes creates the indexes the search reads
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		CollLevels: {
			{Keys: bson.D{{Key: "isDraft", Value: 1}, {Key: "ts", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
			{Keys: bson.D{{Key: "leastMoves", Value: 1}}},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollUsers: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollStats: {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "levelId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "complete", Value: 1}}},
		},
	}
	for coll, models := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%s indexes: %w", coll, err)
		}
	}
	return nil
}

// SeedMongo upserts ds; every id must be ObjectID hex
func SeedMongo(ctx context.Context, db *mongo.Database, ds Dataset) error {
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		return err
	}
	upsert := options.Replace().SetUpsert(true)

	for _, u := range ds.Users {
		id, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Name, err)
		}
		doc := userDoc{ID: id, Name: u.Name}
		if _, err := db.Collection(CollUsers).ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc, upsert); err != nil {
			return fmt.Errorf("user %q: %w", u.Name, err)
		}
	}
	for _, l := range ds.Levels {
		doc, err := levelToDoc(l)
		if err != nil {
			return err
		}
		if _, err := db.Collection(CollLevels).ReplaceOne(ctx, bson.D{{Key: "_id", Value: doc.ID}}, doc, upsert); err != nil {
			return fmt.Errorf("level %q: %w", l.Name, err)
		}
	}
	for _, c := range ds.Completions {
		uid, err := primitive.ObjectIDFromHex(c.UserID)
		if err != nil {
			return fmt.Errorf("stat user: %w", err)
		}
		lid, err := primitive.ObjectIDFromHex(c.LevelID)
		if err != nil {
			return fmt.Errorf("stat level: %w", err)
		}
		doc := statDoc{UserID: uid, LevelID: lid, Complete: c.Complete, Moves: c.Moves, TS: c.TS}
		filter := bson.D{{Key: "userId", Value: uid}, {Key: "levelId", Value: lid}}
		if _, err := db.Collection(CollStats).ReplaceOne(ctx, filter, doc, upsert); err != nil {
			return fmt.Errorf("stat %s/%s: %w", c.UserID, c.LevelID, err)
		}
	}
	return nil
}

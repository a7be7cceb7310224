// Command thinky-seed loads a level fixture into the search store and can mint a session token
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/repokit"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/config"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/store"

	searchrepo "github.com/sspenst/thinky.gg-sub004/internal/services/api/search/repo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func main() {
	var (
		fFixture = flag.String("fixture", "", "path to the JSON level fixture")
		fBackend = flag.String("backend", "mongo", "target store: mongo | pg")
		fToken   = flag.String("token", "", "mint a session token for this fixture user name")
		fTTL     = flag.Duration("token-ttl", 24*time.Hour, "session token lifetime")
	)
	flag.Parse()

	if err := config.Load(".env"); err != nil {
		panic(err)
	}
	logger.Init(logger.FromEnv())
	l := logger.Get()

	if *fFixture == "" {
		l.Fatal().Msg("-fixture is required")
	}
	ds := mustDataset(*fFixture, *fBackend)

	root := config.New()
	ctx := context.Background()

	cfg := store.ConfigFromEnv(root, "thinky-seed")
	cfg.Redis.Enabled = false
	switch *fBackend {
	case "mongo":
		cfg.PG.Enabled = false
	case "pg":
		cfg.Mongo.Enabled = false
	default:
		l.Fatal().Str("backend", *fBackend).Msg("unknown backend")
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	switch *fBackend {
	case "mongo":
		if st.Mongo == nil {
			l.Fatal().Msg("SERVICE_MONGO_URI is not set")
		}
		err = searchrepo.SeedMongo(ctx, st.Mongo.DB, ds)
	case "pg":
		if st.PG == nil {
			l.Fatal().Msg("SERVICE_PGSQL_DBURL is not set")
		}
		err = searchrepo.SeedPG(ctx, repokit.WithBeginHooks(st.PG, repokit.StatementTimeout(0)), ds)
	}
	if err != nil {
		l.Fatal().Err(err).Msg("seed failed")
	}
	l.Info().
		Str("backend", *fBackend).
		Int("users", len(ds.Users)).
		Int("levels", len(ds.Levels)).
		Int("stats", len(ds.Completions)).
		Msg("seeded")

	if *fToken != "" {
		tok, err := mint(root, ds, *fToken, *fTTL)
		if err != nil {
			l.Fatal().Err(err).Msg("mint failed")
		}
		fmt.Println(tok)
	}
}

func mustDataset(path, backend string) searchrepo.Dataset {
	f, err := os.Open(path)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("open fixture")
	}
	defer f.Close()

	fx, err := searchrepo.ReadFixture(f)
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("read fixture")
	}
	newID := uuid.NewString
	if backend == "mongo" {
		newID = func() string { return primitive.NewObjectID().Hex() }
	}
	ds, err := fx.Resolve(newID, time.Now().Unix())
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("resolve fixture")
	}
	return ds
}

func mint(root config.Conf, ds searchrepo.Dataset, name string, ttl time.Duration) (string, error) {
	sc := root.Prefix("SESSION_")
	auth := httpkit.NewSessionAuth(sc.MustString("SECRET"), sc.MayString("COOKIE", "token"))
	for _, u := range ds.Users {
		if u.Name == name {
			return auth.Mint(u.ID, ttl)
		}
	}
	return "", fmt.Errorf("no fixture user named %q", name)
}

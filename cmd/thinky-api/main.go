// @title         thinky.gg search API
// @version       1.0
// @description   Level search and ranking over the thinky.gg catalogue

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/modkit"
	"github.com/sspenst/thinky.gg-sub004/internal/modkit/httpkit"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/config"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	phttp "github.com/sspenst/thinky.gg-sub004/internal/platform/net/http"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/net/middleware"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/store"

	"github.com/sspenst/thinky.gg-sub004/internal/services/api"
)

func main() {
	if err := config.Load(".env"); err != nil {
		panic(err)
	}
	logger.Init(logger.FromEnv())
	l := logger.Get()

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "thinky-api"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	guardCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := st.Guard(guardCtx); err != nil {
		l.Warn().Err(err).Msg("store not ready at startup")
	}
	cancel()

	// no secret means every search runs anonymously
	var session middleware.SessionPort
	sc := root.Prefix("SESSION_")
	if secret := sc.MayString("SECRET", ""); secret != "" {
		session = httpkit.NewSessionAuth(secret, sc.MayString("COOKIE", "token"))
	} else {
		l.Warn().Msg("SESSION_SECRET unset, progress filters disabled")
	}

	deps := modkit.FromStore(*l, root, st)
	srv := phttp.NewServer(apiCfg)
	api.Mount(srv.Router(), api.FromConfig(root, deps, session))

	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			l.Panic().Err(err).Msg("http server stopped")
		}
	case <-ctx.Done():
		l.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			l.Error().Err(err).Msg("graceful shutdown failed")
		}
	}
}

package pg

import (
	"context"
	"errors"
	"testing"

	kit "github.com/sspenst/thinky.gg-sub004/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()
	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpen_NewPoolError(t *testing.T) {
	kit.Serial(t)
	kit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("dial refused")
	})
	if _, err := Open(context.Background(), Config{URL: "postgres://u:p@h:5432/thinky"}, nil, nil); err == nil {
		t.Fatal("expected newPool error")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	kit.Serial(t)

	var seen *pgxpool.Config
	kit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return &pgxpool.Pool{}, nil
	})

	cfg := Config{
		URL:                "postgres://u:p@h:5432/thinky?sslmode=disable",
		AppName:            "thinky-api",
		MaxConns:           7,
		SlowMs:             250,
		StatementTimeoutMs: 10000,
	}
	mutated := false
	p, err := Open(context.Background(), cfg, nil, func(*pgxpool.Config) { mutated = true })
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !mutated {
		t.Fatal("pool mutator not called")
	}
	if seen.MaxConns != 7 {
		t.Fatalf("MaxConns = %d", seen.MaxConns)
	}
	params := seen.ConnConfig.RuntimeParams
	if params["statement_timeout"] != "10000" || params["application_name"] != "thinky-api" {
		t.Fatalf("runtime params = %v", params)
	}
	if p.SlowMs != 250 {
		t.Fatalf("SlowMs = %d", p.SlowMs)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()
	var p *PG
	p.Close()
	(&PG{}).Close()
}

//go:build integration_mongo

package repo

import (
	"context"
	"testing"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/logger"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/store/mdb"
	"github.com/sspenst/thinky.gg-sub004/internal/platform/testkit/containers"
)

func TestMongo_AgainstMemory(t *testing.T) {
	uri := containers.Mongo(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	m, err := mdb.Open(ctx, mdb.Config{URI: uri, DB: "thinky_test", Timeout: 10 * time.Second}, *logger.Get())
	if err != nil {
		t.Fatalf("mdb.Open: %v", err)
	}
	t.Cleanup(func() { _ = m.Close(context.Background()) })

	ds, ids := backendDataset(t)
	if err := SeedMongo(ctx, m.DB, ds); err != nil {
		t.Fatalf("SeedMongo: %v", err)
	}
	if err := SeedMongo(ctx, m.DB, ds); err != nil {
		t.Fatalf("SeedMongo must be idempotent: %v", err)
	}
	exerciseBackend(t, NewMongo(m.DB).Repos(), ds, ids)
}

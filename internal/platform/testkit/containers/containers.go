//go:build integration_pg || integration_mongo || integration_redis

// Package containers starts disposable databases for integration tests
package containers

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// start runs req and returns host:port for port; the container is terminated on cleanup
func start(t *testing.T, req tc.ContainerRequest, port string) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

// Postgres starts postgres:16-alpine and returns its DSN
func Postgres(t *testing.T) string {
	t.Helper()
	addr := start(t, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "thinky",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	}, "5432/tcp")
	return fmt.Sprintf("postgres://postgres:postgres@%s/thinky?sslmode=disable", addr)
}

// Mongo starts mongo:7 and returns its URI
func Mongo(t *testing.T) string {
	t.Helper()
	addr := start(t, tc.ContainerRequest{
		Image:        "mongo:7",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("27017/tcp"),
			wait.ForLog("Waiting for connections"),
		).WithDeadline(2 * time.Minute),
	}, "27017/tcp")
	return "mongodb://" + addr
}

// Redis starts redis:7-alpine and returns host:port
func Redis(t *testing.T) string {
	t.Helper()
	return start(t, tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(time.Minute),
	}, "6379/tcp")
}

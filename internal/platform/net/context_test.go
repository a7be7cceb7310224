package net_test

import (
	"context"
	"testing"

	pnet "github.com/sspenst/thinky.gg-sub004/internal/platform/net"
)

func TestRequestAndUser(t *testing.T) {
	t.Parallel()
	base := context.Background()

	t.Run("both set", func(t *testing.T) {
		ctx := pnet.WithUser(pnet.WithRequest(base, "req-123"), "614e1c5f8d2a4b0012345678")
		if got := pnet.RequestID(ctx); got != "req-123" {
			t.Fatalf("RequestID = %q", got)
		}
		if got := pnet.UserID(ctx); got != "614e1c5f8d2a4b0012345678" {
			t.Fatalf("UserID = %q", got)
		}
	})

	t.Run("anonymous", func(t *testing.T) {
		ctx := pnet.WithUser(pnet.WithRequest(base, ""), "")
		if ctx != base {
			t.Fatal("expected ctx unchanged when nothing is set")
		}
		if pnet.RequestID(ctx) != "" || pnet.UserID(ctx) != "" {
			t.Fatal("expected empty getters")
		}
	})
}

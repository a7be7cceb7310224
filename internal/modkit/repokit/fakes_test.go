package repokit

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sspenst/thinky.gg-sub004/internal/platform/store"
)

// recQ records every statement it sees
type recQ struct {
	sql  []string
	fail error
}

func (r *recQ) Exec(_ context.Context, sql string, _ ...any) (store.CommandTag, error) {
	r.sql = append(r.sql, sql)
	return nil, r.fail
}

func (r *recQ) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	r.sql = append(r.sql, sql)
	return nil, r.fail
}

func (r *recQ) QueryRow(_ context.Context, sql string, _ ...any) store.Row {
	r.sql = append(r.sql, sql)
	return nil
}

// recTx runs fn against its own recQ
type recTx struct {
	recQ
	tx     *recQ
	called int
}

func (r *recTx) Tx(_ context.Context, fn func(q Queryer) error) error {
	r.called++
	return fn(r.tx)
}

func panicMessage(t *testing.T, fn func()) (msg string) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic, got none")
		}
		msg = fmt.Sprint(r)
	}()
	fn()
	return ""
}

func mustPanicWith(t *testing.T, want string, fn func()) {
	t.Helper()
	if msg := panicMessage(t, fn); !strings.Contains(msg, want) {
		t.Fatalf("panic %q does not contain %q", msg, want)
	}
}

package repo

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sspenst/thinky.gg-sub004/internal/services/api/search/domain"

	"github.com/redis/go-redis/v9"
)

// fakeKV implements the two commands the cache issues
type fakeKV struct {
	redis.Cmdable
	data    map[string]string
	getErr  error
	setErr  error
	sets    int
	lastTTL time.Duration
}

func (f *fakeKV) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx, "get", key)
	switch v, ok := f.data[key]; {
	case f.getErr != nil:
		cmd.SetErr(f.getErr)
	case !ok:
		cmd.SetErr(redis.Nil)
	default:
		cmd.SetVal(v)
	}
	return cmd
}

func (f *fakeKV) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx, "set", key, value)
	f.sets++
	f.lastTTL = ttl
	if f.setErr != nil {
		cmd.SetErr(f.setErr)
		return cmd
	}
	f.data[key] = string(value.([]byte))
	cmd.SetVal("OK")
	return cmd
}

type countingCompletions struct {
	domain.CompletionRepo
	calls int
	err   error
}

func (c *countingCompletions) LevelIDs(ctx context.Context, userID string, complete bool) ([]string, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.CompletionRepo.LevelIDs(ctx, userID, complete)
}

func TestCachedCompletions_ReadThrough(t *testing.T) {
	t.Parallel()
	inner := &countingCompletions{CompletionRepo: memFixture()}
	kv := &fakeKV{data: map[string]string{}}
	c := NewCachedCompletions(inner, kv, 30*time.Second)

	for i := 0; i < 3; i++ {
		got, err := c.LevelIDs(context.Background(), "u1", true)
		if err != nil || !reflect.DeepEqual(got, []string{"b"}) {
			t.Fatalf("LevelIDs = %v, %v", got, err)
		}
	}
	if inner.calls != 1 || kv.sets != 1 || kv.lastTTL != 30*time.Second {
		t.Fatalf("calls=%d sets=%d ttl=%v", inner.calls, kv.sets, kv.lastTTL)
	}
	if _, ok := kv.data[CompletionKey("u1", true)]; !ok {
		t.Fatalf("missing key, have %v", kv.data)
	}
	moves, err := c.Moves(context.Background(), "u1", []string{"c"})
	if err != nil || moves["c"] != 140 {
		t.Fatalf("Moves = %v, %v", moves, err)
	}
}

func TestCachedCompletions_Degrades(t *testing.T) {
	t.Parallel()
	inner := &countingCompletions{CompletionRepo: memFixture()}
	kv := &fakeKV{data: map[string]string{CompletionKey("u1", false): "{not json"}, setErr: errors.New("read only")}
	c := NewCachedCompletions(inner, kv, time.Minute)

	got, err := c.LevelIDs(context.Background(), "u1", false)
	if err != nil || !reflect.DeepEqual(got, []string{"c"}) {
		t.Fatalf("malformed entry: %v, %v", got, err)
	}

	kv.getErr = errors.New("connection refused")
	if _, err := c.LevelIDs(context.Background(), "u1", true); err != nil {
		t.Fatalf("redis outage must fall through: %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("inner calls = %d", inner.calls)
	}

	inner.err = errors.New("mongo down")
	if _, err := c.LevelIDs(context.Background(), "u1", true); err == nil {
		t.Fatal("inner failure must surface")
	}
}

func TestNewCachedCompletions_Disabled(t *testing.T) {
	t.Parallel()
	inner := memFixture()
	if got := NewCachedCompletions(inner, nil, time.Minute); got != domain.CompletionRepo(inner) {
		t.Fatal("nil client must return inner")
	}
	if got := NewCachedCompletions(inner, &fakeKV{}, 0); got != domain.CompletionRepo(inner) {
		t.Fatal("zero ttl must return inner")
	}
}

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type fakeStore struct {
	values   map[string]string
	counters map[string]int64
	expires  map[string]time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		values:   map[string]string{},
		counters: map[string]int64{},
		expires:  map[string]time.Duration{},
	}
}

func (f *fakeStore) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeStore) Get(_ context.Context, key string) *redis.StringCmd {
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (f *fakeStore) SetNX(_ context.Context, key string, value any, _ time.Duration) *redis.BoolCmd {
	if _, exists := f.values[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	f.values[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeStore) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counters[key]++
	return redis.NewIntResult(f.counters[key], nil)
}

func (f *fakeStore) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeStore) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(f.values, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestIncrWithTTLSetsExpiryOnce(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	client := &Client{store: store}

	count, err := client.IncrWithTTL(ctx, "es:rate_limit:login", time.Minute)
	if err != nil {
		t.Fatalf("IncrWithTTL: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}
	if store.expires["es:rate_limit:login"] != time.Minute {
		t.Fatal("expected TTL attached on the creating increment")
	}

	count, err = client.IncrWithTTL(ctx, "es:rate_limit:login", time.Hour)
	if err != nil {
		t.Fatalf("IncrWithTTL: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if store.expires["es:rate_limit:login"] != time.Minute {
		t.Fatal("TTL must not be reset on later increments")
	}
}

func TestSetNXFirstWriterWins(t *testing.T) {
	ctx := context.Background()
	client := &Client{store: newFakeStore()}

	stored, err := client.SetNX(ctx, "es:idempotency:orders:key1", "record", time.Hour)
	if err != nil || !stored {
		t.Fatalf("first SetNX should store: stored=%v err=%v", stored, err)
	}
	stored, err = client.SetNX(ctx, "es:idempotency:orders:key1", "other", time.Hour)
	if err != nil {
		t.Fatalf("SetNX: %v", err)
	}
	if stored {
		t.Fatal("second SetNX must lose")
	}

	value, err := client.Get(ctx, "es:idempotency:orders:key1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if value != "record" {
		t.Fatalf("expected first value kept, got %q", value)
	}
}

func TestGetMissingKeyReturnsNil(t *testing.T) {
	client := &Client{store: newFakeStore()}
	if _, err := client.Get(context.Background(), "absent"); err != redis.Nil {
		t.Fatalf("expected redis.Nil, got %v", err)
	}
}

func TestDelRemovesKeys(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	client := &Client{store: store}

	if _, err := client.SetNX(ctx, "k", "v", 0); err != nil {
		t.Fatalf("SetNX: %v", err)
	}
	if err := client.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, err := client.Get(ctx, "k"); err != redis.Nil {
		t.Fatal("expected key removed")
	}
}

func TestKeyNamespacing(t *testing.T) {
	client := &Client{}
	if got := client.IdempotencyKey("orders", "abc"); got != "es:idempotency:orders:abc" {
		t.Fatalf("unexpected idempotency key %s", got)
	}
	if got := client.RateLimitKey(" login "); got != "es:rate_limit:login" {
		t.Fatalf("unexpected rate limit key %s", got)
	}
}

func TestUninitializedClientErrors(t *testing.T) {
	var client Client
	if _, err := client.Get(context.Background(), "k"); err != errNotInitialized {
		t.Fatalf("expected initialization error, got %v", err)
	}
	if err := client.Ping(context.Background()); err != errNotInitialized {
		t.Fatalf("expected initialization error, got %v", err)
	}
}

package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"

	"github.com/edulab/stepwise/internal/adapters/redis"
	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/ports"
)

func newTestStore(t *testing.T, opts ...redis.Option) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	return redis.NewFromClient(client, opts...), mr
}

func TestRedisStore_Contract(t *testing.T) {
	store, _ := newTestStore(t)
	ports.RunTimelineStoreContract(t, store)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newTestStore(t, redis.WithTTL(time.Second))
	ctx := context.Background()

	snap := &domain.TimelineSnapshot{Language: "python", Status: domain.StatusPaused}
	if err := store.Save(ctx, "ephemeral", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := store.Load(ctx, "ephemeral"); err != nil {
		t.Fatalf("Load before expiry failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := store.Load(ctx, "ephemeral"); err != domain.ErrSessionNotFound {
		t.Errorf("Load after expiry = %v, want ErrSessionNotFound", err)
	}
}

func TestRedisStore_KeyPrefix(t *testing.T) {
	store, mr := newTestStore(t, redis.WithPrefix("edu:timeline:"))
	ctx := context.Background()

	snap := &domain.TimelineSnapshot{Language: "python"}
	if err := store.Save(ctx, "abc", snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !mr.Exists("edu:timeline:abc") {
		t.Error("expected key edu:timeline:abc in redis")
	}
}

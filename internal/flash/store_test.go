package flash

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/tutor-helpdesk/internal/domain"
)

// fakeRedis implements the two commands the store uses.
type fakeRedis struct {
	redis.Cmdable
	data   map[string]string
	ttls   map[string]time.Duration
	setErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) GetDel(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	delete(f.data, key)
	return redis.NewStringResult(v, nil)
}

func TestRedisStoreTakeOnce(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	id, err := store.Put(ctx, domain.Flash{Category: domain.FlashSuccess, Message: "Ticket created successfully!"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if client.ttls[keyPrefix+id] != time.Minute {
		t.Errorf("expected ttl to be applied, got %s", client.ttls[keyPrefix+id])
	}

	got, err := store.Take(ctx, id)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	if got == nil || got.Category != domain.FlashSuccess || got.Message != "Ticket created successfully!" {
		t.Fatalf("unexpected flash %+v", got)
	}

	again, err := store.Take(ctx, id)
	if err != nil || again != nil {
		t.Fatalf("expected flash to be consumed, got %+v %v", again, err)
	}
}

func TestRedisStoreIgnoresMalformedID(t *testing.T) {
	store := NewRedisStore(newFakeRedis(), time.Minute)
	got, err := store.Take(context.Background(), "../../etc")
	if err != nil || got != nil {
		t.Fatalf("expected nil, got %+v %v", got, err)
	}
}

func TestRedisStorePutError(t *testing.T) {
	client := newFakeRedis()
	client.setErr = errors.New("connection refused")
	store := NewRedisStore(client, time.Minute)
	if _, err := store.Put(context.Background(), domain.Flash{}); err == nil {
		t.Fatal("expected error")
	}
}

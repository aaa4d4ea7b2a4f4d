package persistence

import (
	"context"
	"testing"

	"github.com/spec-kit/tutor-helpdesk/internal/config"
)

func TestRedisOptions(t *testing.T) {
	opts := redisOptions(config.RedisConfig{Addr: "cache:6379", Password: "pw", DB: 3})
	if opts.Addr != "cache:6379" || opts.Password != "pw" || opts.DB != 3 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.ReadTimeout <= 0 || opts.WriteTimeout <= 0 {
		t.Fatal("expected bounded read and write timeouts")
	}
}

func TestNilRedisPing(t *testing.T) {
	var r *Redis
	if err := r.Ping(context.Background()); err == nil {
		t.Fatal("expected error for unconfigured client")
	}
	r.Close()
}

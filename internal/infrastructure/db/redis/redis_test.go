package redis

import (
	"context"
	"testing"
	"time"

	"github.com/wanderly/auth-service/internal/infrastructure/config"
)

func TestConnect_UnreachableAddress(t *testing.T) {
	// Port 0 is never dialable; the ping must fail fast within the
	// configured timeout instead of handing back a dead client.
	cfg := config.RedisConfig{Addr: "127.0.0.1:0", Timeout: 100 * time.Millisecond}

	client, err := Connect(context.Background(), cfg)
	if err == nil {
		_ = client.Close()
		t.Fatalf("expected connection error for unreachable address")
	}
}

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/config"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	if err := InitRedis(&config.RedisConfig{Enabled: false}); err != nil {
		t.Fatalf("init disabled redis: %v", err)
	}
	ctx := context.Background()
	if Enabled() {
		t.Fatalf("cache should be disabled")
	}
	if err := SetCategories(ctx, []string{"gamer"}, time.Minute); err != nil {
		t.Fatalf("set on disabled cache: %v", err)
	}
	var out []string
	hit, err := GetCategories(ctx, &out)
	if err != nil || hit {
		t.Fatalf("disabled cache must miss, hit=%v err=%v", hit, err)
	}
	if err := InvalidateCatalog(ctx); err != nil {
		t.Fatalf("invalidate on disabled cache: %v", err)
	}
}

func TestBuildKeyUsesPrefix(t *testing.T) {
	if got := BuildKey(" auth:admin:1 "); got != redisPrefix+":auth:admin:1" {
		t.Fatalf("unexpected key: %s", got)
	}
	if got := BuildKey(""); got != redisPrefix {
		t.Fatalf("unexpected empty key: %s", got)
	}
}

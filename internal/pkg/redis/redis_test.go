package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func connectOrSkip(t *testing.T) *Client {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = "redis://127.0.0.1:6379/15"
	}
	c, err := Connect(url, "folio-test-"+uuid.NewString())
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestKey(t *testing.T) {
	c := &Client{prefix: "folio"}
	if got := c.Key("rl", "1.2.3.4"); got != "folio:rl:1.2.3.4" {
		t.Fatalf("Key = %q", got)
	}
	bare := &Client{}
	if got := bare.Key("a", "b"); got != "a:b" {
		t.Fatalf("Key without prefix = %q", got)
	}
}

func TestHitCountsWithinWindow(t *testing.T) {
	c := connectOrSkip(t)
	ctx := context.Background()
	key := c.Key("hit")
	t.Cleanup(func() { _ = c.Del(ctx, key) })

	for want := int64(1); want <= 3; want++ {
		n, ttl, err := c.Hit(ctx, key, time.Minute)
		if err != nil {
			t.Fatalf("Hit: %v", err)
		}
		if n != want {
			t.Fatalf("count = %d, want %d", n, want)
		}
		if ttl <= 0 || ttl > time.Minute {
			t.Fatalf("ttl = %v", ttl)
		}
	}
}

func TestClaimOnlyOnce(t *testing.T) {
	c := connectOrSkip(t)
	ctx := context.Background()
	key := c.Key("claim")
	t.Cleanup(func() { _ = c.Del(ctx, key) })

	first, err := c.Claim(ctx, key, time.Minute)
	if err != nil || !first {
		t.Fatalf("first claim = %v, %v", first, err)
	}
	second, err := c.Claim(ctx, key, time.Minute)
	if err != nil || second {
		t.Fatalf("second claim = %v, %v", second, err)
	}
}

func TestMarkKeepsExpiry(t *testing.T) {
	c := connectOrSkip(t)
	ctx := context.Background()
	key := c.Key("mark")
	t.Cleanup(func() { _ = c.Del(ctx, key) })

	if _, err := c.Claim(ctx, key, time.Minute); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if err := c.Mark(ctx, key, "1"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	val, err := c.Get(ctx, key)
	if err != nil || val != "1" {
		t.Fatalf("get = %q, %v", val, err)
	}
	ttl, err := c.Raw().PTTL(ctx, key).Result()
	if err != nil || ttl <= 0 {
		t.Fatalf("ttl = %v, %v", ttl, err)
	}
}

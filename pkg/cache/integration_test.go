package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// Remote backends run only when pointed at a server:
//
//	MONEYFLOW_REDIS_ADDR=localhost:6379 MONEYFLOW_MONGO_URI=mongodb://localhost:27017 go test ./pkg/cache

func TestRedisCache_Contract(t *testing.T) {
	addr := os.Getenv("MONEYFLOW_REDIS_ADDR")
	if addr == "" {
		t.Skip("MONEYFLOW_REDIS_ADDR not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr})
	if err != nil {
		t.Fatalf("NewRedisCache: %v", err)
	}
	defer c.Close()
	testContract(t, c)
}

func TestRedisCache_UnreachableIsRetryable(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	}))
	defer c.Close()

	_, hit, err := c.Get(context.Background(), "k")
	if err == nil || hit {
		t.Fatalf("Get = hit %v, err %v; want a connection error", hit, err)
	}
	if !IsRetryable(err) {
		t.Errorf("connection failure should be retryable, got %v", err)
	}
}

func TestMongoCache_Contract(t *testing.T) {
	uri := os.Getenv("MONEYFLOW_MONGO_URI")
	if uri == "" {
		t.Skip("MONEYFLOW_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := NewMongoCache(ctx, MongoOptions{URI: uri, Database: "moneyflow_test", Collection: "cache"})
	if err != nil {
		t.Fatalf("NewMongoCache: %v", err)
	}
	defer c.Close()
	testContract(t, c)

	now := time.Now()
	c.now = func() time.Time { return now }
	if err := c.Set(ctx, "ttl", []byte("x"), time.Second); err != nil {
		t.Fatal(err)
	}
	now = now.Add(2 * time.Second)
	if _, hit, _ := c.Get(ctx, "ttl"); hit {
		t.Error("expired document served")
	}
}

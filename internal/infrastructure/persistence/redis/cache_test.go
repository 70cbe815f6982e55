package redis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// unreachableClient 指向一个不可达地址，所有命令都会失败
func unreachableClient(t *testing.T) *Client {
	t.Helper()
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewClientFromRedis(rdb)
}

func TestGetOrLoadFallsBackWhenRedisIsDown(t *testing.T) {
	cache := NewCache(unreachableClient(t))

	calls := 0
	data, err := cache.GetOrLoad(context.Background(), "prompts:all", time.Minute, func() (interface{}, error) {
		calls++
		return []string{"Action Plan"}, nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad: %v", err)
	}
	if calls != 1 {
		t.Fatalf("loader calls = %d, want 1", calls)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil || len(names) != 1 || names[0] != "Action Plan" {
		t.Fatalf("unexpected payload %s (%v)", data, err)
	}
}

func TestGetOrLoadPropagatesLoaderError(t *testing.T) {
	cache := NewCache(unreachableClient(t))
	boom := errors.New("db down")

	_, err := cache.GetOrLoad(context.Background(), "prompts:all", time.Minute, func() (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want loader error", err)
	}
}

func TestBuildUserRateLimitKey(t *testing.T) {
	if got := BuildUserRateLimitKey("u1", "api"); got != "ratelimit:u1:api" {
		t.Fatalf("key = %q", got)
	}
}

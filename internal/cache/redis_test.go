package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestJSONRoundTrip(t *testing.T) {
	_, client := newTestClient(t)
	ctx := context.Background()

	type payload struct {
		Symbol string  `json:"symbol"`
		Price  float64 `json:"price"`
	}

	if err := SetJSON(ctx, client, "coin:BTC", payload{Symbol: "BTC", Price: 65000}, time.Minute); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}

	var got payload
	hit, err := GetJSON(ctx, client, "coin:BTC", &got)
	if err != nil {
		t.Fatalf("GetJSON failed: %v", err)
	}
	if !hit {
		t.Fatal("expected cache hit")
	}
	if got.Symbol != "BTC" || got.Price != 65000 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestMissIsNotError(t *testing.T) {
	_, client := newTestClient(t)

	var dest map[string]any
	hit, err := GetJSON(context.Background(), client, "absent", &dest)
	if err != nil {
		t.Fatalf("expected no error on miss, got %v", err)
	}
	if hit {
		t.Fatal("expected miss")
	}
}

func TestExpiryEvicts(t *testing.T) {
	mr, client := newTestClient(t)
	ctx := context.Background()

	if err := SetJSON(ctx, client, "k", "v", time.Second); err != nil {
		t.Fatalf("SetJSON failed: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var dest string
	hit, err := GetJSON(ctx, client, "k", &dest)
	if err != nil || hit {
		t.Fatalf("expected expired miss, hit=%v err=%v", hit, err)
	}
}

func TestNilClientNoOps(t *testing.T) {
	ctx := context.Background()
	if err := SetJSON(ctx, nil, "k", "v", time.Minute); err != nil {
		t.Fatalf("nil client set should no-op, got %v", err)
	}
	var dest string
	hit, err := GetJSON(ctx, nil, "k", &dest)
	if err != nil || hit {
		t.Fatalf("nil client get should miss, hit=%v err=%v", hit, err)
	}
}

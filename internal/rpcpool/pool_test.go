package rpcpool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNewRequiresEndpoints(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoEndpoints) {
		t.Fatalf("expected ErrNoEndpoints, got %v", err)
	}
	if _, err := New([]string{}); !errors.Is(err, ErrNoEndpoints) {
		t.Fatalf("expected ErrNoEndpoints, got %v", err)
	}
}

func TestExecuteFailsOverInOrder(t *testing.T) {
	pool, err := New([]string{"https://a", "https://b", "https://c"})
	if err != nil {
		t.Fatal(err)
	}

	var attempts []string
	result, endpoint, err := Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (string, error) {
		attempts = append(attempts, endpoint)
		if endpoint != "https://c" {
			return "", fmt.Errorf("connection refused")
		}
		return "payload", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "payload" {
		t.Errorf("result = %q, want %q", result, "payload")
	}
	if endpoint != "https://c" {
		t.Errorf("serving endpoint = %q, want %q", endpoint, "https://c")
	}
	want := []string{"https://a", "https://b", "https://c"}
	if len(attempts) != len(want) {
		t.Fatalf("attempts = %v, want %v", attempts, want)
	}
	for i := range want {
		if attempts[i] != want[i] {
			t.Errorf("attempt %d = %q, want %q", i, attempts[i], want[i])
		}
	}
}

func TestExecuteAggregateErrorNamesEveryEndpoint(t *testing.T) {
	endpoints := []string{"https://first", "https://second", "https://third"}
	pool, err := New(endpoints)
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (int, error) {
		return 0, fmt.Errorf("down for maintenance")
	})
	if err == nil {
		t.Fatal("expected aggregate error")
	}
	for _, endpoint := range endpoints {
		if !strings.Contains(err.Error(), endpoint) {
			t.Errorf("aggregate error missing endpoint %q: %v", endpoint, err)
		}
	}
	if !strings.Contains(err.Error(), "down for maintenance") {
		t.Errorf("aggregate error missing failure reason: %v", err)
	}
}

func TestExecutePrefersLastGoodEndpoint(t *testing.T) {
	pool, err := New([]string{"https://a", "https://b", "https://c"})
	if err != nil {
		t.Fatal(err)
	}

	// First walk lands on c.
	_, _, err = Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (bool, error) {
		if endpoint != "https://c" {
			return false, fmt.Errorf("unavailable")
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	var attempts []string
	_, endpoint, err := Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (bool, error) {
		attempts = append(attempts, endpoint)
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if endpoint != "https://c" {
		t.Errorf("serving endpoint = %q, want cached %q", endpoint, "https://c")
	}
	if len(attempts) != 1 || attempts[0] != "https://c" {
		t.Errorf("attempts = %v, want single attempt on cached endpoint", attempts)
	}
}

func TestExecuteLastGoodExpires(t *testing.T) {
	pool, err := New([]string{"https://a", "https://b"}, WithLastGoodTTL(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	_, _, err = Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (bool, error) {
		if endpoint != "https://b" {
			return false, fmt.Errorf("unavailable")
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(50 * time.Millisecond)

	var attempts []string
	_, _, err = Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (bool, error) {
		attempts = append(attempts, endpoint)
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(attempts) != 1 || attempts[0] != "https://a" {
		t.Errorf("attempts after TTL expiry = %v, want configuration order restart", attempts)
	}
}

func TestExecuteEvictsFailedLastGood(t *testing.T) {
	pool, err := New([]string{"https://a", "https://b"})
	if err != nil {
		t.Fatal(err)
	}

	// Cache b, then have b fail so a takes over.
	_, _, err = Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (bool, error) {
		if endpoint != "https://b" {
			return false, fmt.Errorf("unavailable")
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	_, endpoint, err := Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (bool, error) {
		if endpoint == "https://b" {
			return false, fmt.Errorf("gone away")
		}
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if endpoint != "https://a" {
		t.Errorf("serving endpoint = %q, want fallback %q", endpoint, "https://a")
	}

	// Eviction means the next walk starts from configuration order.
	var attempts []string
	_, _, _ = Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (bool, error) {
		attempts = append(attempts, endpoint)
		return true, nil
	})
	if len(attempts) == 0 || attempts[0] != "https://a" {
		t.Errorf("attempts after eviction = %v, want %q first", attempts, "https://a")
	}
}

func TestExecuteCancelledContextSkipsCalls(t *testing.T) {
	pool, err := New([]string{"https://a", "https://b"})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, _, err = Execute(ctx, pool, func(ctx context.Context, endpoint string) (bool, error) {
		calls++
		return true, nil
	})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if calls != 0 {
		t.Errorf("operation invoked %d times despite cancelled context", calls)
	}
	for _, endpoint := range []string{"https://a", "https://b"} {
		if !strings.Contains(err.Error(), endpoint) {
			t.Errorf("aggregate error missing endpoint %q: %v", endpoint, err)
		}
	}
}

func TestExecuteAttemptTimeout(t *testing.T) {
	pool, err := New([]string{"https://slow"}, WithAttemptTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}

	start := time.Now()
	_, _, err = Execute(context.Background(), pool, func(ctx context.Context, endpoint string) (bool, error) {
		<-ctx.Done()
		return false, ctx.Err()
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), context.DeadlineExceeded.Error()) {
		t.Errorf("error = %v, want deadline exceeded", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("attempt took %v, timeout not applied", elapsed)
	}
}

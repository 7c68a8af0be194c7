package fallback

import (
	"context"
	"errors"
	"testing"
)

func TestChainFirstSuccessWins(t *testing.T) {
	calls := 0
	c := NewChain(nil,
		Source[int]{Name: "a", Fetch: func(ctx context.Context) (int, error) { calls++; return 1, nil }},
		Source[int]{Name: "b", Fetch: func(ctx context.Context) (int, error) { calls++; return 2, nil }},
	)
	out := c.Run(context.Background(), func() int { return -1 })
	if out.Value != 1 || out.Tier != "a" {
		t.Fatalf("expected tier a value 1, got %q %d", out.Tier, out.Value)
	}
	if calls != 1 {
		t.Fatalf("second tier should not run, calls=%d", calls)
	}
}

func TestChainFallsThroughOnErrorAndReject(t *testing.T) {
	c := NewChain(func(v []string) bool { return len(v) > 0 },
		Source[[]string]{Name: "primary", Fetch: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("boom")
		}},
		Source[[]string]{Name: "secondary", Fetch: func(ctx context.Context) ([]string, error) {
			return []string{}, nil // empty, rejected by accept
		}},
		Source[[]string]{Name: "tertiary", Fetch: func(ctx context.Context) ([]string, error) {
			return []string{"x"}, nil
		}},
	)
	out := c.Run(context.Background(), func() []string { return []string{"static"} })
	if out.Tier != "tertiary" || out.Value[0] != "x" {
		t.Fatalf("expected tertiary, got %q %v", out.Tier, out.Value)
	}
	if len(out.Errors) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(out.Errors))
	}
}

func TestChainTerminalDefault(t *testing.T) {
	c := NewChain(func(v int) bool { return v > 0 },
		Source[int]{Name: "only", Fetch: func(ctx context.Context) (int, error) {
			return 0, errors.New("down")
		}},
	)
	out := c.Run(context.Background(), func() int { return 42 })
	if out.Tier != "default" || out.Value != 42 {
		t.Fatalf("expected default 42, got %q %d", out.Tier, out.Value)
	}
}

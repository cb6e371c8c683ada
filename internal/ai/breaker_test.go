package ai

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Iron-Ham/cerebro/internal/coach"
	"github.com/Iron-Ham/cerebro/internal/errors"
)

type countingBackend struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (b *countingBackend) Name() BackendName { return "counting" }

func (b *countingBackend) GenerateSubsteps(context.Context, string) ([]string, error) {
	b.calls.Add(1)
	if b.fail.Load() {
		return nil, fmt.Errorf("upstream down")
	}
	return []string{"a", "b", "c"}, nil
}

func (b *countingBackend) Reply(context.Context, []coach.Message, string) (string, error) {
	b.calls.Add(1)
	if b.fail.Load() {
		return "", fmt.Errorf("upstream down")
	}
	return "ok", nil
}

func TestBreaker_PassesThrough(t *testing.T) {
	backend := &countingBackend{}
	br := NewBreaker(backend, BreakerSettings{}, nil)

	steps, err := br.GenerateSubsteps(context.Background(), "x")
	if err != nil || len(steps) != 3 {
		t.Fatalf("GenerateSubsteps() = %v, %v", steps, err)
	}
	out, err := br.Reply(context.Background(), nil, "hi")
	if err != nil || out != "ok" {
		t.Fatalf("Reply() = %q, %v", out, err)
	}
	if br.Name() != "counting" {
		t.Errorf("Name() = %q", br.Name())
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	backend := &countingBackend{}
	backend.fail.Store(true)
	br := NewBreaker(backend, BreakerSettings{MaxFailures: 3, OpenTimeout: time.Hour}, nil)

	// Three failures are tolerated; the fourth trips the breaker.
	for i := 0; i < 4; i++ {
		if _, err := br.GenerateSubsteps(context.Background(), "x"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if br.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", br.State())
	}

	_, err := br.Reply(context.Background(), nil, "hi")
	if !errors.Is(err, errors.ErrCapabilityUnavailable) {
		t.Errorf("open breaker error = %v, want ErrCapabilityUnavailable", err)
	}
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("open breaker error = %v, want ErrOpenState", err)
	}
	if got := backend.calls.Load(); got != 4 {
		t.Errorf("backend calls = %d, want 4", got)
	}
}

func TestBreaker_SuccessResetsCount(t *testing.T) {
	backend := &countingBackend{}
	br := NewBreaker(backend, BreakerSettings{MaxFailures: 3, OpenTimeout: time.Hour}, nil)

	for round := 0; round < 3; round++ {
		backend.fail.Store(true)
		for i := 0; i < 3; i++ {
			_, _ = br.GenerateSubsteps(context.Background(), "x")
		}
		backend.fail.Store(false)
		if _, err := br.GenerateSubsteps(context.Background(), "x"); err != nil {
			t.Fatalf("round %d: unexpected error %v", round, err)
		}
	}
	if br.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", br.State())
	}
}

func TestBreaker_HalfOpenRecovers(t *testing.T) {
	backend := &countingBackend{}
	backend.fail.Store(true)
	br := NewBreaker(backend, BreakerSettings{MaxFailures: 1, OpenTimeout: 20 * time.Millisecond}, nil)

	for i := 0; i < 2; i++ {
		_, _ = br.Reply(context.Background(), nil, "x")
	}
	if br.State() != gobreaker.StateOpen {
		t.Fatalf("State() = %v, want open", br.State())
	}

	time.Sleep(40 * time.Millisecond)
	backend.fail.Store(false)
	if _, err := br.Reply(context.Background(), nil, "x"); err != nil {
		t.Fatalf("trial call error = %v", err)
	}
	if br.State() != gobreaker.StateClosed {
		t.Errorf("State() = %v, want closed", br.State())
	}
}

package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

type countingCompleter struct {
	calls    int
	failNext bool
}

func (c *countingCompleter) Name() string { return "counting" }

func (c *countingCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	c.calls++
	if c.failNext {
		c.failNext = false
		return "", errors.New("transient failure")
	}
	return "response to " + prompt, nil
}

func TestCachedCompleter_ServesFromCache(t *testing.T) {
	inner := &countingCompleter{}
	cached := NewCachedCompleter(inner, time.Minute, 0)

	first, err := cached.Complete(context.Background(), "same prompt")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	second, err := cached.Complete(context.Background(), "same prompt")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if first != second {
		t.Errorf("Expected identical responses, got %q vs %q", first, second)
	}
	if inner.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", inner.calls)
	}
}

func TestCachedCompleter_DistinctPromptsMiss(t *testing.T) {
	inner := &countingCompleter{}
	cached := NewCachedCompleter(inner, time.Minute, 0)

	_, _ = cached.Complete(context.Background(), "prompt one")
	_, _ = cached.Complete(context.Background(), "prompt two")

	if inner.calls != 2 {
		t.Errorf("Expected 2 provider calls, got %d", inner.calls)
	}
}

func TestCachedCompleter_ErrorsNotCached(t *testing.T) {
	inner := &countingCompleter{failNext: true}
	cached := NewCachedCompleter(inner, time.Minute, 0)

	if _, err := cached.Complete(context.Background(), "prompt"); err == nil {
		t.Fatal("Expected first call to fail")
	}

	resp, err := cached.Complete(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Expected retry to succeed, got %v", err)
	}
	if resp == "" {
		t.Error("Expected a response on retry")
	}
	if inner.calls != 2 {
		t.Errorf("Expected failure to bypass the cache, got %d calls", inner.calls)
	}
}

func TestCachedCompleter_Name(t *testing.T) {
	cached := NewCachedCompleter(&countingCompleter{}, time.Minute, 0)
	if cached.Name() != "counting" {
		t.Errorf("Expected wrapped name, got %q", cached.Name())
	}
}

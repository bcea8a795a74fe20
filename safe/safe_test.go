package safe_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/okanya/commonlib/safe"
)

func TestGoRecoversPanic(t *testing.T) {
	done := make(chan struct{})
	safe.Go(func() {
		defer close(done)
		panic("boom")
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("panicking goroutine did not finish")
	}
}

func TestDoReturnsError(t *testing.T) {
	want := errors.New("plain failure")
	if err := safe.Do(func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("Do err = %v, want %v", err, want)
	}
	if err := safe.Do(func() error { return nil }); err != nil {
		t.Fatalf("Do err = %v, want nil", err)
	}
}

func TestDoConvertsPanic(t *testing.T) {
	err := safe.Do(func() error { panic("exploded") })
	if err == nil {
		t.Fatal("Do swallowed the panic")
	}
	if !strings.Contains(err.Error(), "exploded") {
		t.Fatalf("Do err %q does not mention the panic value", err)
	}
}

func TestStack(t *testing.T) {
	if s := safe.Stack(); !strings.Contains(s, "goroutine") {
		t.Fatalf("Stack() = %q, want a goroutine dump", s)
	}
}

package observability

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := "3f1c2a9e-calc"

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}

func TestRequestIDFromHeader(t *testing.T) {
	upper := "6BA7B810-9DAD-11D1-80B4-00C04FD430C8"

	if got := requestIDFrom(upper); got != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Fatalf("expected canonical form of %q, got %q", upper, got)
	}

	for _, header := range []string{"", "not-a-uuid", "12345"} {
		got := requestIDFrom(header)
		if got == header {
			t.Fatalf("expected a fresh id for %q", header)
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Fatalf("expected valid UUID, got %q: %v", got, err)
		}
	}
}

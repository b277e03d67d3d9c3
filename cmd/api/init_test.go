package main

import (
	"context"
	"errors"
	"testing"
)

func TestWithDomainMetricsShutsDownOnFailure(t *testing.T) {
	errInit := errors.New("instrument rejected")
	stopped := 0
	shutdown := func(context.Context) error {
		stopped++
		return nil
	}

	ran := 0
	ok := func() error { ran++; return nil }
	failing := func() error { ran++; return errInit }

	got, err := withDomainMetrics(context.Background(), shutdown, ok, failing, ok)
	if !errors.Is(err, errInit) {
		t.Fatalf("expected init error, got %v", err)
	}
	if got != nil {
		t.Fatal("expected no shutdown func on failure")
	}
	if stopped != 1 {
		t.Fatalf("expected exporters to be shut down once, got %d", stopped)
	}
	if ran != 2 {
		t.Fatalf("expected initializers to stop at the failure, ran %d", ran)
	}
}

func TestWithDomainMetricsKeepsShutdown(t *testing.T) {
	stopped := 0
	shutdown := func(context.Context) error {
		stopped++
		return nil
	}

	got, err := withDomainMetrics(context.Background(), shutdown, func() error { return nil })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stopped != 0 {
		t.Fatal("did not expect shutdown before the server stops")
	}
	if err := got(context.Background()); err != nil || stopped != 1 {
		t.Fatalf("expected returned shutdown to stop exporters, err=%v stopped=%d", err, stopped)
	}
}

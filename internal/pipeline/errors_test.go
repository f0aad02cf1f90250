package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"slate/internal/pipeline"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("disk full")
	err := pipeline.Wrap(pipeline.ErrIO, "delivery", "link frame", "hard link failed", base)
	if !errors.Is(err, pipeline.ErrIO) {
		t.Fatalf("expected ErrIO marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	want := "io error: delivery: link frame: hard link failed: disk full"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q want %q", err.Error(), want)
	}
}

func TestWrapDefaultsMarkerAndDetail(t *testing.T) {
	err := pipeline.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, pipeline.ErrIO) {
		t.Fatalf("expected ErrIO fallback, got %v", err)
	}
	if err.Error() != "io error: pipeline failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestContextAnnotations(t *testing.T) {
	ctx := context.Background()
	if _, ok := pipeline.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id on empty context")
	}

	ctx = pipeline.WithRunID(ctx, "run-1")
	ctx = pipeline.WithShot(ctx, "0010")
	ctx = pipeline.WithStage(ctx, "validate")

	if id, ok := pipeline.RunIDFromContext(ctx); !ok || id != "run-1" {
		t.Fatalf("run id: got %q ok=%v", id, ok)
	}
	if shot, ok := pipeline.ShotFromContext(ctx); !ok || shot != "0010" {
		t.Fatalf("shot: got %q ok=%v", shot, ok)
	}
	if stage, ok := pipeline.StageFromContext(ctx); !ok || stage != "validate" {
		t.Fatalf("stage: got %q ok=%v", stage, ok)
	}
}

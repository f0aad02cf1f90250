package pipeline

import "context"

type contextKey string

const (
	runIDKey contextKey = "run_id"
	shotKey  contextKey = "shot"
	stageKey contextKey = "stage"
)

// WithRunID annotates context with the export/load run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithShot annotates context with the shot code being processed.
func WithShot(ctx context.Context, shot string) context.Context {
	if shot == "" {
		return ctx
	}
	return context.WithValue(ctx, shotKey, shot)
}

// ShotFromContext returns the shot code if present.
func ShotFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(shotKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(stageKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

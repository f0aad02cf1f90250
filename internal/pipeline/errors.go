package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCatalog marks failures talking to the production-tracking catalog.
	ErrCatalog = errors.New("catalog error")
	// ErrValidation marks per-shot validation failures.
	ErrValidation = errors.New("validation error")
	// ErrAlreadyExported marks hard-link collisions with an earlier delivery.
	ErrAlreadyExported = errors.New("already exported")
	// ErrIO marks filesystem failures during delivery.
	ErrIO = errors.New("io error")
	// ErrConfiguration marks unusable configuration values.
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "pipeline failure"
	}
	return strings.Join(parts, ": ")
}

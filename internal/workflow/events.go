package workflow

import (
	"time"

	"slate/internal/delivery"
	"slate/internal/shots"
)

// EventKind identifies what an Event describes.
type EventKind string

const (
	// EventShotStarted fires when the run moves on to the next shot.
	EventShotStarted EventKind = "shot_started"
	// EventValidationPassed fires after a shot's sequence checks out on disk.
	EventValidationPassed EventKind = "validation_passed"
	// EventValidationFailed fires when a shot is skipped before delivery.
	EventValidationFailed EventKind = "validation_failed"
	// EventFrameLinked fires once per hard-linked frame.
	EventFrameLinked EventKind = "frame_linked"
	// EventShotDelivered fires when every frame linked and the catalog status
	// was updated.
	EventShotDelivered EventKind = "shot_delivered"
	// EventShotFailed fires when delivery ended with any non-delivered outcome.
	EventShotFailed EventKind = "shot_failed"
	// EventRunCompleted is the final event of a run and carries the Summary.
	EventRunCompleted EventKind = "run_completed"
)

// Event is one step of an export run, streamed to the consumer in order.
type Event struct {
	Kind    EventKind
	Shot    *shots.DeliveryInfo
	Frame   int
	Outcome delivery.Outcome
	Message string
	Summary *Summary
}

// Summary totals an export run.
type Summary struct {
	RunID     string
	Total     int
	Delivered int
	Failed    int
	Duration  time.Duration
}

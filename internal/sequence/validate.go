package sequence

import (
	"fmt"
	"log/slog"
	"strings"

	"slate/internal/fileutil"
	"slate/internal/logging"
	"slate/internal/shots"
)

// referenceMovieExt marks reference movie containers that sometimes end up as
// the latest published version after ingest.
const referenceMovieExt = ".mov"

// ValidationError is a per-shot validation failure. Its text is advisory
// operator-facing copy and must not be parsed programmatically.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validator checks that a shot's published sequence is deliverable.
type Validator struct {
	logger *slog.Logger
	exists func(string) bool
}

// NewValidator constructs a validator backed by the real filesystem.
func NewValidator(logger *slog.Logger) *Validator {
	return &Validator{
		logger: logging.WithComponent(logger, "validator"),
		exists: fileutil.FileExists,
	}
}

// NewValidatorWithExists injects the existence check (used in tests).
func NewValidatorWithExists(logger *slog.Logger, exists func(string) bool) *Validator {
	v := NewValidator(logger)
	if exists != nil {
		v.exists = exists
	}
	return v
}

// Validate runs the per-shot checks in order, stopping at the first failure:
// file type, frame-range presence, then per-frame existence over the
// half-open range [first, last).
func (v *Validator) Validate(info *shots.DeliveryInfo) error {
	if err := v.validateFileType(info); err != nil {
		return err
	}
	return v.validateFramesExist(info)
}

func (v *Validator) validateFileType(info *shots.DeliveryInfo) error {
	if !strings.HasSuffix(info.SequencePath, referenceMovieExt) {
		return nil
	}
	v.logger.Error("latest version links a MOV, not an EXR sequence; the ingest reference version is probably still the latest version",
		logging.String(logging.FieldShot, info.Shot),
		logging.String("sequence_path", info.SequencePath),
	)
	return &ValidationError{Reason: "Linked version file is a reference MOV, not an EXR sequence."}
}

func (v *Validator) validateFramesExist(info *shots.DeliveryInfo) error {
	if info.MissingFrameRange() {
		v.logger.Error("missing frame range data; check first/last frame on the version record",
			logging.String(logging.FieldShot, info.Shot),
		)
		return &ValidationError{Reason: "Shot version is missing frame range data. Was it published correctly?"}
	}

	// Half-open on the last frame, unlike delivery's closed range. Inherited
	// from the original workflow.
	for frame := info.FirstFrame; frame < info.LastFrame; frame++ {
		framePath, err := FormatFrame(info.SequencePath, frame)
		if err != nil {
			v.logger.Error("frame path formatting failed; linked file on this version is probably not an EXR sequence",
				logging.String(logging.FieldShot, info.Shot),
				logging.Error(err),
			)
			return &ValidationError{Reason: "Could not format filepath. Are the EXRs correctly linked to this shot version?"}
		}
		if !v.exists(framePath) {
			v.logger.Error("frame file not found",
				logging.String(logging.FieldShot, info.Shot),
				logging.String("frame_path", framePath),
			)
			return &ValidationError{Reason: fmt.Sprintf("Can't find frame %d. Does it exist on disk?", frame)}
		}
	}
	return nil
}

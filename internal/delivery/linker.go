package delivery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/fileutil"
	"slate/internal/logging"
	"slate/internal/pathtpl"
	"slate/internal/pipeline"
	"slate/internal/sequence"
	"slate/internal/shots"
)

const (
	alreadyExportedMessage = "Files already exist. Has this shot been exported before?"
	linkFailedMessage      = "Unexpected error occurred while linking files, please check logs!"
	catalogFailedMessage   = "Frames were linked but the shot status update failed. Please update the catalog manually."
	deliveredMessage       = "Export finished!"
)

// Linker materializes validated shots into the delivery tree.
type Linker struct {
	cfg    *config.Config
	conn   catalog.Conn
	logger *slog.Logger
}

// NewLinker constructs a delivery linker.
func NewLinker(cfg *config.Config, conn catalog.Conn, logger *slog.Logger) *Linker {
	return &Linker{
		cfg:    cfg,
		conn:   conn,
		logger: logging.WithComponent(logger, "delivery"),
	}
}

// DeliveryPath renders the destination sequence pattern for a shot. The
// returned path still carries the per-frame placeholder.
func (l *Linker) DeliveryPath(info *shots.DeliveryInfo) (string, error) {
	template := pathtpl.New("delivery_sequence", l.cfg.Templates.DeliverySequence)
	return template.Render(map[string]string{
		"root":        l.cfg.Paths.DeliveryRoot,
		"Projectcode": info.ProjectCode,
		"Sequence":    info.Sequence,
		"Shot":        info.Shot,
		"version":     fmt.Sprintf("v%03d", info.VersionNumber),
	})
}

// Deliver hard-links every frame of the shot over the closed range
// [FirstFrame, LastFrame] and, on full success, marks the shot delivered in
// the catalog. onFrame is invoked after each successful link. Frames linked
// before a failure are left in place and the catalog status stays untouched.
func (l *Linker) Deliver(ctx context.Context, info *shots.DeliveryInfo, onFrame func(frame int)) Result {
	logger := logging.WithContext(ctx, l.logger).With(logging.String(logging.FieldShot, info.Shot))

	deliveryPath, err := l.DeliveryPath(info)
	if err != nil {
		return l.fail(logger, info, OutcomeLinkFailed, linkFailedMessage,
			pipeline.Wrap(pipeline.ErrConfiguration, "delivery", "render template", "delivery path template failed", err))
	}

	deliveryFolder := filepath.Dir(deliveryPath)
	if err := fileutil.EnsureDir(deliveryFolder); err != nil {
		return l.fail(logger, info, OutcomeLinkFailed, linkFailedMessage,
			pipeline.Wrap(pipeline.ErrIO, "delivery", "create folder", "delivery folder creation failed", err))
	}

	if err := l.checkSameFilesystem(info, deliveryFolder); err != nil {
		return l.fail(logger, info, OutcomeLinkFailed, linkFailedMessage, err)
	}

	linked := 0
	for frame := info.FirstFrame; frame <= info.LastFrame; frame++ {
		sourcePath, err := sequence.FormatFrame(info.SequencePath, frame)
		if err != nil {
			return l.fail(logger, info, OutcomeLinkFailed, linkFailedMessage,
				pipeline.Wrap(pipeline.ErrIO, "delivery", "format source path", "source pattern unusable", err))
		}
		destPath, err := sequence.FormatFrame(deliveryPath, frame)
		if err != nil {
			return l.fail(logger, info, OutcomeLinkFailed, linkFailedMessage,
				pipeline.Wrap(pipeline.ErrConfiguration, "delivery", "format delivery path", "delivery template needs a frame placeholder", err))
		}

		if err := fileutil.LinkFile(sourcePath, destPath); err != nil {
			if errors.Is(err, fs.ErrExist) {
				result := l.fail(logger, info, OutcomeAlreadyExported, alreadyExportedMessage,
					pipeline.Wrap(pipeline.ErrAlreadyExported, "delivery", "link frame", fmt.Sprintf("frame %d already present at destination", frame), err))
				result.FramesLinked = linked
				return result
			}
			result := l.fail(logger, info, OutcomeLinkFailed, linkFailedMessage,
				pipeline.Wrap(pipeline.ErrIO, "delivery", "link frame", fmt.Sprintf("hard link of frame %d failed", frame), err))
			result.FramesLinked = linked
			return result
		}

		linked++
		info.FramesDelivered = frame
		if onFrame != nil {
			onFrame(frame)
		}
	}

	logger.Info("finished linking frames",
		logging.Int("frames", linked),
		logging.String("delivery_path", deliveryPath),
	)

	if err := catalog.SetShotStatus(ctx, l.conn, info.ID, l.cfg.Catalog.DeliveredStatus); err != nil {
		result := l.fail(logger, info, OutcomeCatalogFailed, catalogFailedMessage,
			pipeline.Wrap(pipeline.ErrCatalog, "delivery", "update status", "shot status update failed", err))
		result.FramesLinked = linked
		return result
	}

	info.ValidationMessage = deliveredMessage
	return Result{Outcome: OutcomeDelivered, Message: deliveredMessage, FramesLinked: linked}
}

// checkSameFilesystem verifies the first source frame and the delivery folder
// share a device before any link is attempted.
func (l *Linker) checkSameFilesystem(info *shots.DeliveryInfo, deliveryFolder string) error {
	firstFrame, err := sequence.FormatFrame(info.SequencePath, info.FirstFrame)
	if err != nil {
		return pipeline.Wrap(pipeline.ErrIO, "delivery", "format source path", "source pattern unusable", err)
	}
	same, err := fileutil.SameFilesystem(firstFrame, deliveryFolder)
	if err != nil {
		return pipeline.Wrap(pipeline.ErrIO, "delivery", "preflight", "filesystem check failed", err)
	}
	if !same {
		return pipeline.Wrap(pipeline.ErrIO, "delivery", "preflight",
			fmt.Sprintf("source and delivery folder %s are on different filesystems; hard links cannot cross devices", deliveryFolder), nil)
	}
	return nil
}

func (l *Linker) fail(logger *slog.Logger, info *shots.DeliveryInfo, outcome Outcome, message string, err error) Result {
	logger.Error("delivery failed", logging.String("outcome", string(outcome)), logging.Error(err))
	info.ValidationError = message
	return Result{Outcome: outcome, Message: message, Err: err}
}

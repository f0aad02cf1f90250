package workflow

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/delivery"
	"slate/internal/journal"
	"slate/internal/logging"
	"slate/internal/notifications"
	"slate/internal/pipeline"
	"slate/internal/sequence"
	"slate/internal/shots"
)

// ErrExportInProgress is returned when an export run is already active,
// either in this process or in another one holding the lock file.
var ErrExportInProgress = errors.New("an export run is already in progress")

// ErrNoShotsLoaded is returned when Export is called before a successful Load.
var ErrNoShotsLoaded = errors.New("no shots loaded")

// Manager is one export session: it owns the loaded shot list and runs
// validation and delivery over it on a background goroutine.
type Manager struct {
	cfg       *config.Config
	conn      catalog.Conn
	loader    *shots.Loader
	validator *sequence.Validator
	linker    *delivery.Linker
	store     *journal.Store
	notifier  notifications.Service
	logger    *slog.Logger

	lockPath string
	lock     *flock.Flock

	mu        sync.Mutex
	exporting bool
	loaded    []shots.DeliveryInfo
}

// NewManager constructs a manager with the default notifier and journal.
func NewManager(cfg *config.Config, conn catalog.Conn, logger *slog.Logger) (*Manager, error) {
	store, err := journal.Open(cfg)
	if err != nil {
		return nil, err
	}
	return NewManagerWithOptions(cfg, conn, logger, notifications.NewService(cfg), store), nil
}

// NewManagerWithOptions constructs a manager with explicit collaborators
// (used in tests). store may be nil to disable the journal.
func NewManagerWithOptions(cfg *config.Config, conn catalog.Conn, logger *slog.Logger, notifier notifications.Service, store *journal.Store) *Manager {
	lockPath := filepath.Join(cfg.Paths.LogDir, "slate.lock")
	return &Manager{
		cfg:       cfg,
		conn:      conn,
		loader:    shots.NewLoader(cfg, conn, logger),
		validator: sequence.NewValidator(logger),
		linker:    delivery.NewLinker(cfg, conn, logger),
		store:     store,
		notifier:  notifier,
		logger:    logging.WithComponent(logger, "workflow"),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}
}

// Load queries the catalog for shots ready for delivery and resolves each one
// down to its published frame sequence. The loaded list replaces any prior
// one.
func (m *Manager) Load(ctx context.Context) ([]shots.DeliveryInfo, error) {
	loaded, err := m.loader.LoadShots(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.loaded = loaded
	m.mu.Unlock()

	m.logger.Info("shot load completed", logging.Int("shots", len(loaded)))
	return loaded, nil
}

// Shots returns a snapshot of the currently loaded shot list. The copy keeps
// callers from aliasing the entries a running export mutates.
func (m *Manager) Shots() []shots.DeliveryInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := make([]shots.DeliveryInfo, len(m.loaded))
	copy(snapshot, m.loaded)
	return snapshot
}

// Close releases the journal store, if any.
func (m *Manager) Close() error {
	if m.store != nil {
		return m.store.Close()
	}
	return nil
}

// Export validates and delivers every loaded shot on a background goroutine,
// streaming progress over the returned channel. The channel is closed after
// the EventRunCompleted event. Only one export may run at a time; concurrent
// runs in other processes are excluded via a lock file.
func (m *Manager) Export(ctx context.Context) (<-chan Event, error) {
	m.mu.Lock()
	if m.exporting {
		m.mu.Unlock()
		return nil, ErrExportInProgress
	}
	if len(m.loaded) == 0 {
		m.mu.Unlock()
		return nil, ErrNoShotsLoaded
	}

	if err := os.MkdirAll(filepath.Dir(m.lockPath), 0o755); err != nil {
		m.mu.Unlock()
		return nil, pipeline.Wrap(pipeline.ErrIO, "workflow", "export", "create lock directory", err)
	}
	ok, err := m.lock.TryLock()
	if err != nil {
		m.mu.Unlock()
		return nil, pipeline.Wrap(pipeline.ErrIO, "workflow", "export", "acquire lock file", err)
	}
	if !ok {
		m.mu.Unlock()
		return nil, ErrExportInProgress
	}
	m.exporting = true
	m.mu.Unlock()

	runID := uuid.NewString()
	ctx = pipeline.WithRunID(ctx, runID)

	events := make(chan Event, 16)
	go m.run(ctx, runID, events)
	return events, nil
}

func (m *Manager) run(ctx context.Context, runID string, events chan<- Event) {
	started := time.Now()
	logger := m.logger.With(logging.String(logging.FieldRunID, runID))

	defer func() {
		if err := m.lock.Unlock(); err != nil {
			logger.Warn("failed to release export lock", logging.Error(err))
		}
		m.mu.Lock()
		m.exporting = false
		m.mu.Unlock()
		close(events)
	}()

	m.mu.Lock()
	total := len(m.loaded)
	m.mu.Unlock()

	logger.Info("export run started", logging.Int("shots", total))
	if err := m.notifier.NotifyExportStarted(ctx, total); err != nil {
		logger.Warn("export started notification failed", logging.Error(err))
	}

	delivered := 0
	failed := 0
	for i := 0; i < total; i++ {
		if ctx.Err() != nil {
			logger.Warn("export run interrupted", logging.Error(ctx.Err()))
			break
		}

		m.mu.Lock()
		info := &m.loaded[i]
		m.mu.Unlock()

		if m.exportShot(ctx, logger, info, events) {
			delivered++
		} else {
			failed++
		}
	}

	summary := &Summary{
		RunID:     runID,
		Total:     total,
		Delivered: delivered,
		Failed:    failed,
		Duration:  time.Since(started),
	}
	logger.Info("export run completed",
		logging.Int("delivered", delivered),
		logging.Int("failed", failed),
		logging.Duration("duration", summary.Duration),
	)
	if err := m.notifier.NotifyExportCompleted(ctx, delivered, failed, summary.Duration); err != nil {
		logger.Warn("export completed notification failed", logging.Error(err))
	}
	events <- Event{Kind: EventRunCompleted, Summary: summary}
}

// exportShot runs validation then delivery for one shot and reports whether
// it ended fully delivered.
func (m *Manager) exportShot(ctx context.Context, logger *slog.Logger, info *shots.DeliveryInfo, events chan<- Event) bool {
	ctx = pipeline.WithShot(ctx, info.Shot)
	shotLogger := logger.With(logging.String(logging.FieldShot, info.Shot))

	events <- Event{Kind: EventShotStarted, Shot: info}

	if err := m.validator.Validate(info); err != nil {
		info.ValidationError = err.Error()
		shotLogger.Error("shot failed validation", logging.Error(err))
		events <- Event{Kind: EventValidationFailed, Shot: info, Message: err.Error()}
		m.record(ctx, shotLogger, info, "validation_failed", err.Error(), 0)
		m.notifyFailure(ctx, shotLogger, info, err.Error())
		return false
	}
	events <- Event{Kind: EventValidationPassed, Shot: info}

	result := m.linker.Deliver(ctx, info, func(frame int) {
		events <- Event{Kind: EventFrameLinked, Shot: info, Frame: frame}
	})
	m.record(ctx, shotLogger, info, string(result.Outcome), result.Message, result.FramesLinked)

	if !result.Delivered() {
		events <- Event{Kind: EventShotFailed, Shot: info, Outcome: result.Outcome, Message: result.Message}
		m.notifyFailure(ctx, shotLogger, info, result.Message)
		return false
	}

	events <- Event{Kind: EventShotDelivered, Shot: info, Outcome: result.Outcome, Message: result.Message}
	if err := m.notifier.NotifyShotDelivered(ctx, info.Label(), result.FramesLinked); err != nil {
		shotLogger.Warn("shot delivered notification failed", logging.Error(err))
	}
	return true
}

// record writes a journal entry. The journal is informational only, so
// failures are logged and swallowed.
func (m *Manager) record(ctx context.Context, logger *slog.Logger, info *shots.DeliveryInfo, outcome, message string, framesLinked int) {
	if m.store == nil {
		return
	}
	runID, _ := pipeline.RunIDFromContext(ctx)
	entry := journal.Entry{
		RunID:         runID,
		ShotID:        int64(info.ID),
		Sequence:      info.Sequence,
		Shot:          info.Shot,
		VersionNumber: info.VersionNumber,
		FramesLinked:  framesLinked,
		Outcome:       outcome,
		Message:       message,
	}
	if _, err := m.store.Record(ctx, entry); err != nil {
		logger.Warn("failed to journal delivery", logging.Error(err))
	}
}

func (m *Manager) notifyFailure(ctx context.Context, logger *slog.Logger, info *shots.DeliveryInfo, reason string) {
	if err := m.notifier.NotifyShotFailed(ctx, info.Label(), reason); err != nil {
		logger.Warn("shot failed notification failed", logging.Error(err))
	}
}

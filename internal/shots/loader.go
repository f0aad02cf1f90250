package shots

import (
	"context"
	"fmt"
	"log/slog"

	"slate/internal/catalog"
	"slate/internal/config"
	"slate/internal/logging"
	"slate/internal/pipeline"
)

// Loader queries the catalog for ready-for-delivery shots and resolves the
// information delivery needs for each one.
type Loader struct {
	cfg    *config.Config
	conn   catalog.Conn
	logger *slog.Logger
}

// NewLoader constructs a shot loader.
func NewLoader(cfg *config.Config, conn catalog.Conn, logger *slog.Logger) *Loader {
	return &Loader{
		cfg:    cfg,
		conn:   conn,
		logger: logging.WithComponent(logger, "loader"),
	}
}

// LoadShots returns delivery info for every shot in the configured project
// carrying the ready-for-delivery status. Any catalog failure aborts the
// whole load.
func (l *Loader) LoadShots(ctx context.Context) ([]DeliveryInfo, error) {
	logger := logging.WithContext(ctx, l.logger)
	logger.Info("starting ready-for-delivery search",
		logging.Int64("project_id", l.cfg.Catalog.ProjectID),
		logging.String("status", l.cfg.Catalog.DeliveryStatus),
	)

	shots, err := catalog.ReadyShots(ctx, l.conn, l.cfg.Catalog.ProjectID, l.cfg.Catalog.DeliveryStatus)
	if err != nil {
		return nil, pipeline.Wrap(pipeline.ErrCatalog, "load", "find shots", "ready-for-delivery query failed", err)
	}

	infos := make([]DeliveryInfo, 0, len(shots))
	for _, shot := range shots {
		info, err := l.resolveShot(ctx, shot)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}

	logger.Info("shot load complete", logging.Int("shots", len(infos)))
	return infos, nil
}

// resolveShot gathers latest version, published file, and project code for one
// shot. The project lookup runs once per shot rather than once per load; the
// original workflow did the same and nothing here depends on the redundancy.
func (l *Loader) resolveShot(ctx context.Context, shot catalog.Shot) (DeliveryInfo, error) {
	info := DeliveryInfo{
		Sequence: shot.Sequence.Name,
		Shot:     shot.Code,
		ID:       shot.ID,
	}

	version, err := catalog.LatestVersion(ctx, l.conn, shot.ID)
	if err != nil {
		return DeliveryInfo{}, pipeline.Wrap(pipeline.ErrCatalog, "load", "find version", fmt.Sprintf("latest version query failed for shot %s", shot.Code), err)
	}
	if version == nil {
		return DeliveryInfo{}, pipeline.Wrap(pipeline.ErrCatalog, "load", "find version", fmt.Sprintf("shot %s has no versions", shot.Code), nil)
	}

	// A missing or zero first frame collapses to -1 while a missing last
	// frame becomes 0. Kept as-is from the original workflow; only the -1
	// sentinel is checked downstream.
	info.FirstFrame = missingFirstFrame
	if version.FirstFrame != nil && *version.FirstFrame != 0 {
		info.FirstFrame = *version.FirstFrame
	}
	info.LastFrame = missingLastFrame
	if version.LastFrame != nil && *version.LastFrame != 0 {
		info.LastFrame = *version.LastFrame
	}

	if len(version.PublishedFiles) == 0 {
		return DeliveryInfo{}, pipeline.Wrap(pipeline.ErrCatalog, "load", "find published file", fmt.Sprintf("version %d of shot %s has no published files", version.ID, shot.Code), nil)
	}
	file, err := catalog.PublishedFileByID(ctx, l.conn, version.PublishedFiles[0].ID)
	if err != nil {
		return DeliveryInfo{}, pipeline.Wrap(pipeline.ErrCatalog, "load", "find published file", fmt.Sprintf("published file query failed for shot %s", shot.Code), err)
	}
	if file == nil {
		return DeliveryInfo{}, pipeline.Wrap(pipeline.ErrCatalog, "load", "find published file", fmt.Sprintf("published file %d of shot %s not found", version.PublishedFiles[0].ID, shot.Code), nil)
	}
	info.SequencePath = file.LocalPath()
	info.VersionNumber = file.VersionNumber

	project, err := catalog.ProjectByID(ctx, l.conn, l.cfg.Catalog.ProjectID)
	if err != nil {
		return DeliveryInfo{}, pipeline.Wrap(pipeline.ErrCatalog, "load", "find project", "project code query failed", err)
	}
	if project == nil {
		return DeliveryInfo{}, pipeline.Wrap(pipeline.ErrCatalog, "load", "find project", fmt.Sprintf("project %d not found", l.cfg.Catalog.ProjectID), nil)
	}
	info.ProjectCode = project.Code

	return info, nil
}

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
)

// ReadyShots returns the shots in the given project carrying the configured
// ready-for-delivery status, projecting sequence and code.
func ReadyShots(ctx context.Context, conn Conn, projectID int64, status string) ([]Shot, error) {
	records, err := conn.Find(ctx, Query{
		Entity: "Shot",
		Filters: []Filter{
			{Field: "project", Relation: "is", Value: Ref{ID: projectID, Type: "Project"}},
			{Field: "sg_status_list", Relation: "is", Value: status},
		},
		Fields: []string{"sg_sequence", "code"},
	})
	if err != nil {
		return nil, err
	}

	shots := make([]Shot, 0, len(records))
	for _, record := range records {
		var shot Shot
		if err := json.Unmarshal(record, &shot); err != nil {
			return nil, fmt.Errorf("decode shot record: %w", err)
		}
		shots = append(shots, shot)
	}
	return shots, nil
}

// LatestVersion returns the most recently created version for a shot, or nil
// when the shot has no versions.
func LatestVersion(ctx context.Context, conn Conn, shotID int64) (*Version, error) {
	record, err := conn.FindOne(ctx, Query{
		Entity: "Version",
		Filters: []Filter{
			{Field: "entity", Relation: "is", Value: Ref{ID: shotID, Type: "Shot"}},
		},
		Fields: []string{"published_files", "sg_first_frame", "sg_last_frame"},
		Sorts:  []Sort{{Column: "created_at", Direction: "desc"}},
	})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	var version Version
	if err := json.Unmarshal(record, &version); err != nil {
		return nil, fmt.Errorf("decode version record: %w", err)
	}
	return &version, nil
}

// PublishedFileByID resolves a published file reference to its per-platform
// path, file type, and version number.
func PublishedFileByID(ctx context.Context, conn Conn, id int64) (*PublishedFile, error) {
	record, err := conn.FindOne(ctx, Query{
		Entity: "PublishedFile",
		Filters: []Filter{
			{Field: "id", Relation: "is", Value: id},
		},
		Fields: []string{"path", "published_file_type", "version_number"},
	})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	var file PublishedFile
	if err := json.Unmarshal(record, &file); err != nil {
		return nil, fmt.Errorf("decode published file record: %w", err)
	}
	return &file, nil
}

// ProjectByID resolves a project's client code.
func ProjectByID(ctx context.Context, conn Conn, id int64) (*Project, error) {
	record, err := conn.FindOne(ctx, Query{
		Entity: "Project",
		Filters: []Filter{
			{Field: "id", Relation: "is", Value: id},
		},
		Fields: []string{"sg_projectcode"},
	})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	var project Project
	if err := json.Unmarshal(record, &project); err != nil {
		return nil, fmt.Errorf("decode project record: %w", err)
	}
	return &project, nil
}

// SetShotStatus updates a shot's status field.
func SetShotStatus(ctx context.Context, conn Conn, shotID int64, status string) error {
	return conn.Update(ctx, "Shot", shotID, map[string]any{
		"sg_status_list": status,
	})
}

package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"slate/internal/catalog"
)

// StatusUpdate records one Update call against the fake catalog.
type StatusUpdate struct {
	Entity string
	ID     int64
	Fields map[string]any
}

// FakeCatalog is an in-memory catalog.Conn for tests.
type FakeCatalog struct {
	mu sync.Mutex

	Shots          []catalog.Shot
	Versions       map[int64]catalog.Version // latest version keyed by shot id
	PublishedFiles map[int64]catalog.PublishedFile
	Projects       map[int64]catalog.Project

	Updates []StatusUpdate

	// FindErr and UpdateErr, when set, fail every corresponding call.
	FindErr   error
	UpdateErr error
}

var _ catalog.Conn = (*FakeCatalog)(nil)

// NewFakeCatalog returns an empty fake catalog.
func NewFakeCatalog() *FakeCatalog {
	return &FakeCatalog{
		Versions:       make(map[int64]catalog.Version),
		PublishedFiles: make(map[int64]catalog.PublishedFile),
		Projects:       make(map[int64]catalog.Project),
	}
}

func marshal(v any) (catalog.Record, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return catalog.Record(data), nil
}

func (f *FakeCatalog) Find(ctx context.Context, query catalog.Query) ([]catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}
	if query.Entity != "Shot" {
		return nil, fmt.Errorf("fake catalog: unexpected find entity %q", query.Entity)
	}

	status := statusFilter(query.Filters)
	records := make([]catalog.Record, 0, len(f.Shots))
	for _, shot := range f.Shots {
		if status != "" && shot.Status != "" && shot.Status != status {
			continue
		}
		record, err := marshal(shot)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (f *FakeCatalog) FindOne(ctx context.Context, query catalog.Query) (catalog.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FindErr != nil {
		return nil, f.FindErr
	}

	switch query.Entity {
	case "Version":
		shotID, ok := refFilterID(query.Filters, "entity")
		if !ok {
			return nil, fmt.Errorf("fake catalog: version query missing entity filter")
		}
		version, ok := f.Versions[shotID]
		if !ok {
			return nil, nil
		}
		return marshal(version)
	case "PublishedFile":
		id, ok := idFilter(query.Filters)
		if !ok {
			return nil, fmt.Errorf("fake catalog: published file query missing id filter")
		}
		file, ok := f.PublishedFiles[id]
		if !ok {
			return nil, nil
		}
		return marshal(file)
	case "Project":
		id, ok := idFilter(query.Filters)
		if !ok {
			return nil, fmt.Errorf("fake catalog: project query missing id filter")
		}
		project, ok := f.Projects[id]
		if !ok {
			return nil, nil
		}
		return marshal(project)
	default:
		return nil, fmt.Errorf("fake catalog: unexpected find_one entity %q", query.Entity)
	}
}

func (f *FakeCatalog) Update(ctx context.Context, entity string, id int64, fields map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	f.Updates = append(f.Updates, StatusUpdate{Entity: entity, ID: id, Fields: fields})
	return nil
}

// StatusOf returns the last status written for a shot id, if any.
func (f *FakeCatalog) StatusOf(shotID int64) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.Updates) - 1; i >= 0; i-- {
		update := f.Updates[i]
		if update.Entity != "Shot" || update.ID != shotID {
			continue
		}
		if status, ok := update.Fields["sg_status_list"].(string); ok {
			return status, true
		}
	}
	return "", false
}

func statusFilter(filters []catalog.Filter) string {
	for _, filter := range filters {
		if filter.Field == "sg_status_list" {
			if status, ok := filter.Value.(string); ok {
				return status
			}
		}
	}
	return ""
}

func refFilterID(filters []catalog.Filter, field string) (int64, bool) {
	for _, filter := range filters {
		if filter.Field != field {
			continue
		}
		if ref, ok := filter.Value.(catalog.Ref); ok {
			return ref.ID, true
		}
	}
	return 0, false
}

func idFilter(filters []catalog.Filter) (int64, bool) {
	for _, filter := range filters {
		if filter.Field != "id" {
			continue
		}
		switch value := filter.Value.(type) {
		case int64:
			return value, true
		case int:
			return int64(value), true
		case float64:
			return int64(value), true
		}
	}
	return 0, false
}

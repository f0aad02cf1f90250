package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
)

// Filter is a field/relation/value triple, serialized as a three-element
// array on the wire.
type Filter struct {
	Field    string
	Relation string
	Value    any
}

// MarshalJSON renders the filter as [field, relation, value].
func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{f.Field, f.Relation, f.Value})
}

// UnmarshalJSON parses the [field, relation, value] wire form.
func (f *Filter) UnmarshalJSON(data []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 3 {
		return fmt.Errorf("filter: expected 3 elements, got %d", len(parts))
	}
	if err := json.Unmarshal(parts[0], &f.Field); err != nil {
		return err
	}
	if err := json.Unmarshal(parts[1], &f.Relation); err != nil {
		return err
	}
	var value any
	if err := json.Unmarshal(parts[2], &value); err != nil {
		return err
	}
	f.Value = value
	return nil
}

// Sort orders query results by a single column.
type Sort struct {
	Column    string `json:"column"`
	Direction string `json:"direction"`
}

// Query describes a find/find_one request against one entity type.
type Query struct {
	Entity  string   `json:"entity"`
	Filters []Filter `json:"filters"`
	Fields  []string `json:"fields,omitempty"`
	Sorts   []Sort   `json:"sorts,omitempty"`
}

// Record is a raw entity record as returned by the catalog.
type Record = json.RawMessage

// Conn is the generic query surface the pipeline depends on. Tests inject
// fakes; production uses HTTPClient.
type Conn interface {
	Find(ctx context.Context, query Query) ([]Record, error)
	FindOne(ctx context.Context, query Query) (Record, error)
	Update(ctx context.Context, entity string, id int64, fields map[string]any) error
}

// Ref is a reference to another entity.
type Ref struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
}

// Shot is a shot record projected to the fields the loader queries.
type Shot struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Sequence Ref    `json:"sg_sequence"`
	Status   string `json:"sg_status_list"`
}

// Version is the latest render/publish event for a shot. Frame fields are
// pointers so a field missing from the catalog is distinguishable from zero.
type Version struct {
	ID             int64  `json:"id"`
	FirstFrame     *int   `json:"sg_first_frame"`
	LastFrame      *int   `json:"sg_last_frame"`
	PublishedFiles []Ref  `json:"published_files"`
	CreatedAt      string `json:"created_at"`
}

// PlatformPath carries the per-platform local paths of a published file.
type PlatformPath struct {
	Windows string `json:"local_path_windows"`
	Mac     string `json:"local_path_mac"`
	Linux   string `json:"local_path_linux"`
}

// PublishedFile is a concrete file/sequence reference.
type PublishedFile struct {
	ID            int64        `json:"id"`
	Path          PlatformPath `json:"path"`
	FileType      Ref          `json:"published_file_type"`
	VersionNumber int          `json:"version_number"`
}

// LocalPath returns the path variant matching the current operating system.
func (p PublishedFile) LocalPath() string {
	switch runtime.GOOS {
	case "windows":
		return p.Path.Windows
	case "darwin":
		return p.Path.Mac
	default:
		return p.Path.Linux
	}
}

// Project is a project record projected to its client code.
type Project struct {
	ID   int64  `json:"id"`
	Code string `json:"sg_projectcode"`
}

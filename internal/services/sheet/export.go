package sheet

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/lozrp/sheetd/internal/domain/entry"
	sheeterr "github.com/lozrp/sheetd/internal/errors"
	"github.com/lozrp/sheetd/internal/notify"
)

// SnapshotVersion is the export payload version
const SnapshotVersion = 1

// ExportExtension is the only file extension the importer accepts
const ExportExtension = ".json"

// Snapshot is the canonical export/import payload
type Snapshot struct {
	Version    int               `json:"version"`
	ExportedAt string            `json:"exportedAt,omitempty"`
	Sheet      map[string]string `json:"sheet"`
}

// Export produces the snapshot download: pretty-printed payload bytes and a
// filename derived from the sheet's name field
func (s *service) Export() ([]byte, string, error) {
	s.mu.Lock()
	values := s.valuesLocked()
	s.mu.Unlock()

	snapshot := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Sheet:      values,
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, "", sheeterr.Wrap(err, "failed to marshal snapshot")
	}

	name := strings.TrimSpace(values["name"])
	if name == "" {
		name = "character"
	}

	s.notifier.Notify("Exported JSON.", notify.LevelInfo)
	return payload, name + ExportExtension, nil
}

// ExportPreview produces the snapshot without a timestamp, for showing the
// payload before download
func (s *service) ExportPreview() ([]byte, error) {
	s.mu.Lock()
	values := s.valuesLocked()
	s.mu.Unlock()

	snapshot := Snapshot{
		Version: SnapshotVersion,
		Sheet:   values,
	}

	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, sheeterr.Wrap(err, "failed to marshal snapshot")
	}
	return payload, nil
}

// Import replaces the sheet from an exported file. The payload's character
// data may live under a "sheet" key, a "data" key, or be the bare field map
// (older export shapes). Any format error rejects the import with no
// mutation; success restores via the two-pass protocol and persists
// immediately so the autosave store matches the imported state.
func (s *service) Import(ctx context.Context, filename string, payload []byte) error {
	if !strings.EqualFold(ext(filename), ExportExtension) {
		err := sheeterr.ImportFormatf("only %s files can be imported", ExportExtension)
		s.notifier.Notify("Only .json files are supported.", notify.LevelError)
		return err
	}

	var parsed map[string]any
	if jsonErr := json.Unmarshal(payload, &parsed); jsonErr != nil {
		err := sheeterr.WrapWithCode(jsonErr, sheeterr.CodeImportFormat, "invalid JSON")
		s.notifier.Notify("Invalid JSON.", notify.LevelError)
		return err
	}

	incoming := resolvePayload(parsed)
	if incoming == nil {
		err := sheeterr.ImportFormat("JSON format not recognized")
		s.notifier.Notify("JSON format not recognized.", notify.LevelError)
		return err
	}

	data := make(map[string]string, len(incoming))
	for k, v := range incoming {
		data[k] = entry.AttrString(v)
	}

	s.autosave.Cancel()
	s.mu.Lock()
	s.engine.Restore(data)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notifier.Notify("Imported.", notify.LevelInfo)
	return nil
}

// resolvePayload finds the field map inside an import payload, or nil when
// the shape is not recognized
func resolvePayload(parsed map[string]any) map[string]any {
	candidate := any(parsed)
	if v, ok := parsed["sheet"]; ok && v != nil {
		candidate = v
	} else if v, ok := parsed["data"]; ok && v != nil {
		candidate = v
	}

	fields, ok := candidate.(map[string]any)
	if !ok {
		return nil
	}
	return fields
}

func ext(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}

// Package list implements the generic list-entity manager: CRUD over a
// collection of typed records serialized into a single sheet text field.
package list

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/lozrp/sheetd/internal/domain/entry"
	sheeterr "github.com/lozrp/sheetd/internal/errors"
	"github.com/lozrp/sheetd/internal/notify"
)

// Accessor reads and writes the backing text field of a collection
type Accessor interface {
	Get() string
	Set(value string)
}

// FieldAccessor binds an Accessor to a named field on a store
type FieldAccessor struct {
	GetFunc func() string
	SetFunc func(value string)
}

// Get reads the backing field
func (a FieldAccessor) Get() string { return a.GetFunc() }

// Set writes the backing field
func (a FieldAccessor) Set(value string) { a.SetFunc(value) }

// Manager provides CRUD over one serialized collection. At most one entry is
// in edit mode at a time; every structural mutation invokes the injected
// refresh/persist pipeline. Every operation runs under the injected lock, so
// a manager sharing a store with other writers stays race-free as long as
// they share the lock too.
type Manager[T entry.Record] struct {
	lock     sync.Locker
	field    Accessor
	shape    entry.Shape[T]
	confirm  notify.Confirmer
	onChange func()
	editing  int
}

// ManagerConfig holds configuration for a Manager
type ManagerConfig[T entry.Record] struct {
	Field    Accessor         // Required: backing text field
	Shape    entry.Shape[T]   // Required: collection shape
	Lock     sync.Locker      // Optional: guards the backing store across writers
	Confirm  notify.Confirmer // Optional, defaults to auto-approve
	OnChange func()           // Optional: refresh/persist pipeline
}

// noopLocker is the default when the backing field has no other writers
type noopLocker struct{}

func (noopLocker) Lock()   {}
func (noopLocker) Unlock() {}

// NewManager creates a list-entity manager
func NewManager[T entry.Record](cfg *ManagerConfig[T]) *Manager[T] {
	if cfg == nil || cfg.Field == nil {
		panic("list: backing field is required")
	}
	if cfg.Shape == nil {
		panic("list: shape is required")
	}

	lock := cfg.Lock
	if lock == nil {
		lock = noopLocker{}
	}
	confirm := cfg.Confirm
	if confirm == nil {
		confirm = notify.AutoConfirmer{}
	}
	onChange := cfg.OnChange
	if onChange == nil {
		onChange = func() {}
	}

	return &Manager[T]{
		lock:     lock,
		field:    cfg.Field,
		shape:    cfg.Shape,
		confirm:  confirm,
		onChange: onChange,
		editing:  -1,
	}
}

// List returns the typed, normalized view of every stored entry
func (m *Manager[T]) List() []T {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.list()
}

func (m *Manager[T]) list() []T {
	raw := m.readRaw()
	out := make([]T, 0, len(raw))
	for _, rec := range raw {
		out = append(out, m.shape.FromAttrs(m.shape.Normalize(attrsOf(rec))))
	}
	return out
}

// Filter returns the entries matching pred, without mutating the collection
func (m *Manager[T]) Filter(pred func(T) bool) []T {
	m.lock.Lock()
	defer m.lock.Unlock()

	var out []T
	for _, item := range m.list() {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Len returns the number of stored entries
func (m *Manager[T]) Len() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.readRaw())
}

// Add normalizes the candidate and appends it. An entry whose name is empty
// after normalization is rejected with no state change.
func (m *Manager[T]) Add(attrs entry.Attrs) error {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.add(attrs)
}

func (m *Manager[T]) add(attrs entry.Attrs) error {
	normalized := m.shape.Normalize(attrs)
	if normalized.Name() == "" {
		return sheeterr.Validation("name is required")
	}

	items := append(m.readRaw(), toRaw(normalized))
	m.write(items)
	m.onChange()
	return nil
}

// Edit enters edit mode for the entry at idx and returns its attributes for
// the builder. Stored data is untouched until Save.
func (m *Manager[T]) Edit(idx int) (entry.Attrs, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	items := m.readRaw()
	if idx < 0 || idx >= len(items) {
		return nil, sheeterr.InvalidArgumentf("no entry at index %d", idx)
	}
	m.editing = idx
	return m.shape.Normalize(attrsOf(items[idx])), nil
}

// Save applies builder input. While editing, the normalized attributes are
// shallow-merged onto the stored record, so attributes unknown to the
// current builder survive. Otherwise it behaves as Add.
func (m *Manager[T]) Save(attrs entry.Attrs) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.editing < 0 {
		return m.add(attrs)
	}

	normalized := m.shape.Normalize(attrs)
	if normalized.Name() == "" {
		return sheeterr.Validation("name is required")
	}

	items := m.readRaw()
	if m.editing >= len(items) {
		// Collection shrank under the editor; treat as a fresh add.
		m.editing = -1
		items = append(items, toRaw(normalized))
		m.write(items)
		m.onChange()
		return nil
	}

	merged := make(map[string]any, len(items[m.editing])+len(normalized))
	for k, v := range items[m.editing] {
		merged[k] = v
	}
	for k, v := range normalized {
		merged[k] = v
	}
	items[m.editing] = merged

	m.write(items)
	m.editing = -1
	m.onChange()
	return nil
}

// Delete removes the entry at idx after external confirmation. It reports
// whether the entry was removed; a declined confirmation is not an error.
func (m *Manager[T]) Delete(idx int) (bool, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	items := m.readRaw()
	if idx < 0 || idx >= len(items) {
		return false, sheeterr.InvalidArgumentf("no entry at index %d", idx)
	}

	if !m.confirm.Confirm("Remove this entry?") {
		return false, nil
	}

	items = append(items[:idx], items[idx+1:]...)
	m.write(items)
	m.editing = -1
	m.onChange()
	return true, nil
}

// Editing returns the index in edit mode, or -1 when idle
func (m *Manager[T]) Editing() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.editing
}

// CancelEdit leaves edit mode without saving
func (m *Manager[T]) CancelEdit() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.editing = -1
}

// readRaw parses the backing text as a JSON array, falling back to the
// legacy line-oriented format so old free-text saves stay loadable.
func (m *Manager[T]) readRaw() []map[string]any {
	raw := strings.TrimSpace(m.field.Get())
	if raw == "" {
		return nil
	}

	var parsed []any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		var out []map[string]any
		for _, item := range parsed {
			if rec, ok := item.(map[string]any); ok {
				out = append(out, rec)
			}
		}
		return out
	}

	var out []map[string]any
	for _, attrs := range m.shape.LegacyParse(raw) {
		out = append(out, toRaw(attrs))
	}
	return out
}

func (m *Manager[T]) write(items []map[string]any) {
	if items == nil {
		items = []map[string]any{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		// Records are plain string maps; this cannot happen in practice.
		return
	}
	m.field.Set(string(data))
}

func attrsOf(rec map[string]any) entry.Attrs {
	attrs := make(entry.Attrs, len(rec))
	for k, v := range rec {
		attrs[k] = entry.AttrString(v)
	}
	return attrs
}

func toRaw(attrs entry.Attrs) map[string]any {
	rec := make(map[string]any, len(attrs))
	for k, v := range attrs {
		rec[k] = v
	}
	return rec
}

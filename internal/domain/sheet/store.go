package sheet

import (
	"strconv"
)

// FieldStore enumerates and accesses the named scalar fields backing a sheet
type FieldStore interface {
	// ListFields returns a snapshot of every field in sheet order
	ListFields() []Field

	// GetValue returns the raw value of a field, or "" if unknown
	GetValue(name string) string

	// SetValue writes a field, applying kind-specific coercion, and
	// notifies subscribers
	SetValue(name, value string)

	// SetDerived writes an engine-owned field without notifying
	// subscribers, so recomputes never feed back into themselves
	SetDerived(name, value string)

	// Int reads a field through integer coercion
	Int(name string) int

	// Bool reads a checkbox field
	Bool(name string) bool

	// RangeMax returns the live max of a range field
	RangeMax(name string) int

	// SetRangeMax updates a range field's live max and re-clamps its value
	SetRangeMax(name string, max int)

	// SetEnabled switches a range control on or off
	SetEnabled(name string, enabled bool)

	// Subscribe registers a change listener invoked with the field name
	// after every SetValue
	Subscribe(fn func(name string))
}

// Store is the in-memory FieldStore implementation
type Store struct {
	order     []string
	fields    map[string]*Field
	listeners []func(name string)
}

// NewStore creates a store populated with the given fields. Field names must
// be unique; a duplicate overwrites the earlier definition.
func NewStore(fields []Field) *Store {
	s := &Store{
		fields: make(map[string]*Field, len(fields)),
	}
	for i := range fields {
		f := fields[i]
		if _, ok := s.fields[f.Name]; !ok {
			s.order = append(s.order, f.Name)
		}
		s.fields[f.Name] = &f
	}
	return s
}

// ListFields returns a snapshot of every field in sheet order
func (s *Store) ListFields() []Field {
	out := make([]Field, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, *s.fields[name])
	}
	return out
}

// GetValue returns the raw value of a field, or "" if unknown
func (s *Store) GetValue(name string) string {
	if f, ok := s.fields[name]; ok {
		return f.Value
	}
	return ""
}

// SetValue writes a field and notifies subscribers
func (s *Store) SetValue(name, value string) {
	if !s.set(name, value) {
		return
	}
	for _, fn := range s.listeners {
		fn(name)
	}
}

// SetDerived writes a field without notifying subscribers
func (s *Store) SetDerived(name, value string) {
	s.set(name, value)
}

func (s *Store) set(name, value string) bool {
	f, ok := s.fields[name]
	if !ok {
		return false
	}

	switch f.Kind {
	case KindBoolean:
		if ToBool(value) {
			f.Value = "1"
		} else {
			f.Value = ""
		}
	case KindRange:
		f.Value = strconv.Itoa(clampInt(ToInt(value), 0, f.Max))
	default:
		f.Value = value
	}
	return true
}

// Int reads a field through integer coercion
func (s *Store) Int(name string) int {
	return ToInt(s.GetValue(name))
}

// Bool reads a checkbox field
func (s *Store) Bool(name string) bool {
	return ToBool(s.GetValue(name))
}

// RangeMax returns the live max of a range field
func (s *Store) RangeMax(name string) int {
	if f, ok := s.fields[name]; ok {
		return f.Max
	}
	return 0
}

// SetRangeMax updates a range field's live max. The stored value re-clamps
// against the new max, which is exactly the corruption the deferred-restore
// protocol exists to avoid.
func (s *Store) SetRangeMax(name string, max int) {
	f, ok := s.fields[name]
	if !ok || f.Kind != KindRange {
		return
	}
	if max < 0 {
		max = 0
	}
	f.Max = max
	f.Value = strconv.Itoa(clampInt(ToInt(f.Value), 0, f.Max))
}

// SetEnabled switches a range control on or off
func (s *Store) SetEnabled(name string, enabled bool) {
	if f, ok := s.fields[name]; ok {
		f.Disabled = !enabled
	}
}

// Subscribe registers a change listener
func (s *Store) Subscribe(fn func(name string)) {
	s.listeners = append(s.listeners, fn)
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

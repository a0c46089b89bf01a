// Package sheet wires the field store, derived-stats engine, list-entity
// managers and repository into one sheet service: the layered persistence
// controller plus the mutation entry points the HTTP layer calls.
package sheet

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/lozrp/sheetd/internal/derive"
	"github.com/lozrp/sheetd/internal/domain/entry"
	domainsheet "github.com/lozrp/sheetd/internal/domain/sheet"
	sheeterr "github.com/lozrp/sheetd/internal/errors"
	"github.com/lozrp/sheetd/internal/list"
	"github.com/lozrp/sheetd/internal/notify"
	"github.com/lozrp/sheetd/internal/repositories/sheets"
)

const persistTimeout = 5 * time.Second

// Notice classes for rate-limited storage-failure reporting. Primary and
// portrait failures are reported separately.
const (
	noticeClassPrimary  = "save:primary"
	noticeClassPortrait = "save:portrait"
)

// Service is one live sheet: its fields, collections, derived state and
// persistence pipeline
type Service interface {
	// SetField mutates a field, recomputes dependents and schedules a
	// debounced autosave
	SetField(name, value string)

	// Fields returns a snapshot of every field
	Fields() []domainsheet.Field

	// Values returns the full field map
	Values() map[string]string

	// Spells, Actions, Inventory and Features expose the collection managers
	Spells() *list.Manager[entry.Spell]
	Actions() *list.Manager[entry.Action]
	Inventory() *list.Manager[entry.Item]
	Features() *list.Manager[entry.Feature]

	// Pool returns the derived state of a resource pool
	Pool(name string) derive.PoolState

	// Hearts returns the derived hearts view
	Hearts() derive.HeartsView

	// Load silently restores the last persisted record; a missing or
	// corrupted save is non-fatal and leaves the sheet at defaults
	Load(ctx context.Context) error

	// SaveNow persists immediately, bypassing the debounce
	SaveNow(ctx context.Context)

	// Export produces the snapshot download: payload bytes and filename
	Export() ([]byte, string, error)

	// ExportPreview produces the snapshot payload without a timestamp
	ExportPreview() ([]byte, error)

	// Import replaces the sheet from an exported file and persists
	// immediately; on any format error no field is touched
	Import(ctx context.Context, filename string, payload []byte) error

	// Reset clears every field after confirmation; reports whether the
	// reset happened
	Reset(ctx context.Context) bool

	// SetPortrait stores a portrait asset and persists immediately
	SetPortrait(ctx context.Context, data string)

	// Close cancels any pending autosave
	Close()
}

// service implements the Service interface
type service struct {
	mu sync.Mutex

	sheetID  string
	store    *domainsheet.Store
	engine   *derive.Engine
	repo     sheets.Repository
	notifier notify.Notifier
	confirm  notify.Confirmer
	throttle *notify.Throttle
	autosave *autosaver

	spells    *list.Manager[entry.Spell]
	actions   *list.Manager[entry.Action]
	inventory *list.Manager[entry.Item]
	features  *list.Manager[entry.Feature]
}

// ServiceConfig holds configuration for the sheet service
type ServiceConfig struct {
	SheetID    string            // Required
	Repository sheets.Repository // Required
	Notifier   notify.Notifier   // Optional, defaults to log
	Confirmer  notify.Confirmer  // Optional, defaults to auto-approve

	// AutosaveInterval is the debounce quiet period (default 250ms)
	AutosaveInterval time.Duration

	// NoticeInterval is the minimum gap between storage-failure notices
	// of the same class (default 2.5s)
	NoticeInterval time.Duration
}

// NewService creates a sheet service with a blank sheet
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.SheetID == "" {
		panic("sheet ID is required")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.LogNotifier{}
	}
	confirm := cfg.Confirmer
	if confirm == nil {
		confirm = notify.AutoConfirmer{}
	}
	autosaveInterval := cfg.AutosaveInterval
	if autosaveInterval == 0 {
		autosaveInterval = 250 * time.Millisecond
	}
	noticeInterval := cfg.NoticeInterval
	if noticeInterval == 0 {
		noticeInterval = 2500 * time.Millisecond
	}

	store := domainsheet.NewStore(domainsheet.DefaultFields())

	svc := &service{
		sheetID:  cfg.SheetID,
		store:    store,
		engine:   derive.NewEngine(store),
		repo:     cfg.Repository,
		notifier: notifier,
		confirm:  confirm,
		throttle: notify.NewThrottle(noticeInterval),
	}
	svc.autosave = newAutosaver(autosaveInterval, svc.autosaveFire)

	// Field mutations feed the recompute + autosave pipeline.
	store.Subscribe(func(name string) {
		svc.engine.FieldChanged(name)
		svc.autosave.Schedule()
	})

	svc.spells = newManager(svc, domainsheet.FieldSpells, entry.SpellShape{})
	svc.actions = newManager(svc, domainsheet.FieldActions, entry.ActionShape{})
	svc.inventory = newManager(svc, domainsheet.FieldInventory, entry.ItemShape{})
	svc.features = newManager(svc, domainsheet.FieldFeatures, entry.FeatureShape{})

	svc.engine.RecomputeAll()
	return svc
}

// newManager binds a collection manager to its backing field. Managers write
// through SetDerived and schedule persistence themselves, so a structural
// mutation triggers exactly one pipeline pass. They share the service mutex,
// which keeps collection CRUD serialized against field mutations and the
// autosave flush.
func newManager[T entry.Record](svc *service, field string, shape entry.Shape[T]) *list.Manager[T] {
	return list.NewManager(&list.ManagerConfig[T]{
		Field: list.FieldAccessor{
			GetFunc: func() string { return svc.store.GetValue(field) },
			SetFunc: func(value string) { svc.store.SetDerived(field, value) },
		},
		Shape:    shape,
		Lock:     &svc.mu,
		Confirm:  svc.confirm,
		OnChange: svc.autosave.Schedule,
	})
}

// SetField mutates a field through the notification pipeline
func (s *service) SetField(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.SetValue(name, value)
}

// Fields returns a snapshot of every field
func (s *service) Fields() []domainsheet.Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.ListFields()
}

// Values returns the full field map
func (s *service) Values() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valuesLocked()
}

func (s *service) valuesLocked() map[string]string {
	fields := s.store.ListFields()
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f.Name] = f.Value
	}
	return values
}

// Spells exposes the spells collection manager
func (s *service) Spells() *list.Manager[entry.Spell] { return s.spells }

// Actions exposes the actions collection manager
func (s *service) Actions() *list.Manager[entry.Action] { return s.actions }

// Inventory exposes the inventory collection manager
func (s *service) Inventory() *list.Manager[entry.Item] { return s.inventory }

// Features exposes the features collection manager
func (s *service) Features() *list.Manager[entry.Feature] { return s.features }

// Pool returns the derived state of a resource pool
func (s *service) Pool(name string) derive.PoolState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Pool(name)
}

// Hearts returns the derived hearts view
func (s *service) Hearts() derive.HeartsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Hearts()
}

// Load restores the last persisted record via the two-pass protocol
func (s *service) Load(ctx context.Context) error {
	record, err := s.repo.Load(ctx, s.sheetID)
	if err != nil {
		if sheeterr.IsNotFound(err) {
			return nil
		}
		if sheeterr.IsCorruptedSave(err) {
			s.notifier.Notify("Save data corrupted.", notify.LevelError)
			return nil
		}
		return err
	}

	portrait, err := s.repo.LoadPortrait(ctx, s.sheetID)
	if err != nil {
		// A missing portrait never blocks loading the sheet.
		log.Printf("sheet %s: portrait load failed: %v", s.sheetID, err)
		portrait = ""
	}

	data := record.Data
	data[domainsheet.FieldProfileImage] = portrait

	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Restore(data)
	return nil
}

// SaveNow persists immediately, bypassing the debounce
func (s *service) SaveNow(ctx context.Context) {
	s.autosave.Cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(ctx)
}

// autosaveFire is the debounce timer callback
func (s *service) autosaveFire() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.persistLocked(ctx)
}

// persistLocked writes the primary record and portrait separately. Write
// failures never roll back in-memory state; they surface as rate-limited
// notices per failure class.
func (s *service) persistLocked(ctx context.Context) {
	values := s.valuesLocked()
	portrait := values[domainsheet.FieldProfileImage]
	delete(values, domainsheet.FieldProfileImage)

	if err := s.repo.Save(ctx, s.sheetID, values); err != nil {
		log.Printf("sheet %s: save failed: %v", s.sheetID, err)
		if s.throttle.Allow(noticeClassPrimary) {
			s.notifier.Notify("Could not save sheet. Changes are kept in memory.", notify.LevelError)
		}
		return
	}

	if err := s.repo.SavePortrait(ctx, s.sheetID, portrait); err != nil {
		log.Printf("sheet %s: portrait save failed: %v", s.sheetID, err)
		if s.throttle.Allow(noticeClassPortrait) {
			s.notifier.Notify("Could not save portrait. It is kept in memory.", notify.LevelError)
		}
	}
}

// Reset clears every field after confirmation
func (s *service) Reset(ctx context.Context) bool {
	if !s.confirm.Confirm("Reset all fields?") {
		return false
	}

	s.autosave.Cancel()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engine.Restore(map[string]string{})
	s.persistLocked(ctx)
	s.notifier.Notify("Reset.", notify.LevelInfo)
	return true
}

// SetPortrait stores a portrait asset and persists immediately. The data is
// opaque here; the image pipeline has already bounded its size.
func (s *service) SetPortrait(ctx context.Context, data string) {
	s.autosave.Cancel()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.SetDerived(domainsheet.FieldProfileImage, data)
	s.persistLocked(ctx)
	s.notifier.Notify("Portrait updated.", notify.LevelInfo)
}

// Close cancels any pending autosave
func (s *service) Close() {
	s.autosave.Cancel()
}

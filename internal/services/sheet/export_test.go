package sheet

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	sheeterr "github.com/lozrp/sheetd/internal/errors"
	"github.com/lozrp/sheetd/internal/notify"
	"github.com/lozrp/sheetd/internal/repositories/sheets"
)

// recorderNotifier collects notices for assertion
type recorderNotifier struct {
	messages []string
}

func (r *recorderNotifier) Notify(message string, _ notify.Level) {
	r.messages = append(r.messages, message)
}

type ExportTestSuite struct {
	suite.Suite
	repo     *sheets.InMemoryRepository
	notifier *recorderNotifier
	svc      Service
	ctx      context.Context
}

func (s *ExportTestSuite) SetupTest() {
	s.repo = sheets.NewInMemoryRepository()
	s.notifier = &recorderNotifier{}
	s.svc = NewService(&ServiceConfig{
		SheetID:          "test-sheet",
		Repository:       s.repo,
		Notifier:         s.notifier,
		AutosaveInterval: time.Hour,
	})
	s.ctx = context.Background()
}

func (s *ExportTestSuite) TearDownTest() {
	s.svc.Close()
}

func TestExportTestSuite(t *testing.T) {
	suite.Run(t, new(ExportTestSuite))
}

func (s *ExportTestSuite) TestExportPayloadAndFilename() {
	s.svc.SetField("name", "Link")
	s.svc.SetField("score_courage", "16")

	payload, filename, err := s.svc.Export()
	s.NoError(err)
	s.Equal("Link.json", filename)

	var snapshot Snapshot
	s.NoError(json.Unmarshal(payload, &snapshot))
	s.Equal(SnapshotVersion, snapshot.Version)
	s.NotEmpty(snapshot.ExportedAt)
	s.Equal("Link", snapshot.Sheet["name"])
	s.Equal("3", snapshot.Sheet["mod_courage"], "derived fields ride in the export")
	s.Contains(s.notifier.messages, "Exported JSON.")
}

func (s *ExportTestSuite) TestExportPreviewHasNoTimestamp() {
	s.svc.SetField("name", "Link")

	payload, err := s.svc.ExportPreview()
	s.NoError(err)

	var snapshot Snapshot
	s.NoError(json.Unmarshal(payload, &snapshot))
	s.Equal(SnapshotVersion, snapshot.Version)
	s.Empty(snapshot.ExportedAt)
	s.Equal("Link", snapshot.Sheet["name"])
}

func (s *ExportTestSuite) TestExportBlankNameFallsBack() {
	_, filename, err := s.svc.Export()
	s.NoError(err)
	s.Equal("character.json", filename)
}

func (s *ExportTestSuite) TestImportRejectsWrongExtension() {
	s.svc.SetField("name", "Link")

	err := s.svc.Import(s.ctx, "save.txt", []byte(`{"name":"Ganondorf"}`))
	s.Error(err)
	s.True(sheeterr.IsImportFormat(err))

	// No field is touched and nothing was persisted
	s.Equal("Link", s.svc.Values()["name"])
	_, loadErr := s.repo.Load(s.ctx, "test-sheet")
	s.True(sheeterr.IsNotFound(loadErr))
	s.Contains(s.notifier.messages, "Only .json files are supported.")
}

func (s *ExportTestSuite) TestImportRejectsInvalidJSON() {
	s.svc.SetField("name", "Link")

	err := s.svc.Import(s.ctx, "save.json", []byte("{broken"))
	s.Error(err)
	s.True(sheeterr.IsImportFormat(err))
	s.Equal("Link", s.svc.Values()["name"])
	s.Contains(s.notifier.messages, "Invalid JSON.")
}

func (s *ExportTestSuite) TestImportRejectsUnrecognizedShape() {
	err := s.svc.Import(s.ctx, "save.json", []byte(`{"sheet": 5}`))
	s.Error(err)
	s.True(sheeterr.IsImportFormat(err))
	s.Contains(s.notifier.messages, "JSON format not recognized.")

	err = s.svc.Import(s.ctx, "save.json", []byte(`[1, 2, 3]`))
	s.Error(err)
	s.True(sheeterr.IsImportFormat(err))
}

func (s *ExportTestSuite) TestImportSnapshotShape() {
	payload := []byte(`{"version":1,"exportedAt":"2024-05-01T12:00:00Z","sheet":{"name":"Zelda","score_wisdom":"18"}}`)

	s.NoError(s.svc.Import(s.ctx, "zelda.json", payload))

	values := s.svc.Values()
	s.Equal("Zelda", values["name"])
	s.Equal("4", values["mod_wisdom"])
	s.Contains(s.notifier.messages, "Imported.")
}

func (s *ExportTestSuite) TestImportStorageRecordShape() {
	payload := []byte(`{"savedAt":"2024-05-01T12:00:00Z","data":{"name":"Impa"}}`)

	s.NoError(s.svc.Import(s.ctx, "impa.json", payload))
	s.Equal("Impa", s.svc.Values()["name"])
}

func (s *ExportTestSuite) TestImportBareFieldMap() {
	s.NoError(s.svc.Import(s.ctx, "bare.json", []byte(`{"name":"Ganondorf"}`)))
	s.Equal("Ganondorf", s.svc.Values()["name"])
}

func (s *ExportTestSuite) TestImportCoercesNumbersAndBooleans() {
	payload := []byte(`{"name":"Link","level":5,"prof_stealth":true}`)

	s.NoError(s.svc.Import(s.ctx, "link.json", payload))

	values := s.svc.Values()
	s.Equal("5", values["level"])
	s.Equal("1", values["prof_stealth"])
}

func (s *ExportTestSuite) TestImportRestoresPoolValues() {
	payload := []byte(`{"sheet":{"stamina":"7","stamina_max":"10"}}`)

	s.NoError(s.svc.Import(s.ctx, "pools.json", payload))

	pool := s.svc.Pool("stamina")
	s.Equal(7, pool.Current)
	s.Equal(10, pool.Max)
}

func (s *ExportTestSuite) TestImportPersistsImmediately() {
	s.NoError(s.svc.Import(s.ctx, "save.json", []byte(`{"name":"Link"}`)))

	// The record is in storage without waiting out the debounce
	record, err := s.repo.Load(s.ctx, "test-sheet")
	s.NoError(err)
	s.Equal("Link", record.Data["name"])
}

func (s *ExportTestSuite) TestImportReplacesWholeSheet() {
	s.svc.SetField("name", "Link")
	s.svc.SetField("rupees", "500")

	s.NoError(s.svc.Import(s.ctx, "save.json", []byte(`{"name":"Zelda"}`)))

	values := s.svc.Values()
	s.Equal("Zelda", values["name"])
	s.Equal("", values["rupees"], "import is a replace, not a merge")
}

func (s *ExportTestSuite) TestExportImportRoundTrip() {
	s.svc.SetField("name", "Link")
	s.svc.SetField("stamina_max", "10")
	s.svc.SetField("stamina", "7")
	s.NoError(s.svc.Spells().Add(map[string]string{"name": "Din's Fire"}))

	payload, filename, err := s.svc.Export()
	s.NoError(err)

	other := NewService(&ServiceConfig{
		SheetID:          "other-sheet",
		Repository:       s.repo,
		Notifier:         s.notifier,
		AutosaveInterval: time.Hour,
	})
	defer other.Close()

	s.NoError(other.Import(s.ctx, filename, payload))

	s.Equal("Link", other.Values()["name"])
	s.Equal(7, other.Pool("stamina").Current)

	spells := other.Spells().List()
	s.Len(spells, 1)
	s.Equal("Din's Fire", spells[0].Name)
}

// Package api exposes the sheet service over a small JSON HTTP surface.
// The API client plays the role of the confirmation dialog: destructive
// routes require an explicit confirm flag before they reach the service.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/lozrp/sheetd/internal/domain/entry"
	sheeterr "github.com/lozrp/sheetd/internal/errors"
	"github.com/lozrp/sheetd/internal/repositories/sheets"
	sheetsvc "github.com/lozrp/sheetd/internal/services/sheet"
	"github.com/lozrp/sheetd/internal/uuid"
)

// maxImportSize bounds an import upload (portraits ride inside the payload)
const maxImportSize = 8 << 20

// Handler serves the sheet API
type Handler struct {
	mu         sync.Mutex
	repo       sheets.Repository
	uuidGen    uuid.Generator
	newService func(id string) sheetsvc.Service
	services   map[string]sheetsvc.Service
}

// HandlerConfig holds configuration for the API handler
type HandlerConfig struct {
	Repository    sheets.Repository                // Required
	UUIDGenerator uuid.Generator                   // Optional
	NewService    func(id string) sheetsvc.Service // Required
}

// NewHandler creates the API handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.NewService == nil {
		panic("service factory is required")
	}

	gen := cfg.UUIDGenerator
	if gen == nil {
		gen = uuid.NewGoogleUUIDGenerator()
	}

	return &Handler{
		repo:       cfg.Repository,
		uuidGen:    gen,
		newService: cfg.NewService,
		services:   make(map[string]sheetsvc.Service),
	}
}

// Routes registers the API on a mux
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sheets", h.createSheet)
	mux.HandleFunc("GET /api/sheets", h.listSheets)
	mux.HandleFunc("GET /api/sheets/{id}", h.getSheet)
	mux.HandleFunc("DELETE /api/sheets/{id}", h.deleteSheet)
	mux.HandleFunc("PUT /api/sheets/{id}/fields", h.setFields)
	mux.HandleFunc("GET /api/sheets/{id}/export", h.exportSheet)
	mux.HandleFunc("GET /api/sheets/{id}/export/preview", h.exportPreview)
	mux.HandleFunc("POST /api/sheets/{id}/import", h.importSheet)
	mux.HandleFunc("POST /api/sheets/{id}/reset", h.resetSheet)
	mux.HandleFunc("POST /api/sheets/{id}/portrait", h.setPortrait)
	mux.HandleFunc("GET /api/sheets/{id}/{collection}", h.listEntries)
	mux.HandleFunc("POST /api/sheets/{id}/{collection}", h.addEntry)
	mux.HandleFunc("PUT /api/sheets/{id}/{collection}/{idx}", h.updateEntry)
	mux.HandleFunc("DELETE /api/sheets/{id}/{collection}/{idx}", h.deleteEntry)
}

// sheetService returns the live service for a sheet, creating and loading
// it on first touch
func (h *Handler) sheetService(r *http.Request, id string) sheetsvc.Service {
	h.mu.Lock()
	defer h.mu.Unlock()

	if svc, ok := h.services[id]; ok {
		return svc
	}
	svc := h.newService(id)
	if err := svc.Load(r.Context()); err != nil {
		log.Printf("sheet %s: load failed: %v", id, err)
	}
	h.services[id] = svc
	return svc
}

func (h *Handler) createSheet(w http.ResponseWriter, r *http.Request) {
	id := h.uuidGen.New()
	svc := h.sheetService(r, id)
	svc.SaveNow(r.Context())
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) listSheets(w http.ResponseWriter, r *http.Request) {
	ids, err := h.repo.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sheets": ids})
}

func (h *Handler) getSheet(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))
	writeJSON(w, http.StatusOK, map[string]any{
		"fields":  svc.Values(),
		"stamina": svc.Pool("stamina"),
		"mana":    svc.Pool("mana"),
		"hearts":  svc.Hearts(),
	})
}

func (h *Handler) deleteSheet(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		writeJSON(w, http.StatusPreconditionRequired, map[string]string{
			"confirm": "Delete this sheet?",
		})
		return
	}

	id := r.PathValue("id")

	// Drop the live service first so a pending autosave cannot resurrect
	// the record after the delete.
	h.mu.Lock()
	if svc, ok := h.services[id]; ok {
		svc.Close()
		delete(h.services, id)
	}
	h.mu.Unlock()

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) setFields(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))

	var fields map[string]string
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, sheeterr.InvalidArgument("request body must be a field map"))
		return
	}

	for name, value := range fields {
		svc.SetField(name, value)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"fields":  svc.Values(),
		"stamina": svc.Pool("stamina"),
		"mana":    svc.Pool("mana"),
	})
}

func (h *Handler) exportSheet(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))

	payload, filename, err := svc.Export()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) exportPreview(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))

	payload, err := svc.ExportPreview()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) importSheet(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))

	filename := r.URL.Query().Get("filename")
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		writeError(w, sheeterr.InvalidArgument("failed to read import payload"))
		return
	}

	if err := svc.Import(r.Context(), filename, payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": svc.Values()})
}

func (h *Handler) resetSheet(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		writeJSON(w, http.StatusPreconditionRequired, map[string]string{
			"confirm": "Reset all fields?",
		})
		return
	}

	svc := h.sheetService(r, r.PathValue("id"))
	if !svc.Reset(r.Context()) {
		writeError(w, sheeterr.Internal("reset was not confirmed"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"fields": svc.Values()})
}

func (h *Handler) setPortrait(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))

	var body struct {
		Data string `json:"data"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxImportSize)).Decode(&body); err != nil {
		writeError(w, sheeterr.InvalidArgument("request body must carry portrait data"))
		return
	}

	svc.SetPortrait(r.Context(), body.Data)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))

	switch r.PathValue("collection") {
	case "spells":
		writeJSON(w, http.StatusOK, map[string]any{"entries": svc.Spells().List()})
	case "actions":
		entries := svc.Actions().List()
		if kind := r.URL.Query().Get("kind"); kind != "" {
			entries = svc.Actions().Filter(func(a entry.Action) bool { return a.IsKind(kind) })
		}
		writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
	case "inventory":
		writeJSON(w, http.StatusOK, map[string]any{"entries": svc.Inventory().List()})
	case "features":
		writeJSON(w, http.StatusOK, map[string]any{"entries": svc.Features().List()})
	default:
		writeError(w, sheeterr.NotFoundf("unknown collection %q", r.PathValue("collection")))
	}
}

func (h *Handler) addEntry(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))

	attrs, err := decodeAttrs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := collectionAdd(svc, r.PathValue("collection"), attrs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	svc := h.sheetService(r, r.PathValue("id"))

	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil {
		writeError(w, sheeterr.InvalidArgument("entry index must be an integer"))
		return
	}
	attrs, err := decodeAttrs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := collectionUpdate(svc, r.PathValue("collection"), idx, attrs); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	if !confirmed(r) {
		writeJSON(w, http.StatusPreconditionRequired, map[string]string{
			"confirm": "Remove this entry?",
		})
		return
	}

	svc := h.sheetService(r, r.PathValue("id"))
	idx, err := strconv.Atoi(r.PathValue("idx"))
	if err != nil {
		writeError(w, sheeterr.InvalidArgument("entry index must be an integer"))
		return
	}

	removed, err := collectionDelete(svc, r.PathValue("collection"), idx)
	if err != nil {
		writeError(w, err)
		return
	}
	if !removed {
		writeJSON(w, http.StatusOK, map[string]string{"status": "declined"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// collectionAdd dispatches an add to the right typed manager
func collectionAdd(svc sheetsvc.Service, collection string, attrs entry.Attrs) error {
	switch collection {
	case "spells":
		return svc.Spells().Add(attrs)
	case "actions":
		return svc.Actions().Add(attrs)
	case "inventory":
		return svc.Inventory().Add(attrs)
	case "features":
		return svc.Features().Add(attrs)
	default:
		return sheeterr.NotFoundf("unknown collection %q", collection)
	}
}

// collectionUpdate enters edit mode for the entry and saves the builder
// input over it, keeping merge semantics
func collectionUpdate(svc sheetsvc.Service, collection string, idx int, attrs entry.Attrs) error {
	switch collection {
	case "spells":
		if _, err := svc.Spells().Edit(idx); err != nil {
			return err
		}
		return svc.Spells().Save(attrs)
	case "actions":
		if _, err := svc.Actions().Edit(idx); err != nil {
			return err
		}
		return svc.Actions().Save(attrs)
	case "inventory":
		if _, err := svc.Inventory().Edit(idx); err != nil {
			return err
		}
		return svc.Inventory().Save(attrs)
	case "features":
		if _, err := svc.Features().Edit(idx); err != nil {
			return err
		}
		return svc.Features().Save(attrs)
	default:
		return sheeterr.NotFoundf("unknown collection %q", collection)
	}
}

func collectionDelete(svc sheetsvc.Service, collection string, idx int) (bool, error) {
	switch collection {
	case "spells":
		return svc.Spells().Delete(idx)
	case "actions":
		return svc.Actions().Delete(idx)
	case "inventory":
		return svc.Inventory().Delete(idx)
	case "features":
		return svc.Features().Delete(idx)
	default:
		return false, sheeterr.NotFoundf("unknown collection %q", collection)
	}
}

func decodeAttrs(r *http.Request) (entry.Attrs, error) {
	var attrs entry.Attrs
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		return nil, sheeterr.InvalidArgument("request body must be an attribute map")
	}
	return attrs, nil
}

func confirmed(r *http.Request) bool {
	return r.URL.Query().Get("confirm") == "true" || r.URL.Query().Get("confirm") == "1"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("api: failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch sheeterr.GetCode(err) {
	case sheeterr.CodeValidation, sheeterr.CodeInvalidArgument, sheeterr.CodeImportFormat:
		status = http.StatusBadRequest
	case sheeterr.CodeNotFound:
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

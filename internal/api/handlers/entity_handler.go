package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/splice-sistemas/splice-be/internal/auth"
	"github.com/splice-sistemas/splice-be/internal/entity"
	"github.com/splice-sistemas/splice-be/internal/export"
	"github.com/splice-sistemas/splice-be/internal/models"
	"github.com/splice-sistemas/splice-be/internal/services"
)

// EntityHandler serves the uniform CRUD surface for every module
// descriptor: list/search, form writes, role-aware deletes and exports.
type EntityHandler struct {
	store    *entity.Store
	auditSvc services.AuditServiceProvider
}

// NewEntityHandler creates a new EntityHandler.
func NewEntityHandler(store *entity.Store, auditSvc services.AuditServiceProvider) *EntityHandler {
	return &EntityHandler{store: store, auditSvc: auditSvc}
}

func (h *EntityHandler) descriptor(w http.ResponseWriter, r *http.Request) (entity.Descriptor, bool) {
	name := chi.URLParam(r, "module")
	d, ok := entity.Get(name)
	if !ok {
		http.Error(w, "Módulo desconhecido", http.StatusNotFound)
	}
	return d, ok
}

// List handles list/search/pagination for one module.
func (h *EntityHandler) List(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}

	opts := entity.ListOptions{Search: r.URL.Query().Get("q")}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		opts.Offset = v
	}

	result, err := h.store.List(r.Context(), d, opts)
	if err != nil {
		log.Error().Err(err).Str("module", d.Name).Msg("Failed to list records")
		http.Error(w, "Falha ao listar registros", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// Get handles fetching a single record.
func (h *EntityHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}

	item, err := h.store.Get(r.Context(), d, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			http.Error(w, "Registro não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Falha ao buscar registro", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// Create handles inserting a new record.
func (h *EntityHandler) Create(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}

	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.store.Create(r.Context(), d, values)
	if err != nil {
		log.Error().Err(err).Str("module", d.Name).Msg("Failed to create record")
		http.Error(w, "Falha ao criar registro", http.StatusInternalServerError)
		return
	}

	h.audit(r, d, "create", item, "Registro criado")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(item)
}

// Update handles overwriting an existing record.
func (h *EntityHandler) Update(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}

	var values map[string]any
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	item, err := h.store.Update(r.Context(), d, chi.URLParam(r, "id"), values)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			http.Error(w, "Registro não encontrado", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("module", d.Name).Msg("Failed to update record")
		http.Error(w, "Falha ao atualizar registro", http.StatusInternalServerError)
		return
	}

	h.audit(r, d, "update", item, "Registro atualizado")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

// Delete handles removal of one record, enforcing the dependency rule:
// referenced records cannot be deleted by non-admins; admins may proceed
// and get the warning in the response.
func (h *EntityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")

	depErr, err := h.store.DependencyCount(r.Context(), d, id)
	if err != nil {
		log.Error().Err(err).Str("module", d.Name).Msg("Failed to check dependencies")
		http.Error(w, "Falha ao verificar dependências", http.StatusInternalServerError)
		return
	}

	claims := auth.FromContext(r.Context())
	if depErr != nil && !auth.HasRole(claims, models.RoleAdmin) {
		http.Error(w, "Exclusão bloqueada: "+depErr.Error(), http.StatusConflict)
		return
	}

	if err := h.store.Delete(r.Context(), d, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			http.Error(w, "Registro não encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "Falha ao excluir registro", http.StatusInternalServerError)
		return
	}

	h.audit(r, d, "delete", map[string]any{"id": id}, "Registro excluído")

	response := map[string]any{"deleted": true}
	if depErr != nil {
		response["warning"] = depErr.Error()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// BulkDelete handles multi-select deletes.
func (h *EntityHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}

	var payload struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	deleted, err := h.store.BulkDelete(r.Context(), d, payload.IDs)
	if err != nil {
		log.Error().Err(err).Str("module", d.Name).Msg("Failed bulk delete")
		http.Error(w, "Falha ao excluir registros", http.StatusInternalServerError)
		return
	}

	h.audit(r, d, "bulk_delete", nil, fmt.Sprintf("%d registro(s) excluído(s)", deleted))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"deleted": deleted})
}

// Export streams the whole module as CSV, XLSX or PDF.
func (h *EntityHandler) Export(w http.ResponseWriter, r *http.Request) {
	d, ok := h.descriptor(w, r)
	if !ok {
		return
	}

	result, err := h.store.List(r.Context(), d, entity.ListOptions{Search: r.URL.Query().Get("q")})
	if err != nil {
		http.Error(w, "Falha ao exportar registros", http.StatusInternalServerError)
		return
	}

	columns := make([]export.Column, len(d.Columns))
	for i, c := range d.Columns {
		columns[i] = export.Column{Key: c.Name, Label: c.Label}
	}

	format := r.URL.Query().Get("format")
	switch format {
	case "", "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(d.Name, "csv")+`"`)
		err = export.WriteCSV(w, columns, result.Items)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(d.Name, "xlsx")+`"`)
		err = export.WriteXLSX(w, columns, result.Items)
	case "pdf":
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(d.Name, "pdf")+`"`)
		err = export.WritePDF(w, "Relatório de "+d.Label, columns, result.Items)
	default:
		http.Error(w, "Formato de exportação desconhecido", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("module", d.Name).Str("format", format).Msg("Failed to write export")
	}
}

func (h *EntityHandler) audit(r *http.Request, d entity.Descriptor, verb string, item map[string]any, message string) {
	var actorID *string
	if claims := auth.FromContext(r.Context()); claims != nil {
		actorID = &claims.UserID
	}
	var entityID *string
	if item != nil {
		if id, ok := item["id"].(string); ok {
			entityID = &id
		}
	}
	h.auditSvc.Record(r.Context(), actorID, d.Name+"."+verb, d.Name, entityID, "info", message)
}

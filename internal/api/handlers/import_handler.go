package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/splice-sistemas/splice-be/internal/auth"
	"github.com/splice-sistemas/splice-be/internal/entity"
	"github.com/splice-sistemas/splice-be/internal/importer"
	"github.com/splice-sistemas/splice-be/internal/services"
)

const maxImportSize = 32 << 20

// ImportHandler handles spreadsheet uploads: template download, header
// preview and the full parse-map-insert pipeline.
type ImportHandler struct {
	store    *entity.Store
	auditSvc services.AuditServiceProvider
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(store *entity.Store, auditSvc services.AuditServiceProvider) *ImportHandler {
	return &ImportHandler{store: store, auditSvc: auditSvc}
}

func (h *ImportHandler) registry(w http.ResponseWriter, r *http.Request) (string, []importer.ColumnMapping, bool) {
	name := chi.URLParam(r, "module")
	mappings, ok := importer.Registry(name)
	if !ok {
		http.Error(w, "Módulo sem suporte a importação", http.StatusNotFound)
		return name, nil, false
	}
	return name, mappings, true
}

// Template serves the blank import spreadsheet for one module.
func (h *ImportHandler) Template(w http.ResponseWriter, r *http.Request) {
	name, _, ok := h.registry(w, r)
	if !ok {
		return
	}

	f, err := importer.BuildTemplate(importer.TemplateHeaders(name))
	if err != nil {
		log.Error().Err(err).Str("module", name).Msg("Failed to build import template")
		http.Error(w, "Falha ao gerar o modelo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="modelo-`+name+`.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Error().Err(err).Str("module", name).Msg("Failed to write import template")
	}
}

// Preview reads only the header row of an uploaded file so the client can
// show which columns were recognized before committing the import.
func (h *ImportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	name, mappings, ok := h.registry(w, r)
	if !ok {
		return
	}

	file, filename, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	headers, err := importer.ExtractHeaders(filename, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	recognized := make(map[string]string)
	for _, header := range headers {
		normalized := importer.NormalizeHeader(header)
		for _, m := range mappings {
			if importer.NormalizeHeader(m.SourceHeader) == normalized {
				recognized[header] = m.TargetField
				break
			}
		}
	}

	log.Debug().Str("module", name).Str("file", filename).Int("headers", len(headers)).Msg("Import preview")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"headers":    headers,
		"recognized": recognized,
	})
}

// Import runs the full pipeline: parse the upload, map and validate every
// row, insert the valid ones in a single transaction and report per-line
// errors for the rest.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	name, mappings, ok := h.registry(w, r)
	if !ok {
		return
	}
	d, ok := entity.Get(name)
	if !ok {
		http.Error(w, "Módulo desconhecido", http.StatusNotFound)
		return
	}

	file, filename, ok := h.openUpload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	rows, err := importer.ParseFile(filename, file)
	if err != nil {
		if errors.Is(err, importer.ErrUnreadableFile) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		log.Error().Err(err).Str("file", filename).Msg("Failed to parse upload")
		http.Error(w, "Falha ao ler o arquivo", http.StatusInternalServerError)
		return
	}

	result := importer.MapRows(rows, mappings)

	inserted := 0
	if len(result.Data) > 0 {
		n, err := h.store.BulkInsert(r.Context(), d, result.Data)
		if err != nil {
			log.Error().Err(err).Str("module", name).Msg("Failed to insert imported rows")
			http.Error(w, "Falha ao gravar registros importados", http.StatusInternalServerError)
			return
		}
		inserted = n
	}

	var actorID *string
	if claims := auth.FromContext(r.Context()); claims != nil {
		actorID = &claims.UserID
	}
	h.auditSvc.Record(r.Context(), actorID, name+".import", name, nil, "info",
		fmt.Sprintf("Importação de %s: %d de %d linha(s) gravada(s)", filename, inserted, result.TotalRows))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success":   result.Success,
		"inserted":  inserted,
		"totalRows": result.TotalRows,
		"validRows": result.ValidRows,
		"errors":    result.Errors,
	})
}

func (h *ImportHandler) openUpload(w http.ResponseWriter, r *http.Request) (multipart.File, string, bool) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		http.Error(w, "Arquivo inválido", http.StatusBadRequest)
		return nil, "", false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, `Campo "file" é obrigatório`, http.StatusBadRequest)
		return nil, "", false
	}
	return file, header.Filename, true
}

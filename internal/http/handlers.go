package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ASCBird0277/ca-app/internal/domain"
	"github.com/ASCBird0277/ca-app/internal/repository"
	"github.com/ASCBird0277/ca-app/internal/store"

	"go.uber.org/zap"
)

// Handler serves the read API over the data store.
type Handler struct {
	store  *store.DataStore
	logger *zap.Logger
}

func NewHandler(dataStore *store.DataStore, logger *zap.Logger) *Handler {
	return &Handler{store: dataStore, logger: logger}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetProperties(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"properties": h.store.Properties(),
	})
}

func (h *Handler) GetRegions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"regions": h.store.Regions(),
	})
}

func (h *Handler) Search(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()
	filters := domain.SearchFilters{
		Regions:  splitParam(query["region"]),
		Vacancy:  strings.TrimSpace(query.Get("vacancy")),
		UnitsMin: parseIntParam(query.Get("units_min")),
		UnitsMax: parseIntParam(query.Get("units_max")),
	}
	properties, employeeMatches := h.store.Search(query.Get("q"), filters)
	writeJSON(w, http.StatusOK, map[string]any{
		"properties":      properties,
		"employeeMatches": employeeMatches,
	})
}

// GetPropertyEmployees serves /api/properties/{id}/employees.
func (h *Handler) GetPropertyEmployees(w http.ResponseWriter, req *http.Request) {
	rest := strings.TrimPrefix(req.URL.Path, "/api/properties/")
	identifier, tail, found := strings.Cut(rest, "/")
	if !found || tail != "employees" || identifier == "" {
		http.NotFound(w, req)
		return
	}
	listing, err := h.store.EmployeesForProperty(identifier)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "property not found"})
			return
		}
		h.logger.Error("staff listing failed", zap.String("identifier", identifier), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, listing)
}

func (h *Handler) Reload(w http.ResponseWriter, _ *http.Request) {
	stats, err := h.store.Reload()
	if err != nil {
		h.logger.Error("reload failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "reloaded",
		"stats":  stats,
	})
}

func (h *Handler) ExportProperties(w http.ResponseWriter, _ *http.Request) {
	payload, err := repository.ExportProperties(h.store.Properties())
	if err != nil {
		h.logger.Error("property export failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "export failed"})
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="properties.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// splitParam accepts both repeated query parameters and comma
// separated lists.
func splitParam(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

// parseIntParam returns nil for absent or unparseable values; bad
// bounds never fail a search.
func parseIntParam(value string) *int {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &n
}

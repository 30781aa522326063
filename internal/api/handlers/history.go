package handlers

import (
	"meeting-point-service/internal/api/dto"
	"meeting-point-service/internal/domain"
	"meeting-point-service/internal/services"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// HistoryHandler exposes previously computed meeting points.
type HistoryHandler struct {
	History *services.HistoryService
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := h.History.Recent(r.Context(), limit)
	if err != nil {
		writeServiceError(w, r, "list history", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListHistoryResponse{Entries: toHistoryResponses(entries)})
}

func (h *HistoryHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	entries, err := h.History.Suggest(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeServiceError(w, r, "suggest history", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SuggestionsResponse{Suggestions: toHistoryResponses(entries)})
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.History.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, "get history", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toHistoryResponse(e))
}

func (h *HistoryHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.History.Clear(r.Context()); err != nil {
		writeServiceError(w, r, "clear history", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toHistoryResponses(entries []domain.HistoryEntry) []dto.HistoryEntryResponse {
	out := make([]dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toHistoryResponse(e))
	}
	return out
}

func toHistoryResponse(e domain.HistoryEntry) dto.HistoryEntryResponse {
	return dto.HistoryEntryResponse{
		ID:        e.ID,
		Lat:       e.Lat,
		Lng:       e.Lng,
		Kind:      string(e.Kind),
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
	}
}

// Package collection — handlers.go обрабатывает поимку и слияние монстров.
package collection

import (
	"net/http"

	"lifesim/internal/common"
)

// Handler обрабатывает HTTP-запросы коллекции.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик коллекции.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// captureRequest — тело POST /api/monsters/capture.
type captureRequest struct {
	MonsterID string `json:"monster_id"`
}

// HandleCapture обрабатывает POST /api/monsters/capture.
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req captureRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.MonsterID == "" {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "не указан монстр"})
		return
	}

	_, entry, err := h.service.Capture(r.Context(), playerID, req.MonsterID)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"entry": entry,
	})
}

// fuseRequest — тело POST /api/monsters/fuse.
type fuseRequest struct {
	MonsterIDs []string `json:"monster_ids"`
}

// HandleFuse обрабатывает POST /api/monsters/fuse.
func (h *Handler) HandleFuse(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req fuseRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "некорректное тело запроса"})
		return
	}

	_, result, err := h.service.Fuse(r.Context(), playerID, req.MonsterIDs)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"result": result,
	})
}

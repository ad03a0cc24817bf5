// Package progression — handlers.go обрабатывает сон и распределение очков.
package progression

import (
	"net/http"

	"lifesim/internal/common"
)

// Handler обрабатывает HTTP-запросы прогрессии.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик прогрессии.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// HandleSleep обрабатывает POST /api/sleep.
func (h *Handler) HandleSleep(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	_, summary, err := h.service.Sleep(r.Context(), playerID)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"summary": summary,
	})
}

// allocateRequest — тело POST /api/stats/allocate.
type allocateRequest struct {
	Stat   string `json:"stat"`
	Points int    `json:"points"`
}

// HandleAllocate обрабатывает POST /api/stats/allocate.
func (h *Handler) HandleAllocate(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req allocateRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.Stat == "" {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "не указана характеристика"})
		return
	}

	rec, err := h.service.AllocateStat(r.Context(), playerID, req.Stat, req.Points)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"stats":       rec.Stats,
		"stat_points": rec.StatPoints,
	})
}

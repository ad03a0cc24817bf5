// Package skills — handlers.go обрабатывает запросы управления навыками.
package skills

import (
	"net/http"

	"lifesim/internal/common"
)

// Handler обрабатывает HTTP-запросы навыков.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик навыков.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// acquireRequest — тело POST /api/skills/acquire.
type acquireRequest struct {
	Skill string `json:"skill"`
}

// HandleAcquire обрабатывает POST /api/skills/acquire.
func (h *Handler) HandleAcquire(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req acquireRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.Skill == "" {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "не указан навык"})
		return
	}

	rec, err := h.service.Acquire(r.Context(), playerID, req.Skill)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":              true,
		"current_skills":  rec.CurrentSkills,
		"acquired_skills": rec.AcquiredSkills,
	})
}

// replaceRequest — тело POST /api/skills/replace.
type replaceRequest struct {
	OldSkill string `json:"old_skill"`
	NewSkill string `json:"new_skill"`
}

// HandleReplace обрабатывает POST /api/skills/replace.
func (h *Handler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req replaceRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.OldSkill == "" || req.NewSkill == "" {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "не указаны навыки для замены"})
		return
	}

	rec, err := h.service.Replace(r.Context(), playerID, req.OldSkill, req.NewSkill)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":              true,
		"current_skills":  rec.CurrentSkills,
		"acquired_skills": rec.AcquiredSkills,
	})
}

// useItemRequest — тело POST /api/skills/item.
type useItemRequest struct {
	ItemID string `json:"item_id"`
}

// HandleUseItem обрабатывает POST /api/skills/item.
func (h *Handler) HandleUseItem(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req useItemRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.ItemID == "" {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "не указан предмет"})
		return
	}

	rec, err := h.service.UseItem(r.Context(), playerID, req.ItemID)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"skill_usage": rec.SkillUsage,
		"skill_items": rec.SkillItems,
	})
}

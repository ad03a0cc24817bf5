// Package battle — handlers.go обрабатывает боевые запросы клиента.
package battle

import (
	"net/http"

	"lifesim/internal/common"
)

// Handler обрабатывает HTTP-запросы боя.
type Handler struct {
	engine *Engine
}

// NewHandler создаёт обработчик боя.
func NewHandler(engine *Engine) *Handler {
	return &Handler{engine: engine}
}

// startRequest — тело POST /api/battle/start.
type startRequest struct {
	StageID int `json:"stage_id"`
}

// HandleStart обрабатывает POST /api/battle/start.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req startRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "некорректное тело запроса"})
		return
	}

	sess, err := h.engine.Start(r.Context(), playerID, req.StageID)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"battle_id":    sess.ID,
		"stage_id":     sess.StageID,
		"player_hp":    sess.PlayerHP,
		"enemy_hp":     sess.EnemyHP,
		"enemy_attack": sess.EnemyAttack,
		"skills":       sess.Skills,
		"skill_uses":   sess.SkillUses,
		"log":          sess.Log,
	})
}

// skillRequest — тело POST /api/battle/skill.
type skillRequest struct {
	BattleID string `json:"battle_id"`
	Skill    string `json:"skill"`
}

// HandleUseSkill обрабатывает POST /api/battle/skill.
func (h *Handler) HandleUseSkill(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req skillRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.BattleID == "" || req.Skill == "" {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "не указан бой или навык"})
		return
	}

	result, err := h.engine.UseSkill(r.Context(), playerID, req.BattleID, req.Skill)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"result": result,
	})
}

// fleeRequest — тело POST /api/battle/flee.
type fleeRequest struct {
	BattleID string `json:"battle_id"`
}

// HandleFlee обрабатывает POST /api/battle/flee.
// Повторное бегство из завершённого боя — тоже успех.
func (h *Handler) HandleFlee(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req fleeRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.BattleID == "" {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "не указан бой"})
		return
	}

	h.engine.Flee(r.Context(), playerID, req.BattleID)

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"message": "Вы сбежали из боя",
	})
}

// Package player — handlers.go обрабатывает запросы состояния игрока:
// просмотр сохранения, покупка недвижимости, удаление данных.
package player

import (
	"net/http"

	"lifesim/internal/common"
)

// Handler обрабатывает HTTP-запросы игрока.
type Handler struct {
	service *Service
	// Порог опыта до следующего уровня считает прогрессия; функцию
	// пробрасываем при сборке, чтобы не плодить циклических импортов.
	nextThreshold func(level int) int64
}

// NewHandler создаёт обработчик игрока.
func NewHandler(service *Service, nextThreshold func(level int) int64) *Handler {
	return &Handler{service: service, nextThreshold: nextThreshold}
}

// View — состояние игрока для клиента. Отдельный тип, а не Record:
// клиенту нужны производные поля вроде exp_to_next.
type View struct {
	OK        bool    `json:"ok"`
	Record    *Record `json:"player"`
	ExpToNext int64   `json:"exp_to_next"`
	Attack    int     `json:"attack"`
}

// HandleGet обрабатывает GET /api/player — полное состояние игрока.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	rec, err := h.service.Get(r.Context(), playerID)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, View{
		OK:        true,
		Record:    rec,
		ExpToNext: h.nextThreshold(rec.Level),
		Attack:    rec.CombatAttack(),
	})
}

// buyPropertyRequest — тело POST /api/property/buy.
type buyPropertyRequest struct {
	PropertyID string `json:"property_id"`
}

// HandleBuyProperty обрабатывает POST /api/property/buy.
func (h *Handler) HandleBuyProperty(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	var req buyPropertyRequest
	if err := common.DecodeJSON(r, &req); err != nil || req.PropertyID == "" {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "не указана недвижимость"})
		return
	}

	rec, err := h.service.BuyProperty(r.Context(), playerID, req.PropertyID)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"money":   rec.Money,
		"message": "Куплено: " + req.PropertyID + ". Баланс: " + common.FormatMoney(rec.Money),
	})
}

// HandleDelete обрабатывает DELETE /api/player — полное удаление данных.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	playerID := common.PlayerIDFromContext(r.Context())

	if err := h.service.Delete(r.Context(), playerID); err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

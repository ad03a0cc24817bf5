// Package catalog — handlers.go отдаёт справочники клиенту.
// Данные статичны, клиент кеширует ответ на всю сессию.
package catalog

import (
	"net/http"

	"lifesim/internal/common"
)

// Handler обрабатывает запросы справочников.
type Handler struct {
	catalog *Catalog
}

// NewHandler создаёт обработчик справочников.
func NewHandler(cat *Catalog) *Handler {
	return &Handler{catalog: cat}
}

// HandleGet обрабатывает GET /api/catalog — все справочники разом.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"monsters":   h.catalog.Monsters(),
		"skills":     h.catalog.Skills(),
		"dungeons":   h.catalog.Dungeons(),
		"properties": h.catalog.Properties(),
	})
}

// Package auth — handlers.go обрабатывает регистрацию и вход,
// middleware.go-часть — проверку токена на защищённых маршрутах.
package auth

import (
	"net/http"
	"strings"

	"lifesim/internal/common"
)

// Handler обрабатывает запросы авторизации.
type Handler struct {
	service *Service
}

// NewHandler создаёт обработчик авторизации.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// credentialsRequest — тело register и login.
type credentialsRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// HandleRegister обрабатывает POST /api/auth/register.
// Создаёт учётную запись вместе с новой игрой и сразу выдаёт токен.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "некорректное тело запроса"})
		return
	}

	token, rec, err := h.service.Register(r.Context(), req.Login, req.Password)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":        true,
		"token":     token,
		"player_id": rec.ID,
	})
}

// HandleLogin обрабатывает POST /api/auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondJSON(w, http.StatusBadRequest, common.ErrorResponse{Error: "некорректное тело запроса"})
		return
	}

	token, err := h.service.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		common.RespondError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":    true,
		"token": token,
	})
}

// Middleware проверяет Bearer-токен и кладёт id игрока в контекст.
// Запрос без валидного токена дальше не проходит.
func (h *Handler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			common.RespondJSON(w, http.StatusUnauthorized, common.ErrorResponse{Error: common.ErrInvalidToken.Error()})
			return
		}

		playerID, err := h.service.VerifyToken(tokenString)
		if err != nil {
			common.RespondJSON(w, http.StatusUnauthorized, common.ErrorResponse{Error: common.ErrInvalidToken.Error()})
			return
		}

		ctx := common.WithPlayerID(r.Context(), playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Package common — http.go содержит хелперы JSON-ответов для HTTP-обработчиков.
// Все обработчики отвечают одинаково: {"ok":true,...} либо {"ok":false,"error":"..."}.
package common

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// ErrorResponse — тело ответа при ошибке.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// RespondJSON сериализует payload и пишет его с указанным статусом.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Не удалось сериализовать ответ")
	}
}

// RespondError пишет ошибку с кодом, выбранным по её классу.
// Ожидаемые ошибки (валидация, предусловия, «не найдено») отдаются игроку
// как есть, неожиданные — скрываются за общим сообщением.
func RespondError(w http.ResponseWriter, err error) {
	status := StatusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Внутренние детали (пути файлов и т.п.) игроку не показываем
		log.WithError(err).Error("Внутренняя ошибка обработчика")
		msg = "внутренняя ошибка сервера"
	}
	RespondJSON(w, status, ErrorResponse{OK: false, Error: msg})
}

// StatusForError выбирает HTTP-код по классу ошибки.
func StatusForError(err error) int {
	switch {
	case IsNotFound(err):
		return http.StatusNotFound
	case IsValidation(err):
		return http.StatusBadRequest
	case IsPrecondition(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON читает тело запроса в dst. Неизвестные поля игнорируются —
// клиент обновляется отдельно от сервера и может слать лишние поля.
func DecodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

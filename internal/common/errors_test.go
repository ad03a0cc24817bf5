package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusForError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"не найдено", ErrPlayerNotFound, http.StatusNotFound},
		{"валидация", ErrInvalidPoints, http.StatusBadRequest},
		{"предусловие", ErrNotEnoughMoney, http.StatusConflict},
		{"неизвестная ошибка", errors.New("диск сгорел"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := StatusForError(tc.err); got != tc.want {
				t.Errorf("StatusForError(%v) = %d; ожидалось %d", tc.err, got, tc.want)
			}
		})
	}
}

// Классификация должна видеть ошибку и сквозь обёртку %w.
func TestStatusForWrappedError(t *testing.T) {
	wrapped := fmt.Errorf("слой выше: %w", ErrUnknownSkill)
	if got := StatusForError(wrapped); got != http.StatusNotFound {
		t.Errorf("StatusForError(обёрнутая) = %d; ожидалось 404", got)
	}
}

func TestErrorClasses(t *testing.T) {
	if !IsNotFound(ErrBattleNotFound) {
		t.Error("ErrBattleNotFound должна относиться к «не найдено»")
	}
	if !IsValidation(ErrWrongFusionCount) {
		t.Error("ErrWrongFusionCount должна относиться к валидации")
	}
	if !IsPrecondition(ErrSkillExhausted) {
		t.Error("ErrSkillExhausted должна относиться к предусловиям")
	}
	if IsNotFound(ErrNotEnoughMoney) || IsValidation(ErrNotEnoughMoney) {
		t.Error("ErrNotEnoughMoney попала не в свой класс")
	}
}

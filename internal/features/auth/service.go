// Package auth — service.go реализует регистрацию, вход и проверку JWT.
// Регистрация сразу создаёт новую игру: учётная запись без сохранения
// не имеет смысла.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"lifesim/internal/common"
	"lifesim/internal/config"
	"lifesim/internal/features/player"
)

// Service управляет учётными записями и токенами.
type Service struct {
	repo    *Repository
	players *player.Service
	cfg     *config.Config
}

// NewService создаёт сервис авторизации.
func NewService(repo *Repository, players *player.Service, cfg *config.Config) *Service {
	return &Service{repo: repo, players: players, cfg: cfg}
}

// Register создаёт учётную запись и новую игру, возвращает токен.
func (s *Service) Register(ctx context.Context, login, password string) (string, *player.Record, error) {
	if len(login) < 3 || len(password) < 6 {
		return "", nil, common.ErrShortCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("хеширование пароля: %w", err)
	}

	rec, err := s.players.Create(ctx)
	if err != nil {
		return "", nil, err
	}

	cred := Credential{
		PlayerID:     rec.ID,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, login, cred); err != nil {
		// Логин занят — свежесозданное сохранение не должно осиротеть
		if delErr := s.players.Delete(ctx, rec.ID); delErr != nil {
			log.WithError(delErr).Warn("Не удалось убрать осиротевшее сохранение")
		}
		return "", nil, err
	}

	token, err := s.issueToken(rec.ID)
	if err != nil {
		return "", nil, err
	}

	log.WithFields(log.Fields{"login": login, "player_id": rec.ID}).Info("Игрок зарегистрирован")
	return token, rec, nil
}

// Login проверяет пароль и выдаёт свежий токен.
func (s *Service) Login(ctx context.Context, login, password string) (string, error) {
	cred, err := s.repo.Get(ctx, login)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)); err != nil {
		return "", common.ErrWrongPassword
	}

	token, err := s.issueToken(cred.PlayerID)
	if err != nil {
		return "", err
	}

	log.WithField("login", login).Info("Игрок вошёл")
	return token, nil
}

// issueToken выпускает HS256 JWT с id игрока в subject.
func (s *Service) issueToken(playerID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   playerID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("подпись токена: %w", err)
	}
	return signed, nil
}

// VerifyToken проверяет подпись и срок токена, возвращает id игрока.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("неожиданный метод подписи: %v", t.Header["alg"])
			}
			return []byte(s.cfg.JWTSecret), nil
		})
	if err != nil || !token.Valid {
		return "", common.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}
	return claims.Subject, nil
}

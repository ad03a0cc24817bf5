// Package server собирает HTTP-маршруты и управляет жизненным циклом сервера.
// Каждое действие игрока — один короткий синхронный запрос:
// загрузили сохранение, применили логику, записали целиком, ответили.
package server

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"lifesim/internal/catalog"
	"lifesim/internal/common"
	"lifesim/internal/config"
	"lifesim/internal/features/auth"
	"lifesim/internal/features/battle"
	"lifesim/internal/features/collection"
	"lifesim/internal/features/player"
	"lifesim/internal/features/progression"
	"lifesim/internal/features/skills"
	"lifesim/internal/server/middleware"
)

// Server — HTTP-сервер игры.
type Server struct {
	httpServer  *http.Server
	rateLimiter *middleware.RateLimiter
}

// New собирает маршруты и создаёт сервер.
func New(
	cfg *config.Config,
	authHandler *auth.Handler,
	catalogHandler *catalog.Handler,
	playerHandler *player.Handler,
	progressionHandler *progression.Handler,
	battleHandler *battle.Handler,
	collectionHandler *collection.Handler,
	skillsHandler *skills.Handler,
) *Server {
	rl := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)

	// Открытые маршруты: регистрация, вход, проверка живости
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", authHandler.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", authHandler.HandleLogin)
	mux.HandleFunc("GET /healthz", handleHealth)

	// Защищённые маршруты: токен обязателен, лимит запросов на игрока
	api := http.NewServeMux()
	api.HandleFunc("GET /api/catalog", catalogHandler.HandleGet)
	api.HandleFunc("GET /api/player", playerHandler.HandleGet)
	api.HandleFunc("DELETE /api/player", playerHandler.HandleDelete)
	api.HandleFunc("POST /api/property/buy", playerHandler.HandleBuyProperty)
	api.HandleFunc("POST /api/sleep", progressionHandler.HandleSleep)
	api.HandleFunc("POST /api/stats/allocate", progressionHandler.HandleAllocate)
	api.HandleFunc("POST /api/battle/start", battleHandler.HandleStart)
	api.HandleFunc("POST /api/battle/skill", battleHandler.HandleUseSkill)
	api.HandleFunc("POST /api/battle/flee", battleHandler.HandleFlee)
	api.HandleFunc("POST /api/monsters/capture", collectionHandler.HandleCapture)
	api.HandleFunc("POST /api/monsters/fuse", collectionHandler.HandleFuse)
	api.HandleFunc("POST /api/skills/acquire", skillsHandler.HandleAcquire)
	api.HandleFunc("POST /api/skills/replace", skillsHandler.HandleReplace)
	api.HandleFunc("POST /api/skills/item", skillsHandler.HandleUseItem)

	protected := authHandler.Middleware(rateLimit(rl, api))
	mux.Handle("/api/", protected)

	handler := middleware.Recovery(middleware.Logger(mux))

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      handler,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
		},
		rateLimiter: rl,
	}
}

// Run запускает сервер и останавливает его при отмене контекста.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", s.httpServer.Addr).Info("HTTP-сервер запущен")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("HTTP-сервер останавливается...")
		s.rateLimiter.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// rateLimit отклоняет запросы сверх лимита. Стоит ПОСЛЕ auth-middleware:
// лимит считается по id игрока из токена.
func rateLimit(rl *middleware.RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := common.PlayerIDFromContext(r.Context())
		if playerID != "" && !rl.Allow(playerID) {
			common.RespondJSON(w, http.StatusTooManyRequests,
				common.ErrorResponse{Error: "слишком много запросов, подождите"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

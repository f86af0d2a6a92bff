package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AliMaskar96/Red-Tetris-sub000/internal/history"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/session"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/ws"
)

func SetupRoutes(h *session.Hub, store *history.Store, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/rooms", MintRoomCode(h, log))
	r.Get("/rooms/{code}", RoomState(h))
	r.Get("/matches", RecentMatches(store))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, log))
	return r
}

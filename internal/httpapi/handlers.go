package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AliMaskar96/Red-Tetris-sub000/internal/history"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/session"
)

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

// MintRoomCode hands out a join code no live room is using. The room itself
// only comes into existence when its creator joins over the socket.
func MintRoomCode(h *session.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				http.Error(w, "failed to generate code", http.StatusInternalServerError)
				return
			}
			reply := make(chan *session.Session, 1)
			h.Inbox() <- session.GetRoom{RoomID: c, Reply: reply}
			if <-reply == nil {
				code = c
				break
			}
			log.Debug("collision on code, regenerating", zap.String("code", c))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

// RoomState returns the roster and game status of a live room.
func RoomState(h *session.Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")

		reply := make(chan *session.Session, 1)
		h.Inbox() <- session.GetRoom{RoomID: code, Reply: reply}
		s := <-reply
		if s == nil {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		stateReply := make(chan session.View, 1)
		if !s.Send(session.GetState{Reply: stateReply}) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		select {
		case view := <-stateReply:
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(view)
		case <-time.After(3 * time.Second):
			http.Error(w, "room unavailable", http.StatusServiceUnavailable)
		}
	}
}

// RecentMatches serves the persisted match ledger when one is configured.
func RecentMatches(store *history.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, "match history disabled", http.StatusServiceUnavailable)
			return
		}
		limit := 20
		if q := r.URL.Query().Get("limit"); q != "" {
			if n, err := strconv.Atoi(q); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}
		matches, err := store.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, "failed to load matches", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(matches)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

package ws

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/AliMaskar96/Red-Tetris-sub000/internal/session"
)

// Handler upgrades a connection and bridges it to the room sessions. One
// connection is one player: the first successful join-room binds it, and
// every later event is stamped with the server-side player id rather than
// whatever id the payload claims.
func Handler(h *session.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			// In dev ONLY, you can loosen origin checks:
			// OriginPatterns: []string{"http://localhost:*", "http://127.0.0.1:*"},
		})
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan session.Event, 16)
		connID := randID(6)

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				payload, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		var sess *session.Session
		var playerID string
		defer func() {
			if sess != nil {
				sess.Send(session.Leave{PlayerID: playerID})
			}
		}()

		// Reader loop
		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				// Clean close/going-away is normal; anything else also just
				// ends the connection (Leave happens in the defer).
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm session.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"join-error","message":"bad json"}`))
				continue
			}

			if cm.Type == "join-room" {
				if sess != nil {
					// Already bound; one player per connection.
					continue
				}
				reply := make(chan session.JoinReply, 1)
				h.Inbox() <- session.JoinRoom{
					RoomID:       cm.RoomID,
					PlayerName:   cm.PlayerName,
					ConnectionID: connID,
					IsCreator:    cm.IsCreator,
					Outbox:       out,
					Reply:        reply,
				}
				jr := <-reply
				if jr.Err != nil {
					// join-error was already written to the outbox; the
					// client may re-issue join-room on this connection.
					log.Debug("join refused", zap.String("room", cm.RoomID), zap.Error(jr.Err))
					continue
				}
				sess = jr.Session
				playerID = jr.PlayerID
				continue
			}

			if sess == nil {
				// Events before a successful join are stale; drop them.
				continue
			}
			msg, ok := toSessionMsg(cm, playerID)
			if !ok {
				_ = conn.Write(r.Context(), websocket.MessageText,
					[]byte(`{"type":"join-error","message":"unknown type"}`))
				continue
			}
			sess.Send(msg)
		}
	}
}

func toSessionMsg(m session.ClientMessage, playerID string) (session.Msg, bool) {
	switch m.Type {
	case "start-game":
		return session.Start{PlayerID: playerID}, true
	case "player-move":
		return session.Move{PlayerID: playerID, Move: m.Move}, true
	case "piece-placed":
		return session.PiecePlaced{PlayerID: playerID, Piece: m.Piece, Board: m.NewBoard}, true
	case "lines-cleared":
		return session.LinesCleared{PlayerID: playerID, Lines: m.LinesCleared, Board: m.NewBoard, Score: m.NewScore}, true
	case "board-update":
		return session.BoardUpdate{PlayerID: playerID, Board: m.Board}, true
	case "score-update":
		score := 0
		if m.Score != nil {
			score = *m.Score
		}
		return session.ScoreUpdate{PlayerID: playerID, Score: score}, true
	case "pause-state":
		return session.PauseState{PlayerID: playerID, Paused: m.IsPaused}, true
	case "player-ready-rematch":
		return session.RematchReady{PlayerID: playerID}, true
	case "leave-room":
		return session.Leave{PlayerID: playerID}, true
	case "game-over":
		return session.GameOver{PlayerID: playerID}, true
	default:
		return nil, false
	}
}

func randID(length int) string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

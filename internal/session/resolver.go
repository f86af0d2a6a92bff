package session

import (
	"go.uber.org/zap"

	"github.com/AliMaskar96/Red-Tetris-sub000/internal/game"
)

// resolve decides whether the round is over. It runs after every elimination
// and pause change and is safe to invoke redundantly: the terminal
// transition goes through CompareAndSetStatus, so at most one game-end is
// ever emitted per round.
func (s *Session) resolve() {
	if s.game.Status == game.StatusEnded {
		return
	}

	var alive, active []*game.Player
	for _, p := range s.room.Players {
		if !p.IsAlive {
			continue
		}
		alive = append(alive, p)
		if !p.IsPaused {
			active = append(active, p)
		}
	}

	switch {
	case len(alive) == 0:
		// Everyone is out. Highest positive score wins, first encountered
		// on ties; an all-zero field is a draw.
		var top *game.Player
		for _, p := range s.room.Players {
			if p.Score > 0 && (top == nil || p.Score > top.Score) {
				top = p
			}
		}
		if top == nil {
			s.end(nil, ResultDraw)
		} else {
			s.end(top, ResultVictory)
		}

	case len(alive) == 1:
		s.end(alive[0], ResultVictory)

	case len(active) == 0:
		// Everyone alive is paused: wait for a resume, do not end.

	default:
		// Multiple alive and at least one active: the round continues.
	}
}

func (s *Session) end(winner *game.Player, result string) {
	if !s.game.CompareAndSetStatus(game.StatusPlaying, game.StatusEnded) {
		return
	}

	ev := Event{Type: EvtGameEnd, GameResult: result}
	if winner != nil {
		if err := s.game.SetWinner(winner.ID); err != nil {
			s.log.Warn("set winner", zap.Error(err))
		}
		id := winner.ID
		ev.WinnerID = &id
		ev.WinnerName = winner.Name
		s.log.Info("round ended", zap.String("result", result), zap.String("winner", winner.Name))
	} else {
		s.log.Info("round ended", zap.String("result", result))
	}

	s.broadcast(ev)
	s.record(result, winner)
}

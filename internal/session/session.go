package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/AliMaskar96/Red-Tetris-sub000/internal/game"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/history"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/piece"
)

// Session is the per-room actor. One goroutine owns the Room, the Game and
// every Player of one join code and processes inbound messages serially, so
// no handler ever observes a half-applied mutation. Clients attach an outbox
// channel on join and receive events through it.
type Session struct {
	inbox   chan Msg
	room    *game.Room
	game    *game.Game
	clients map[string]chan Event

	recorder history.Recorder
	log      *zap.Logger
	onEmpty  func()

	ctx    context.Context
	cancel context.CancelFunc
}

func New(parent context.Context, roomID string, rec history.Recorder, log *zap.Logger, onEmpty func()) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		inbox:    make(chan Msg, 64),
		room:     game.NewRoom(roomID),
		game:     game.NewGame(roomID),
		clients:  make(map[string]chan Event),
		recorder: rec,
		log:      log.With(zap.String("room", roomID)),
		onEmpty:  onEmpty,
		ctx:      ctx,
		cancel:   cancel,
	}
	go s.loop()
	return s
}

func (s *Session) Inbox() chan<- Msg { return s.inbox }

// Send delivers m unless the session has already shut down.
func (s *Session) Send(m Msg) bool {
	select {
	case s.inbox <- m:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Session) Done() <-chan struct{} { return s.ctx.Done() }

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			s.shutdown()
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case Join:
				s.handleJoin(msg)
			case Leave:
				if empty := s.handleLeave(msg); empty {
					s.shutdown()
					return
				}
			case Start:
				s.handleStart(msg)
			case Move:
				s.handleMove(msg)
			case PiecePlaced:
				s.handleBoardReport(msg.PlayerID, msg.Board, nil, 0)
			case LinesCleared:
				s.handleBoardReport(msg.PlayerID, msg.Board, msg.Score, msg.Lines)
			case BoardUpdate:
				s.handleBoardReport(msg.PlayerID, msg.Board, nil, 0)
			case ScoreUpdate:
				s.handleScoreUpdate(msg)
			case PauseState:
				s.handlePause(msg)
			case RematchReady:
				s.handleRematch(msg)
			case GameOver:
				s.handleGameOver(msg)
			case GetState:
				msg.Reply <- s.view()
			case Shutdown:
				s.shutdown()
				return
			}
		}
	}
}

func (s *Session) handleJoin(m Join) {
	if reason := s.joinRefusal(m.PlayerName); reason != "" {
		m.Outbox <- Event{Type: EvtJoinError, Message: reason}
		m.Reply <- JoinReply{Err: fmt.Errorf("%w: %s", game.ErrConflict, reason)}
		return
	}

	p := game.NewPlayer(m.PlayerName, m.ConnectionID)
	s.room.AddPlayer(p)
	s.room.SyncLeaderFlags()
	s.game.AddPlayer(p.ID)
	s.clients[p.ID] = m.Outbox

	m.Reply <- JoinReply{PlayerID: p.ID, Session: s}
	s.broadcast(s.rosterEvent())
	s.log.Info("player joined",
		zap.String("player", p.Name),
		zap.Bool("leader", p.IsLeader),
		zap.Int("members", len(s.room.Players)))
}

func (s *Session) joinRefusal(name string) string {
	switch {
	case s.game.Status == game.StatusPlaying:
		return "game already in progress"
	case s.room.IsFull(game.MaxPlayers):
		return "room is full"
	case s.room.HasName(name):
		return fmt.Sprintf("name %q is already taken", name)
	}
	return ""
}

// handleLeave reports whether the room drained and the session should stop.
func (s *Session) handleLeave(m Leave) bool {
	p, ok := s.room.Player(m.PlayerID)
	if !ok {
		return false
	}
	if ch, ok := s.clients[p.ID]; ok {
		close(ch)
		delete(s.clients, p.ID)
	}
	_ = s.room.RemovePlayer(p.ID)
	s.room.SyncLeaderFlags()
	s.game.RemovePlayer(p.ID)

	s.broadcast(Event{Type: EvtPlayerDisconnected, PlayerID: p.ID})
	s.log.Info("player left", zap.String("player", p.Name), zap.Int("members", len(s.room.Players)))

	if s.room.IsEmpty() {
		if s.onEmpty != nil {
			s.onEmpty()
		}
		return true
	}
	s.broadcast(s.rosterEvent())
	return false
}

func (s *Session) handleStart(m Start) {
	p, ok := s.room.Player(m.PlayerID)
	if !ok || !p.IsLeader {
		s.log.Debug("ignoring start from non-leader", zap.String("player", m.PlayerID))
		return
	}
	if !s.game.CompareAndSetStatus(game.StatusWaiting, game.StatusPlaying) {
		return
	}

	seed := piece.NewSeed()
	s.game.Start(s.room.ID, seed)
	for _, pl := range s.room.Players {
		pl.ResetForRound()
	}

	s.broadcast(Event{Type: EvtGameStarted, GameID: s.game.ID, SharedSeed: &seed})
	for _, pl := range s.room.Players {
		score := pl.Score
		s.broadcast(Event{
			Type:     EvtPlayerBoardUpdated,
			PlayerID: pl.ID,
			Board:    pl.Board,
			Spectrum: pl.Spectrum,
			Score:    &score,
		})
		s.broadcast(Event{Type: EvtPlayerScoreUpdated, PlayerID: pl.ID, Score: &score})
	}
	s.log.Info("round started", zap.Uint32("seed", seed), zap.Int("players", len(s.room.Players)))
}

// handleMove relays a movement to the other room members verbatim. Moves are
// not validated: each client runs its own board.
func (s *Session) handleMove(m Move) {
	p, ok := s.room.Player(m.PlayerID)
	if !ok {
		return
	}
	for _, other := range s.room.Players {
		if other.ID == p.ID {
			continue
		}
		s.unicast(other.ID, Event{Type: EvtPlayerMove, PlayerID: p.ID, Move: m.Move})
	}
}

// handleBoardReport applies a client-reported board, rederives the spectrum
// and optional score, and fans the result out. lines > 1 additionally sends
// penalty rows to every other player still alive.
func (s *Session) handleBoardReport(playerID string, board game.Board, score *int, lines int) {
	p, ok := s.room.Player(playerID)
	if !ok {
		// Stale report racing a disconnect; expected, not an error.
		return
	}
	if board != nil {
		p.SetBoard(board)
	}
	if err := p.UpdateSpectrum(game.SpectrumFromBoard(p.Board)); err != nil {
		s.log.Warn("spectrum update", zap.Error(err))
		return
	}
	if score != nil {
		p.SetScore(*score)
	}

	current := p.Score
	s.broadcast(Event{
		Type:     EvtPlayerBoardUpdated,
		PlayerID: p.ID,
		Board:    p.Board,
		Spectrum: p.Spectrum,
		Score:    &current,
	})
	if score != nil {
		s.broadcast(Event{Type: EvtPlayerScoreUpdated, PlayerID: p.ID, Score: &current})
	}

	if lines > 1 {
		penalty := lines - 1
		for _, other := range s.room.Players {
			if other.ID == p.ID || !other.IsAlive {
				continue
			}
			s.unicast(other.ID, Event{Type: EvtPenaltyLines, PlayerID: other.ID, Count: penalty})
		}
	}
}

func (s *Session) handleScoreUpdate(m ScoreUpdate) {
	p, ok := s.room.Player(m.PlayerID)
	if !ok {
		return
	}
	p.SetScore(m.Score)
	score := p.Score
	s.broadcast(Event{Type: EvtPlayerScoreUpdated, PlayerID: p.ID, Score: &score})
}

func (s *Session) handlePause(m PauseState) {
	p, ok := s.room.Player(m.PlayerID)
	if !ok {
		return
	}
	p.SetPaused(m.Paused)
	s.resolve()
}

func (s *Session) handleRematch(m RematchReady) {
	p, ok := s.room.Player(m.PlayerID)
	if !ok {
		return
	}
	s.game.ResetForRematch()
	p.ResetForRound()
	s.broadcast(s.rosterEvent())
	s.log.Info("player ready for rematch", zap.String("player", p.Name))
}

func (s *Session) handleGameOver(m GameOver) {
	p, ok := s.room.Player(m.PlayerID)
	if !ok {
		return
	}
	p.SetAlive(false)
	remaining := s.aliveCount()
	s.broadcast(Event{
		Type:             EvtPlayerEliminated,
		PlayerID:         p.ID,
		PlayerName:       p.Name,
		RemainingPlayers: &remaining,
	})
	s.log.Info("player eliminated", zap.String("player", p.Name), zap.Int("remaining", remaining))
	s.resolve()
}

func (s *Session) aliveCount() int {
	n := 0
	for _, p := range s.room.Players {
		if p.IsAlive {
			n++
		}
	}
	return n
}

func (s *Session) rosterEvent() Event {
	players := make([]PlayerInfo, 0, len(s.room.Players))
	for _, p := range s.room.Players {
		players = append(players, PlayerInfo{ID: p.ID, Name: p.Name, IsLeader: p.IsLeader, Score: p.Score})
	}
	return Event{
		Type:    EvtRoomJoined,
		Game:    &GameInfo{ID: s.game.ID, Status: string(s.game.Status)},
		Players: players,
	}
}

func (s *Session) view() View {
	players := make([]PlayerInfo, 0, len(s.room.Players))
	for _, p := range s.room.Players {
		players = append(players, PlayerInfo{ID: p.ID, Name: p.Name, IsLeader: p.IsLeader, Score: p.Score})
	}
	return View{
		RoomID:     s.room.ID,
		Status:     s.game.Status,
		WinnerID:   s.game.WinnerID,
		LeaderID:   s.room.LeaderID,
		Seed:       s.game.Seed,
		NumClients: len(s.clients),
		Players:    players,
	}
}

func (s *Session) broadcast(ev Event) {
	for id := range s.clients {
		s.unicast(id, ev)
	}
}

func (s *Session) unicast(playerID string, ev Event) {
	ch, ok := s.clients[playerID]
	if !ok {
		return
	}
	select {
	case ch <- ev:
	default:
		// Client is slow/full - drop them. The ws layer will issue Leave
		// when the connection dies.
		close(ch)
		delete(s.clients, playerID)
	}
}

// record hands the finished round to the history ledger off the actor
// goroutine so the loop never blocks on database I/O.
func (s *Session) record(result string, winner *game.Player) {
	if s.recorder == nil {
		return
	}
	res := history.MatchResult{
		RoomID:  s.room.ID,
		Result:  result,
		Players: len(s.room.Players),
	}
	if winner != nil {
		res.WinnerID = winner.ID
		res.WinnerName = winner.Name
		res.WinnerScore = winner.Score
	}
	log := s.log
	rec := s.recorder
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rec.Record(ctx, res); err != nil {
			log.Warn("record match result", zap.Error(err))
		}
	}()
}

func (s *Session) shutdown() {
	for id, ch := range s.clients {
		close(ch)
		delete(s.clients, id)
	}
	s.cancel()
}

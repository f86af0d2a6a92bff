package session

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/AliMaskar96/Red-Tetris-sub000/internal/game"
	"github.com/AliMaskar96/Red-Tetris-sub000/internal/history"
)

type HubMsg interface{ isHubMsg() }

// JoinRoom routes a join to the room's session, creating the session first
// when the joiner is the creator. A creator join of an existing room and a
// plain join of a missing room are both refused on the joiner's outbox.
type JoinRoom struct {
	RoomID       string
	PlayerName   string
	ConnectionID string
	IsCreator    bool
	Outbox       chan Event
	Reply        chan JoinReply
}

type GetRoom struct {
	RoomID string
	Reply  chan *Session
}

type RemoveRoom struct{ RoomID string }

type ShutdownHub struct{}

func (JoinRoom) isHubMsg()    {}
func (GetRoom) isHubMsg()     {}
func (RemoveRoom) isHubMsg()  {}
func (ShutdownHub) isHubMsg() {}

// Hub is the registry actor owning the roomID -> Session map. Sessions
// remove themselves through RemoveRoom when their last player leaves.
type Hub struct {
	inbox    chan HubMsg
	rooms    map[string]*Session
	recorder history.Recorder
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewHub(parent context.Context, rec history.Recorder, log *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(parent)
	h := &Hub{
		inbox:    make(chan HubMsg, 64),
		rooms:    make(map[string]*Session),
		recorder: rec,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
	go h.loop()
	return h
}

func (h *Hub) Inbox() chan<- HubMsg { return h.inbox }

func (h *Hub) loop() {
	for {
		select {
		case <-h.ctx.Done():
			return

		case m := <-h.inbox:
			switch msg := m.(type) {
			case JoinRoom:
				h.handleJoinRoom(msg)

			case GetRoom:
				msg.Reply <- h.rooms[msg.RoomID] // may be nil

			case RemoveRoom:
				delete(h.rooms, msg.RoomID)
				h.log.Info("room removed", zap.String("room", msg.RoomID))

			case ShutdownHub:
				for _, s := range h.rooms {
					s.Send(Shutdown{})
				}
				clear(h.rooms)
				h.cancel()
				return
			}
		}
	}
}

func (h *Hub) handleJoinRoom(m JoinRoom) {
	s := h.rooms[m.RoomID]

	if m.IsCreator && s != nil {
		reason := fmt.Sprintf("room %s already exists", m.RoomID)
		m.Outbox <- Event{Type: EvtJoinError, Message: reason}
		m.Reply <- JoinReply{Err: fmt.Errorf("%w: %s", game.ErrConflict, reason)}
		return
	}
	if !m.IsCreator && s == nil {
		reason := fmt.Sprintf("room %s does not exist", m.RoomID)
		m.Outbox <- Event{Type: EvtJoinError, Message: reason}
		m.Reply <- JoinReply{Err: fmt.Errorf("%w: %s", game.ErrNotFound, reason)}
		return
	}

	if s == nil {
		roomID := m.RoomID
		s = New(h.ctx, roomID, h.recorder, h.log, func() {
			h.inbox <- RemoveRoom{RoomID: roomID}
		})
		h.rooms[roomID] = s
		h.log.Info("room created", zap.String("room", roomID))
	}

	join := Join{
		PlayerName:   m.PlayerName,
		ConnectionID: m.ConnectionID,
		Outbox:       m.Outbox,
		Reply:        m.Reply,
	}
	if !s.Send(join) {
		// The session drained between lookup and delivery.
		delete(h.rooms, m.RoomID)
		reason := fmt.Sprintf("room %s does not exist", m.RoomID)
		m.Outbox <- Event{Type: EvtJoinError, Message: reason}
		m.Reply <- JoinReply{Err: fmt.Errorf("%w: %s", game.ErrNotFound, reason)}
	}
}

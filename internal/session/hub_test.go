package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/AliMaskar96/Red-Tetris-sub000/internal/game"
)

func newTestHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return NewHub(ctx, nil, zap.NewNop())
}

func hubJoin(t *testing.T, h *Hub, roomID, name string, creator bool) (JoinReply, chan Event) {
	t.Helper()
	out := make(chan Event, 32)
	reply := make(chan JoinReply, 1)
	h.Inbox() <- JoinRoom{
		RoomID:       roomID,
		PlayerName:   name,
		ConnectionID: "conn-" + name,
		IsCreator:    creator,
		Outbox:       out,
		Reply:        reply,
	}
	select {
	case jr := <-reply:
		return jr, out
	case <-time.After(time.Second):
		t.Fatalf("timed out joining %s", roomID)
		return JoinReply{}, nil // unreachable
	}
}

func getRoom(t *testing.T, h *Hub, roomID string) *Session {
	t.Helper()
	reply := make(chan *Session, 1)
	h.Inbox() <- GetRoom{RoomID: roomID, Reply: reply}
	select {
	case s := <-reply:
		return s
	case <-time.After(time.Second):
		t.Fatalf("timed out getting room %s", roomID)
		return nil // unreachable
	}
}

func TestHub_CreatorJoinCreatesRoom(t *testing.T) {
	h := newTestHub(t)

	jr, out := hubJoin(t, h, "ZED123", "alice", true)
	if jr.Err != nil || jr.PlayerID == "" || jr.Session == nil {
		t.Fatalf("creator join failed: %+v", jr)
	}
	roster := recvUntil(t, out, EvtRoomJoined, time.Second)
	if len(roster.Players) != 1 || !roster.Players[0].IsLeader {
		t.Fatalf("creator must lead the new room: %+v", roster.Players)
	}

	if got := getRoom(t, h, "ZED123"); got != jr.Session {
		t.Fatalf("expected same session pointer")
	}
}

func TestHub_CreatorJoinOfExistingRoomConflicts(t *testing.T) {
	h := newTestHub(t)
	hubJoin(t, h, "ZED123", "alice", true)

	jr, out := hubJoin(t, h, "ZED123", "bob", true)
	if !errors.Is(jr.Err, game.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", jr.Err)
	}
	ev := recvEvent(t, out, time.Second)
	if ev.Type != EvtJoinError || ev.Message == "" {
		t.Fatalf("expected join-error, got %+v", ev)
	}
}

func TestHub_JoinMissingRoomFails(t *testing.T) {
	h := newTestHub(t)

	jr, out := hubJoin(t, h, "NOPE99", "alice", false)
	if !errors.Is(jr.Err, game.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", jr.Err)
	}
	ev := recvEvent(t, out, time.Second)
	if ev.Type != EvtJoinError {
		t.Fatalf("expected join-error, got %+v", ev)
	}
}

func TestHub_SecondPlayerJoinsExistingRoom(t *testing.T) {
	h := newTestHub(t)
	first, _ := hubJoin(t, h, "ZED123", "alice", true)

	jr, out := hubJoin(t, h, "ZED123", "bob", false)
	if jr.Err != nil {
		t.Fatalf("join failed: %v", jr.Err)
	}
	if jr.Session != first.Session {
		t.Fatalf("both players must share one session")
	}
	roster := recvUntil(t, out, EvtRoomJoined, time.Second)
	if len(roster.Players) != 2 {
		t.Fatalf("want 2 players, got %+v", roster.Players)
	}
}

func TestHub_RoomRemovedWhenLastPlayerLeaves(t *testing.T) {
	h := newTestHub(t)
	jr, _ := hubJoin(t, h, "ZED123", "alice", true)

	jr.Session.Send(Leave{PlayerID: jr.PlayerID})

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if getRoom(t, h, "ZED123") == nil {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("room was not removed after draining")
}

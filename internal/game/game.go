package game

import (
	"fmt"
	"slices"
)

type Status string

const (
	StatusWaiting Status = "waiting"
	StatusPlaying Status = "playing"
	StatusEnded   Status = "ended"
)

// Game is the match state machine owned 1:1 by a Room:
// waiting -> playing (leader start) -> ended (resolver, exactly once)
// -> waiting (rematch). Membership mirrors the Room and is kept in sync by
// the session, not derived.
type Game struct {
	ID       string
	RoomID   string
	Status   Status
	WinnerID string
	Seed     uint32

	playerIDs []string
}

func NewGame(id string) *Game {
	return &Game{ID: id, Status: StatusWaiting}
}

func (g *Game) AddPlayer(id string) {
	if !slices.Contains(g.playerIDs, id) {
		g.playerIDs = append(g.playerIDs, id)
	}
}

func (g *Game) RemovePlayer(id string) {
	g.playerIDs = slices.DeleteFunc(g.playerIDs, func(p string) bool { return p == id })
}

func (g *Game) HasPlayer(id string) bool {
	return slices.Contains(g.playerIDs, id)
}

// Start begins a round. It requires no board state: clients regenerate their
// piece streams from the broadcast seed.
func (g *Game) Start(roomID string, seed uint32) {
	g.RoomID = roomID
	g.Seed = seed
	g.Status = StatusPlaying
	g.WinnerID = ""
}

func (g *Game) SetWinner(playerID string) error {
	if !g.HasPlayer(playerID) {
		return fmt.Errorf("%w: winner %s is not a member of game %s", ErrValidation, playerID, g.ID)
	}
	g.Status = StatusEnded
	g.WinnerID = playerID
	return nil
}

// CompareAndSetStatus transitions from -> to and reports whether it did.
// The resolver gates playing -> ended through this so a round ends at most
// once no matter how many triggers race in.
func (g *Game) CompareAndSetStatus(from, to Status) bool {
	if g.Status != from {
		return false
	}
	g.Status = to
	return true
}

func (g *Game) ResetForRematch() {
	g.Status = StatusWaiting
	g.WinnerID = ""
}

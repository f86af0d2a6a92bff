package game

import "fmt"

// Room is one lobby identified by its externally shared join code. Players
// keep insertion order; LeaderID refers to a current member whenever the room
// is non-empty. Mutations that change membership leave LeaderID consistent,
// but callers must follow up with SyncLeaderFlags so each Player's IsLeader
// flag matches.
type Room struct {
	ID       string
	Players  []*Player
	LeaderID string
}

func NewRoom(id string) *Room {
	return &Room{ID: id}
}

// AddPlayer appends p; the first player of a room becomes its leader.
func (r *Room) AddPlayer(p *Player) {
	r.Players = append(r.Players, p)
	if len(r.Players) == 1 {
		r.LeaderID = p.ID
	}
}

// RemovePlayer removes the member with the given id. When the leader leaves,
// leadership falls to the first remaining player in insertion order.
func (r *Room) RemovePlayer(id string) error {
	idx := -1
	for i, p := range r.Players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: player %s is not in room %s", ErrNotFound, id, r.ID)
	}
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)
	if r.LeaderID == id {
		if len(r.Players) > 0 {
			r.LeaderID = r.Players[0].ID
		} else {
			r.LeaderID = ""
		}
	}
	return nil
}

func (r *Room) SetLeader(id string) error {
	if _, ok := r.Player(id); !ok {
		return fmt.Errorf("%w: player %s is not in room %s", ErrNotFound, id, r.ID)
	}
	r.LeaderID = id
	return nil
}

// SyncLeaderFlags makes every member's IsLeader flag agree with LeaderID.
func (r *Room) SyncLeaderFlags() {
	for _, p := range r.Players {
		p.SetLeader(p.ID == r.LeaderID)
	}
}

func (r *Room) Player(id string) (*Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (r *Room) HasName(name string) bool {
	for _, p := range r.Players {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (r *Room) IsEmpty() bool {
	return len(r.Players) == 0
}

func (r *Room) IsFull(max int) bool {
	return len(r.Players) >= max
}

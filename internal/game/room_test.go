package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// assertLeadership checks the invariant that a non-empty room has exactly one
// leader flag set and that it agrees with LeaderID.
func assertLeadership(t *testing.T, r *Room) {
	t.Helper()
	if r.IsEmpty() {
		require.Empty(t, r.LeaderID)
		return
	}
	leaders := 0
	for _, p := range r.Players {
		if p.IsLeader {
			leaders++
			require.Equal(t, r.LeaderID, p.ID)
		}
	}
	require.Equal(t, 1, leaders)
	_, ok := r.Player(r.LeaderID)
	require.True(t, ok)
}

func TestRoom_FirstPlayerBecomesLeader(t *testing.T) {
	r := NewRoom("AB12CD")
	a := NewPlayer("alice", "c1")
	b := NewPlayer("bob", "c2")

	r.AddPlayer(a)
	r.AddPlayer(b)
	r.SyncLeaderFlags()

	require.Equal(t, a.ID, r.LeaderID)
	assertLeadership(t, r)
}

func TestRoom_RemoveLeaderPromotesFirstRemaining(t *testing.T) {
	r := NewRoom("AB12CD")
	a := NewPlayer("alice", "c1")
	b := NewPlayer("bob", "c2")
	c := NewPlayer("carol", "c3")
	for _, p := range []*Player{a, b, c} {
		r.AddPlayer(p)
	}
	r.SyncLeaderFlags()

	require.NoError(t, r.RemovePlayer(a.ID))
	r.SyncLeaderFlags()

	require.Equal(t, b.ID, r.LeaderID)
	assertLeadership(t, r)

	require.NoError(t, r.RemovePlayer(b.ID))
	r.SyncLeaderFlags()
	require.Equal(t, c.ID, r.LeaderID)
	assertLeadership(t, r)

	require.NoError(t, r.RemovePlayer(c.ID))
	r.SyncLeaderFlags()
	require.True(t, r.IsEmpty())
	assertLeadership(t, r)
}

func TestRoom_RemoveNonLeaderKeepsLeader(t *testing.T) {
	r := NewRoom("AB12CD")
	a := NewPlayer("alice", "c1")
	b := NewPlayer("bob", "c2")
	r.AddPlayer(a)
	r.AddPlayer(b)
	r.SyncLeaderFlags()

	require.NoError(t, r.RemovePlayer(b.ID))
	r.SyncLeaderFlags()

	require.Equal(t, a.ID, r.LeaderID)
	assertLeadership(t, r)
}

func TestRoom_RemoveUnknownPlayer(t *testing.T) {
	r := NewRoom("AB12CD")
	r.AddPlayer(NewPlayer("alice", "c1"))

	err := r.RemovePlayer("nope")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotFound))
	require.Len(t, r.Players, 1)
}

func TestRoom_SetLeader(t *testing.T) {
	r := NewRoom("AB12CD")
	a := NewPlayer("alice", "c1")
	b := NewPlayer("bob", "c2")
	r.AddPlayer(a)
	r.AddPlayer(b)

	require.NoError(t, r.SetLeader(b.ID))
	r.SyncLeaderFlags()
	require.Equal(t, b.ID, r.LeaderID)
	assertLeadership(t, r)

	err := r.SetLeader("ghost")
	require.True(t, errors.Is(err, ErrNotFound))
	require.Equal(t, b.ID, r.LeaderID)
}

func TestRoom_Predicates(t *testing.T) {
	r := NewRoom("AB12CD")
	require.True(t, r.IsEmpty())
	require.False(t, r.IsFull(MaxPlayers))

	for i := 0; i < MaxPlayers; i++ {
		r.AddPlayer(NewPlayer(string(rune('a'+i)), "c"))
	}
	require.False(t, r.IsEmpty())
	require.True(t, r.IsFull(MaxPlayers))
}

func TestRoom_HasName(t *testing.T) {
	r := NewRoom("AB12CD")
	r.AddPlayer(NewPlayer("alice", "c1"))
	require.True(t, r.HasName("alice"))
	require.False(t, r.HasName("bob"))
}

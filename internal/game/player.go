package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Player is one participant of a room. Board and Spectrum are never nil; a
// fresh player carries an empty grid and an all-zero spectrum.
type Player struct {
	ID           string
	Name         string
	ConnectionID string

	IsLeader bool
	IsAlive  bool
	IsPaused bool
	Score    int

	Board    Board
	Spectrum []int
}

func NewPlayer(name, connectionID string) *Player {
	return &Player{
		ID:           uuid.NewString(),
		Name:         name,
		ConnectionID: connectionID,
		IsAlive:      true,
		Board:        NewBoard(),
		Spectrum:     make([]int, SpectrumLen),
	}
}

func (p *Player) SetAlive(alive bool)   { p.IsAlive = alive }
func (p *Player) SetPaused(paused bool) { p.IsPaused = paused }
func (p *Player) SetLeader(leader bool) { p.IsLeader = leader }

// SetScore coerces negative values to 0.
func (p *Player) SetScore(score int) {
	if score < 0 {
		score = 0
	}
	p.Score = score
}

func (p *Player) SetBoard(b Board) {
	if b == nil {
		b = NewBoard()
	}
	p.Board = b
}

func (p *Player) UpdateSpectrum(sp []int) error {
	if len(sp) != SpectrumLen {
		return fmt.Errorf("%w: spectrum must have %d entries, got %d", ErrValidation, SpectrumLen, len(sp))
	}
	p.Spectrum = sp
	return nil
}

// ResetForRound restores the per-round fields at round start and on rematch.
func (p *Player) ResetForRound() {
	p.IsAlive = true
	p.IsPaused = false
	p.Score = 0
	p.Board = NewBoard()
	p.Spectrum = make([]int, SpectrumLen)
}

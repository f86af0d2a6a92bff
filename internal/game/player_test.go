package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPlayer_Defaults(t *testing.T) {
	p := NewPlayer("alice", "conn1")

	require.NotEmpty(t, p.ID)
	require.True(t, p.IsAlive)
	require.False(t, p.IsPaused)
	require.False(t, p.IsLeader)
	require.Zero(t, p.Score)
	require.Len(t, p.Board, BoardRows)
	for _, row := range p.Board {
		require.Len(t, row, BoardCols)
	}
	require.Equal(t, make([]int, SpectrumLen), p.Spectrum)
}

func TestPlayer_SetScoreCoercesNegative(t *testing.T) {
	p := NewPlayer("bob", "conn1")
	p.SetScore(120)
	require.Equal(t, 120, p.Score)
	p.SetScore(-5)
	require.Zero(t, p.Score)
}

func TestPlayer_UpdateSpectrum(t *testing.T) {
	p := NewPlayer("carol", "conn1")

	err := p.UpdateSpectrum([]int{1, 2, 3})
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrValidation))

	sp := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	require.NoError(t, p.UpdateSpectrum(sp))
	require.Equal(t, sp, p.Spectrum)
}

func TestPlayer_SetBoardNilKeepsGrid(t *testing.T) {
	p := NewPlayer("dave", "conn1")
	p.SetBoard(nil)
	require.Len(t, p.Board, BoardRows)
}

func TestPlayer_ResetForRound(t *testing.T) {
	p := NewPlayer("erin", "conn1")
	p.SetAlive(false)
	p.SetPaused(true)
	p.SetScore(400)
	p.Board[19][0] = 4

	p.ResetForRound()

	require.True(t, p.IsAlive)
	require.False(t, p.IsPaused)
	require.Zero(t, p.Score)
	require.Zero(t, p.Board[19][0])
	require.Equal(t, make([]int, SpectrumLen), p.Spectrum)
}

func TestSpectrumFromBoard(t *testing.T) {
	cases := []struct {
		name  string
		board func() Board
		want  []int
	}{
		{
			name:  "empty board",
			board: NewBoard,
			want:  make([]int, SpectrumLen),
		},
		{
			name: "single cell in bottom row",
			board: func() Board {
				b := NewBoard()
				b[19][3] = 2
				return b
			},
			want: []int{0, 0, 0, 1, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "full column",
			board: func() Board {
				b := NewBoard()
				for row := range b {
					b[row][0] = 1
				}
				return b
			},
			want: []int{20, 0, 0, 0, 0, 0, 0, 0, 0, 0},
		},
		{
			name: "penalty rows count as occupied",
			board: func() Board {
				b := NewBoard()
				for col := 0; col < BoardCols; col++ {
					b[18][col] = CellPenalty
					b[19][col] = CellPenalty
				}
				return b
			},
			want: []int{2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
		},
		{
			name: "topmost occupied cell wins",
			board: func() Board {
				b := NewBoard()
				b[5][7] = 3
				b[12][7] = 6
				return b
			},
			want: []int{0, 0, 0, 0, 0, 0, 0, 15, 0, 0},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, SpectrumFromBoard(tc.board()))
		})
	}
}

func TestSpectrumFromBoard_RaggedInput(t *testing.T) {
	short := Board{{0, 0, 1}}
	require.Equal(t, []int{0, 0, 20, 0, 0, 0, 0, 0, 0, 0}, SpectrumFromBoard(short))
	require.Equal(t, make([]int, SpectrumLen), SpectrumFromBoard(nil))
}

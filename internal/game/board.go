package game

const (
	BoardRows   = 20
	BoardCols   = 10
	SpectrumLen = BoardCols
	MaxPlayers  = 6
)

// Cell values inside a reported board. 1-7 are piece colors.
const (
	CellEmpty   = 0
	CellPenalty = 9
)

// Board is a client-reported 20x10 grid. The server never validates its
// contents against game rules; it only derives spectra from it.
type Board [][]int

func NewBoard() Board {
	b := make(Board, BoardRows)
	for i := range b {
		b[i] = make([]int, BoardCols)
	}
	return b
}

// SpectrumFromBoard derives the per-column heights used to render opponents'
// boards. A column's height is BoardRows minus its first occupied row index,
// or 0 when the column is empty. Short or ragged boards count only the cells
// they actually carry.
func SpectrumFromBoard(b Board) []int {
	sp := make([]int, SpectrumLen)
	rows := len(b)
	if rows > BoardRows {
		rows = BoardRows
	}
	for col := 0; col < SpectrumLen; col++ {
		for row := 0; row < rows; row++ {
			if col < len(b[row]) && b[row][col] != CellEmpty {
				sp[col] = BoardRows - row
				break
			}
		}
	}
	return sp
}

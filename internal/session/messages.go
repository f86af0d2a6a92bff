package session

import "github.com/AliMaskar96/Red-Tetris-sub000/internal/game"

// ClientMessage is the single inbound envelope shared by every client event.
// Only the fields matching the Type are populated.
type ClientMessage struct {
	Type         string     `json:"type"`
	RoomID       string     `json:"roomId,omitempty"`
	PlayerName   string     `json:"playerName,omitempty"`
	IsCreator    bool       `json:"isCreator,omitempty"`
	GameID       string     `json:"gameId,omitempty"`
	PlayerID     string     `json:"playerId,omitempty"`
	Move         string     `json:"move,omitempty"`
	Piece        string     `json:"piece,omitempty"`
	Board        game.Board `json:"board,omitempty"`
	NewBoard     game.Board `json:"newBoard,omitempty"`
	LinesCleared int        `json:"linesCleared,omitempty"`
	NewScore     *int       `json:"newScore,omitempty"`
	Score        *int       `json:"score,omitempty"`
	IsPaused     bool       `json:"isPaused,omitempty"`
}

// Outbound event types.
const (
	EvtRoomJoined         = "room-joined"
	EvtJoinError          = "join-error"
	EvtGameStarted        = "game-started"
	EvtPlayerBoardUpdated = "player-board-updated"
	EvtPlayerScoreUpdated = "player-score-updated"
	EvtPenaltyLines       = "penalty-lines"
	EvtPlayerEliminated   = "player-eliminated"
	EvtPlayerDisconnected = "player-disconnected"
	EvtGameEnd            = "game-end"
	EvtPlayerMove         = "player-move"
)

const (
	ResultVictory = "victory"
	ResultDraw    = "draw"
)

type GameInfo struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type PlayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsLeader bool   `json:"isLeader"`
	Score    int    `json:"score"`
}

// Event is the single outbound envelope. Pointer fields distinguish "absent"
// from a legitimate zero (a score of 0, a winnerless draw).
type Event struct {
	Type             string       `json:"type"`
	Message          string       `json:"message,omitempty"`
	Game             *GameInfo    `json:"game,omitempty"`
	Players          []PlayerInfo `json:"players,omitempty"`
	GameID           string       `json:"gameId,omitempty"`
	SharedSeed       *uint32      `json:"sharedSeed,omitempty"`
	PlayerID         string       `json:"playerId,omitempty"`
	PlayerName       string       `json:"playerName,omitempty"`
	Board            game.Board   `json:"board,omitempty"`
	Spectrum         []int        `json:"spectrum,omitempty"`
	Score            *int         `json:"score,omitempty"`
	Count            int          `json:"count,omitempty"`
	Move             string       `json:"move,omitempty"`
	RemainingPlayers *int         `json:"remainingPlayers,omitempty"`
	WinnerID         *string      `json:"winnerId,omitempty"`
	WinnerName       string       `json:"winnerName,omitempty"`
	GameResult       string       `json:"gameResult,omitempty"`
}

// Msg is the sum type of everything a Session actor processes.
type Msg interface{ isSessionMsg() }

type Join struct {
	PlayerName   string
	ConnectionID string
	Outbox       chan Event
	Reply        chan JoinReply
}

type JoinReply struct {
	PlayerID string
	Session  *Session
	Err      error
}

type Leave struct{ PlayerID string }

type Start struct{ PlayerID string }

type Move struct {
	PlayerID string
	Move     string
}

type PiecePlaced struct {
	PlayerID string
	Piece    string
	Board    game.Board
}

type LinesCleared struct {
	PlayerID string
	Lines    int
	Board    game.Board
	Score    *int
}

type BoardUpdate struct {
	PlayerID string
	Board    game.Board
}

type ScoreUpdate struct {
	PlayerID string
	Score    int
}

type PauseState struct {
	PlayerID string
	Paused   bool
}

type RematchReady struct{ PlayerID string }

type GameOver struct{ PlayerID string }

type GetState struct{ Reply chan View }

type Shutdown struct{}

func (Join) isSessionMsg()         {}
func (Leave) isSessionMsg()        {}
func (Start) isSessionMsg()        {}
func (Move) isSessionMsg()         {}
func (PiecePlaced) isSessionMsg()  {}
func (LinesCleared) isSessionMsg() {}
func (BoardUpdate) isSessionMsg()  {}
func (ScoreUpdate) isSessionMsg()  {}
func (PauseState) isSessionMsg()   {}
func (RematchReady) isSessionMsg() {}
func (GameOver) isSessionMsg()     {}
func (GetState) isSessionMsg()     {}
func (Shutdown) isSessionMsg()     {}

// View is a race-free snapshot for tests and the HTTP room endpoint.
type View struct {
	RoomID     string       `json:"roomId"`
	Status     game.Status  `json:"status"`
	WinnerID   string       `json:"winnerId,omitempty"`
	LeaderID   string       `json:"leaderId,omitempty"`
	Seed       uint32       `json:"seed,omitempty"`
	NumClients int          `json:"numClients"`
	Players    []PlayerInfo `json:"players"`
}

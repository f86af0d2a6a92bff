// Package history keeps an optional Postgres ledger of finished rounds.
// Session state itself is in-memory only; this records outcomes so they
// survive restarts. The server runs fine without it.
package history

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MatchResult records the outcome of one round.
type MatchResult struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RoomID      string    `gorm:"index;not null" json:"room_id"`
	Result      string    `gorm:"type:varchar(16)" json:"result"` // victory / draw
	WinnerID    string    `gorm:"index" json:"winner_id"`
	WinnerName  string    `json:"winner_name"`
	WinnerScore int       `json:"winner_score"`
	Players     int       `json:"players"`
	CreatedAt   time.Time `json:"created_at"`
}

// Recorder is what sessions call when a round ends. Implementations must be
// safe for concurrent use; failures are logged by the caller, never fatal.
type Recorder interface {
	Record(ctx context.Context, res MatchResult) error
}

type Store struct {
	db *gorm.DB
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.AutoMigrate(&MatchResult{}); err != nil {
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Record(ctx context.Context, res MatchResult) error {
	return s.db.WithContext(ctx).Create(&res).Error
}

// Recent returns the latest results, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]MatchResult, error) {
	var out []MatchResult
	err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&out).Error
	return out, err
}

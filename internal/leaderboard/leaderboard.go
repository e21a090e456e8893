// Package leaderboard defines how finished games are recorded and how the
// shared standings are read back.
package leaderboard

import (
	"context"
	"time"
)

// DefaultTopN is the number of entries shown on the leaderboard.
const DefaultTopN = 10

// Record is one finished game.
type Record struct {
	ID         string
	PlayerName string
	Score      int
	Coins      int
	Distance   int
	SessionID  string
	CreatedAt  time.Time
}

// Store persists records and answers leaderboard queries.
// Implementations must be safe for concurrent use.
type Store interface {
	// Insert saves a record. Empty ID and zero CreatedAt are filled in.
	Insert(ctx context.Context, rec Record) error
	// TopScores returns up to n records ordered by score, highest first.
	TopScores(ctx context.Context, n int) ([]Record, error)
	// BestForSession returns the highest score saved under sessionID, or 0.
	BestForSession(ctx context.Context, sessionID string) (int, error)
	// WorldRecord returns the highest score ever saved, or 0.
	WorldRecord(ctx context.Context) (int, error)
}

// Standings is what the UI shows around a game.
type Standings struct {
	PersonalBest int
	WorldRecord  int
	Top          []Record
}

// Nop is the offline store. Inserts succeed and every query is empty.
type Nop struct{}

var _ Store = Nop{}

func (Nop) Insert(context.Context, Record) error { return nil }

func (Nop) TopScores(context.Context, int) ([]Record, error) { return nil, nil }

func (Nop) BestForSession(context.Context, string) (int, error) { return 0, nil }

func (Nop) WorldRecord(context.Context) (int, error) { return 0, nil }

// Badge names the achievement of a finished game against the standings
// that were known before it was saved.
type Badge string

const (
	BadgeNone         Badge = ""
	BadgePersonalBest Badge = "New Personal Best!"
	BadgeWorldRecord  Badge = "NEW WORLD RECORD!"
)

// BadgeFor returns the badge earned by score.
func BadgeFor(score int, before Standings) Badge {
	switch {
	case score > before.WorldRecord:
		return BadgeWorldRecord
	case score > before.PersonalBest:
		return BadgePersonalBest
	default:
		return BadgeNone
	}
}

package leaderboard

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultTimeout bounds each store call made by a Recorder.
const DefaultTimeout = 5 * time.Second

// Recorder wraps a Store for the game screens. Failures are logged and
// never returned, so a broken store cannot affect play.
type Recorder struct {
	submitMu sync.Mutex

	store   Store
	logger  *log.Logger
	timeout time.Duration
	topN    int
}

// NewRecorder creates a recorder. A nil store is replaced with Nop and a nil
// logger with the default charmbracelet logger.
func NewRecorder(store Store, logger *log.Logger) *Recorder {
	if store == nil {
		store = Nop{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{
		store:   store,
		logger:  logger,
		timeout: DefaultTimeout,
		topN:    DefaultTopN,
	}
}

// WithTimeout sets the per-call timeout. Non-positive values disable it.
func (r *Recorder) WithTimeout(d time.Duration) *Recorder {
	r.timeout = d
	return r
}

// Offline reports whether the recorder has no real store behind it.
func (r *Recorder) Offline() bool {
	_, ok := r.store.(Nop)
	return ok
}

func (r *Recorder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

// Save stores a finished game.
func (r *Recorder) Save(ctx context.Context, rec Record) {
	r.save(ctx, rec)
}

func (r *Recorder) save(ctx context.Context, rec Record) bool {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.store.Insert(ctx, rec); err != nil {
		r.logger.Error("score save failed",
			"player", rec.PlayerName,
			"score", rec.Score,
			"session", rec.SessionID,
			"error", err,
		)
		return false
	}

	r.logger.Info("score saved",
		"player", rec.PlayerName,
		"score", rec.Score,
		"coins", rec.Coins,
		"distance", rec.Distance,
	)
	return true
}

// Refresh fetches the personal best for sessionID, the world record and the
// top entries. Each part that fails is left at its zero value.
func (r *Recorder) Refresh(ctx context.Context, sessionID string) Standings {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var st Standings
	var err error

	if sessionID != "" {
		if st.PersonalBest, err = r.store.BestForSession(ctx, sessionID); err != nil {
			r.logger.Warn("personal best lookup failed", "session", sessionID, "error", err)
			st.PersonalBest = 0
		}
	}

	if st.WorldRecord, err = r.store.WorldRecord(ctx); err != nil {
		r.logger.Warn("world record lookup failed", "error", err)
		st.WorldRecord = 0
	}

	if st.Top, err = r.store.TopScores(ctx, r.topN); err != nil {
		r.logger.Warn("leaderboard lookup failed", "error", err)
		st.Top = nil
	}

	return st
}

// records reads the personal best for sessionID and the world record as they
// are stored right now. ok is false when either lookup fails.
func (r *Recorder) records(ctx context.Context, sessionID string) (Standings, bool) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var st Standings
	var err error

	if sessionID != "" {
		if st.PersonalBest, err = r.store.BestForSession(ctx, sessionID); err != nil {
			r.logger.Warn("personal best lookup failed", "session", sessionID, "error", err)
			return Standings{}, false
		}
	}
	if st.WorldRecord, err = r.store.WorldRecord(ctx); err != nil {
		r.logger.Warn("world record lookup failed", "error", err)
		return Standings{}, false
	}
	return st, true
}

// Submission is the outcome of Submit.
type Submission struct {
	// Standings after the save.
	Standings Standings
	// Badge earned against the records stored right before the save.
	Badge Badge
	// Rated is true when the game was saved to a real store and Badge was
	// computed from records that could be read. Only a rated world record
	// may be announced to other players.
	Rated bool
}

// Submit saves a finished game and rates it against the records stored just
// before the save. Submissions through one Recorder are serialized, so two
// games finishing together cannot both claim the same world record.
func (r *Recorder) Submit(ctx context.Context, rec Record) Submission {
	r.submitMu.Lock()
	defer r.submitMu.Unlock()

	before, fresh := r.records(ctx, rec.SessionID)
	saved := r.save(ctx, rec)

	st := r.Refresh(ctx, rec.SessionID)
	if rec.Score > st.PersonalBest {
		st.PersonalBest = rec.Score
	}

	sub := Submission{Standings: st}
	if fresh && saved && !r.Offline() {
		sub.Badge = BadgeFor(rec.Score, before)
		sub.Rated = true
	}
	return sub
}

package persist

import (
	"context"
	"fmt"
	"time"
)

// SessionTotals is what a finished session records.
type SessionTotals struct {
	Frames    uint64
	Shots     int
	AimedHits int
	BallHits  int
}

type SessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create inserts a new session row and returns its id.
func (r *SessionRepo) Create(ctx context.Context, name string, startedAt time.Time) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO sessions (name, started_at) VALUES ($1, $2) RETURNING id`,
		name, startedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// Finish stamps the end time and totals onto a session.
func (r *SessionRepo) Finish(ctx context.Context, id int64, t SessionTotals) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE sessions
		 SET finished_at = now(), frames = $2, shots = $3, aimed_hits = $4, ball_hits = $5
		 WHERE id = $1`,
		id, int64(t.Frames), t.Shots, t.AimedHits, t.BallHits,
	)
	if err != nil {
		return fmt.Errorf("finish session %d: %w", id, err)
	}
	return nil
}

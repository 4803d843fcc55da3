package persist

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type ShotRow struct {
	Frame       uint64
	Origin      mgl32.Vec3
	Direction   mgl32.Vec3
	AimedTarget bool
}

type HitRow struct {
	Frame    uint64
	TargetID uint64
	Point    mgl32.Vec3
}

type ShotRepo struct {
	db *DB
}

func NewShotRepo(db *DB) *ShotRepo {
	return &ShotRepo{db: db}
}

// WriteBatch writes shots and hits for one session in a single transaction.
// Either the whole batch lands or none of it does.
func (r *ShotRepo) WriteBatch(ctx context.Context, sessionID int64, shots []ShotRow, hits []HitRow) error {
	if len(shots) == 0 && len(hits) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("shot batch begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range shots {
		if _, err := tx.Exec(ctx,
			`INSERT INTO shots (session_id, frame, origin_x, origin_y, origin_z, dir_x, dir_y, dir_z, aimed_target)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			sessionID, int64(s.Frame),
			s.Origin[0], s.Origin[1], s.Origin[2],
			s.Direction[0], s.Direction[1], s.Direction[2],
			s.AimedTarget,
		); err != nil {
			return fmt.Errorf("shot insert: %w", err)
		}
	}
	for _, h := range hits {
		if _, err := tx.Exec(ctx,
			`INSERT INTO hits (session_id, frame, target_id, point_x, point_y, point_z)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			sessionID, int64(h.Frame), int64(h.TargetID),
			h.Point[0], h.Point[1], h.Point[2],
		); err != nil {
			return fmt.Errorf("hit insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

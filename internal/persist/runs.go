package persist

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// Sample is one recorded body state at a given tick.
type Sample struct {
	Tick   int64
	Entity uint64
	X, Y   float64
	VX, VY float64
}

// RunRepo stores simulation runs and their per-tick body samples.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// BeginRun inserts a new run row and returns its id.
func (r *RunRepo) BeginRun(ctx context.Context, scenario string) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO runs (scenario) VALUES ($1) RETURNING id`, scenario,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// InsertSamples bulk-copies a batch of samples for one run.
func (r *RunRepo) InsertSamples(ctx context.Context, runID int64, samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}
	rows := make([][]any, len(samples))
	for i, s := range samples {
		rows[i] = []any{runID, s.Tick, int64(s.Entity), s.X, s.Y, s.VX, s.VY}
	}
	_, err := r.db.Pool.CopyFrom(ctx,
		pgx.Identifier{"run_samples"},
		[]string{"run_id", "tick", "entity", "x", "y", "vx", "vy"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// FinishRun stamps the run's end time and final tick count.
func (r *RunRepo) FinishRun(ctx context.Context, runID int64, ticks int64) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE runs SET finished_at = now(), ticks = $2 WHERE id = $1`,
		runID, ticks,
	)
	return err
}

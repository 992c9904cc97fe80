package audit

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRecorder appends checks to the validator_checks table.
type PostgresRecorder struct {
	db *pgxpool.Pool
}

// NewPostgresRecorder builds a Postgres-backed recorder.
func NewPostgresRecorder(db *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// Record inserts one row per check.
func (r *PostgresRecorder) Record(ctx context.Context, check Check) error {
	ownerFIDs := make([]int64, len(check.OwnerFIDs))
	for i, fid := range check.OwnerFIDs {
		ownerFIDs[i] = int64(fid)
	}
	_, err := r.db.Exec(ctx, `INSERT INTO validator_checks (id, fid, custody_address, validator, owner_count, owner_fids, outcome, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		uuid.New(), int64(check.RequesterFID), check.Custody, check.Validator, check.Owners, ownerFIDs, check.Outcome, check.At.UTC())
	return err
}

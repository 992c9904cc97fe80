package ownership

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSource reads owners from an indexer table:
//
//	token_owners(contract TEXT, token_id TEXT, owner_address TEXT)
type PostgresSource struct {
	db *pgxpool.Pool
}

// NewPostgresSource builds an indexer-backed source.
func NewPostgresSource(db *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{db: db}
}

// Owners returns the distinct owners of the contract, restricted to the
// collection's token ids when any are given.
func (s *PostgresSource) Owners(ctx context.Context, collection Collection) ([]string, error) {
	const query = `
        SELECT DISTINCT owner_address
        FROM token_owners
        WHERE contract = $1
          AND (cardinality($2::text[]) = 0 OR token_id = ANY($2::text[]))`

	tokenIDs := collection.TokenIDs
	if tokenIDs == nil {
		tokenIDs = []string{}
	}

	rows, err := s.db.Query(ctx, query, collection.Contract, tokenIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var owners []string
	for rows.Next() {
		var owner string
		if err := rows.Scan(&owner); err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, rows.Err()
}

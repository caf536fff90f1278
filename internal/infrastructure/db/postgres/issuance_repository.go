package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/captable/captable-api/internal/core/domain"
)

// IssuanceRepository is the Postgres-backed share issuance store.
type IssuanceRepository struct {
	pool *pgxpool.Pool
}

func NewIssuanceRepository(pool *pgxpool.Pool) *IssuanceRepository {
	return &IssuanceRepository{pool: pool}
}

func (r *IssuanceRepository) Create(ctx context.Context, iss *domain.ShareIssuance) (*domain.ShareIssuance, error) {
	created := *iss
	err := r.pool.QueryRow(ctx, `
		INSERT INTO share_issuances (shareholder_id, number_of_shares, price, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		iss.ShareholderID, iss.NumberOfShares, iss.Price, iss.Date,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert issuance: %w", err)
	}
	return &created, nil
}

func (r *IssuanceRepository) FindByID(ctx context.Context, id int64) (*domain.ShareIssuance, error) {
	var iss domain.ShareIssuance
	err := r.pool.QueryRow(ctx, `
		SELECT id, shareholder_id, number_of_shares, price, date
		FROM share_issuances
		WHERE id = $1`, id,
	).Scan(&iss.ID, &iss.ShareholderID, &iss.NumberOfShares, &iss.Price, &iss.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIssuanceNotFound
		}
		return nil, fmt.Errorf("find issuance: %w", err)
	}
	return &iss, nil
}

func (r *IssuanceRepository) List(ctx context.Context) ([]*domain.ShareIssuance, error) {
	return r.query(ctx, `
		SELECT id, shareholder_id, number_of_shares, price, date
		FROM share_issuances
		ORDER BY id`)
}

func (r *IssuanceRepository) ListByShareholder(ctx context.Context, shareholderID int64) ([]*domain.ShareIssuance, error) {
	return r.query(ctx, `
		SELECT id, shareholder_id, number_of_shares, price, date
		FROM share_issuances
		WHERE shareholder_id = $1
		ORDER BY id`, shareholderID)
}

func (r *IssuanceRepository) query(ctx context.Context, query string, args ...any) ([]*domain.ShareIssuance, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list issuances: %w", err)
	}
	defer rows.Close()

	var result []*domain.ShareIssuance
	for rows.Next() {
		var iss domain.ShareIssuance
		if err := rows.Scan(&iss.ID, &iss.ShareholderID, &iss.NumberOfShares, &iss.Price, &iss.Date); err != nil {
			return nil, fmt.Errorf("scan issuance: %w", err)
		}
		result = append(result, &iss)
	}
	return result, rows.Err()
}

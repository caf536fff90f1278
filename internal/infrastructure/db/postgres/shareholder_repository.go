package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/captable/captable-api/internal/core/domain"
)

// ShareholderRepository is the Postgres-backed shareholder store.
type ShareholderRepository struct {
	pool *pgxpool.Pool
}

func NewShareholderRepository(pool *pgxpool.Pool) *ShareholderRepository {
	return &ShareholderRepository{pool: pool}
}

// CreateWithUser inserts the account user and its shareholder profile in a
// single transaction so a failure on either insert rolls back both.
func (r *ShareholderRepository) CreateWithUser(ctx context.Context, user *domain.User, sh *domain.Shareholder) (*domain.User, *domain.Shareholder, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	createdUser := *user
	err = tx.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id`,
		user.Username, user.PasswordHash, user.Role,
	).Scan(&createdUser.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, domain.ErrUsernameTaken
		}
		return nil, nil, fmt.Errorf("insert user: %w", err)
	}

	createdSh := *sh
	createdSh.UserID = createdUser.ID
	err = tx.QueryRow(ctx, `
		INSERT INTO shareholders (user_id, name, email)
		VALUES ($1, $2, $3)
		RETURNING id`,
		createdSh.UserID, sh.Name, sh.Email,
	).Scan(&createdSh.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, nil, domain.ErrEmailInUse
		}
		return nil, nil, fmt.Errorf("insert shareholder: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit transaction: %w", err)
	}
	return &createdUser, &createdSh, nil
}

func (r *ShareholderRepository) FindByID(ctx context.Context, id int64) (*domain.Shareholder, error) {
	return r.findOne(ctx, `
		SELECT id, user_id, name, email
		FROM shareholders
		WHERE id = $1`, id)
}

func (r *ShareholderRepository) FindByUserID(ctx context.Context, userID int64) (*domain.Shareholder, error) {
	return r.findOne(ctx, `
		SELECT id, user_id, name, email
		FROM shareholders
		WHERE user_id = $1`, userID)
}

func (r *ShareholderRepository) FindByEmail(ctx context.Context, email string) (*domain.Shareholder, error) {
	return r.findOne(ctx, `
		SELECT id, user_id, name, email
		FROM shareholders
		WHERE email = $1`, email)
}

func (r *ShareholderRepository) List(ctx context.Context) ([]*domain.Shareholder, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, email
		FROM shareholders
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list shareholders: %w", err)
	}
	defer rows.Close()

	var result []*domain.Shareholder
	for rows.Next() {
		var sh domain.Shareholder
		if err := rows.Scan(&sh.ID, &sh.UserID, &sh.Name, &sh.Email); err != nil {
			return nil, fmt.Errorf("scan shareholder: %w", err)
		}
		result = append(result, &sh)
	}
	return result, rows.Err()
}

func (r *ShareholderRepository) findOne(ctx context.Context, query string, arg any) (*domain.Shareholder, error) {
	var sh domain.Shareholder
	err := r.pool.QueryRow(ctx, query, arg).Scan(&sh.ID, &sh.UserID, &sh.Name, &sh.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShareholderNotFound
		}
		return nil, fmt.Errorf("find shareholder: %w", err)
	}
	return &sh, nil
}

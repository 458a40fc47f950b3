package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"checkout/internal/domain"
	"checkout/internal/repository"
)

// PromoRepository is a PostgreSQL implementation of repository.PromoRepository.
type PromoRepository struct {
	q Querier
}

// NewPromoRepository creates a new PostgreSQL promo repository.
func NewPromoRepository(db *sql.DB) *PromoRepository {
	return &PromoRepository{q: db}
}

// NewPromoRepositoryWithTx creates a promo repository using a transaction.
func NewPromoRepositoryWithTx(tx *sql.Tx) *PromoRepository {
	return &PromoRepository{q: tx}
}

// Create persists a new promo code. Codes are stored uppercase.
func (r *PromoRepository) Create(ctx context.Context, promo *domain.PromoCode) error {
	query := `
		INSERT INTO promo_codes (id, code, discount_type, discount_value, max_usage, current_usage, expires_at, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.q.ExecContext(ctx, query,
		promo.ID,
		strings.ToUpper(promo.Code),
		promo.DiscountType,
		promo.DiscountValue,
		promo.MaxUsage,
		promo.CurrentUsage,
		promo.ExpiresAt,
		promo.IsActive,
		promo.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrDuplicateCode
		}
		return err
	}

	return nil
}

// GetByCode retrieves a promo code by its code, case-insensitively.
func (r *PromoRepository) GetByCode(ctx context.Context, code string) (*domain.PromoCode, error) {
	query := `
		SELECT id, code, discount_type, discount_value, max_usage, current_usage, expires_at, is_active, created_at
		FROM promo_codes WHERE code = UPPER($1)
	`

	return r.scanPromo(r.q.QueryRowContext(ctx, query, code))
}

// GetByID retrieves a promo code by ID.
func (r *PromoRepository) GetByID(ctx context.Context, id string) (*domain.PromoCode, error) {
	query := `
		SELECT id, code, discount_type, discount_value, max_usage, current_usage, expires_at, is_active, created_at
		FROM promo_codes WHERE id = $1
	`

	return r.scanPromo(r.q.QueryRowContext(ctx, query, id))
}

// GetAll retrieves all promo codes, newest first.
func (r *PromoRepository) GetAll(ctx context.Context) ([]*domain.PromoCode, error) {
	query := `
		SELECT id, code, discount_type, discount_value, max_usage, current_usage, expires_at, is_active, created_at
		FROM promo_codes ORDER BY created_at DESC
	`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promos []*domain.PromoCode
	for rows.Next() {
		var promo domain.PromoCode
		var maxUsage sql.NullInt64
		var expiresAt sql.NullTime
		if err := rows.Scan(
			&promo.ID,
			&promo.Code,
			&promo.DiscountType,
			&promo.DiscountValue,
			&maxUsage,
			&promo.CurrentUsage,
			&expiresAt,
			&promo.IsActive,
			&promo.CreatedAt,
		); err != nil {
			return nil, err
		}
		if maxUsage.Valid {
			v := int(maxUsage.Int64)
			promo.MaxUsage = &v
		}
		if expiresAt.Valid {
			t := expiresAt.Time
			promo.ExpiresAt = &t
		}
		promos = append(promos, &promo)
	}

	return promos, rows.Err()
}

// SetActive flips the active flag of a promo code.
func (r *PromoRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE promo_codes SET is_active = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}

	return checkRowsAffected(result)
}

// IncrementUsage atomically increments the usage counter while it is below
// the cap. The WHERE clause is the authoritative re-check: validation never
// reserves a use, so the guard must hold at increment time.
func (r *PromoRepository) IncrementUsage(ctx context.Context, id string) error {
	query := `
		UPDATE promo_codes
		SET current_usage = current_usage + 1
		WHERE id = $1 AND (max_usage IS NULL OR current_usage < max_usage)
	`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		// Distinguish a missing code from an exhausted one.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return repository.ErrUsageExhausted
	}

	return nil
}

// Delete removes a promo code.
func (r *PromoRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM promo_codes WHERE id = $1`

	result, err := r.q.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return checkRowsAffected(result)
}

func (r *PromoRepository) scanPromo(row *sql.Row) (*domain.PromoCode, error) {
	var promo domain.PromoCode
	var maxUsage sql.NullInt64
	var expiresAt sql.NullTime

	err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.DiscountType,
		&promo.DiscountValue,
		&maxUsage,
		&promo.CurrentUsage,
		&expiresAt,
		&promo.IsActive,
		&promo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	if maxUsage.Valid {
		v := int(maxUsage.Int64)
		promo.MaxUsage = &v
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		promo.ExpiresAt = &t
	}

	return &promo, nil
}

func checkRowsAffected(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

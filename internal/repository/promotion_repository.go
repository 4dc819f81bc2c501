package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/pagination"
)

// PromotionRepository handles promotion data operations
type PromotionRepository struct {
	db DBExecutor
}

// NewPromotionRepository creates a new promotion repository
func NewPromotionRepository(db DBExecutor) *PromotionRepository {
	return &PromotionRepository{db: db}
}

// Create inserts a new promotion
func (r *PromotionRepository) Create(ctx context.Context, promo *model.Promotion) error {
	query := `
		INSERT INTO promotions (id, name, template, status, minimum_balance, required_member_fields, cursor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	now := time.Now().UTC()
	promo.CreatedAt = now
	promo.UpdatedAt = now
	promo.Cursor = pagination.CursorBytes(now)

	_, err := r.db.ExecContext(ctx, query,
		promo.ID, promo.Name, promo.Template, promo.Status,
		promo.MinimumBalance, promo.RequiredMemberFields, promo.Cursor,
		promo.CreatedAt, promo.UpdatedAt)
	if err != nil {
		return persistence("create promotion", err)
	}

	return nil
}

// GetByID retrieves a promotion by identifier
func (r *PromotionRepository) GetByID(ctx context.Context, id string) (*model.Promotion, error) {
	query := `
		SELECT id, name, template, status, minimum_balance, required_member_fields, cursor, created_at, updated_at
		FROM promotions
		WHERE id = $1
	`

	var promo model.Promotion
	if err := r.db.GetContext(ctx, &promo, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodePromoNotFound, "promo %s not found", id)
		}
		return nil, persistence("get promotion", err)
	}

	return &promo, nil
}

// Update persists changes to an existing promotion
func (r *PromotionRepository) Update(ctx context.Context, promo *model.Promotion) error {
	query := `
		UPDATE promotions
		SET name = $1, status = $2, minimum_balance = $3, required_member_fields = $4, updated_at = $5
		WHERE id = $6
	`

	promo.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		promo.Name, promo.Status, promo.MinimumBalance, promo.RequiredMemberFields,
		promo.UpdatedAt, promo.ID)
	if err != nil {
		return persistence("update promotion", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence("update promotion", err)
	}
	if affected == 0 {
		return apperr.Newf(apperr.CodePromoNotFound, "promo %s not found", promo.ID)
	}

	return nil
}

// Delete removes a promotion, reporting whether a row was deleted
func (r *PromotionRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	if err != nil {
		return false, persistence("delete promotion", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, persistence("delete promotion", err)
	}

	return affected > 0, nil
}

// Window returns promotions created at or after since, ascending by creation time
func (r *PromotionRepository) Window(ctx context.Context, since *time.Time) ([]model.Promotion, error) {
	query := `
		SELECT id, name, template, status, minimum_balance, required_member_fields, cursor, created_at, updated_at
		FROM promotions
	`

	var promos []model.Promotion
	var err error
	if since != nil {
		err = r.db.SelectContext(ctx, &promos, query+` WHERE created_at >= $1 ORDER BY created_at ASC`, *since)
	} else {
		err = r.db.SelectContext(ctx, &promos, query+` ORDER BY created_at ASC`)
	}
	if err != nil {
		return nil, persistence("list promotions", err)
	}

	return promos, nil
}

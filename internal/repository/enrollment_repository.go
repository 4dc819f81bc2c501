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

// EnrollmentRepository handles enrollment request data operations
type EnrollmentRepository struct {
	db DBExecutor
}

// NewEnrollmentRepository creates a new enrollment request repository
func NewEnrollmentRepository(db DBExecutor) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// Create inserts a new enrollment request. The unique (member_id, promotion_id)
// constraint closes the race between the eligibility engine's existence check
// and this insert: the loser of a concurrent pair gets CodeExistingEnrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, req *model.EnrollmentRequest) error {
	query := `
		INSERT INTO enrollment_requests (id, member_id, promotion_id, status, cursor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	req.Cursor = pagination.CursorBytes(now)

	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.MemberID, req.PromotionID, req.Status, req.Cursor,
		req.CreatedAt, req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "enrollment_requests_member_promotion_key") {
			return apperr.Newf(apperr.CodeExistingEnrollment,
				"enrollment request for member %s and promo %s already exists", req.MemberID, req.PromotionID)
		}
		return persistence("create enrollment request", err)
	}

	return nil
}

// GetByID retrieves an enrollment request by identifier
func (r *EnrollmentRepository) GetByID(ctx context.Context, id string) (*model.EnrollmentRequest, error) {
	query := `
		SELECT id, member_id, promotion_id, status, cursor, created_at, updated_at
		FROM enrollment_requests
		WHERE id = $1
	`

	var req model.EnrollmentRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeEnrollmentRequestNotFound, "enrollment request %s not found", id)
		}
		return nil, persistence("get enrollment request", err)
	}

	return &req, nil
}

// ExistsForPair reports whether any enrollment request exists for the
// (member, promotion) pair, regardless of its status.
func (r *EnrollmentRepository) ExistsForPair(ctx context.Context, memberID, promotionID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM enrollment_requests WHERE member_id = $1 AND promotion_id = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, memberID, promotionID); err != nil {
		return false, persistence("check enrollment existence", err)
	}

	return exists, nil
}

// SetStatus transitions a request to the given status and returns the
// updated row
func (r *EnrollmentRepository) SetStatus(ctx context.Context, id string, status model.EnrollmentStatus) (*model.EnrollmentRequest, error) {
	query := `
		UPDATE enrollment_requests
		SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING id, member_id, promotion_id, status, cursor, created_at, updated_at
	`

	var req model.EnrollmentRequest
	if err := r.db.GetContext(ctx, &req, query, status, time.Now().UTC(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeEnrollmentRequestNotFound, "enrollment request %s not found", id)
		}
		return nil, persistence("update enrollment request", err)
	}

	return &req, nil
}

// Delete removes an enrollment request. Administrative operation only; the
// workflow itself never deletes requests.
func (r *EnrollmentRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM enrollment_requests WHERE id = $1`, id)
	if err != nil {
		return false, persistence("delete enrollment request", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, persistence("delete enrollment request", err)
	}

	return affected > 0, nil
}

// Window returns enrollment requests created at or after since, ascending by
// creation time
func (r *EnrollmentRepository) Window(ctx context.Context, since *time.Time) ([]model.EnrollmentRequest, error) {
	query := `
		SELECT id, member_id, promotion_id, status, cursor, created_at, updated_at
		FROM enrollment_requests
	`

	var reqs []model.EnrollmentRequest
	var err error
	if since != nil {
		err = r.db.SelectContext(ctx, &reqs, query+` WHERE created_at >= $1 ORDER BY created_at ASC`, *since)
	} else {
		err = r.db.SelectContext(ctx, &reqs, query+` ORDER BY created_at ASC`)
	}
	if err != nil {
		return nil, persistence("list enrollment requests", err)
	}

	return reqs, nil
}

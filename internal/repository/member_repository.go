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

// MemberRepository handles member data operations
type MemberRepository struct {
	db DBExecutor
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db DBExecutor) *MemberRepository {
	return &MemberRepository{db: db}
}

// Create inserts a new member, stamping timestamps and the cursor snapshot
func (r *MemberRepository) Create(ctx context.Context, member *model.Member) error {
	query := `
		INSERT INTO members (id, username, password_hash, real_name, email, bank_account, balance, cursor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	now := time.Now().UTC()
	member.CreatedAt = now
	member.UpdatedAt = now
	member.Cursor = pagination.CursorBytes(now)

	_, err := r.db.ExecContext(ctx, query,
		member.ID, member.Username, member.PasswordHash, member.RealName,
		member.Email, member.BankAccount, member.Balance, member.Cursor,
		member.CreatedAt, member.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "members_username_key") {
			return apperr.Newf(apperr.CodeExistingMember, "member %q already exists", member.Username)
		}
		return persistence("create member", err)
	}

	return nil
}

// GetByID retrieves a member by identifier
func (r *MemberRepository) GetByID(ctx context.Context, id string) (*model.Member, error) {
	query := `
		SELECT id, username, password_hash, real_name, email, bank_account, balance, cursor, created_at, updated_at
		FROM members
		WHERE id = $1
	`

	var member model.Member
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeMemberNotFound, "member %s not found", id)
		}
		return nil, persistence("get member", err)
	}

	return &member, nil
}

// GetByUsername retrieves a member by username
func (r *MemberRepository) GetByUsername(ctx context.Context, username string) (*model.Member, error) {
	query := `
		SELECT id, username, password_hash, real_name, email, bank_account, balance, cursor, created_at, updated_at
		FROM members
		WHERE username = $1
	`

	var member model.Member
	if err := r.db.GetContext(ctx, &member, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeMemberNotFound, "member %q not found", username)
		}
		return nil, persistence("get member", err)
	}

	return &member, nil
}

// ExistsByUsername reports whether a member with the username exists
func (r *MemberRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM members WHERE username = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, username); err != nil {
		return false, persistence("check member existence", err)
	}

	return exists, nil
}

// Update persists profile changes to an existing member
func (r *MemberRepository) Update(ctx context.Context, member *model.Member) error {
	query := `
		UPDATE members
		SET real_name = $1, email = $2, bank_account = $3, balance = $4, updated_at = $5
		WHERE id = $6
	`

	member.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query,
		member.RealName, member.Email, member.BankAccount, member.Balance,
		member.UpdatedAt, member.ID)
	if err != nil {
		return persistence("update member", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence("update member", err)
	}
	if affected == 0 {
		return apperr.Newf(apperr.CodeMemberNotFound, "member %s not found", member.ID)
	}

	return nil
}

// Delete removes a member, reporting whether a row was deleted
func (r *MemberRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return false, persistence("delete member", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, persistence("delete member", err)
	}

	return affected > 0, nil
}

// Window returns members created at or after since, ascending by creation time
func (r *MemberRepository) Window(ctx context.Context, since *time.Time) ([]model.Member, error) {
	query := `
		SELECT id, username, password_hash, real_name, email, bank_account, balance, cursor, created_at, updated_at
		FROM members
	`

	var members []model.Member
	var err error
	if since != nil {
		err = r.db.SelectContext(ctx, &members, query+` WHERE created_at >= $1 ORDER BY created_at ASC`, *since)
	} else {
		err = r.db.SelectContext(ctx, &members, query+` ORDER BY created_at ASC`)
	}
	if err != nil {
		return nil, persistence("list members", err)
	}

	return members, nil
}

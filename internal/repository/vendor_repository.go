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

// VendorRepository handles vendor data operations
type VendorRepository struct {
	db DBExecutor
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db DBExecutor) *VendorRepository {
	return &VendorRepository{db: db}
}

// Create inserts a new vendor
func (r *VendorRepository) Create(ctx context.Context, vendor *model.Vendor) error {
	query := `
		INSERT INTO vendors (id, name, type, cursor, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	now := time.Now().UTC()
	vendor.CreatedAt = now
	vendor.UpdatedAt = now
	vendor.Cursor = pagination.CursorBytes(now)

	_, err := r.db.ExecContext(ctx, query,
		vendor.ID, vendor.Name, vendor.Type, vendor.Cursor, vendor.CreatedAt, vendor.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "vendors_name_key") {
			return apperr.Newf(apperr.CodeExistingVendor, "vendor %q already exists", vendor.Name)
		}
		return persistence("create vendor", err)
	}

	return nil
}

// GetByID retrieves a vendor by identifier
func (r *VendorRepository) GetByID(ctx context.Context, id string) (*model.Vendor, error) {
	query := `
		SELECT id, name, type, cursor, created_at, updated_at
		FROM vendors
		WHERE id = $1
	`

	var vendor model.Vendor
	if err := r.db.GetContext(ctx, &vendor, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.CodeVendorNotFound, "vendor %s not found", id)
		}
		return nil, persistence("get vendor", err)
	}

	return &vendor, nil
}

// ExistsByName reports whether a vendor with the name exists
func (r *VendorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM vendors WHERE name = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		return false, persistence("check vendor existence", err)
	}

	return exists, nil
}

// Update persists changes to an existing vendor
func (r *VendorRepository) Update(ctx context.Context, vendor *model.Vendor) error {
	query := `
		UPDATE vendors
		SET name = $1, type = $2, updated_at = $3
		WHERE id = $4
	`

	vendor.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, query, vendor.Name, vendor.Type, vendor.UpdatedAt, vendor.ID)
	if err != nil {
		if isUniqueViolation(err, "vendors_name_key") {
			return apperr.Newf(apperr.CodeExistingVendor, "vendor %q already exists", vendor.Name)
		}
		return persistence("update vendor", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return persistence("update vendor", err)
	}
	if affected == 0 {
		return apperr.Newf(apperr.CodeVendorNotFound, "vendor %s not found", vendor.ID)
	}

	return nil
}

// Delete removes a vendor, reporting whether a row was deleted
func (r *VendorRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return false, persistence("delete vendor", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, persistence("delete vendor", err)
	}

	return affected > 0, nil
}

// Window returns vendors created at or after since, ascending by creation time
func (r *VendorRepository) Window(ctx context.Context, since *time.Time) ([]model.Vendor, error) {
	query := `
		SELECT id, name, type, cursor, created_at, updated_at
		FROM vendors
	`

	var vendors []model.Vendor
	var err error
	if since != nil {
		err = r.db.SelectContext(ctx, &vendors, query+` WHERE created_at >= $1 ORDER BY created_at ASC`, *since)
	} else {
		err = r.db.SelectContext(ctx, &vendors, query+` ORDER BY created_at ASC`)
	}
	if err != nil {
		return nil, persistence("list vendors", err)
	}

	return vendors, nil
}

// Package service implements the domain logic of the loyalty platform:
// entity CRUD, the enrollment-eligibility engine, and the enrollment-request
// approval workflow.
package service

import (
	"context"
	"time"

	"github.com/perkhub/loyalty/internal/model"
)

// MemberStore is the storage port for members.
type MemberStore interface {
	Create(ctx context.Context, member *model.Member) error
	GetByID(ctx context.Context, id string) (*model.Member, error)
	GetByUsername(ctx context.Context, username string) (*model.Member, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id string) (bool, error)
	Window(ctx context.Context, since *time.Time) ([]model.Member, error)
}

// VendorStore is the storage port for vendors.
type VendorStore interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	GetByID(ctx context.Context, id string) (*model.Vendor, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, vendor *model.Vendor) error
	Delete(ctx context.Context, id string) (bool, error)
	Window(ctx context.Context, since *time.Time) ([]model.Vendor, error)
}

// PromotionStore is the storage port for promotions.
type PromotionStore interface {
	Create(ctx context.Context, promo *model.Promotion) error
	GetByID(ctx context.Context, id string) (*model.Promotion, error)
	Update(ctx context.Context, promo *model.Promotion) error
	Delete(ctx context.Context, id string) (bool, error)
	Window(ctx context.Context, since *time.Time) ([]model.Promotion, error)
}

// EnrollmentStore is the storage port for enrollment requests.
type EnrollmentStore interface {
	Create(ctx context.Context, req *model.EnrollmentRequest) error
	GetByID(ctx context.Context, id string) (*model.EnrollmentRequest, error)
	ExistsForPair(ctx context.Context, memberID, promotionID string) (bool, error)
	SetStatus(ctx context.Context, id string, status model.EnrollmentStatus) (*model.EnrollmentRequest, error)
	Delete(ctx context.Context, id string) (bool, error)
	Window(ctx context.Context, since *time.Time) ([]model.EnrollmentRequest, error)
}

// Registry bundles the services handed to the API surfaces.
type Registry struct {
	Auth        *AuthService
	Members     *MemberService
	Vendors     *VendorService
	Promotions  *PromotionService
	Enrollments *EnrollmentService
}

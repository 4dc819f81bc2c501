package model

import "time"

// EnrollmentStatus is the lifecycle status of an enrollment request.
type EnrollmentStatus string

const (
	EnrollmentStatusPending    EnrollmentStatus = "PENDING"
	EnrollmentStatusProcessing EnrollmentStatus = "PROCESSING"
	EnrollmentStatusApproved   EnrollmentStatus = "APPROVED"
	EnrollmentStatusRejected   EnrollmentStatus = "REJECTED"
)

// EnrollmentRequest is a member's claim to join a promotion, created at
// PENDING once eligibility passes and moved through the approval workflow.
// References are by identifier only; orphans are tolerated.
type EnrollmentRequest struct {
	ID          string           `db:"id" json:"id"`
	MemberID    string           `db:"member_id" json:"memberId"`
	PromotionID string           `db:"promotion_id" json:"promoId"`
	Status      EnrollmentStatus `db:"status" json:"status"`
	Cursor      []byte           `db:"cursor" json:"-"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `db:"updated_at" json:"updatedAt"`
}

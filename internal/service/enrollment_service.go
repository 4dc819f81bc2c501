package service

import (
	"context"
	"time"

	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/pagination"
)

// EnrollmentService runs the eligibility engine and the enrollment-request
// approval workflow.
type EnrollmentService struct {
	members     MemberStore
	promotions  PromotionStore
	enrollments EnrollmentStore
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(members MemberStore, promotions PromotionStore, enrollments EnrollmentStore) *EnrollmentService {
	return &EnrollmentService{
		members:     members,
		promotions:  promotions,
		enrollments: enrollments,
	}
}

// create inserts a request at PENDING, the sole initial state. Called by the
// eligibility engine once every gate has passed.
func (s *EnrollmentService) create(ctx context.Context, memberID, promotionID string) (*model.EnrollmentRequest, error) {
	req := &model.EnrollmentRequest{
		ID:          model.NewID(),
		MemberID:    memberID,
		PromotionID: promotionID,
		Status:      model.EnrollmentStatusPending,
	}
	if err := s.enrollments.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Approve transitions a request to APPROVED.
func (s *EnrollmentService) Approve(ctx context.Context, id string) (*model.EnrollmentRequest, error) {
	return s.transition(ctx, id, model.EnrollmentStatusApproved)
}

// Process transitions a request to PROCESSING.
func (s *EnrollmentService) Process(ctx context.Context, id string) (*model.EnrollmentRequest, error) {
	return s.transition(ctx, id, model.EnrollmentStatusProcessing)
}

// Reject transitions a request to REJECTED.
func (s *EnrollmentService) Reject(ctx context.Context, id string) (*model.EnrollmentRequest, error) {
	return s.transition(ctx, id, model.EnrollmentStatusRejected)
}

// transition moves a located request to the target status. The current state
// is deliberately not inspected: any state may move to any other, including
// away from APPROVED and REJECTED.
func (s *EnrollmentService) transition(ctx context.Context, id string, status model.EnrollmentStatus) (*model.EnrollmentRequest, error) {
	return s.enrollments.SetStatus(ctx, id, status)
}

// Get retrieves an enrollment request by identifier
func (s *EnrollmentService) Get(ctx context.Context, id string) (*model.EnrollmentRequest, error) {
	return s.enrollments.GetByID(ctx, id)
}

// List returns an enrollment request connection for the given pagination
// arguments
func (s *EnrollmentService) List(ctx context.Context, args pagination.Args) (*pagination.Connection[model.EnrollmentRequest], error) {
	first, since, err := args.Resolve()
	if err != nil {
		return nil, err
	}

	window, err := s.enrollments.Window(ctx, since)
	if err != nil {
		return nil, err
	}

	conn := pagination.Connect(window, first, func(r model.EnrollmentRequest) time.Time { return r.CreatedAt })
	return &conn, nil
}

// Delete removes a request. Administrative operation; the workflow never
// deletes requests on its own.
func (s *EnrollmentService) Delete(ctx context.Context, id string) (bool, error) {
	return s.enrollments.Delete(ctx, id)
}

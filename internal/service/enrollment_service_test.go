package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/service"
)

func pendingRequest(t *testing.T, f *enrollFixture) *model.EnrollmentRequest {
	t.Helper()
	member := f.member(t, service.CreateMemberInput{Balance: decimal.NewFromInt(100)})
	promo := f.promo(t, depositInput("25"))
	req, err := f.enrollments.Enroll(context.Background(), promo.ID, member.ID)
	require.NoError(t, err)
	return req
}

func TestEnrollmentWorkflowTransitions(t *testing.T) {
	f := newEnrollFixture()
	req := pendingRequest(t, f)

	processed, err := f.enrollments.Process(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusProcessing, processed.Status)

	approved, err := f.enrollments.Approve(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusApproved, approved.Status)

	// Terminal states are not sticky: any state may move to any other.
	rejected, err := f.enrollments.Reject(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusRejected, rejected.Status)

	reopened, err := f.enrollments.Process(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentStatusProcessing, reopened.Status)
}

func TestEnrollmentWorkflowUnknownRequest(t *testing.T) {
	f := newEnrollFixture()

	for name, transition := range map[string]func(context.Context, string) (*model.EnrollmentRequest, error){
		"approve": f.enrollments.Approve,
		"process": f.enrollments.Process,
		"reject":  f.enrollments.Reject,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := transition(context.Background(), "nope")
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, apperr.CodeEnrollmentRequestNotFound))
		})
	}
}

func TestEnrollmentGet(t *testing.T) {
	f := newEnrollFixture()
	req := pendingRequest(t, f)

	got, err := f.enrollments.Get(context.Background(), req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.ID, got.ID)
	assert.Equal(t, model.EnrollmentStatusPending, got.Status)

	_, err = f.enrollments.Get(context.Background(), "nope")
	assert.True(t, apperr.IsCode(err, apperr.CodeEnrollmentRequestNotFound))
}

func TestEnrollmentDelete(t *testing.T) {
	f := newEnrollFixture()
	req := pendingRequest(t, f)

	deleted, err := f.enrollments.Delete(context.Background(), req.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = f.enrollments.Delete(context.Background(), req.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

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
	"github.com/perkhub/loyalty/internal/service/servicetest"
)

func newPromotionService() *service.PromotionService {
	return service.NewPromotionService(servicetest.NewPromotions())
}

func TestPromotionCreateValidation(t *testing.T) {
	min := decimal.NewFromInt(25)

	tests := []struct {
		name     string
		in       service.CreatePromotionInput
		wantCode apperr.Code
	}{
		{
			name:     "missing name",
			in:       service.CreatePromotionInput{Template: model.PromoTemplateDeposit, MinimumBalance: &min},
			wantCode: apperr.CodeMissingInput,
		},
		{
			name:     "invalid template",
			in:       service.CreatePromotionInput{Name: "p", Template: "CASHBACK"},
			wantCode: apperr.CodeInvalidEnumValue,
		},
		{
			name:     "invalid status",
			in:       service.CreatePromotionInput{Name: "p", Template: model.PromoTemplateDeposit, Status: "LIVE", MinimumBalance: &min},
			wantCode: apperr.CodeInvalidEnumValue,
		},
		{
			name:     "deposit without minimum balance",
			in:       service.CreatePromotionInput{Name: "p", Template: model.PromoTemplateDeposit},
			wantCode: apperr.CodeInvalidPromoFields,
		},
		{
			name: "deposit with member fields",
			in: service.CreatePromotionInput{
				Name: "p", Template: model.PromoTemplateDeposit,
				MinimumBalance:       &min,
				RequiredMemberFields: []model.MemberField{model.MemberFieldEmail},
			},
			wantCode: apperr.CodeInvalidPromoFields,
		},
		{
			name:     "sign-up without member fields",
			in:       service.CreatePromotionInput{Name: "p", Template: model.PromoTemplateSignUp},
			wantCode: apperr.CodeInvalidPromoFields,
		},
		{
			name: "sign-up with minimum balance",
			in: service.CreatePromotionInput{
				Name: "p", Template: model.PromoTemplateSignUp,
				MinimumBalance:       &min,
				RequiredMemberFields: []model.MemberField{model.MemberFieldEmail},
			},
			wantCode: apperr.CodeInvalidPromoFields,
		},
		{
			name: "sign-up with unknown member field",
			in: service.CreatePromotionInput{
				Name: "p", Template: model.PromoTemplateSignUp,
				RequiredMemberFields: []model.MemberField{"SHOE_SIZE"},
			},
			wantCode: apperr.CodeInvalidEnumValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newPromotionService().Create(context.Background(), tt.in)
			require.Error(t, err)
			assert.True(t, apperr.IsCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestPromotionCreateDefaultsToDraft(t *testing.T) {
	min := decimal.NewFromInt(25)
	promo, err := newPromotionService().Create(context.Background(), service.CreatePromotionInput{
		Name:           "spring deposit",
		Template:       model.PromoTemplateDeposit,
		MinimumBalance: &min,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PromoStatusDraft, promo.Status)
	assert.NotEmpty(t, promo.ID)
}

func TestPromotionUpdate(t *testing.T) {
	svc := newPromotionService()
	min := decimal.NewFromInt(25)
	promo, err := svc.Create(context.Background(), service.CreatePromotionInput{
		Name:           "spring deposit",
		Template:       model.PromoTemplateDeposit,
		MinimumBalance: &min,
	})
	require.NoError(t, err)

	t.Run("status change", func(t *testing.T) {
		active := model.PromoStatusActive
		updated, err := svc.Update(context.Background(), promo.ID, service.UpdatePromotionInput{Status: &active})
		require.NoError(t, err)
		assert.Equal(t, model.PromoStatusActive, updated.Status)
	})

	t.Run("field-group invariant re-validated", func(t *testing.T) {
		_, err := svc.Update(context.Background(), promo.ID, service.UpdatePromotionInput{
			RequiredMemberFields: []model.MemberField{model.MemberFieldEmail},
		})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidPromoFields))
	})

	t.Run("unknown promo", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "nope", service.UpdatePromotionInput{})
		assert.True(t, apperr.IsCode(err, apperr.CodePromoNotFound))
	})
}

func TestPromotionDelete(t *testing.T) {
	svc := newPromotionService()
	min := decimal.NewFromInt(25)
	promo, err := svc.Create(context.Background(), service.CreatePromotionInput{
		Name:           "spring deposit",
		Template:       model.PromoTemplateDeposit,
		Status:         model.PromoStatusActive,
		MinimumBalance: &min,
	})
	require.NoError(t, err)

	t.Run("active promo cannot be deleted", func(t *testing.T) {
		_, err := svc.Delete(context.Background(), promo.ID)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeActivePromoDelete))
	})

	t.Run("inactive promo deletes", func(t *testing.T) {
		inactive := model.PromoStatusInactive
		_, err := svc.Update(context.Background(), promo.ID, service.UpdatePromotionInput{Status: &inactive})
		require.NoError(t, err)

		deleted, err := svc.Delete(context.Background(), promo.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("unknown promo", func(t *testing.T) {
		_, err := svc.Delete(context.Background(), "nope")
		assert.True(t, apperr.IsCode(err, apperr.CodePromoNotFound))
	})
}

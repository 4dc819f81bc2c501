package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/pagination"
)

// PromotionService manages promotion definitions
type PromotionService struct {
	promotions PromotionStore
}

// NewPromotionService creates a new promotion service
func NewPromotionService(promotions PromotionStore) *PromotionService {
	return &PromotionService{promotions: promotions}
}

// CreatePromotionInput carries the attributes of a new promotion
type CreatePromotionInput struct {
	Name                 string
	Template             model.PromoTemplate
	Status               model.PromoStatus // defaults to DRAFT
	MinimumBalance       *decimal.Decimal
	RequiredMemberFields []model.MemberField
}

// Create inserts a new promotion after validating the template-specific
// field-group invariant
func (s *PromotionService) Create(ctx context.Context, in CreatePromotionInput) (*model.Promotion, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.New(apperr.CodeMissingInput, "promo name is required")
	}
	if !in.Template.Valid() {
		return nil, apperr.Newf(apperr.CodeInvalidEnumValue, "invalid promo template %q", in.Template)
	}

	status := in.Status
	if status == "" {
		status = model.PromoStatusDraft
	}
	if !status.Valid() {
		return nil, apperr.Newf(apperr.CodeInvalidEnumValue, "invalid promo status %q", status)
	}

	if err := validateFieldGroups(in.Template, in.MinimumBalance, in.RequiredMemberFields); err != nil {
		return nil, err
	}

	promo := &model.Promotion{
		ID:                   model.NewID(),
		Name:                 name,
		Template:             in.Template,
		Status:               status,
		MinimumBalance:       in.MinimumBalance,
		RequiredMemberFields: fieldNames(in.RequiredMemberFields),
	}
	if err := s.promotions.Create(ctx, promo); err != nil {
		return nil, err
	}

	return promo, nil
}

// validateFieldGroups enforces that exactly one template-specific field group
// is populated: DEPOSIT promotions carry a minimum balance and no required
// member fields, SIGN_UP promotions the inverse.
func validateFieldGroups(template model.PromoTemplate, minimumBalance *decimal.Decimal, fields []model.MemberField) error {
	switch template {
	case model.PromoTemplateDeposit:
		if minimumBalance == nil {
			return apperr.New(apperr.CodeInvalidPromoFields, "DEPOSIT promo requires a minimum balance")
		}
		if len(fields) > 0 {
			return apperr.New(apperr.CodeInvalidPromoFields, "DEPOSIT promo cannot require member fields")
		}
	case model.PromoTemplateSignUp:
		if len(fields) == 0 {
			return apperr.New(apperr.CodeInvalidPromoFields, "SIGN_UP promo requires at least one member field")
		}
		if minimumBalance != nil {
			return apperr.New(apperr.CodeInvalidPromoFields, "SIGN_UP promo cannot have a minimum balance")
		}
		for _, f := range fields {
			if !f.Valid() {
				return apperr.Newf(apperr.CodeInvalidEnumValue, "invalid member field %q", f)
			}
		}
	}
	return nil
}

func fieldNames(fields []model.MemberField) []string {
	if len(fields) == 0 {
		return []string{}
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}

// Get retrieves a promotion by identifier
func (s *PromotionService) Get(ctx context.Context, id string) (*model.Promotion, error) {
	if id == "" {
		return nil, apperr.New(apperr.CodeMissingInput, "promo id is required")
	}
	return s.promotions.GetByID(ctx, id)
}

// List returns a promotion connection for the given pagination arguments
func (s *PromotionService) List(ctx context.Context, args pagination.Args) (*pagination.Connection[model.Promotion], error) {
	first, since, err := args.Resolve()
	if err != nil {
		return nil, err
	}

	window, err := s.promotions.Window(ctx, since)
	if err != nil {
		return nil, err
	}

	conn := pagination.Connect(window, first, func(p model.Promotion) time.Time { return p.CreatedAt })
	return &conn, nil
}

// UpdatePromotionInput carries optional promotion changes; nil fields are
// left as-is. The template itself is immutable.
type UpdatePromotionInput struct {
	Name                 *string
	Status               *model.PromoStatus
	MinimumBalance       *decimal.Decimal
	RequiredMemberFields []model.MemberField
}

// Update applies changes to an existing promotion, re-validating the
// field-group invariant against its template
func (s *PromotionService) Update(ctx context.Context, id string, in UpdatePromotionInput) (*model.Promotion, error) {
	promo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if name := strings.TrimSpace(*in.Name); name != "" {
			promo.Name = name
		}
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, apperr.Newf(apperr.CodeInvalidEnumValue, "invalid promo status %q", *in.Status)
		}
		promo.Status = *in.Status
	}
	if in.MinimumBalance != nil {
		promo.MinimumBalance = in.MinimumBalance
	}
	if in.RequiredMemberFields != nil {
		promo.RequiredMemberFields = fieldNames(in.RequiredMemberFields)
	}

	fields := make([]model.MemberField, len(promo.RequiredMemberFields))
	for i, f := range promo.RequiredMemberFields {
		fields[i] = model.MemberField(f)
	}
	if err := validateFieldGroups(promo.Template, promo.MinimumBalance, fields); err != nil {
		return nil, err
	}

	if err := s.promotions.Update(ctx, promo); err != nil {
		return nil, err
	}

	return promo, nil
}

// Delete removes a promotion. ACTIVE promotions cannot be deleted.
func (s *PromotionService) Delete(ctx context.Context, id string) (bool, error) {
	promo, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if promo.Status == model.PromoStatusActive {
		return false, apperr.Newf(apperr.CodeActivePromoDelete, "promo %s is active and cannot be deleted", id)
	}
	return s.promotions.Delete(ctx, id)
}

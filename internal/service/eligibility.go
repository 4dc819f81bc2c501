package service

import (
	"context"
	"time"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/metrics"
	"github.com/perkhub/loyalty/internal/model"
)

// Enroll evaluates whether the member may enroll in the promotion and, if
// every gate passes, creates a PENDING enrollment request. Gates run in a
// fixed order and the first failure wins; nothing is retried and every
// failure is surfaced to the caller as-is.
func (s *EnrollmentService) Enroll(ctx context.Context, promotionID, memberID string) (req *model.EnrollmentRequest, err error) {
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = "failed"
		}
		metrics.RecordRequestDuration("enroll", status, time.Since(start).Seconds())
	}()

	if promotionID == "" || memberID == "" {
		return nil, apperr.New(apperr.CodeMissingInput, "promo id and member id are required")
	}

	promo, err := s.promotions.GetByID(ctx, promotionID)
	if err != nil {
		return nil, err
	}
	if promo.Status != model.PromoStatusActive {
		return nil, apperr.Newf(apperr.CodePromoNotActive, "promo %s is not active", promo.ID)
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	// Any prior request for the pair blocks, including rejected ones. The
	// unique pair constraint in storage closes the window between this
	// check and the insert below.
	exists, err := s.enrollments.ExistsForPair(ctx, member.ID, promo.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Newf(apperr.CodeExistingEnrollment,
			"enrollment request for member %s and promo %s already exists", member.ID, promo.ID)
	}

	switch promo.Template {
	case model.PromoTemplateSignUp:
		if err := checkRequiredFields(promo, member); err != nil {
			return nil, err
		}
	case model.PromoTemplateDeposit:
		if err := checkDeposit(promo, member); err != nil {
			return nil, err
		}
	}

	return s.create(ctx, member.ID, promo.ID)
}

// checkRequiredFields verifies each field a SIGN_UP promotion requires, in
// the promotion's listed order. An empty attribute counts as missing.
func checkRequiredFields(promo *model.Promotion, member *model.Member) error {
	for _, name := range promo.RequiredMemberFields {
		field := model.MemberField(name)
		if member.Field(field) == "" {
			return apperr.Newf(apperr.CodeRequiredFieldMissing, "member field %s is required", name)
		}
	}
	return nil
}

// checkDeposit verifies a DEPOSIT promotion's balance rule. A balance of
// exactly zero counts as having no balance at all.
func checkDeposit(promo *model.Promotion, member *model.Member) error {
	if member.Balance.IsZero() {
		return apperr.Newf(apperr.CodeInsufficientBalance, "member %s has no balance", member.ID)
	}
	if promo.MinimumBalance == nil {
		return apperr.Newf(apperr.CodeInvalidPromoFields, "promo %s has no minimum balance", promo.ID)
	}
	if member.Balance.LessThan(*promo.MinimumBalance) {
		return apperr.Newf(apperr.CodeInsufficientBalance,
			"balance %s is below the minimum %s", member.Balance, promo.MinimumBalance)
	}
	return nil
}

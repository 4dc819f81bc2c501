package model

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// PromoTemplate determines which eligibility rules a promotion applies.
type PromoTemplate string

const (
	PromoTemplateDeposit PromoTemplate = "DEPOSIT"
	PromoTemplateSignUp  PromoTemplate = "SIGN_UP"
)

// Valid reports whether t is a known promotion template.
func (t PromoTemplate) Valid() bool {
	return t == PromoTemplateDeposit || t == PromoTemplateSignUp
}

// PromoStatus is the lifecycle status of a promotion.
type PromoStatus string

const (
	PromoStatusDraft    PromoStatus = "DRAFT"
	PromoStatusActive   PromoStatus = "ACTIVE"
	PromoStatusInactive PromoStatus = "INACTIVE"
)

// Valid reports whether s is a known promotion status.
func (s PromoStatus) Valid() bool {
	switch s {
	case PromoStatusDraft, PromoStatusActive, PromoStatusInactive:
		return true
	}
	return false
}

// Promotion represents a promotion definition. Exactly one of the two
// template-specific field groups is populated: DEPOSIT promotions carry
// MinimumBalance, SIGN_UP promotions carry RequiredMemberFields.
type Promotion struct {
	ID                   string           `db:"id" json:"id"`
	Name                 string           `db:"name" json:"name"`
	Template             PromoTemplate    `db:"template" json:"template"`
	Status               PromoStatus      `db:"status" json:"status"`
	MinimumBalance       *decimal.Decimal `db:"minimum_balance" json:"minimumBalance,omitempty"`
	RequiredMemberFields pq.StringArray   `db:"required_member_fields" json:"requiredMemberFields,omitempty"`
	Cursor               []byte           `db:"cursor" json:"-"`
	CreatedAt            time.Time        `db:"created_at" json:"createdAt"`
	UpdatedAt            time.Time        `db:"updated_at" json:"updatedAt"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberField names a member profile attribute a SIGN_UP promotion may require.
type MemberField string

const (
	MemberFieldEmail       MemberField = "EMAIL"
	MemberFieldRealName    MemberField = "REAL_NAME"
	MemberFieldBankAccount MemberField = "BANK_ACCOUNT"
)

// Valid reports whether f is a known member field name.
func (f MemberField) Valid() bool {
	switch f {
	case MemberFieldEmail, MemberFieldRealName, MemberFieldBankAccount:
		return true
	}
	return false
}

// Member represents a registered member of the loyalty platform.
type Member struct {
	ID           string          `db:"id" json:"id"`
	Username     string          `db:"username" json:"username"`
	PasswordHash string          `db:"password_hash" json:"-"`
	RealName     string          `db:"real_name" json:"realName,omitempty"`
	Email        string          `db:"email" json:"email,omitempty"`
	BankAccount  string          `db:"bank_account" json:"bankAccount,omitempty"`
	Balance      decimal.Decimal `db:"balance" json:"balance"`
	Cursor       []byte          `db:"cursor" json:"-"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// Field returns the profile attribute named by f. An empty value counts as
// the attribute being absent.
func (m *Member) Field(f MemberField) string {
	switch f {
	case MemberFieldEmail:
		return m.Email
	case MemberFieldRealName:
		return m.RealName
	case MemberFieldBankAccount:
		return m.BankAccount
	}
	return ""
}

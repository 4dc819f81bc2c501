package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/auth"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/pagination"
)

// MemberService manages member registration and profiles
type MemberService struct {
	members MemberStore
}

// NewMemberService creates a new member service
func NewMemberService(members MemberStore) *MemberService {
	return &MemberService{members: members}
}

// CreateMemberInput carries the registration attributes
type CreateMemberInput struct {
	Username    string
	Password    string
	RealName    string
	Email       string
	BankAccount string
	Balance     decimal.Decimal
}

// Create registers a new member with a hashed password
func (s *MemberService) Create(ctx context.Context, in CreateMemberInput) (*model.Member, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, apperr.New(apperr.CodeMissingInput, "username and password are required")
	}

	exists, err := s.members.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Newf(apperr.CodeExistingMember, "member %q already exists", username)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeUnknown, "failed to hash password", err)
	}

	member := &model.Member{
		ID:           model.NewID(),
		Username:     username,
		PasswordHash: hash,
		RealName:     in.RealName,
		Email:        in.Email,
		BankAccount:  in.BankAccount,
		Balance:      in.Balance,
	}
	if err := s.members.Create(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// Get retrieves a member by identifier
func (s *MemberService) Get(ctx context.Context, id string) (*model.Member, error) {
	if id == "" {
		return nil, apperr.New(apperr.CodeMissingInput, "member id is required")
	}
	return s.members.GetByID(ctx, id)
}

// List returns a member connection for the given pagination arguments
func (s *MemberService) List(ctx context.Context, args pagination.Args) (*pagination.Connection[model.Member], error) {
	first, since, err := args.Resolve()
	if err != nil {
		return nil, err
	}

	window, err := s.members.Window(ctx, since)
	if err != nil {
		return nil, err
	}

	conn := pagination.Connect(window, first, func(m model.Member) time.Time { return m.CreatedAt })
	return &conn, nil
}

// UpdateMemberInput carries optional profile changes; nil fields are left as-is
type UpdateMemberInput struct {
	RealName    *string
	Email       *string
	BankAccount *string
	Balance     *decimal.Decimal
}

// Update applies profile changes to an existing member
func (s *MemberService) Update(ctx context.Context, id string, in UpdateMemberInput) (*model.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.RealName != nil {
		member.RealName = *in.RealName
	}
	if in.Email != nil {
		member.Email = *in.Email
	}
	if in.BankAccount != nil {
		member.BankAccount = *in.BankAccount
	}
	if in.Balance != nil {
		member.Balance = *in.Balance
	}

	if err := s.members.Update(ctx, member); err != nil {
		return nil, err
	}

	return member, nil
}

// Delete removes a member. Enrollment requests referencing the member are
// left in place; orphan references are tolerated.
func (s *MemberService) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, apperr.New(apperr.CodeMissingInput, "member id is required")
	}
	return s.members.Delete(ctx, id)
}

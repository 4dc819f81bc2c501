package service

import (
	"context"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/auth"
)

// AuthService authenticates members against stored credentials and issues
// bearer tokens.
type AuthService struct {
	members MemberStore
	tokens  *auth.TokenIssuer
}

// NewAuthService creates a new auth service
func NewAuthService(members MemberStore, tokens *auth.TokenIssuer) *AuthService {
	return &AuthService{members: members, tokens: tokens}
}

// Login verifies the credentials and returns a signed token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", apperr.New(apperr.CodeMissingCredentials, "username and password are required")
	}

	member, err := s.members.GetByUsername(ctx, username)
	if err != nil {
		if apperr.IsCode(err, apperr.CodeMemberNotFound) {
			return "", apperr.New(apperr.CodeInvalidCredentials, "invalid username or password")
		}
		return "", err
	}

	if !auth.CheckPassword(member.PasswordHash, password) {
		return "", apperr.New(apperr.CodeInvalidCredentials, "invalid username or password")
	}

	token, err := s.tokens.Generate(member.ID)
	if err != nil {
		return "", apperr.Wrap(apperr.CodeUnknown, "failed to generate token", err)
	}

	return token, nil
}

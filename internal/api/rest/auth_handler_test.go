package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkhub/loyalty/internal/auth"
	"github.com/perkhub/loyalty/internal/service"
	"github.com/perkhub/loyalty/internal/service/servicetest"
)

func newAuthEngine(t *testing.T) (*gin.Engine, *auth.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := servicetest.NewMembers()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)

	_, err := service.NewMemberService(store).Create(context.Background(), service.CreateMemberInput{
		Username: "alice",
		Password: "pw",
	})
	require.NoError(t, err)

	h := &authHandler{auth: service.NewAuthService(store, issuer)}
	engine := gin.New()
	engine.POST("/auth", h.login)
	return engine, issuer
}

func TestLoginEndpoint(t *testing.T) {
	engine, issuer := newAuthEngine(t)

	t.Run("valid credentials return a usable token", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/auth", loginRequest{Username: "alice", Password: "pw"})
		require.Equal(t, http.StatusOK, rec.Code)

		var out map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		require.NotEmpty(t, out["token"])
		assert.True(t, issuer.Authorize("Bearer "+out["token"]).Allowed)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/auth", loginRequest{Username: "alice", Password: "nope"})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var out map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, "INVALID_CREDENTIALS", out["code"])
	})

	t.Run("empty body", func(t *testing.T) {
		rec := doJSON(t, engine, http.MethodPost, "/auth", map[string]string{})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var out map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, "MISSING_CREDENTIALS", out["code"])
	})
}

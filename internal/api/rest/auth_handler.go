package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/service"
)

type authHandler struct {
	auth *service.AuthService
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *authHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.New(apperr.CodeMissingCredentials, "username and password are required"))
		return
	}

	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

package model

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// NewID returns a short, URL-safe, server-generated identifier.
func NewID() string {
	u := uuid.New()
	return base64.RawURLEncoding.EncodeToString(u[:9])
}

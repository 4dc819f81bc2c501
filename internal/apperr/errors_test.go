package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMatchesByCode(t *testing.T) {
	err := Newf(CodeMemberNotFound, "member %s not found", "abc")

	assert.True(t, errors.Is(err, New(CodeMemberNotFound, "anything")))
	assert.False(t, errors.Is(err, New(CodeVendorNotFound, "anything")))
	assert.Equal(t, "member abc not found", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodePersistence, "insert member", cause)

	assert.True(t, errors.Is(err, cause))
	assert.True(t, IsCode(err, CodePersistence))
}

func TestIsCodeThroughWrapping(t *testing.T) {
	inner := New(CodeExistingEnrollment, "already enrolled")
	outer := fmt.Errorf("enroll: %w", inner)

	assert.True(t, IsCode(outer, CodeExistingEnrollment))
	assert.False(t, IsCode(outer, CodeExistingMember))
	assert.False(t, IsCode(errors.New("plain"), CodeExistingEnrollment))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodePromoNotActive, CodeOf(New(CodePromoNotActive, "inactive")))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeUnknown, http.StatusInternalServerError},
		{CodePersistence, http.StatusInternalServerError},
		{CodeNotAllowed, http.StatusForbidden},
		{CodeMissingInput, http.StatusBadRequest},
		{CodeExistingEnrollment, http.StatusBadRequest},
		{CodePagination, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			require.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

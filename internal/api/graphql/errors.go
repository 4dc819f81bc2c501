package graphql

import (
	"errors"
	"log/slog"

	"github.com/perkhub/loyalty/internal/apperr"
)

// codedError exposes a domain error to graphql-go with its machine-readable
// code under extensions.code.
type codedError struct {
	appErr *apperr.Error
}

func (e codedError) Error() string {
	return e.appErr.Error()
}

func (e codedError) Unwrap() error {
	return e.appErr
}

func (e codedError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.appErr.Code)}
}

// wrapErr converts any resolver error into a coded GraphQL error.
// Unrecognized errors are logged and reported as a generic unknown error,
// hiding internal detail from the caller.
func wrapErr(err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return codedError{appErr}
	}

	slog.Error("unhandled resolver error", "error", err)
	return codedError{apperr.New(apperr.CodeUnknown, "unknown error")}
}

// Package graphql serves the GraphQL surface over the domain services.
package graphql

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/auth"
)

type ctxKey int

const identityKey ctxKey = iota

// identityFrom extracts the caller identity resolved from the request's
// Authorization header.
func identityFrom(ctx context.Context) auth.Identity {
	id, _ := ctx.Value(identityKey).(auth.Identity)
	return id
}

// requireAllowed gates a resolver on an authorized caller.
func requireAllowed(ctx context.Context) error {
	if !identityFrom(ctx).Allowed {
		return apperr.New(apperr.CodeNotAllowed, "not allowed")
	}
	return nil
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves POST /graphql. The gate authorizes the bearer header once
// per request and the resulting identity is passed to every resolver.
func Handler(schema graphql.Schema, gate *auth.TokenIssuer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"errors": []map[string]string{{"message": "invalid request body"}},
			})
			return
		}

		identity := gate.Authorize(r.Header.Get("Authorization"))
		ctx := context.WithValue(r.Context(), identityKey, identity)

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        ctx,
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	})
}

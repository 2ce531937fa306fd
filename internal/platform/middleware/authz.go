// Copyright (c) 2026 Savora. All rights reserved.
// Author: eng@savora.app

package middleware

import (
	"net/http"
	"strings"

	"github.com/savora/savora/internal/platform/ctxutil"
	"github.com/savora/savora/internal/platform/sec"
)

// # Authentication & Authorization

// TokenVerifier abstracts JWT verification for the authentication middleware.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// Authenticate parses the Bearer token if present and injects the claims
// into the request context. It never rejects the request itself — routes
// that demand a signed-in user must be wrapped in [RequireAuth].
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Extract the Authorization header
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Expect the "Bearer <token>" scheme
			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || tokenString == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Verify the signature and expiry. Invalid tokens are treated
			// as anonymous rather than rejected here.
			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				next.ServeHTTP(writer, request)
				return
			}

			// 4. Attach the verified identity to the context
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that do not carry verified claims with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		if ctxutil.GetAuthUser(request.Context()) == nil {
			writeError(writer, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}

		next.ServeHTTP(writer, request)
	})
}

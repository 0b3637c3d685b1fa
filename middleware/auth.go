// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielhkuo/open-ballot/apperr"
	"github.com/danielhkuo/open-ballot/auth"
)

type contextKey string

const principalKey contextKey = "principal"

// RequireAuth rejects requests without a valid bearer token and puts
// the principal on the request context.
func RequireAuth(tokenSecret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := principalFromHeader(r, tokenSecret)
		if err != nil {
			ErrorResponseStatus(w, http.StatusUnauthorized,
				apperr.Authorization("valid bearer token required"))
			return
		}
		next(w, WithPrincipal(r, p))
	}
}

// OptionalAuth extracts a principal when a valid bearer token is
// present but lets anonymous requests through. Used on public read
// endpoints where an admin token widens visibility.
func OptionalAuth(tokenSecret string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := principalFromHeader(r, tokenSecret)
		if err != nil {
			next(w, r)
			return
		}
		next(w, WithPrincipal(r, p))
	}
}

// WithPrincipal returns a copy of the request with the principal
// attached to its context.
func WithPrincipal(r *http.Request, p auth.Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

// PrincipalFrom returns the authenticated principal, if any.
func PrincipalFrom(r *http.Request) (auth.Principal, bool) {
	p, ok := r.Context().Value(principalKey).(auth.Principal)
	return p, ok
}

func principalFromHeader(r *http.Request, tokenSecret string) (auth.Principal, error) {
	header := r.Header.Get("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return auth.Principal{}, auth.ErrInvalidToken
	}
	return auth.ParsePrincipal(tokenString, tokenSecret)
}

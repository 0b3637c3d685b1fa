// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Bearer-Token Auth

RequireAuth rejects requests without a valid bearer token (401) and
stores the principal on the request context; OptionalAuth lets anonymous
requests through but still extracts a principal when a token is present:

	mux.HandleFunc("POST /api/elections", middleware.RequireAuth(secret, handler))
	mux.HandleFunc("GET /api/elections/{id}", middleware.OptionalAuth(secret, handler))

Handlers read the identity back with PrincipalFrom(r).

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PUT, DELETE, OPTIONS with headers
Content-Type, Authorization.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)

Write typed errors (status derived from the apperr kind):

	middleware.ErrorResponse(w, apperr.NotFound("Election not found"))
*/
package middleware

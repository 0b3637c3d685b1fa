// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apperr defines the caller-visible error taxonomy.

Each failure mode a client can hit is a distinct Kind carried in the
error payload, so clients can branch on the kind rather than parse
messages:

	{"error": "DUPLICATE_VOTE", "message": "a vote was already cast for this election"}

The four vote-cast preconditions have dedicated kinds
(ELECTION_NOT_VOTABLE, INVALID_CANDIDATE, NOT_ELIGIBLE, DUPLICATE_VOTE)
alongside the generic request kinds (VALIDATION_ERROR,
AUTHORIZATION_ERROR, NOT_FOUND, CONFLICT, INVALID_STATE).

HTTPStatus maps kinds to status codes; handlers construct errors via the
kind constructors and hand them to middleware.ErrorResponse.
*/
package apperr

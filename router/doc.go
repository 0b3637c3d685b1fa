// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Open Ballot API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Election catalog (requires bearer token; writes require admin):

	POST /api/elections                     - Create election (admin)
	GET  /api/elections                     - List elections (admins see unpublished)
	GET  /api/elections/{id}                - Election detail with candidates and tally
	POST /api/elections/{id}/publish        - Publish election (admin)
	POST /api/elections/{id}/unpublish      - Unpublish election (admin)
	POST /api/elections/{id}/candidates     - Add candidate (admin)
	GET  /api/candidates                    - List all candidates (admin)

Voter registry (requires bearer token; review requires admin):

	POST /api/voters/register               - Submit registration
	GET  /api/voters/my-status              - Own registration status
	GET  /api/voters/pending                - Pending registrations (admin)
	GET  /api/voters/approved               - Approved voters (admin)
	POST /api/voters/{id}/approve           - Approve registration (admin)
	POST /api/voters/{id}/reject            - Reject registration (admin)

Voting and results:

	POST /api/elections/{id}/vote           - Cast a vote (requires bearer token)
	GET  /api/elections/{id}/votes/latest   - Counts-only snapshot (public)
	GET  /api/elections/{id}/live-results   - Full live results (public)

# Handler Initialization

The router creates handler instances with dependency injection:

	electionHandler := handlers.NewElectionHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router

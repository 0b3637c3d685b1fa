// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/open-ballot/cliparse"
	"github.com/danielhkuo/open-ballot/handlers"
	"github.com/danielhkuo/open-ballot/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	electionHandler := handlers.NewElectionHandler(db, cfg)
	voterHandler := handlers.NewVoterHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Most routes require a bearer token. The result-reading routes
	// accept anonymous callers; the rest of the read endpoints work
	// for any authenticated user, admin or not.
	auth := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg.TokenSecret, h))
	}
	open := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.OptionalAuth(cfg.TokenSecret, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election catalog
	mux.HandleFunc("POST /api/elections", auth(electionHandler.Create))
	mux.HandleFunc("GET /api/elections", auth(electionHandler.List))
	mux.HandleFunc("GET /api/elections/{id}", auth(electionHandler.GetDetail))
	mux.HandleFunc("POST /api/elections/{id}/publish", auth(electionHandler.Publish))
	mux.HandleFunc("POST /api/elections/{id}/unpublish", auth(electionHandler.Unpublish))
	mux.HandleFunc("POST /api/elections/{id}/candidates", auth(electionHandler.AddCandidate))
	mux.HandleFunc("GET /api/candidates", auth(electionHandler.ListCandidates))

	// Voter registry
	mux.HandleFunc("POST /api/voters/register", auth(voterHandler.Register))
	mux.HandleFunc("GET /api/voters/my-status", auth(voterHandler.MyStatus))
	mux.HandleFunc("GET /api/voters/pending", auth(voterHandler.ListPending))
	mux.HandleFunc("GET /api/voters/approved", auth(voterHandler.ListApproved))
	mux.HandleFunc("POST /api/voters/{id}/approve", auth(voterHandler.Approve))
	mux.HandleFunc("POST /api/voters/{id}/reject", auth(voterHandler.Reject))

	// Voting and results. Result reads are public so dashboards can
	// poll them without a login; anonymous callers still only see
	// published elections.
	mux.HandleFunc("POST /api/elections/{id}/vote", auth(voteHandler.Cast))
	mux.HandleFunc("GET /api/elections/{id}/votes/latest", open(voteHandler.LatestVotes))
	mux.HandleFunc("GET /api/elections/{id}/live-results", open(resultsHandler.LiveResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("open-ballot API v1"))
	})

	return mux
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/danielhkuo/open-ballot/apperr"
	"github.com/danielhkuo/open-ballot/cliparse"
	"github.com/danielhkuo/open-ballot/middleware"
	"github.com/danielhkuo/open-ballot/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// LiveResults handles GET /api/elections/{id}/live-results
//
// The response is a self-contained snapshot: candidates, counts, total
// and a timestamp. Dashboards poll this every few seconds, so each
// call recomputes the tally from the vote table rather than trusting
// any cached counter. Results are readable while voting is still open.
func (h *ResultsHandler) LiveResults(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, apperr.Validation("election id is required"))
		return
	}

	election, appErr := queryElection(h.db, electionID)
	if appErr != nil {
		middleware.ErrorResponse(w, appErr)
		return
	}

	p, _ := middleware.PrincipalFrom(r)
	if !election.Published && !p.IsAdmin {
		middleware.ErrorResponse(w, apperr.NotFound("Election not found"))
		return
	}
	election.StatusAt(time.Now())

	candidates, appErr := queryCandidates(h.db, electionID)
	if appErr != nil {
		middleware.ErrorResponse(w, appErr)
		return
	}

	counts, total, appErr := queryTally(h.db, electionID)
	if appErr != nil {
		middleware.ErrorResponse(w, appErr)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LiveResultsResponse{
		ElectionID: election.ID,
		Title:      election.Title,
		Status:     election.Status,
		Candidates: candidates,
		Counts:     counts,
		Total:      total,
		AsOf:       time.Now(),
	})
}

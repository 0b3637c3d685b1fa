// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/danielhkuo/open-ballot/apperr"
	"github.com/danielhkuo/open-ballot/auth"
	"github.com/danielhkuo/open-ballot/cliparse"
	"github.com/danielhkuo/open-ballot/middleware"
	"github.com/danielhkuo/open-ballot/models"
)

// uniqueViolation is the Postgres error code for a violated UNIQUE
// constraint. The UNIQUE (election_id, voter_id) index on vote is the
// final authority on one-vote-per-voter; the precondition checks only
// exist to give callers a precise error before the insert.
const uniqueViolation = "23505"

type VoteHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoteHandler(db *sql.DB, cfg cliparse.Config) *VoteHandler {
	return &VoteHandler{db: db, cfg: cfg}
}

// Cast handles POST /api/elections/{id}/vote
//
// Preconditions are checked in a fixed order so that a request failing
// several of them always reports the same one: votable election first,
// then candidate membership, then voter eligibility, then duplicate
// detection. A transient storage failure retries the whole sequence
// once; precondition failures and duplicate votes never retry.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r)

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, apperr.Validation("election id is required"))
		return
	}

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, apperr.Validation("Invalid JSON"))
		return
	}
	if req.VoterID == "" || req.CandidateID == "" {
		middleware.ErrorResponse(w, apperr.Validation("voter_id and candidate_id are required"))
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.TokenSecret)
	userAgent := r.UserAgent()

	voteID, appErr := h.castOnce(electionID, req, p, ipHash, userAgent)
	if appErr != nil && appErr.Kind == apperr.KindInternal {
		slog.Warn("vote cast failed, retrying", "election_id", electionID, "error", appErr)
		voteID, appErr = h.castOnce(electionID, req, p, ipHash, userAgent)
	}
	if appErr != nil {
		middleware.ErrorResponse(w, appErr)
		return
	}

	slog.Info("vote cast", "election_id", electionID, "vote_id", voteID)

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		VoteID:  voteID,
		Message: "Vote recorded",
	})
}

// castOnce runs the precondition sequence and the insert a single time.
func (h *VoteHandler) castOnce(electionID string, req models.CastVoteRequest, p auth.Principal, ipHash, userAgent string) (string, *apperr.Error) {
	// 1. The election must exist, be published, and be ongoing. A
	// missing election reads the same as a closed one: not votable.
	election, appErr := queryElection(h.db, electionID)
	if appErr != nil {
		if appErr.Kind == apperr.KindNotFound {
			return "", apperr.ElectionNotVotable("Election is not open for voting")
		}
		return "", appErr
	}
	if !election.Votable(time.Now()) {
		return "", apperr.ElectionNotVotable("Election is not open for voting")
	}

	// 2. The candidate must belong to this election.
	var candidateExists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM candidate WHERE id = $1 AND election_id = $2)
	`, req.CandidateID, electionID).Scan(&candidateExists)
	if err != nil {
		slog.Error("failed to query candidate", "error", err)
		return "", apperr.Internal("Database error")
	}
	if !candidateExists {
		return "", apperr.InvalidCandidate("Candidate does not belong to this election")
	}

	// 3. The voter record must belong to the caller and be approved.
	var voterUserID, voterStatus string
	err = h.db.QueryRow(`SELECT user_id, status FROM voter WHERE id = $1`, req.VoterID).Scan(&voterUserID, &voterStatus)
	if err == sql.ErrNoRows {
		return "", apperr.NotEligible("Voter registration not found")
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		return "", apperr.Internal("Database error")
	}
	// A voter id the caller doesn't own is just as ineligible as an
	// unapproved one.
	if voterUserID != p.UserID {
		return "", apperr.NotEligible("Voter record belongs to another user")
	}
	if voterStatus != models.VoterApproved {
		return "", apperr.NotEligible("Voter registration is " + voterStatus)
	}

	// 4. The voter must not have voted in this election yet.
	var alreadyVoted bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vote WHERE election_id = $1 AND voter_id = $2)
	`, electionID, req.VoterID).Scan(&alreadyVoted)
	if err != nil {
		slog.Error("failed to query existing vote", "error", err)
		return "", apperr.Internal("Database error")
	}
	if alreadyVoted {
		return "", apperr.DuplicateVote("Voter has already voted in this election")
	}

	voteID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO vote (id, election_id, voter_id, candidate_id, cast_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, voteID, electionID, req.VoterID, req.CandidateID, time.Now(), ipHash, userAgent)

	if err != nil {
		// A concurrent cast for the same voter won the race between the
		// existence check and the insert.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return "", apperr.DuplicateVote("Voter has already voted in this election")
		}
		slog.Error("failed to insert vote", "error", err)
		return "", apperr.Internal("Failed to record vote")
	}

	return voteID, nil
}

// LatestVotes handles GET /api/elections/{id}/votes/latest
// A lightweight counts-only snapshot for pollers that already hold the
// candidate list.
func (h *VoteHandler) LatestVotes(w http.ResponseWriter, r *http.Request) {
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

	counts, total, appErr := queryTally(h.db, electionID)
	if appErr != nil {
		middleware.ErrorResponse(w, appErr)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LatestVotesResponse{
		ElectionID: electionID,
		Counts:     counts,
		Total:      total,
		AsOf:       time.Now(),
	})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/open-ballot/apperr"
	"github.com/danielhkuo/open-ballot/cliparse"
	"github.com/danielhkuo/open-ballot/middleware"
	"github.com/danielhkuo/open-ballot/models"
)

type ElectionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewElectionHandler(db *sql.DB, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{db: db, cfg: cfg}
}

// Create handles POST /api/elections
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r)
	if !p.IsAdmin {
		middleware.ErrorResponse(w, apperr.Authorization("admin role required"))
		return
	}

	var req models.CreateElectionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, apperr.Validation("Invalid JSON"))
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, apperr.Validation("title is required"))
		return
	}
	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		middleware.ErrorResponse(w, apperr.Validation("start_at and end_at are required"))
		return
	}
	if !req.StartAt.Before(req.EndAt) {
		middleware.ErrorResponse(w, apperr.Validation("start_at must be before end_at"))
		return
	}

	election := models.Election{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		StartAt:     req.StartAt,
		EndAt:       req.EndAt,
		Published:   false,
		CreatedAt:   time.Now(),
	}

	_, err := h.db.Exec(`
		INSERT INTO election (id, title, description, start_at, end_at, published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, election.ID, election.Title, election.Description, election.StartAt, election.EndAt, election.Published, election.CreatedAt)

	if err != nil {
		slog.Error("failed to insert election", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Failed to create election"))
		return
	}

	election.StatusAt(time.Now())

	slog.Info("election created", "election_id", election.ID, "created_by", p.UserID)

	middleware.JSONResponse(w, http.StatusCreated, election)
}

// List handles GET /api/elections
// Admins see every election; everyone else sees published ones only.
// Status is computed at read time, never cached.
func (h *ElectionHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r)

	query := `
		SELECT id, title, description, start_at, end_at, published, created_at
		FROM election
		ORDER BY start_at DESC
	`
	if !p.IsAdmin {
		query = `
			SELECT id, title, description, start_at, end_at, published, created_at
			FROM election
			WHERE published = TRUE
			ORDER BY start_at DESC
		`
	}

	rows, err := h.db.Query(query)
	if err != nil {
		slog.Error("failed to query elections", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Database error"))
		return
	}
	defer rows.Close()

	now := time.Now()
	elections := []models.Election{}
	for rows.Next() {
		var e models.Election
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &description, &e.StartAt, &e.EndAt, &e.Published, &e.CreatedAt); err != nil {
			slog.Error("failed to scan election", "error", err)
			middleware.ErrorResponse(w, apperr.Internal("Database error"))
			return
		}
		e.Description = description.String
		e.StatusAt(now)
		elections = append(elections, e)
	}

	middleware.JSONResponse(w, http.StatusOK, elections)
}

// Publish handles POST /api/elections/{id}/publish
func (h *ElectionHandler) Publish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

// Unpublish handles POST /api/elections/{id}/unpublish
func (h *ElectionHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

// setPublished flips the publication flag. Setting the current value
// again is a no-op success.
func (h *ElectionHandler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	p, _ := middleware.PrincipalFrom(r)
	if !p.IsAdmin {
		middleware.ErrorResponse(w, apperr.Authorization("admin role required"))
		return
	}

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, apperr.Validation("election id is required"))
		return
	}

	res, err := h.db.Exec(`
		UPDATE election SET published = $1 WHERE id = $2
	`, published, electionID)
	if err != nil {
		slog.Error("failed to update publication flag", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Failed to update election"))
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Failed to update election"))
		return
	}
	if affected == 0 {
		middleware.ErrorResponse(w, apperr.NotFound("Election not found"))
		return
	}

	election, appErr := h.getElection(electionID)
	if appErr != nil {
		middleware.ErrorResponse(w, appErr)
		return
	}
	election.StatusAt(time.Now())

	slog.Info("election publication updated", "election_id", electionID, "published", published)

	middleware.JSONResponse(w, http.StatusOK, election)
}

// AddCandidate handles POST /api/elections/{id}/candidates
func (h *ElectionHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r)
	if !p.IsAdmin {
		middleware.ErrorResponse(w, apperr.Authorization("admin role required"))
		return
	}

	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, apperr.Validation("election id is required"))
		return
	}

	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, apperr.Validation("Invalid JSON"))
		return
	}

	if req.Name == "" || req.Party == "" || req.PhotoRef == "" {
		middleware.ErrorResponse(w, apperr.Validation("name, party and photo_ref are required"))
		return
	}

	// Check election exists
	var exists bool
	err := h.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM election WHERE id = $1)`, electionID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query election", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Database error"))
		return
	}
	if !exists {
		middleware.ErrorResponse(w, apperr.NotFound("Election not found"))
		return
	}

	candidate := models.Candidate{
		ID:         uuid.NewString(),
		ElectionID: electionID,
		Name:       req.Name,
		Party:      req.Party,
		PhotoRef:   req.PhotoRef,
	}

	_, err = h.db.Exec(`
		INSERT INTO candidate (id, election_id, name, party, photo_ref)
		VALUES ($1, $2, $3, $4, $5)
	`, candidate.ID, candidate.ElectionID, candidate.Name, candidate.Party, candidate.PhotoRef)

	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Failed to create candidate"))
		return
	}

	slog.Info("candidate added", "election_id", electionID, "candidate_id", candidate.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		Candidate: candidate,
	})
}

// GetDetail handles GET /api/elections/{id}
// Returns the election, its candidates, and the current tally.
// Unpublished elections are invisible to non-admin callers.
func (h *ElectionHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, apperr.Validation("election id is required"))
		return
	}

	election, appErr := h.getElection(electionID)
	if appErr != nil {
		middleware.ErrorResponse(w, appErr)
		return
	}

	p, _ := middleware.PrincipalFrom(r)
	if !election.Published && !p.IsAdmin {
		// Indistinguishable from a missing election for non-admins
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

	middleware.JSONResponse(w, http.StatusOK, models.ElectionDetailResponse{
		Election:   *election,
		Candidates: candidates,
		Counts:     counts,
		Total:      total,
	})
}

// ListCandidates handles GET /api/candidates
// Admin-only listing of every candidate across elections.
func (h *ElectionHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r)
	if !p.IsAdmin {
		middleware.ErrorResponse(w, apperr.Authorization("admin role required"))
		return
	}

	rows, err := h.db.Query(`
		SELECT id, election_id, name, party, COALESCE(photo_ref, '')
		FROM candidate
		ORDER BY election_id, id
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Database error"))
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.PhotoRef); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, apperr.Internal("Database error"))
			return
		}
		candidates = append(candidates, c)
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// getElection fetches one election row without visibility filtering.
func (h *ElectionHandler) getElection(electionID string) (*models.Election, *apperr.Error) {
	return queryElection(h.db, electionID)
}

func queryElection(db *sql.DB, electionID string) (*models.Election, *apperr.Error) {
	var e models.Election
	var description sql.NullString
	err := db.QueryRow(`
		SELECT id, title, description, start_at, end_at, published, created_at
		FROM election
		WHERE id = $1
	`, electionID).Scan(&e.ID, &e.Title, &description, &e.StartAt, &e.EndAt, &e.Published, &e.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Election not found")
	}
	if err != nil {
		slog.Error("failed to query election", "error", err)
		return nil, apperr.Internal("Database error")
	}
	e.Description = description.String
	return &e, nil
}

func queryCandidates(db *sql.DB, electionID string) ([]models.Candidate, *apperr.Error) {
	rows, err := db.Query(`
		SELECT id, election_id, name, party, COALESCE(photo_ref, '')
		FROM candidate
		WHERE election_id = $1
		ORDER BY id
	`, electionID)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		return nil, apperr.Internal("Database error")
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Party, &c.PhotoRef); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			return nil, apperr.Internal("Database error")
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

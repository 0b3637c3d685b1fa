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
	"github.com/danielhkuo/open-ballot/cliparse"
	"github.com/danielhkuo/open-ballot/middleware"
	"github.com/danielhkuo/open-ballot/models"
)

type VoterHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVoterHandler(db *sql.DB, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{db: db, cfg: cfg}
}

// Register handles POST /api/voters/register
// A user registers at most once; the resulting record starts out
// pending and stays tied to the authenticated user forever.
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r)

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, apperr.Validation("Invalid JSON"))
		return
	}

	if req.EpicID == "" || req.DOB == "" || req.Address == "" || req.PhotoRef == "" || req.FingerprintRef == "" {
		middleware.ErrorResponse(w, apperr.Validation("epic_id, dob, address, photo_ref and fingerprint_ref are required"))
		return
	}

	// One registration per user, rejected or not. Rejection is final;
	// re-applying does not reset the workflow.
	var existingStatus string
	err := h.db.QueryRow(`SELECT status FROM voter WHERE user_id = $1`, p.UserID).Scan(&existingStatus)
	if err == nil {
		middleware.ErrorResponse(w, apperr.Conflict("Voter registration already exists"))
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Database error"))
		return
	}

	voter := models.Voter{
		ID:             uuid.NewString(),
		UserID:         p.UserID,
		EpicID:         req.EpicID,
		DOB:            req.DOB,
		Address:        req.Address,
		PhotoRef:       req.PhotoRef,
		FingerprintRef: req.FingerprintRef,
		Status:         models.VoterPending,
		CreatedAt:      time.Now(),
	}

	_, err = h.db.Exec(`
		INSERT INTO voter (id, user_id, epic_id, dob, address, photo_ref, fingerprint_ref, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, voter.ID, voter.UserID, voter.EpicID, voter.DOB, voter.Address, voter.PhotoRef, voter.FingerprintRef, voter.Status, voter.CreatedAt)

	if err != nil {
		// Two concurrent registrations for the same user race past the
		// SELECT; the UNIQUE(user_id) constraint settles it.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			middleware.ErrorResponse(w, apperr.Conflict("Voter registration already exists"))
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Failed to register voter"))
		return
	}

	slog.Info("voter registered", "voter_id", voter.ID, "user_id", p.UserID)

	middleware.JSONResponse(w, http.StatusCreated, voter)
}

// Approve handles POST /api/voters/{id}/approve
func (h *VoterHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.VoterApproved)
}

// Reject handles POST /api/voters/{id}/reject
func (h *VoterHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, models.VoterRejected)
}

// review moves a pending registration to a terminal status. Approved
// and rejected are both final; no transition leaves them.
func (h *VoterHandler) review(w http.ResponseWriter, r *http.Request, status string) {
	p, _ := middleware.PrincipalFrom(r)
	if !p.IsAdmin {
		middleware.ErrorResponse(w, apperr.Authorization("admin role required"))
		return
	}

	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, apperr.Validation("voter id is required"))
		return
	}

	res, err := h.db.Exec(`
		UPDATE voter SET status = $1 WHERE id = $2 AND status = $3
	`, status, voterID, models.VoterPending)
	if err != nil {
		slog.Error("failed to update voter status", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Failed to update voter"))
		return
	}

	affected, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read rows affected", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Failed to update voter"))
		return
	}

	if affected == 0 {
		var current string
		err := h.db.QueryRow(`SELECT status FROM voter WHERE id = $1`, voterID).Scan(&current)
		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, apperr.NotFound("Voter not found"))
			return
		}
		if err != nil {
			slog.Error("failed to query voter", "error", err)
			middleware.ErrorResponse(w, apperr.Internal("Database error"))
			return
		}
		middleware.ErrorResponse(w, apperr.InvalidState("Voter registration is already "+current))
		return
	}

	voter, appErr := h.getVoter(voterID)
	if appErr != nil {
		middleware.ErrorResponse(w, appErr)
		return
	}

	slog.Info("voter reviewed", "voter_id", voterID, "status", status, "reviewed_by", p.UserID)

	middleware.JSONResponse(w, http.StatusOK, voter)
}

// MyStatus handles GET /api/voters/my-status
// An unregistered user is reported as not_registered, not an error,
// so the same endpoint drives both the registration prompt and the
// approval-pending screen.
func (h *VoterHandler) MyStatus(w http.ResponseWriter, r *http.Request) {
	p, _ := middleware.PrincipalFrom(r)

	voter, appErr := h.getVoterByUser(p.UserID)
	if appErr != nil {
		if appErr.Kind == apperr.KindNotFound {
			middleware.JSONResponse(w, http.StatusOK, models.VoterStatusResponse{
				Status: models.VoterNotRegistered,
			})
			return
		}
		middleware.ErrorResponse(w, appErr)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterStatusResponse{
		Status: voter.Status,
		Voter:  voter,
	})
}

// ListPending handles GET /api/voters/pending
func (h *VoterHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.VoterPending)
}

// ListApproved handles GET /api/voters/approved
func (h *VoterHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, models.VoterApproved)
}

func (h *VoterHandler) listByStatus(w http.ResponseWriter, r *http.Request, status string) {
	p, _ := middleware.PrincipalFrom(r)
	if !p.IsAdmin {
		middleware.ErrorResponse(w, apperr.Authorization("admin role required"))
		return
	}

	rows, err := h.db.Query(`
		SELECT id, user_id, epic_id, dob, address, photo_ref, fingerprint_ref, status, created_at
		FROM voter
		WHERE status = $1
		ORDER BY created_at
	`, status)
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, apperr.Internal("Database error"))
		return
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		if err := rows.Scan(&v.ID, &v.UserID, &v.EpicID, &v.DOB, &v.Address, &v.PhotoRef, &v.FingerprintRef, &v.Status, &v.CreatedAt); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, apperr.Internal("Database error"))
			return
		}
		voters = append(voters, v)
	}

	middleware.JSONResponse(w, http.StatusOK, voters)
}

func (h *VoterHandler) getVoter(voterID string) (*models.Voter, *apperr.Error) {
	return h.scanVoter(h.db.QueryRow(`
		SELECT id, user_id, epic_id, dob, address, photo_ref, fingerprint_ref, status, created_at
		FROM voter
		WHERE id = $1
	`, voterID))
}

func (h *VoterHandler) getVoterByUser(userID string) (*models.Voter, *apperr.Error) {
	return h.scanVoter(h.db.QueryRow(`
		SELECT id, user_id, epic_id, dob, address, photo_ref, fingerprint_ref, status, created_at
		FROM voter
		WHERE user_id = $1
	`, userID))
}

func (h *VoterHandler) scanVoter(row *sql.Row) (*models.Voter, *apperr.Error) {
	var v models.Voter
	err := row.Scan(&v.ID, &v.UserID, &v.EpicID, &v.DOB, &v.Address, &v.PhotoRef, &v.FingerprintRef, &v.Status, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("Voter not found")
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		return nil, apperr.Internal("Database error")
	}
	return &v, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/open-ballot/models"
)

func validRegistration() models.RegisterVoterRequest {
	return models.RegisterVoterRequest{
		EpicID:         "EPIC-1234",
		DOB:            "1990-01-01",
		Address:        "1 Main St",
		PhotoRef:       "photos/me.jpg",
		FingerprintRef: "prints/me.bin",
	}
}

func TestRegisterVoter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	handler := NewVoterHandler(db, cfg)

	register := func(t *testing.T, userID string, body models.RegisterVoterRequest) *httptest.ResponseRecorder {
		t.Helper()
		jsonBody, _ := json.Marshal(body)
		req := httptest.NewRequest("POST", "/api/voters/register", bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
		req = asUser(req, userID)
		w := httptest.NewRecorder()
		handler.Register(w, req)
		return w
	}

	t.Run("valid registration starts pending", func(t *testing.T) {
		w := register(t, "user-1", validRegistration())

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d. Body: %s", w.Code, w.Body.String())
		}

		var voter models.Voter
		if err := json.NewDecoder(w.Body).Decode(&voter); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if voter.Status != models.VoterPending {
			t.Errorf("Expected status '%s', got '%s'", models.VoterPending, voter.Status)
		}
		if voter.UserID != "user-1" {
			t.Errorf("Voter bound to wrong user: %s", voter.UserID)
		}

		var stored string
		if err := db.QueryRow(`SELECT status FROM voter WHERE user_id = 'user-1'`).Scan(&stored); err != nil {
			t.Fatalf("Failed to query voter: %v", err)
		}
		if stored != "pending" {
			t.Errorf("Expected stored status 'pending', got '%s'", stored)
		}
	})

	t.Run("second registration conflicts", func(t *testing.T) {
		w := register(t, "user-1", validRegistration())
		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("re-registration after rejection conflicts", func(t *testing.T) {
		insertVoter(t, db, "rejected-user", "rejected")

		w := register(t, "rejected-user", validRegistration())
		if w.Code != http.StatusConflict {
			t.Errorf("Expected 409, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		fields := []func(*models.RegisterVoterRequest){
			func(r *models.RegisterVoterRequest) { r.EpicID = "" },
			func(r *models.RegisterVoterRequest) { r.DOB = "" },
			func(r *models.RegisterVoterRequest) { r.Address = "" },
			func(r *models.RegisterVoterRequest) { r.PhotoRef = "" },
			func(r *models.RegisterVoterRequest) { r.FingerprintRef = "" },
		}

		for i, clear := range fields {
			body := validRegistration()
			clear(&body)
			w := register(t, "user-2", body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("Field %d: expected 400, got %d", i, w.Code)
			}
		}
	})
}

func TestReviewVoter(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	handler := NewVoterHandler(db, cfg)

	review := func(t *testing.T, voterID, action string, admin bool) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest("POST", "/api/voters/"+voterID+"/"+action, nil)
		req.SetPathValue("id", voterID)
		if admin {
			req = asAdmin(req)
		} else {
			req = asUser(req, "user-9")
		}
		w := httptest.NewRecorder()
		if action == "approve" {
			handler.Approve(w, req)
		} else {
			handler.Reject(w, req)
		}
		return w
	}

	t.Run("approve pending", func(t *testing.T) {
		voterID := insertVoter(t, db, "approve-me", "pending")

		w := review(t, voterID, "approve", true)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var voter models.Voter
		if err := json.NewDecoder(w.Body).Decode(&voter); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if voter.Status != models.VoterApproved {
			t.Errorf("Expected status '%s', got '%s'", models.VoterApproved, voter.Status)
		}
	})

	t.Run("reject pending", func(t *testing.T) {
		voterID := insertVoter(t, db, "reject-me", "pending")

		w := review(t, voterID, "reject", true)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var status string
		if err := db.QueryRow(`SELECT status FROM voter WHERE id = $1`, voterID).Scan(&status); err != nil {
			t.Fatalf("Failed to query voter: %v", err)
		}
		if status != "rejected" {
			t.Errorf("Expected stored status 'rejected', got '%s'", status)
		}
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		approvedID := insertVoter(t, db, "already-approved", "approved")
		rejectedID := insertVoter(t, db, "already-rejected", "rejected")

		cases := []struct {
			voterID string
			action  string
		}{
			{approvedID, "approve"},
			{approvedID, "reject"},
			{rejectedID, "approve"},
			{rejectedID, "reject"},
		}

		for _, tc := range cases {
			w := review(t, tc.voterID, tc.action, true)
			if w.Code != http.StatusConflict {
				t.Errorf("%s on terminal voter: expected 409, got %d", tc.action, w.Code)
			}
		}
	})

	t.Run("missing voter", func(t *testing.T) {
		w := review(t, "no-such-voter", "approve", true)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		voterID := insertVoter(t, db, "untouched", "pending")

		w := review(t, voterID, "approve", false)
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}

		var status string
		if err := db.QueryRow(`SELECT status FROM voter WHERE id = $1`, voterID).Scan(&status); err != nil {
			t.Fatalf("Failed to query voter: %v", err)
		}
		if status != "pending" {
			t.Errorf("Status should be unchanged, got '%s'", status)
		}
	})
}

func TestMyStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	handler := NewVoterHandler(db, cfg)

	myStatus := func(t *testing.T, userID string) models.VoterStatusResponse {
		t.Helper()
		req := asUser(httptest.NewRequest("GET", "/api/voters/my-status", nil), userID)
		w := httptest.NewRecorder()
		handler.MyStatus(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}
		var resp models.VoterStatusResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		return resp
	}

	t.Run("unregistered user", func(t *testing.T) {
		resp := myStatus(t, "nobody")
		if resp.Status != models.VoterNotRegistered {
			t.Errorf("Expected status '%s', got '%s'", models.VoterNotRegistered, resp.Status)
		}
		if resp.Voter != nil {
			t.Error("Expected no voter record")
		}
	})

	t.Run("registered user sees own record", func(t *testing.T) {
		voterID := insertVoter(t, db, "user-1", "approved")

		resp := myStatus(t, "user-1")
		if resp.Status != models.VoterApproved {
			t.Errorf("Expected status '%s', got '%s'", models.VoterApproved, resp.Status)
		}
		if resp.Voter == nil || resp.Voter.ID != voterID {
			t.Error("Expected own voter record in response")
		}
	})
}

func TestListVotersByStatus(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	handler := NewVoterHandler(db, cfg)

	insertVoter(t, db, "p1", "pending")
	insertVoter(t, db, "p2", "pending")
	insertVoter(t, db, "a1", "approved")
	insertVoter(t, db, "r1", "rejected")

	list := func(t *testing.T, path string, admin bool, fn http.HandlerFunc) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest("GET", path, nil)
		if admin {
			req = asAdmin(req)
		} else {
			req = asUser(req, "p1")
		}
		w := httptest.NewRecorder()
		fn(w, req)
		return w
	}

	t.Run("pending listing", func(t *testing.T) {
		w := list(t, "/api/voters/pending", true, handler.ListPending)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var voters []models.Voter
		if err := json.NewDecoder(w.Body).Decode(&voters); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(voters) != 2 {
			t.Errorf("Expected 2 pending voters, got %d", len(voters))
		}
	})

	t.Run("approved listing", func(t *testing.T) {
		w := list(t, "/api/voters/approved", true, handler.ListApproved)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		var voters []models.Voter
		if err := json.NewDecoder(w.Body).Decode(&voters); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(voters) != 1 {
			t.Errorf("Expected 1 approved voter, got %d", len(voters))
		}
	})

	t.Run("non-admin rejected", func(t *testing.T) {
		w := list(t, "/api/voters/pending", false, handler.ListPending)
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d", w.Code)
		}
	})
}

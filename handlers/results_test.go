// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/open-ballot/models"
)

func liveResults(t *testing.T, handler *ResultsHandler, electionID string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "/api/elections/"+electionID+"/live-results", nil)
	req.SetPathValue("id", electionID)
	w := httptest.NewRecorder()
	handler.LiveResults(w, req)
	return w
}

func TestLiveResults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	handler := NewResultsHandler(db, cfg)

	electionID := insertElection(t, db, true, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	aliceID := insertCandidate(t, db, electionID, "Alice Johnson")
	bobID := insertCandidate(t, db, electionID, "Bob Smith")
	carolID := insertCandidate(t, db, electionID, "Carol White")

	// Two votes for Alice, one for Bob, none for Carol
	for i, target := range []string{aliceID, aliceID, bobID} {
		voterID := insertVoter(t, db, "voter-"+string(rune('a'+i)), "approved")
		_, err := db.Exec(`
			INSERT INTO vote (id, election_id, voter_id, candidate_id, cast_at)
			VALUES ($1, $2, $3, $4, NOW())
		`, uuid.NewString(), electionID, voterID, target)
		if err != nil {
			t.Fatalf("Failed to insert vote: %v", err)
		}
	}

	t.Run("full snapshot", func(t *testing.T) {
		w := liveResults(t, handler, electionID)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
		}

		var resp models.LiveResultsResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}

		if resp.ElectionID != electionID {
			t.Errorf("Expected election %s, got %s", electionID, resp.ElectionID)
		}
		if resp.Status != models.StatusOngoing {
			t.Errorf("Expected status '%s', got '%s'", models.StatusOngoing, resp.Status)
		}
		if len(resp.Candidates) != 3 {
			t.Fatalf("Expected 3 candidates, got %d", len(resp.Candidates))
		}
		if resp.Counts[aliceID] != 2 {
			t.Errorf("Expected 2 votes for Alice, got %d", resp.Counts[aliceID])
		}
		if resp.Counts[bobID] != 1 {
			t.Errorf("Expected 1 vote for Bob, got %d", resp.Counts[bobID])
		}
		if count, ok := resp.Counts[carolID]; !ok || count != 0 {
			t.Errorf("Expected explicit zero count for Carol, got %d (present: %v)", count, ok)
		}
		if resp.Total != 3 {
			t.Errorf("Expected total 3, got %d", resp.Total)
		}
		if resp.AsOf.IsZero() {
			t.Error("Expected as_of timestamp")
		}
	})

	t.Run("results readable while ongoing and after close", func(t *testing.T) {
		// Shift the window into the past; results stay available
		_, err := db.Exec(`UPDATE election SET start_at = $1, end_at = $2 WHERE id = $3`,
			time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour), electionID)
		if err != nil {
			t.Fatalf("Failed to update election window: %v", err)
		}

		w := liveResults(t, handler, electionID)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 for past election, got %d", w.Code)
		}

		var resp models.LiveResultsResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Status != models.StatusPast {
			t.Errorf("Expected status '%s', got '%s'", models.StatusPast, resp.Status)
		}
		if resp.Total != 3 {
			t.Errorf("Tally should survive the close, got total %d", resp.Total)
		}
	})

	t.Run("draft hidden from anonymous", func(t *testing.T) {
		draftID := insertElection(t, db, false, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))

		w := liveResults(t, handler, draftID)
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}

		// An admin token widens visibility
		req := httptest.NewRequest("GET", "/api/elections/"+draftID+"/live-results", nil)
		req.SetPathValue("id", draftID)
		req = asAdmin(req)
		w2 := httptest.NewRecorder()
		handler.LiveResults(w2, req)

		if w2.Code != http.StatusOK {
			t.Errorf("Expected 200 for admin, got %d. Body: %s", w2.Code, w2.Body.String())
		}
	})

	t.Run("missing election", func(t *testing.T) {
		w := liveResults(t, handler, "no-such-election")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestLiveResultsEmptyElection(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cfg := getTestConfig()
	handler := NewResultsHandler(db, cfg)

	electionID := insertElection(t, db, true, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	aliceID := insertCandidate(t, db, electionID, "Alice Johnson")

	w := liveResults(t, handler, electionID)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d. Body: %s", w.Code, w.Body.String())
	}

	var resp models.LiveResultsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("Expected total 0, got %d", resp.Total)
	}
	if count, ok := resp.Counts[aliceID]; !ok || count != 0 {
		t.Errorf("Expected explicit zero count, got %d (present: %v)", count, ok)
	}
}

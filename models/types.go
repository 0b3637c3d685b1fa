package models

import "time"

// Election status constants (derived from the voting window, never stored)
const (
	StatusUpcoming = "upcoming"
	StatusOngoing  = "ongoing"
	StatusPast     = "past"
)

// Voter registration states
const (
	VoterPending  = "pending"
	VoterApproved = "approved"
	VoterRejected = "rejected"

	// VoterNotRegistered is the implicit state of a user with no
	// registration row. It never appears in the database.
	VoterNotRegistered = "not_registered"
)

// Request types

type CreateElectionRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
}

type AddCandidateRequest struct {
	Name     string `json:"name"`
	Party    string `json:"party"`
	PhotoRef string `json:"photo_ref"`
}

type RegisterVoterRequest struct {
	EpicID         string `json:"epic_id"`
	DOB            string `json:"dob"`
	Address        string `json:"address"`
	PhotoRef       string `json:"photo_ref"`
	FingerprintRef string `json:"fingerprint_ref"`
}

type CastVoteRequest struct {
	VoterID     string `json:"voter_id"`
	CandidateID string `json:"candidate_id"`
}

// Response types

type AddCandidateResponse struct {
	Candidate Candidate `json:"candidate"`
}

type CastVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type VoterStatusResponse struct {
	Status string `json:"status"`
	Voter  *Voter `json:"voter,omitempty"`
}

type ElectionDetailResponse struct {
	Election   Election       `json:"election"`
	Candidates []Candidate    `json:"candidates"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
}

type LiveResultsResponse struct {
	ElectionID string         `json:"election_id"`
	Title      string         `json:"title"`
	Status     string         `json:"status"`
	Candidates []Candidate    `json:"candidates"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
	AsOf       time.Time      `json:"as_of"`
}

type LatestVotesResponse struct {
	ElectionID string         `json:"election_id"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
	AsOf       time.Time      `json:"as_of"`
}

// Domain types

type Election struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Published   bool      `json:"published"`
	Status      string    `json:"status"` // derived at read time
	CreatedAt   time.Time `json:"created_at"`
}

type Candidate struct {
	ID         string `json:"id"`
	ElectionID string `json:"election_id"`
	Name       string `json:"name"`
	Party      string `json:"party"`
	PhotoRef   string `json:"photo_ref"`
}

type Voter struct {
	ID             string    `json:"voter_id"`
	UserID         string    `json:"user_id"`
	EpicID         string    `json:"epic_id"`
	DOB            string    `json:"dob"`
	Address        string    `json:"address,omitempty"`
	PhotoRef       string    `json:"photo_ref,omitempty"`
	FingerprintRef string    `json:"-"` // Never expose in JSON
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

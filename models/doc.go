// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: title, description, start_at, end_at
  - AddCandidateRequest: name, party, photo_ref
  - RegisterVoterRequest: epic_id, dob, address, photo_ref, fingerprint_ref
  - CastVoteRequest: voter_id, candidate_id

# Response Types

Types for JSON responses:

  - AddCandidateResponse: candidate
  - CastVoteResponse: vote_id, message
  - VoterStatusResponse: status, voter
  - ElectionDetailResponse: election, candidates, counts, total
  - LiveResultsResponse: election_id, title, status, candidates, counts, total, as_of
  - LatestVotesResponse: election_id, counts, total, as_of
  - ErrorResponse: error, message

# Domain Types

Election, Candidate, Voter and Vote mirror the database rows. An
election's status (upcoming, ongoing, past) is never stored; it is
derived from the voting window by ElectionStatus at read time, with both
boundary instants counting as ongoing.

Voter registrations move through a small state machine: pending is the
only non-terminal state, approved and rejected are terminal. A user with
no registration row is in the implicit not_registered state.
*/
package models

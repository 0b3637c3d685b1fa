// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - election: Election metadata, voting window, publication flag
  - candidate: Candidates per election (append-only)
  - voter: Voter registrations with approval state
  - vote: One vote per voter per election

# Relationships

candidate, voter and vote all cascade from their owning rows. The
UNIQUE (election_id, voter_id) constraint on vote is the authoritative
enforcement of the one-vote-per-voter invariant; concurrent duplicate
casts lose the insert race at this constraint, never in application
code. Tallies are derived by aggregating vote rows, so there is no
counter table to drift out of sync.
*/
package db

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package handlers implements the HTTP endpoints of the voting API.
//
// Each area of the API gets its own handler struct over *sql.DB:
//
//   - ElectionHandler: election lifecycle (create, publish, candidates)
//   - VoterHandler: voter registration and the approval workflow
//   - VoteHandler: vote casting and the counts-only snapshot
//   - ResultsHandler: the live results view for polling dashboards
//
// Handlers talk to Postgres directly with database/sql; there is no
// repository layer. Vote uniqueness is enforced by the database, not
// by application locks, so any number of server instances can share
// one database safely.
package handlers

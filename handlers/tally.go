// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"

	"github.com/danielhkuo/open-ballot/apperr"
)

// queryTally recomputes the per-candidate vote counts for an election
// in a single aggregation statement. There is no maintained counter
// table: the ledger is the only source of truth, so concurrent casts
// can never leave the tally inconsistent with the stored votes. The
// LEFT JOIN keeps candidates with zero votes in the result.
func queryTally(db *sql.DB, electionID string) (map[string]int, int, *apperr.Error) {
	rows, err := db.Query(`
		SELECT c.id, COUNT(v.id)
		FROM candidate c
		LEFT JOIN vote v ON v.candidate_id = c.id AND v.election_id = c.election_id
		WHERE c.election_id = $1
		GROUP BY c.id
	`, electionID)
	if err != nil {
		slog.Error("failed to query tally", "election_id", electionID, "error", err)
		return nil, 0, apperr.Internal("Database error")
	}
	defer rows.Close()

	counts := map[string]int{}
	total := 0
	for rows.Next() {
		var candidateID string
		var count int
		if err := rows.Scan(&candidateID, &count); err != nil {
			slog.Error("failed to scan tally row", "error", err)
			return nil, 0, apperr.Internal("Database error")
		}
		counts[candidateID] = count
		total += count
	}

	return counts, total, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// ElectionStatus derives an election's temporal status from its voting
// window. Both boundary instants count as ongoing: a vote cast exactly
// at start_at or end_at is accepted.
func ElectionStatus(startAt, endAt, now time.Time) string {
	if now.Before(startAt) {
		return StatusUpcoming
	}
	if now.After(endAt) {
		return StatusPast
	}
	return StatusOngoing
}

// StatusAt fills in the derived Status field for the given instant.
func (e *Election) StatusAt(now time.Time) {
	e.Status = ElectionStatus(e.StartAt, e.EndAt, now)
}

// Votable reports whether votes are accepted for the election at the
// given instant: it must be published and currently ongoing.
func (e *Election) Votable(now time.Time) bool {
	return e.Published && ElectionStatus(e.StartAt, e.EndAt, now) == StatusOngoing
}

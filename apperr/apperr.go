// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"fmt"
	"net/http"
)

// Kind identifies a caller-visible failure mode. Every kind is surfaced
// to the client as a distinct error string so no two failure modes
// collapse into one generic outcome.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindAuthorization      Kind = "AUTHORIZATION_ERROR"
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
	KindInvalidState       Kind = "INVALID_STATE"
	KindElectionNotVotable Kind = "ELECTION_NOT_VOTABLE"
	KindInvalidCandidate   Kind = "INVALID_CANDIDATE"
	KindNotEligible        Kind = "NOT_ELIGIBLE"
	KindDuplicateVote      Kind = "DUPLICATE_VOTE"
	KindInternal           Kind = "INTERNAL"
)

// Error pairs a failure kind with a human-readable message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error         { return New(KindValidation, message) }
func Authorization(message string) *Error      { return New(KindAuthorization, message) }
func NotFound(message string) *Error           { return New(KindNotFound, message) }
func Conflict(message string) *Error           { return New(KindConflict, message) }
func InvalidState(message string) *Error       { return New(KindInvalidState, message) }
func ElectionNotVotable(message string) *Error { return New(KindElectionNotVotable, message) }
func InvalidCandidate(message string) *Error   { return New(KindInvalidCandidate, message) }
func NotEligible(message string) *Error        { return New(KindNotEligible, message) }
func DuplicateVote(message string) *Error      { return New(KindDuplicateVote, message) }
func Internal(message string) *Error           { return New(KindInternal, message) }

// HTTPStatus maps a failure kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalidState, KindElectionNotVotable, KindDuplicateVote:
		return http.StatusConflict
	case KindInvalidCandidate:
		return http.StatusUnprocessableEntity
	case KindNotEligible:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

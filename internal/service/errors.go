package service

import "errors"

var (
	ErrElectionNotFound  = errors.New("election not found")
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrCandidateNotInElection means the candidate exists but belongs to a
	// different election - a client bug or tampering, never a normal outcome.
	ErrCandidateNotInElection = errors.New("candidate does not belong to this election")

	// ErrAlreadyVoted is the expected outcome for a repeat vote, including a
	// concurrent cast that lost the race at the storage layer.
	ErrAlreadyVoted = errors.New("voter has already voted in this election")

	ErrElectionNotActive = errors.New("election is not active")

	// ErrUnavailable means the backing store timed out or was unreachable.
	// Callers may retry; it must never be confused with a conflict.
	ErrUnavailable = errors.New("voting temporarily unavailable")

	ErrInvalidStatusTransition = errors.New("invalid election status transition")
)

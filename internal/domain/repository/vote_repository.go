package repository

import (
	"context"
	"errors"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
)

// ErrDuplicateVote is returned by Cast when a ledger row for the same
// (voter, election) pair already exists, including when it was created by a
// concurrent writer that won the race at the storage layer.
var ErrDuplicateVote = errors.New("duplicate vote for voter and election")

// VoteRepository is the append-only ledger plus the tally counters derived
// from it. Cast performs the whole write path as one atomic unit: the ledger
// append, both counter increments and the participant recompute either all
// commit or none do.
type VoteRepository interface {
	// Cast appends the ledger row, increments the candidate and election
	// counters with atomic in-place updates and recomputes the distinct
	// participant count, all in a single transaction. The vote's ID and
	// VotedAt are filled in on success.
	Cast(ctx context.Context, v *entity.Vote) (*entity.TallyUpdate, error)
	HasVoted(ctx context.Context, voterID, electionID string) (bool, error)
	ListByVoter(ctx context.Context, voterID string) ([]entity.Vote, error)
	CountByElection(ctx context.Context, electionID string) (int, error)
	CountByCandidate(ctx context.Context, candidateID string) (int, error)
	CountDistinctVoters(ctx context.Context, electionID string) (int, error)
}

// TallyRepository is the reconciliation path. Counters must never be edited
// by hand anywhere else; when drift is suspected, Rebuild recomputes every
// counter for the election from the ledger in one transaction.
type TallyRepository interface {
	Rebuild(ctx context.Context, electionID string) (*entity.TallyUpdate, error)
}

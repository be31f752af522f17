package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/repository"
)

// pgUniqueViolation is the postgres error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// ========================================
// Vote Ledger Repository
// ========================================
type voteRepo struct{ db *sql.DB }

func NewVoteRepository(db *sql.DB) repository.VoteRepository {
	return &voteRepo{db: db}
}

// Cast runs the whole vote write path in one transaction:
//
//  1. append the ledger row - the UNIQUE (voter_id, election_id) constraint
//     makes the losing side of a concurrent duplicate fail here;
//  2. increment the candidate and election counters as in-place updates, so
//     no read-modify-write window exists;
//  3. recompute total_participants as the distinct voter count over the
//     ledger. In a one-vote-per-election design this equals an increment,
//     but the distinct count stays correct if multi-vote elections ever
//     land.
//
// On a constraint hit the transaction is rolled back and
// repository.ErrDuplicateVote returned, leaving no partial effects.
func (r *voteRepo) Cast(ctx context.Context, v *entity.Vote) (*entity.TallyUpdate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin cast transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO votes (voter_id, election_id, candidate_id)
		VALUES ($1, $2, $3)
		RETURNING id, voted_at
	`, v.VoterID, v.ElectionID, v.CandidateID).Scan(&v.ID, &v.VotedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrDuplicateVote
		}
		return nil, fmt.Errorf("failed to append vote: %w", err)
	}

	update := &entity.TallyUpdate{}

	err = tx.QueryRowContext(ctx, `
		UPDATE candidates SET vote_count = vote_count + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING vote_count
	`, v.CandidateID).Scan(&update.CandidateVotes)
	if err != nil {
		return nil, fmt.Errorf("failed to increment candidate tally: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE elections SET total_votes = total_votes + 1, updated_at = NOW()
		WHERE id = $1
		RETURNING total_votes
	`, v.ElectionID).Scan(&update.TotalVotes)
	if err != nil {
		return nil, fmt.Errorf("failed to increment election tally: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		UPDATE elections
		SET total_participants = (SELECT COUNT(DISTINCT voter_id) FROM votes WHERE election_id = $1)
		WHERE id = $1
		RETURNING total_participants
	`, v.ElectionID).Scan(&update.TotalParticipants)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute participants: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit cast transaction: %w", err)
	}

	return update, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation
}

func (r *voteRepo) HasVoted(ctx context.Context, voterID, electionID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM votes WHERE voter_id = $1 AND election_id = $2)
	`, voterID, electionID).Scan(&exists)
	return exists, err
}

func (r *voteRepo) ListByVoter(ctx context.Context, voterID string) ([]entity.Vote, error) {
	query := `SELECT v.id, v.voter_id, v.election_id, v.candidate_id, v.voted_at,
			e.title, c.name, c.position
		FROM votes v
		JOIN elections e ON e.id = v.election_id
		JOIN candidates c ON c.id = v.candidate_id
		WHERE v.voter_id = $1
		ORDER BY v.voted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, voterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []entity.Vote
	for rows.Next() {
		var v entity.Vote
		if err := rows.Scan(&v.ID, &v.VoterID, &v.ElectionID, &v.CandidateID, &v.VotedAt,
			&v.ElectionTitle, &v.CandidateName, &v.CandidatePosition); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

func (r *voteRepo) CountByElection(ctx context.Context, electionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE election_id = $1`, electionID).Scan(&n)
	return n, err
}

func (r *voteRepo) CountByCandidate(ctx context.Context, candidateID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM votes WHERE candidate_id = $1`, candidateID).Scan(&n)
	return n, err
}

func (r *voteRepo) CountDistinctVoters(ctx context.Context, electionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT voter_id) FROM votes WHERE election_id = $1`, electionID).Scan(&n)
	return n, err
}

// ========================================
// Tally Reconciliation Repository
// ========================================
type tallyRepo struct{ db *sql.DB }

func NewTallyRepository(db *sql.DB) repository.TallyRepository {
	return &tallyRepo{db: db}
}

// Rebuild recomputes every counter for an election from the ledger. This is
// the recovery path after suspected drift; incremental updates are never
// trusted over it.
func (r *tallyRepo) Rebuild(ctx context.Context, electionID string) (*entity.TallyUpdate, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin rebuild transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE candidates c
		SET vote_count = (SELECT COUNT(*) FROM votes v WHERE v.candidate_id = c.id),
		    updated_at = NOW()
		WHERE c.election_id = $1
	`, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild candidate tallies: %w", err)
	}

	update := &entity.TallyUpdate{}
	err = tx.QueryRowContext(ctx, `
		UPDATE elections
		SET total_votes = (SELECT COUNT(*) FROM votes WHERE election_id = $1),
		    total_participants = (SELECT COUNT(DISTINCT voter_id) FROM votes WHERE election_id = $1),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING total_votes, total_participants
	`, electionID).Scan(&update.TotalVotes, &update.TotalParticipants)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to rebuild election tallies: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit rebuild transaction: %w", err)
	}

	return update, nil
}

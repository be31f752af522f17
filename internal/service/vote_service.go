package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/repository"
)

// Broadcaster pushes a committed tally update to live viewers. Delivery is
// best-effort; implementations must not block the caller.
type Broadcaster interface {
	Publish(event entity.TallyEvent)
}

// castTimeout bounds how long a cast may wait on the storage serialization
// point before it surfaces as a retryable failure.
const castTimeout = 5 * time.Second

type VoteService interface {
	CastVote(ctx context.Context, voterID, electionID, candidateID string) (*entity.VoteReceipt, error)
	GetStats(ctx context.Context, electionID string) (*entity.ElectionStats, error)
	HasVoted(ctx context.Context, voterID, electionID string) (bool, error)
	VoterVotes(ctx context.Context, voterID string) ([]entity.Vote, error)
}

type voteService struct {
	elections   repository.ElectionRepository
	candidates  repository.CandidateRepository
	votes       repository.VoteRepository
	notifier    Notifier
	broadcaster Broadcaster
}

func NewVoteService(
	elections repository.ElectionRepository,
	candidates repository.CandidateRepository,
	votes repository.VoteRepository,
	notifier Notifier,
	broadcaster Broadcaster,
) VoteService {
	return &voteService{
		elections:   elections,
		candidates:  candidates,
		votes:       votes,
		notifier:    notifier,
		broadcaster: broadcaster,
	}
}

// CastVote validates, records the vote as one atomic unit and triggers the
// post-commit side effects. Validation failures leave no trace; the ledger
// append and all counter updates commit together or not at all. The
// notification and the live broadcast run after commit and their failures
// never fail the vote.
func (s *voteService) CastVote(ctx context.Context, voterID, electionID, candidateID string) (*entity.VoteReceipt, error) {
	election, err := s.elections.GetByID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load election: %w", err)
	}
	if election == nil {
		return nil, ErrElectionNotFound
	}
	if election.Status != entity.ElectionActive {
		return nil, ErrElectionNotActive
	}

	candidate, err := s.candidates.GetByID(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}
	if candidate == nil {
		return nil, ErrCandidateNotFound
	}
	if candidate.ElectionID != election.ID {
		return nil, ErrCandidateNotInElection
	}

	// Advisory pre-check for the common repeat-vote case. The UNIQUE
	// constraint inside Cast is what actually closes the race window.
	voted, err := s.votes.HasVoted(ctx, voterID, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to check prior vote: %w", err)
	}
	if voted {
		return nil, ErrAlreadyVoted
	}

	castCtx, cancel := context.WithTimeout(ctx, castTimeout)
	defer cancel()

	vote := &entity.Vote{
		VoterID:     voterID,
		ElectionID:  electionID,
		CandidateID: candidateID,
	}
	tally, err := s.votes.Cast(castCtx, vote)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateVote):
			// A concurrent writer got there first; to this caller that is
			// indistinguishable from having already voted.
			return nil, ErrAlreadyVoted
		case errors.Is(err, context.DeadlineExceeded):
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		default:
			return nil, fmt.Errorf("failed to cast vote: %w", err)
		}
	}

	s.afterCommit(voterID, election, candidate, tally)

	return &entity.VoteReceipt{
		CandidateID: candidateID,
		ElectionID:  electionID,
		VotedAt:     vote.VotedAt,
	}, nil
}

// afterCommit fires the decoupled side effects. Neither may delay or fail
// the already-committed vote, so the notification goes out on a background
// context and broadcast errors are only logged.
func (s *voteService) afterCommit(voterID string, election *entity.Election, candidate *entity.Candidate, tally *entity.TallyUpdate) {
	if s.notifier != nil {
		s.notifier.Notify(context.Background(), &entity.Notification{
			UserID:    voterID,
			Type:      entity.NotificationVote,
			Title:     "Voting Berhasil",
			Message:   fmt.Sprintf("Anda berhasil melakukan voting untuk %s", candidate.Name),
			RelatedID: election.ID,
		})
	}

	if s.broadcaster != nil {
		s.broadcaster.Publish(entity.TallyEvent{
			ElectionID:    election.ID,
			CandidateID:   candidate.ID,
			NewVoteCount:  tally.CandidateVotes,
			NewTotalVotes: tally.TotalVotes,
		})
	}

	slog.Info("vote recorded",
		"election_id", election.ID,
		"candidate_id", candidate.ID,
		"total_votes", tally.TotalVotes,
		"total_participants", tally.TotalParticipants)
}

// GetStats reads the denormalized tallies only; the ledger scan is reserved
// for reconciliation.
func (s *voteService) GetStats(ctx context.Context, electionID string) (*entity.ElectionStats, error) {
	election, err := s.elections.GetByID(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load election: %w", err)
	}
	if election == nil {
		return nil, ErrElectionNotFound
	}

	candidates, err := s.candidates.GetByElection(ctx, electionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	stats := &entity.ElectionStats{
		TotalVotes:        election.TotalVotes,
		TotalParticipants: election.TotalParticipants,
		Candidates:        make([]entity.CandidateStat, 0, len(candidates)),
	}
	for _, c := range candidates {
		stats.Candidates = append(stats.Candidates, entity.CandidateStat{
			ID:         c.ID,
			Name:       c.Name,
			Position:   c.Position,
			VoteCount:  c.VoteCount,
			Percentage: percentage(c.VoteCount, election.TotalVotes),
		})
	}
	return stats, nil
}

// percentage returns voteCount/totalVotes*100 rounded to two decimals, and 0
// for an election with no votes yet.
func percentage(voteCount, totalVotes int) float64 {
	if totalVotes == 0 {
		return 0
	}
	return math.Round(float64(voteCount)/float64(totalVotes)*10000) / 100
}

func (s *voteService) HasVoted(ctx context.Context, voterID, electionID string) (bool, error) {
	return s.votes.HasVoted(ctx, voterID, electionID)
}

func (s *voteService) VoterVotes(ctx context.Context, voterID string) ([]entity.Vote, error) {
	return s.votes.ListByVoter(ctx, voterID)
}

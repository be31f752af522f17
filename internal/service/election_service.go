package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/repository"
)

type ElectionService interface {
	List(ctx context.Context, status, electionType string) ([]entity.Election, error)
	// Get returns the election with its candidates loaded.
	Get(ctx context.Context, id string) (*entity.Election, error)
	Create(ctx context.Context, e *entity.Election) error
	Update(ctx context.Context, e *entity.Election) error
	UpdateStatus(ctx context.Context, id string, status entity.ElectionStatus) error
	Delete(ctx context.Context, id string) error
	// RebuildTallies recomputes the denormalized counters from the ledger.
	RebuildTallies(ctx context.Context, id string) (*entity.TallyUpdate, error)
}

type electionService struct {
	elections  repository.ElectionRepository
	candidates repository.CandidateRepository
	tallies    repository.TallyRepository
	notifier   Notifier
}

func NewElectionService(
	elections repository.ElectionRepository,
	candidates repository.CandidateRepository,
	tallies repository.TallyRepository,
	notifier Notifier,
) ElectionService {
	return &electionService{
		elections:  elections,
		candidates: candidates,
		tallies:    tallies,
		notifier:   notifier,
	}
}

func (s *electionService) List(ctx context.Context, status, electionType string) ([]entity.Election, error) {
	return s.elections.GetAll(ctx, status, electionType)
}

func (s *electionService) Get(ctx context.Context, id string) (*entity.Election, error) {
	election, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load election: %w", err)
	}
	if election == nil {
		return nil, ErrElectionNotFound
	}

	candidates, err := s.candidates.GetByElection(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}
	election.Candidates = candidates
	return election, nil
}

func (s *electionService) Create(ctx context.Context, e *entity.Election) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = entity.ElectionPending
	}
	if e.Type == "" {
		e.Type = "other"
	}

	if err := s.elections.Create(ctx, e); err != nil {
		return fmt.Errorf("failed to create election: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyAll(ctx, &entity.Notification{
			Type:      entity.NotificationNewElection,
			Title:     "Pemilihan Baru",
			Message:   fmt.Sprintf("Pemilihan baru telah dibuat: %s", e.Title),
			RelatedID: e.ID,
		})
	}

	return nil
}

func (s *electionService) Update(ctx context.Context, e *entity.Election) error {
	existing, err := s.elections.GetByID(ctx, e.ID)
	if err != nil {
		return fmt.Errorf("failed to load election: %w", err)
	}
	if existing == nil {
		return ErrElectionNotFound
	}
	return s.elections.Update(ctx, e)
}

// UpdateStatus moves the election through its admin-driven lifecycle.
// Transitions only go forward: pending -> active -> completed.
func (s *electionService) UpdateStatus(ctx context.Context, id string, status entity.ElectionStatus) error {
	existing, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load election: %w", err)
	}
	if existing == nil {
		return ErrElectionNotFound
	}
	if !validTransition(existing.Status, status) {
		return ErrInvalidStatusTransition
	}
	return s.elections.UpdateStatus(ctx, id, status)
}

func validTransition(from, to entity.ElectionStatus) bool {
	switch from {
	case entity.ElectionPending:
		return to == entity.ElectionActive
	case entity.ElectionActive:
		return to == entity.ElectionCompleted
	default:
		return false
	}
}

func (s *electionService) Delete(ctx context.Context, id string) error {
	existing, err := s.elections.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load election: %w", err)
	}
	if existing == nil {
		return ErrElectionNotFound
	}
	// Candidates and ledger rows follow via cascade.
	return s.elections.Delete(ctx, id)
}

func (s *electionService) RebuildTallies(ctx context.Context, id string) (*entity.TallyUpdate, error) {
	update, err := s.tallies.Rebuild(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrElectionNotFound
		}
		return nil, fmt.Errorf("failed to rebuild tallies: %w", err)
	}
	return update, nil
}

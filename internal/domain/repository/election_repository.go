package repository

import (
	"context"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
)

type ElectionRepository interface {
	// GetAll filters by status and/or type when non-empty.
	GetAll(ctx context.Context, status, electionType string) ([]entity.Election, error)
	GetByID(ctx context.Context, id string) (*entity.Election, error)
	Create(ctx context.Context, e *entity.Election) error
	Update(ctx context.Context, e *entity.Election) error
	UpdateStatus(ctx context.Context, id string, status entity.ElectionStatus) error
	// Delete removes the election; candidates and ledger rows go with it
	// via ON DELETE CASCADE.
	Delete(ctx context.Context, id string) error
}

type CandidateRepository interface {
	GetByElection(ctx context.Context, electionID string) ([]entity.Candidate, error)
	GetByID(ctx context.Context, id string) (*entity.Candidate, error)
	Create(ctx context.Context, c *entity.Candidate) error
	Update(ctx context.Context, c *entity.Candidate) error
	Delete(ctx context.Context, id string) error
}

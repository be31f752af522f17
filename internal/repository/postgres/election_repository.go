package postgres

import (
	"context"
	"database/sql"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/repository"
)

// ========================================
// Election Repository
// ========================================
type electionRepo struct{ db *sql.DB }

func NewElectionRepository(db *sql.DB) repository.ElectionRepository {
	return &electionRepo{db: db}
}

const electionColumns = `id, title, COALESCE(description,''), type, start_date, end_date, status, is_public, total_votes, total_participants, created_by, created_at, updated_at`

func scanElection(row interface{ Scan(...interface{}) error }, e *entity.Election) error {
	return row.Scan(&e.ID, &e.Title, &e.Description, &e.Type, &e.StartDate, &e.EndDate,
		&e.Status, &e.IsPublic, &e.TotalVotes, &e.TotalParticipants, &e.CreatedBy,
		&e.CreatedAt, &e.UpdatedAt)
}

func (r *electionRepo) GetAll(ctx context.Context, status, electionType string) ([]entity.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections
		WHERE ($1 = '' OR status = $1) AND ($2 = '' OR type = $2)
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, status, electionType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []entity.Election
	for rows.Next() {
		var e entity.Election
		if err := scanElection(rows, &e); err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func (r *electionRepo) GetByID(ctx context.Context, id string) (*entity.Election, error) {
	query := `SELECT ` + electionColumns + ` FROM elections WHERE id = $1`
	e := &entity.Election{}
	err := scanElection(r.db.QueryRowContext(ctx, query, id), e)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

func (r *electionRepo) Create(ctx context.Context, e *entity.Election) error {
	query := `INSERT INTO elections (id, title, description, type, start_date, end_date, status, is_public, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, e.ID, e.Title, e.Description, e.Type,
		e.StartDate, e.EndDate, e.Status, e.IsPublic, e.CreatedBy).Scan(&e.CreatedAt, &e.UpdatedAt)
}

func (r *electionRepo) Update(ctx context.Context, e *entity.Election) error {
	query := `UPDATE elections SET title=$1, description=$2, type=$3, start_date=$4, end_date=$5, is_public=$6, updated_at=NOW() WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, e.Title, e.Description, e.Type, e.StartDate, e.EndDate, e.IsPublic, e.ID)
	return err
}

func (r *electionRepo) UpdateStatus(ctx context.Context, id string, status entity.ElectionStatus) error {
	query := `UPDATE elections SET status=$1, updated_at=NOW() WHERE id=$2`
	_, err := r.db.ExecContext(ctx, query, status, id)
	return err
}

func (r *electionRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM elections WHERE id=$1`, id)
	return err
}

// ========================================
// Candidate Repository
// ========================================
type candidateRepo struct{ db *sql.DB }

func NewCandidateRepository(db *sql.DB) repository.CandidateRepository {
	return &candidateRepo{db: db}
}

const candidateColumns = `id, election_id, name, position, COALESCE(description,''), COALESCE(vision_mission,''), COALESCE(experience,''), COALESCE(photo_url,''), vote_count, status, COALESCE(created_by,''), created_at, updated_at`

func scanCandidate(row interface{ Scan(...interface{}) error }, c *entity.Candidate) error {
	return row.Scan(&c.ID, &c.ElectionID, &c.Name, &c.Position, &c.Description,
		&c.VisionMission, &c.Experience, &c.PhotoURL, &c.VoteCount, &c.Status,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
}

func (r *candidateRepo) GetByElection(ctx context.Context, electionID string) ([]entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE election_id = $1 ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query, electionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []entity.Candidate
	for rows.Next() {
		var c entity.Candidate
		if err := scanCandidate(rows, &c); err != nil {
			return nil, err
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

func (r *candidateRepo) GetByID(ctx context.Context, id string) (*entity.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	c := &entity.Candidate{}
	err := scanCandidate(r.db.QueryRowContext(ctx, query, id), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

func (r *candidateRepo) Create(ctx context.Context, c *entity.Candidate) error {
	query := `INSERT INTO candidates (id, election_id, name, position, description, vision_mission, experience, photo_url, status, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10) RETURNING created_at, updated_at`
	return r.db.QueryRowContext(ctx, query, c.ID, c.ElectionID, c.Name, c.Position,
		c.Description, c.VisionMission, c.Experience, c.PhotoURL, c.Status, c.CreatedBy).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *candidateRepo) Update(ctx context.Context, c *entity.Candidate) error {
	query := `UPDATE candidates SET name=$1, position=$2, description=$3, vision_mission=$4, experience=$5, photo_url=$6, status=$7, updated_at=NOW() WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Position, c.Description,
		c.VisionMission, c.Experience, c.PhotoURL, c.Status, c.ID)
	return err
}

func (r *candidateRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id=$1`, id)
	return err
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/testutil"
)

func TestElectionCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewElectionRepository(db)

	adminID := testutil.CreateTestUser(t, db, "Panitia")
	now := time.Now()
	election := &entity.Election{
		ID:          uuid.New().String(),
		Title:       "Pemilihan Ketua OSIS",
		Description: "Periode 2026/2027",
		Type:        "osis",
		StartDate:   now,
		EndDate:     now.Add(48 * time.Hour),
		Status:      entity.ElectionPending,
		IsPublic:    true,
		CreatedBy:   adminID,
	}

	if err := repo.Create(ctx, election); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if election.CreatedAt.IsZero() {
		t.Error("Create did not fill in created_at")
	}

	got, err := repo.GetByID(ctx, election.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got == nil || got.Title != election.Title || got.Status != entity.ElectionPending {
		t.Errorf("GetByID returned %+v", got)
	}

	got.Title = "Pemilihan Ketua OSIS (Revisi)"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := repo.UpdateStatus(ctx, election.ID, entity.ElectionActive); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	got, err = repo.GetByID(ctx, election.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID after update failed: %v", err)
	}
	if got.Title != "Pemilihan Ketua OSIS (Revisi)" || got.Status != entity.ElectionActive {
		t.Errorf("update not persisted: %+v", got)
	}

	if err := repo.Delete(ctx, election.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err = repo.GetByID(ctx, election.ID)
	if err != nil {
		t.Fatalf("GetByID after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("election still present after delete: %+v", got)
	}
}

func TestElectionGetAllFilters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewElectionRepository(db)

	testutil.CreateTestElection(t, db, "Aktif Satu", entity.ElectionActive)
	testutil.CreateTestElection(t, db, "Aktif Dua", entity.ElectionActive)
	testutil.CreateTestElection(t, db, "Menunggu", entity.ElectionPending)

	all, err := repo.GetAll(ctx, "", "")
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("GetAll returned %d elections, want 3", len(all))
	}

	active, err := repo.GetAll(ctx, string(entity.ElectionActive), "")
	if err != nil {
		t.Fatalf("GetAll(active) failed: %v", err)
	}
	if len(active) != 2 {
		t.Errorf("GetAll(active) returned %d elections, want 2", len(active))
	}
	for _, e := range active {
		if e.Status != entity.ElectionActive {
			t.Errorf("filter leaked election with status %s", e.Status)
		}
	}
}

func TestElectionDeleteCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	elections := NewElectionRepository(db)
	candidates := NewCandidateRepository(db)
	votes := NewVoteRepository(db)

	electionID := testutil.CreateTestElection(t, db, "Pemilihan Hapus", entity.ElectionActive)
	candidateID := testutil.CreateTestCandidate(t, db, electionID, "Budi Santoso")
	voterID := testutil.CreateTestUser(t, db, "Voter Satu")

	if _, err := votes.Cast(ctx, &entity.Vote{VoterID: voterID, ElectionID: electionID, CandidateID: candidateID}); err != nil {
		t.Fatalf("Cast failed: %v", err)
	}

	if err := elections.Delete(ctx, electionID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	remaining, err := candidates.GetByElection(ctx, electionID)
	if err != nil {
		t.Fatalf("GetByElection failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("%d candidates survived the cascade", len(remaining))
	}
	if got := testutil.LedgerCount(t, db, electionID); got != 0 {
		t.Errorf("%d ledger rows survived the cascade", got)
	}
}

func TestCandidateCRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewCandidateRepository(db)

	electionID := testutil.CreateTestElection(t, db, "Pemilihan Kandidat", entity.ElectionPending)
	candidate := &entity.Candidate{
		ID:            uuid.New().String(),
		ElectionID:    electionID,
		Name:          "Budi Santoso",
		Position:      "Ketua",
		VisionMission: "Transparansi untuk semua",
		Status:        entity.CandidateActive,
	}

	if err := repo.Create(ctx, candidate); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, candidate.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Budi Santoso" || got.VisionMission != "Transparansi untuk semua" {
		t.Errorf("GetByID returned %+v", got)
	}

	got.Experience = "Ketua kelas dua periode"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, err = repo.GetByID(ctx, candidate.ID)
	if err != nil || got == nil || got.Experience != "Ketua kelas dua periode" {
		t.Fatalf("update not persisted: %+v (err %v)", got, err)
	}

	listed, err := repo.GetByElection(ctx, electionID)
	if err != nil {
		t.Fatalf("GetByElection failed: %v", err)
	}
	if len(listed) != 1 {
		t.Errorf("GetByElection returned %d candidates, want 1", len(listed))
	}

	if err := repo.Delete(ctx, candidate.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	got, err = repo.GetByID(ctx, candidate.ID)
	if err != nil {
		t.Fatalf("GetByID after delete failed: %v", err)
	}
	if got != nil {
		t.Errorf("candidate still present after delete: %+v", got)
	}
}

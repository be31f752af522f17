package postgres

import (
	"context"
	"testing"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/testutil"
)

func TestNotificationLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)

	userID := testutil.CreateTestUser(t, db, "Voter Satu")

	n := &entity.Notification{
		UserID:  userID,
		Type:    entity.NotificationVote,
		Title:   "Voting Berhasil",
		Message: "Anda berhasil melakukan voting untuk Budi Santoso",
	}
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if n.ID == 0 || n.CreatedAt.IsZero() {
		t.Errorf("Create did not fill in row fields: %+v", n)
	}

	count, err := repo.UnreadCount(ctx, userID)
	if err != nil || count != 1 {
		t.Fatalf("UnreadCount = (%d, %v), want (1, nil)", count, err)
	}

	if err := repo.MarkRead(ctx, n.ID, userID); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	count, err = repo.UnreadCount(ctx, userID)
	if err != nil || count != 0 {
		t.Fatalf("UnreadCount after MarkRead = (%d, %v), want (0, nil)", count, err)
	}

	listed, err := repo.ListByUser(ctx, userID, 10)
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(listed) != 1 || !listed[0].IsRead {
		t.Errorf("ListByUser returned %+v", listed)
	}
}

func TestMarkReadScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := NewNotificationRepository(db)

	owner := testutil.CreateTestUser(t, db, "Pemilik")
	intruder := testutil.CreateTestUser(t, db, "Penyusup")

	n := &entity.Notification{UserID: owner, Type: entity.NotificationSystem, Title: "Info", Message: "Halo"}
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Another user marking it read is a silent no-op.
	if err := repo.MarkRead(ctx, n.ID, intruder); err != nil {
		t.Fatalf("MarkRead failed: %v", err)
	}
	count, err := repo.UnreadCount(ctx, owner)
	if err != nil || count != 1 {
		t.Fatalf("UnreadCount = (%d, %v), want (1, nil)", count, err)
	}
}

func TestCreateBatchFansOut(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	notifications := NewNotificationRepository(db)
	users := NewUserRepository(db)

	ids := []string{
		testutil.CreateTestUser(t, db, "Voter Satu"),
		testutil.CreateTestUser(t, db, "Voter Dua"),
		testutil.CreateTestUser(t, db, "Voter Tiga"),
	}

	template := &entity.Notification{
		Type:      entity.NotificationNewElection,
		Title:     "Pemilihan Baru",
		Message:   "Pemilihan baru telah dibuat: Pemilihan Ketua OSIS",
		RelatedID: "E1",
	}
	if err := notifications.CreateBatch(ctx, ids, template); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	for _, id := range ids {
		count, err := notifications.UnreadCount(ctx, id)
		if err != nil || count != 1 {
			t.Errorf("UnreadCount(%s) = (%d, %v), want (1, nil)", id, count, err)
		}
	}

	// Batch against no recipients is a no-op.
	if err := notifications.CreateBatch(ctx, nil, template); err != nil {
		t.Fatalf("CreateBatch with empty list failed: %v", err)
	}

	active, err := users.ListActiveIDs(ctx)
	if err != nil {
		t.Fatalf("ListActiveIDs failed: %v", err)
	}
	if len(active) != len(ids) {
		t.Errorf("ListActiveIDs returned %d users, want %d", len(active), len(ids))
	}
}

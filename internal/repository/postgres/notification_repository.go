package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/repository"
)

// ========================================
// Notification Repository
// ========================================
type notificationRepo struct{ db *sql.DB }

func NewNotificationRepository(db *sql.DB) repository.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `INSERT INTO notifications (user_id, type, title, message, related_id)
		VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query, n.UserID, n.Type, n.Title, n.Message, n.RelatedID).
		Scan(&n.ID, &n.CreatedAt)
}

func (r *notificationRepo) CreateBatch(ctx context.Context, userIDs []string, template *entity.Notification) error {
	if len(userIDs) == 0 {
		return nil
	}
	query := `INSERT INTO notifications (user_id, type, title, message, related_id)
		SELECT unnest($1::text[]), $2, $3, $4, $5`
	_, err := r.db.ExecContext(ctx, query, pq.Array(userIDs),
		template.Type, template.Title, template.Message, template.RelatedID)
	return err
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT id, user_id, type, title, message, COALESCE(related_id,''), is_read, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var results []entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.RelatedID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		results = append(results, n)
	}
	return results, rows.Err()
}

func (r *notificationRepo) MarkRead(ctx context.Context, id int64, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *notificationRepo) UnreadCount(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&n)
	return n, err
}

// ========================================
// User Repository
// ========================================
type userRepo struct{ db *sql.DB }

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT id, full_name, email, role, is_active, created_at FROM users WHERE id = $1`
	u := &entity.User{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.FullName, &u.Email, &u.Role, &u.IsActive, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

func (r *userRepo) ListActiveIDs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM users WHERE is_active = TRUE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

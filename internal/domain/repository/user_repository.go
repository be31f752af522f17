package repository

import (
	"context"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// ListActiveIDs feeds notification fan-out when a new election opens.
	ListActiveIDs(ctx context.Context) ([]string, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// CreateBatch inserts one notification per user ID with the shared
	// type/title/message/related fields of the template.
	CreateBatch(ctx context.Context, userIDs []string, template *entity.Notification) error
	ListByUser(ctx context.Context, userID string, limit int) ([]entity.Notification, error)
	MarkRead(ctx context.Context, id int64, userID string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}

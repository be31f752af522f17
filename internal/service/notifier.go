package service

import (
	"context"
	"log/slog"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/platform/queue"
)

// Notifier hands notifications to the async pipeline. Fire-and-forget: the
// calling operation has already succeeded and must stay successful even if
// no notification ever lands.
type Notifier interface {
	Notify(ctx context.Context, n *entity.Notification)
	// NotifyAll fans the template out to every active user.
	NotifyAll(ctx context.Context, template *entity.Notification)
}

// NotificationMessage is the wire format on the notifications queue. When
// Broadcast is set the consumer expands it to every active user and UserID
// is ignored.
type NotificationMessage struct {
	Broadcast bool                    `json:"broadcast"`
	UserID    string                  `json:"user_id,omitempty"`
	Type      entity.NotificationType `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	RelatedID string                  `json:"related_id,omitempty"`
}

type queueNotifier struct {
	publisher queue.Publisher
}

func NewQueueNotifier(publisher queue.Publisher) Notifier {
	return &queueNotifier{publisher: publisher}
}

func (q *queueNotifier) Notify(ctx context.Context, n *entity.Notification) {
	q.publish(NotificationMessage{
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		RelatedID: n.RelatedID,
	})
}

func (q *queueNotifier) NotifyAll(ctx context.Context, template *entity.Notification) {
	q.publish(NotificationMessage{
		Broadcast: true,
		Type:      template.Type,
		Title:     template.Title,
		Message:   template.Message,
		RelatedID: template.RelatedID,
	})
}

func (q *queueNotifier) publish(msg NotificationMessage) {
	if q.publisher == nil {
		return
	}
	// Background context: the publish must not be cancelled by the HTTP
	// request it was triggered from.
	go func() {
		if err := q.publisher.Publish(context.Background(), queue.NotificationsQueue, msg); err != nil {
			slog.Error("failed to publish notification", "type", msg.Type, "error", err)
		}
	}()
}

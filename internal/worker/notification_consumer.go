package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ibasrj23/PilihJagoanMu/internal/domain/entity"
	"github.com/ibasrj23/PilihJagoanMu/internal/domain/repository"
	"github.com/ibasrj23/PilihJagoanMu/internal/platform/queue"
	"github.com/ibasrj23/PilihJagoanMu/internal/service"
)

// NotificationConsumer drains the notifications queue and persists each
// message through the notification repository. Keeping the writes here, off
// the request path, is what makes notification delivery fire-and-forget for
// the services that publish.
type NotificationConsumer struct {
	consumer      queue.Consumer
	notifications repository.NotificationRepository
	users         repository.UserRepository
}

func NewNotificationConsumer(
	consumer queue.Consumer,
	notifications repository.NotificationRepository,
	users repository.UserRepository,
) *NotificationConsumer {
	return &NotificationConsumer{
		consumer:      consumer,
		notifications: notifications,
		users:         users,
	}
}

func (c *NotificationConsumer) Start(ctx context.Context) error {
	slog.Info("starting notification consumer", "queue", queue.NotificationsQueue)

	handler := func(ctx context.Context, body []byte) error {
		var msg service.NotificationMessage
		if err := json.Unmarshal(body, &msg); err != nil {
			return fmt.Errorf("failed to unmarshal notification: %w", err)
		}

		template := &entity.Notification{
			UserID:    msg.UserID,
			Type:      msg.Type,
			Title:     msg.Title,
			Message:   msg.Message,
			RelatedID: msg.RelatedID,
		}

		if msg.Broadcast {
			userIDs, err := c.users.ListActiveIDs(ctx)
			if err != nil {
				return fmt.Errorf("failed to list recipients: %w", err)
			}
			if err := c.notifications.CreateBatch(ctx, userIDs, template); err != nil {
				return fmt.Errorf("failed to fan out notification: %w", err)
			}
			slog.Info("notification fanned out", "type", msg.Type, "recipients", len(userIDs))
			return nil
		}

		if err := c.notifications.Create(ctx, template); err != nil {
			return fmt.Errorf("failed to store notification for %s: %w", msg.UserID, err)
		}
		return nil
	}

	return c.consumer.Consume(ctx, queue.NotificationsQueue, handler)
}

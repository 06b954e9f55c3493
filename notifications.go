package carenest

import (
	"context"

	"github.com/carenest/carenest-go/internal/api"
	"github.com/carenest/carenest-go/internal/syncqueue"
)

// notificationQueueKey serializes all notification writes on one FIFO lane
// so a mark-all never races ahead of an earlier single mark.
const notificationQueueKey = "notifications"

// Notifications lists the current user's notifications.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	return api.Notifications(ctx, c.http, c.baseURL)
}

// MarkNotificationRead queues a read-flag update for one notification.
func (c *Client) MarkNotificationRead(ctx context.Context, id int64) (*EnqueueAck, error) {
	job := syncqueue.JobFunc(func(jobCtx context.Context) error {
		return api.MarkNotificationRead(jobCtx, c.http, c.baseURL, id)
	})
	return c.submit(ctx, notificationQueueKey, job)
}

// MarkAllNotificationsRead queues a read-flag update for every unread
// notification.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (*EnqueueAck, error) {
	job := syncqueue.JobFunc(func(jobCtx context.Context) error {
		return api.MarkAllNotificationsRead(jobCtx, c.http, c.baseURL)
	})
	return c.submit(ctx, notificationQueueKey, job)
}

package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/carenest/carenest-go/internal/types"
)

// Notifications lists the current user's notifications.
func Notifications(ctx context.Context, httpClient *http.Client, baseURL string) ([]types.Notification, error) {
	var ns []types.Notification
	url := fmt.Sprintf("%s/api/profiles/notifications/", baseURL)
	if err := do(ctx, httpClient, http.MethodGet, url, nil, &ns); err != nil {
		return nil, err
	}
	return ns, nil
}

// MarkNotificationRead flags a single notification as read.
func MarkNotificationRead(ctx context.Context, httpClient *http.Client, baseURL string, id int64) error {
	if err := types.ValidateIDPresent(id, "notification id"); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/api/profiles/notifications/%d/", baseURL, id)
	body := map[string]bool{"is_read": true}
	return do(ctx, httpClient, http.MethodPatch, url, body, nil)
}

// MarkAllNotificationsRead flags every unread notification as read.
func MarkAllNotificationsRead(ctx context.Context, httpClient *http.Client, baseURL string) error {
	url := fmt.Sprintf("%s/api/profiles/notifications/mark_all_read/", baseURL)
	return do(ctx, httpClient, http.MethodPost, url, nil, nil)
}

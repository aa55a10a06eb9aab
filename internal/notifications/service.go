// Package notifications fetches the store's notification feed and keeps
// the unread count fresh while the main screen is mounted.
package notifications

import (
	"context"
	"fmt"

	"github.com/angelmondragon/sallaty-client/internal/gateway"
	"github.com/angelmondragon/sallaty-client/pkg/logger"
	"github.com/angelmondragon/sallaty-client/pkg/models"
)

type notificationGateway interface {
	ListNotifications(ctx context.Context, q gateway.ListQuery) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID int64) error
	UnreadCount(ctx context.Context) (int, error)
}

// Service exposes the notification operations.
type Service struct {
	gw   notificationGateway
	logg *logger.Logger
}

// NewService wires the notification operations.
func NewService(gw notificationGateway, logg *logger.Logger) (*Service, error) {
	if gw == nil {
		return nil, fmt.Errorf("notification gateway is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{gw: gw, logg: logg}, nil
}

// List fetches the full feed; the result replaces whatever the caller
// held before, with no merging.
func (s *Service) List(ctx context.Context) ([]models.Notification, error) {
	return s.gw.ListNotifications(ctx, gateway.ListQuery{})
}

// MarkRead flips one notification to read on the server and then
// refetches the full feed instead of flipping the flag locally, so the
// list and the unread count stay consistent with the server's view at
// the cost of one extra round trip.
func (s *Service) MarkRead(ctx context.Context, notificationID int64) ([]models.Notification, error) {
	if err := s.gw.MarkNotificationRead(ctx, notificationID); err != nil {
		return nil, err
	}
	return s.List(ctx)
}

// UnreadCount fetches the number of unread notifications.
func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	return s.gw.UnreadCount(ctx)
}

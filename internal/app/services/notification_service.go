package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/arda/campushub/internal/app/models"
	"github.com/arda/campushub/internal/app/models/dto"
)

// NotificationStore is the slice of the notification repository the
// services need.
type NotificationStore interface {
	InsertBatch(ctx context.Context, userIDs []int64, notifType, title, message string) error
	ListByUser(ctx context.Context, userID int64, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// Notifier fans out in-app notifications. Delivery is best effort: fan-out
// is not transactional with the triggering state change, and failures are
// logged and swallowed so they never surface as request failures.
type Notifier interface {
	Notify(ctx context.Context, userIDs []int64, notifType, title, message string)
}

// NotificationService defines the interface for notification operations
type NotificationService interface {
	Notifier
	List(ctx context.Context, userID int64, limit int) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, notificationID, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) error
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	store  NotificationStore
	logger zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(store NotificationStore, logger zerolog.Logger) NotificationService {
	return &notificationServiceImpl{store: store, logger: logger}
}

// Notify writes one notification per recipient, best effort
func (s *notificationServiceImpl) Notify(ctx context.Context, userIDs []int64, notifType, title, message string) {
	if len(userIDs) == 0 {
		return
	}
	if err := s.store.InsertBatch(ctx, userIDs, notifType, title, message); err != nil {
		s.logger.Error().Err(err).
			Str("type", notifType).
			Int("recipients", len(userIDs)).
			Msg("Notification fan-out failed")
	}
}

// List retrieves a user's notifications together with the unread count
func (s *notificationServiceImpl) List(ctx context.Context, userID int64, limit int) (*dto.NotificationListResponse, error) {
	notifications, err := s.store.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.store.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, dto.ToNotificationResponse(&notifications[i]))
	}
	return &dto.NotificationListResponse{Notifications: responses, UnreadCount: unread}, nil
}

// MarkRead marks one notification read for its owner
func (s *notificationServiceImpl) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.store.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks all of a user's notifications read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID int64) error {
	return s.store.MarkAllRead(ctx, userID)
}

package services

import (
	"errors"
	"fmt"

	"retail_backend/internal/models"
	"retail_backend/internal/repositories"
)

// NotificationService exposes low stock alerts for the admin dashboard.
type NotificationService interface {
	List(onlyUnread bool) ([]models.Notification, error)
	MarkRead(id int64) error
	LowStock() ([]models.LowStockEntry, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	db               repositories.SQLExecutor
}

// NewNotificationService creates a new instance of NotificationService.
func NewNotificationService(nr repositories.NotificationRepository, db repositories.SQLExecutor) NotificationService {
	return &notificationService{notificationRepo: nr, db: db}
}

func (s *notificationService) List(onlyUnread bool) ([]models.Notification, error) {
	return s.notificationRepo.List(onlyUnread)
}

func (s *notificationService) MarkRead(id int64) error {
	if err := s.notificationRepo.MarkRead(s.db, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// LowStock lists every active product whose quantity at any location fell
// below its per-product minimum.
func (s *notificationService) LowStock() ([]models.LowStockEntry, error) {
	return s.notificationRepo.ListLowStock()
}

package services

import (
	"errors"
	"fmt"

	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/repository"
	"gorm.io/gorm"
)

var ErrAlertNotFound = errors.New("alert not found")

// AlertService provides business logic for alert operations.
type AlertService struct {
	alertRepo repository.AlertRepository
}

// NewAlertService creates a new AlertService.
func NewAlertService(alertRepo repository.AlertRepository) *AlertService {
	return &AlertService{
		alertRepo: alertRepo,
	}
}

// GetAlert retrieves an alert by ID.
func (s *AlertService) GetAlert(id uint64) (*models.Alert, error) {
	alert, err := s.alertRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}
	return alert, nil
}

// ListAlerts retrieves alerts visible to the given organizations.
func (s *AlertService) ListAlerts(filter repository.AlertFilter) ([]models.Alert, int64, error) {
	alerts, total, err := s.alertRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, total, nil
}

// MarkAlertRead marks an alert as read. Marking an already-read alert
// succeeds and leaves the same end state.
func (s *AlertService) MarkAlertRead(id uint64) (*models.Alert, error) {
	alert, err := s.alertRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAlertNotFound
		}
		return nil, fmt.Errorf("failed to find alert: %w", err)
	}

	if !alert.Read {
		if err := s.alertRepo.MarkRead(id); err != nil {
			return nil, fmt.Errorf("failed to mark alert read: %w", err)
		}
		alert.Read = true
	}

	return alert, nil
}

// DeleteAlert removes an alert.
func (s *AlertService) DeleteAlert(id uint64) error {
	if _, err := s.alertRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAlertNotFound
		}
		return fmt.Errorf("failed to find alert: %w", err)
	}

	if err := s.alertRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete alert: %w", err)
	}

	return nil
}

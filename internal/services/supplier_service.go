package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supplychainlens/monitoring-api/internal/models"
	"github.com/supplychainlens/monitoring-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrSupplierNotFound    = errors.New("supplier not found")
	ErrInvalidSupplierName = errors.New("supplier name cannot be empty")
)

// SupplierService provides business logic for supplier operations.
type SupplierService struct {
	supplierRepo repository.SupplierRepository
}

// NewSupplierService creates a new SupplierService.
func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
	}
}

// CreateSupplierInput represents parameters to register a supplier.
type CreateSupplierInput struct {
	OrganizationID uint64
	Name           string
	Country        string
	Industry       string
	Address        string
	Latitude       *float64
	Longitude      *float64
}

// CreateSupplier registers a supplier under the given organization.
func (s *SupplierService) CreateSupplier(input CreateSupplierInput) (*models.Supplier, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidSupplierName
	}

	supplier := &models.Supplier{
		OrganizationID: input.OrganizationID,
		Name:           input.Name,
		Country:        input.Country,
		Industry:       input.Industry,
		Address:        input.Address,
		Latitude:       input.Latitude,
		Longitude:      input.Longitude,
		Status:         models.SupplierStatusActive,
	}

	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID.
func (s *SupplierService) GetSupplier(id uint64, preload ...string) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id, preload...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return supplier, nil
}

// ListSuppliers retrieves suppliers visible to the given organizations.
func (s *SupplierService) ListSuppliers(filter repository.SupplierFilter) ([]models.Supplier, int64, error) {
	suppliers, total, err := s.supplierRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, total, nil
}

// UpdateSupplierInput holds mutable supplier fields.
type UpdateSupplierInput struct {
	Name      *string
	Country   *string
	Industry  *string
	Address   *string
	Latitude  *float64
	Longitude *float64
	Status    *models.SupplierStatus
}

// UpdateSupplier applies the given changes to a supplier.
func (s *SupplierService) UpdateSupplier(id uint64, input UpdateSupplierInput) (*models.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSupplierNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidSupplierName
		}
		supplier.Name = *input.Name
	}
	if input.Country != nil {
		supplier.Country = *input.Country
	}
	if input.Industry != nil {
		supplier.Industry = *input.Industry
	}
	if input.Address != nil {
		supplier.Address = *input.Address
	}
	if input.Latitude != nil {
		supplier.Latitude = input.Latitude
	}
	if input.Longitude != nil {
		supplier.Longitude = input.Longitude
	}
	if input.Status != nil {
		supplier.Status = *input.Status
	}

	if err := s.supplierRepo.Update(supplier); err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}

	return supplier, nil
}

// DeleteSupplier removes a supplier and its monitoring zones.
func (s *SupplierService) DeleteSupplier(id uint64) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSupplierNotFound
		}
		return fmt.Errorf("failed to find supplier: %w", err)
	}

	if err := s.supplierRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	return nil
}

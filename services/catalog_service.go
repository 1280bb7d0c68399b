package services

import (
	"errors"
	"fmt"
	"strings"

	"rental-backend/models"
	"rental-backend/utils"

	"gorm.io/gorm"
)

// CatalogService manages the predefined service catalog (cleaning, parking,
// metered utilities priced by tier tables, ...).
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

func (s *CatalogService) FindByID(ownerID, id uint) (*models.Service, error) {
	var service models.Service
	if err := s.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return &service, nil
}

func (s *CatalogService) GetAll(ownerID uint) ([]models.Service, error) {
	var services []models.Service
	if err := s.DB.Where("owner_id = ?", ownerID).Order("name").Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *CatalogService) Create(ownerID uint, service *models.Service) error {
	service.OwnerID = ownerID
	if err := s.validate(service); err != nil {
		return err
	}

	code, err := utils.EnsureUniqueCode("SV", s.codeExists)
	if err != nil {
		return fmt.Errorf("failed to generate service code: %w", err)
	}
	service.Code = code

	if err := s.DB.Create(service).Error; err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (s *CatalogService) Update(ownerID, id uint, patch *models.Service) (*models.Service, error) {
	service, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	service.Name = patch.Name
	service.PricingType = patch.PricingType
	service.Price = patch.Price
	service.Unit = patch.Unit
	service.Tiers = patch.Tiers
	if err := s.validate(service); err != nil {
		return nil, err
	}
	if err := s.DB.Save(service).Error; err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}

func (s *CatalogService) Delete(ownerID, id uint) error {
	service, err := s.FindByID(ownerID, id)
	if err != nil {
		return err
	}
	if err := s.DB.Delete(service).Error; err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return nil
}

func (s *CatalogService) validate(service *models.Service) error {
	service.Name = strings.TrimSpace(service.Name)
	if service.Name == "" {
		return ErrServiceNameRequired
	}
	switch service.PricingType {
	case models.ServicePricingFixed:
		if service.Price <= 0 {
			return ErrServicePriceInvalid
		}
		service.Tiers = nil
	case models.ServicePricingMetered:
		if err := ValidatePriceTiers(service.Tiers); err != nil {
			return err
		}
		service.Price = 0
	default:
		return ErrServicePricingTypeInvalid
	}
	return nil
}

func (s *CatalogService) codeExists(code string) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Service{}).Where("code = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

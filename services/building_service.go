package services

import (
	"errors"
	"fmt"
	"strings"

	"rental-backend/models"
	"rental-backend/utils"

	"gorm.io/gorm"
)

type BuildingService struct {
	DB *gorm.DB
}

func NewBuildingService(db *gorm.DB) *BuildingService {
	return &BuildingService{DB: db}
}

func (s *BuildingService) FindByID(ownerID, id uint) (*models.Building, error) {
	var building models.Building
	if err := s.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&building).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBuildingNotFound
		}
		return nil, fmt.Errorf("failed to find building: %w", err)
	}
	return &building, nil
}

func (s *BuildingService) GetAll(ownerID uint) ([]models.Building, error) {
	var buildings []models.Building
	if err := s.DB.Where("owner_id = ?", ownerID).Order("name").Find(&buildings).Error; err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	return buildings, nil
}

func (s *BuildingService) Create(ownerID uint, building *models.Building) error {
	building.OwnerID = ownerID
	building.Name = strings.TrimSpace(building.Name)
	if building.Name == "" {
		return ErrBuildingNameRequired
	}
	building.RoomCount = 0

	code, err := utils.EnsureUniqueCode("BD", s.codeExists)
	if err != nil {
		return fmt.Errorf("failed to generate building code: %w", err)
	}
	building.Code = code

	if err := s.DB.Create(building).Error; err != nil {
		return fmt.Errorf("failed to create building: %w", err)
	}
	return nil
}

func (s *BuildingService) Update(ownerID, id uint, name, address *string) (*models.Building, error) {
	building, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrBuildingNameRequired
		}
		building.Name = trimmed
	}
	if address != nil {
		building.Address = *address
	}
	if err := s.DB.Save(building).Error; err != nil {
		return nil, fmt.Errorf("failed to update building: %w", err)
	}
	return building, nil
}

// Delete refuses buildings that still have rooms.
func (s *BuildingService) Delete(ownerID, id uint) error {
	building, err := s.FindByID(ownerID, id)
	if err != nil {
		return err
	}
	var rooms int64
	if err := s.DB.Model(&models.Room{}).Where("building_id = ?", building.ID).Count(&rooms).Error; err != nil {
		return fmt.Errorf("failed to count rooms: %w", err)
	}
	if rooms > 0 {
		return ErrBuildingHasRooms
	}
	if err := s.DB.Delete(building).Error; err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}
	return nil
}

func (s *BuildingService) codeExists(code string) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Building{}).Where("code = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

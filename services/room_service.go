package services

import (
	"errors"
	"fmt"
	"strings"

	"rental-backend/models"
	"rental-backend/utils"

	"github.com/go-sql-driver/mysql"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomService owns room CRUD and the room side of contract status sync.
type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	// sqlite (tests) reports unique violations by message only
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "unique") || strings.Contains(lc, "duplicate")
}

func (s *RoomService) FindByID(ownerID, id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to find room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) GetAll(ownerID uint) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Preload("Building").Where("owner_id = ?", ownerID).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// Create validates the pricing template, assigns a room code and bumps the
// owning building's room counter.
func (s *RoomService) Create(ownerID uint, room *models.Room) error {
	room.OwnerID = ownerID
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return ErrRoomNumberRequired
	}

	if err := ValidatePricingConfiguration(room.Pricing.Data()); err != nil {
		return err
	}
	room.Pricing = datatypes.NewJSONType(room.Pricing.Data().Normalized())

	if room.BuildingID != nil {
		var building models.Building
		if err := s.DB.Where("id = ? AND owner_id = ?", *room.BuildingID, ownerID).First(&building).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBuildingNotFound
			}
			return fmt.Errorf("failed to check building: %w", err)
		}
	}

	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}

	code, err := utils.EnsureUniqueCode("RM", s.codeExists)
	if err != nil {
		return fmt.Errorf("failed to generate room code: %w", err)
	}
	room.RoomCode = code

	if err := s.DB.Create(room).Error; err != nil {
		if isDuplicateEntry(err) {
			return ErrRoomNumberTaken
		}
		return fmt.Errorf("failed to create room: %w", err)
	}

	if room.BuildingID != nil {
		if err := s.incrementBuildingCount(*room.BuildingID, 1); err != nil {
			return &ConsistencyError{Entity: "building", ID: *room.BuildingID, Err: err}
		}
	}
	return nil
}

// RoomPatch carries user-editable room fields; nil means leave unchanged.
type RoomPatch struct {
	RoomNumber   *string                      `json:"roomNumber,omitempty"`
	Floor        *string                      `json:"floor,omitempty"`
	MaxOccupancy *int                         `json:"maxOccupancy,omitempty"`
	Description  *string                      `json:"description,omitempty"`
	Status       *string                      `json:"status,omitempty"`
	Pricing      *models.PricingConfiguration `json:"pricing,omitempty"`
}

// Update applies a user-facing patch. OCCUPIED and DEPOSITED are owned by
// the contract lifecycle and cannot be set here.
func (s *RoomService) Update(ownerID, id uint, patch RoomPatch) (*models.Room, error) {
	room, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		next := *patch.Status
		if next != room.Status {
			if next == models.RoomStatusOccupied || next == models.RoomStatusDeposited {
				return nil, ErrRoomStatusLocked
			}
			if room.Status == models.RoomStatusOccupied || room.Status == models.RoomStatusDeposited {
				return nil, ErrRoomStatusLocked
			}
		}
		room.Status = next
	}
	if patch.RoomNumber != nil {
		trimmed := strings.TrimSpace(*patch.RoomNumber)
		if trimmed == "" {
			return nil, ErrRoomNumberRequired
		}
		room.RoomNumber = trimmed
	}
	if patch.Floor != nil {
		room.Floor = *patch.Floor
	}
	if patch.MaxOccupancy != nil {
		room.MaxOccupancy = *patch.MaxOccupancy
	}
	if patch.Description != nil {
		room.Description = *patch.Description
	}
	if patch.Pricing != nil {
		if err := ValidatePricingConfiguration(*patch.Pricing); err != nil {
			return nil, err
		}
		room.Pricing = datatypes.NewJSONType(patch.Pricing.Normalized())
	}

	if err := s.DB.Save(room).Error; err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrRoomNumberTaken
		}
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	return room, nil
}

// Delete refuses rooms currently held by a contract.
func (s *RoomService) Delete(ownerID, id uint) error {
	room, err := s.FindByID(ownerID, id)
	if err != nil {
		return err
	}
	if room.Status == models.RoomStatusOccupied || room.Status == models.RoomStatusDeposited {
		return ErrRoomNotDeletable
	}
	if err := s.DB.Delete(room).Error; err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	if room.BuildingID != nil {
		if err := s.incrementBuildingCount(*room.BuildingID, -1); err != nil {
			return &ConsistencyError{Entity: "building", ID: *room.BuildingID, Err: err}
		}
	}
	return nil
}

// SetStatus is the internal entry point used by the contract lifecycle.
func (s *RoomService) SetStatus(ownerID, id uint, status string) error {
	res := s.DB.Model(&models.Room{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to set room status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (s *RoomService) incrementBuildingCount(buildingID uint, delta int) error {
	return s.DB.Model(&models.Building{}).
		Where("id = ?", buildingID).
		UpdateColumn("room_count", gorm.Expr("room_count + ?", delta)).Error
}

func (s *RoomService) codeExists(code string) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Room{}).Where("room_code = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

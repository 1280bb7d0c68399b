package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room status values. While a contract controls the room, status is derived
// from the contract lifecycle and must not be set by hand.
const (
	RoomStatusAvailable   = "AVAILABLE"
	RoomStatusOccupied    = "OCCUPIED"
	RoomStatusMaintenance = "MAINTENANCE"
	RoomStatusDeposited   = "DEPOSITED"
)

type Room struct {
	gorm.Model

	OwnerID uint `json:"ownerId" gorm:"column:owner_id;uniqueIndex:idx_rooms_owner_number"`

	// Nullable so rooms can exist without a building assignment.
	BuildingID *uint `json:"buildingId,omitempty" gorm:"column:building_id;index"`

	RoomNumber string `json:"roomNumber" gorm:"column:room_number;type:varchar(50);uniqueIndex:idx_rooms_owner_number"`
	RoomCode   string `json:"roomCode"   gorm:"column:room_code;type:varchar(50)"`

	Status       string `json:"status" gorm:"size:32;default:AVAILABLE"`
	Floor        string `json:"floor" gorm:"type:varchar(10)"`
	MaxOccupancy int    `json:"maxOccupancy" gorm:"column:max_occupancy"`
	Description  string `json:"description" gorm:"type:text"`

	// Default pricing template. Copied (by value) into a new contract at
	// creation time; later edits to the room do not touch existing contracts.
	Pricing datatypes.JSONType[PricingConfiguration] `json:"pricing"`

	Building Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

package models

import (
	"gorm.io/gorm"
)

type Building struct {
	gorm.Model

	OwnerID uint `json:"ownerId" gorm:"index;column:owner_id"`

	Code    string `json:"code" gorm:"type:varchar(50)"`
	Name    string `json:"name"`
	Address string `json:"address" gorm:"type:text"`

	// Maintained by the room service on room create/delete.
	RoomCount int `json:"roomCount" gorm:"column:room_count;default:0"`
}

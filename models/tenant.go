package models

import (
	"time"

	"gorm.io/gorm"
)

// Tenant status values. DEPOSITED and RENTING are controlled by the contract
// lifecycle; user-facing updates may only move between ACTIVE and CLOSED.
const (
	TenantStatusActive    = "ACTIVE"
	TenantStatusDeposited = "DEPOSITED"
	TenantStatusRenting   = "RENTING"
	TenantStatusClosed    = "CLOSED"
)

type Tenant struct {
	gorm.Model

	OwnerID uint `json:"ownerId" gorm:"index;column:owner_id"`

	Code     string `json:"code" gorm:"type:varchar(50)"`
	FullName string `json:"fullName" gorm:"column:full_name"`
	Phone    string `json:"phone" gorm:"type:varchar(20)"`
	IDCard   string `json:"idCard" gorm:"column:id_card;type:varchar(30)"`
	Email    string `json:"email"`

	Status        string     `json:"status" gorm:"size:32;default:ACTIVE"`
	CurrentRoomID *uint      `json:"currentRoomId,omitempty" gorm:"column:current_room_id"`
	MoveInDate    *time.Time `json:"moveInDate,omitempty" gorm:"column:move_in_date"`
}

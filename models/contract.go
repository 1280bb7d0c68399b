package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Contract lifecycle states. Only DRAFT contracts are editable or deletable;
// only DRAFT contracts may be activated.
const (
	ContractStatusDraft      = "DRAFT"
	ContractStatusActive     = "ACTIVE"
	ContractStatusExpired    = "EXPIRED"
	ContractStatusTerminated = "TERMINATED"
)

type Contract struct {
	gorm.Model

	OwnerID uint `json:"ownerId" gorm:"index;column:owner_id"`

	Code string `json:"code" gorm:"type:varchar(64);uniqueIndex"`

	RoomID   uint `json:"roomId" gorm:"index;column:room_id"`
	TenantID uint `json:"tenantId" gorm:"index;column:tenant_id"`

	Status string `json:"status" gorm:"size:32;default:DRAFT"`

	// Frozen snapshot taken from the room template (or the request override)
	// at creation time. The room's own pricing may change afterwards without
	// affecting this contract.
	Pricing datatypes.JSONType[PricingConfiguration] `json:"pricing"`

	DepositAmount  float64                            `json:"depositAmount" gorm:"column:deposit_amount"`
	ServiceCharges datatypes.JSONSlice[ServiceCharge] `json:"serviceCharges"`

	StartDate *time.Time `json:"startDate" gorm:"column:start_date"`
	EndDate   *time.Time `json:"endDate,omitempty" gorm:"column:end_date"`

	Room   Room   `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
	Tenant Tenant `gorm:"foreignKey:TenantID;references:ID" json:"tenant,omitempty"`
}

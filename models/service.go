package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Catalog service pricing types. FIXED services have a single unit price;
// METERED services are billed from a tier table over consumed units.
const (
	ServicePricingFixed   = "FIXED"
	ServicePricingMetered = "METERED"
)

// Service is a predefined catalog entry (cleaning, parking, wifi, ...)
// that contract service charges may reference.
type Service struct {
	gorm.Model

	OwnerID uint `json:"ownerId" gorm:"index;column:owner_id"`

	Code        string  `json:"code" gorm:"type:varchar(50)"`
	Name        string  `json:"name"`
	PricingType string  `json:"pricingType" gorm:"column:pricing_type;size:32;default:FIXED"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit" gorm:"type:varchar(30)"`

	Tiers datatypes.JSONSlice[PriceTier] `json:"tiers,omitempty"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice status values, derived from paid/remaining amounts and the due
// date; never set directly.
const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPartial = "PARTIAL"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusOverdue = "OVERDUE"
)

type Invoice struct {
	gorm.Model

	OwnerID    uint `json:"ownerId" gorm:"index;column:owner_id"`
	ContractID uint `json:"contractId" gorm:"column:contract_id;uniqueIndex:idx_invoices_contract_period"`

	InvoiceNumber string `json:"invoiceNumber" gorm:"column:invoice_number;type:varchar(64);uniqueIndex"`

	// Billing period. One invoice per contract per period.
	Month int `json:"month" gorm:"uniqueIndex:idx_invoices_contract_period"`
	Year  int `json:"year" gorm:"uniqueIndex:idx_invoices_contract_period"`

	PreviousElectricIndex float64 `json:"previousElectricIndex" gorm:"column:previous_electric_index"`
	CurrentElectricIndex  float64 `json:"currentElectricIndex" gorm:"column:current_electric_index"`
	ElectricityUnitPrice  float64 `json:"electricityUnitPrice" gorm:"column:electricity_unit_price"`

	PreviousWaterIndex float64 `json:"previousWaterIndex" gorm:"column:previous_water_index"`
	CurrentWaterIndex  float64 `json:"currentWaterIndex" gorm:"column:current_water_index"`
	WaterUnitPrice     float64 `json:"waterUnitPrice" gorm:"column:water_unit_price"`

	RentAmount        float64 `json:"rentAmount" gorm:"column:rent_amount"`
	ElectricityAmount float64 `json:"electricityAmount" gorm:"column:electricity_amount"`
	WaterAmount       float64 `json:"waterAmount" gorm:"column:water_amount"`
	ServiceAmount     float64 `json:"serviceAmount" gorm:"column:service_amount"`

	ServiceCharges datatypes.JSONSlice[ServiceCharge] `json:"serviceCharges"`

	TotalAmount     float64 `json:"totalAmount" gorm:"column:total_amount"`
	PaidAmount      float64 `json:"paidAmount" gorm:"column:paid_amount"`
	RemainingAmount float64 `json:"remainingAmount" gorm:"column:remaining_amount"`

	Status   string     `json:"status" gorm:"size:32;default:PENDING"`
	DueDate  *time.Time `json:"dueDate,omitempty" gorm:"column:due_date"`
	PaidDate *time.Time `json:"paidDate,omitempty" gorm:"column:paid_date"`

	Contract Contract `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`
}

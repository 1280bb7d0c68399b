package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceService computes billing-period invoices from the contract's frozen
// pricing and the submitted utility indices, and tracks payment application.
type InvoiceService struct {
	DB        *gorm.DB
	Contracts *ContractService
	Clock     func() time.Time
}

func NewInvoiceService(db *gorm.DB, contracts *ContractService) *InvoiceService {
	return &InvoiceService{DB: db, Contracts: contracts, Clock: time.Now}
}

// InvoiceSpec is the create request. Previous indices default to the last
// invoice's current readings, falling back to the contract's initial
// indices; service charges default to the contract's recurring charges.
type InvoiceSpec struct {
	ContractID           uint    `json:"contractId"`
	Month                int     `json:"month"`
	Year                 int     `json:"year"`
	CurrentElectricIndex float64 `json:"currentElectricIndex"`
	CurrentWaterIndex    float64 `json:"currentWaterIndex"`

	PreviousElectricIndex *float64 `json:"previousElectricIndex,omitempty"`
	PreviousWaterIndex    *float64 `json:"previousWaterIndex,omitempty"`

	ServiceCharges *[]models.ServiceCharge `json:"serviceCharges,omitempty"`
	DueDate        *time.Time              `json:"dueDate,omitempty"`
}

func (s *InvoiceService) FindByID(ownerID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.DB.Preload("Contract").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	return &invoice, nil
}

func (s *InvoiceService) GetAll(ownerID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	if err := s.DB.Where("owner_id = ?", ownerID).
		Order("year DESC, month DESC").
		Find(&invoices).Error; err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

// Create computes and persists one billing-period invoice:
// usage = current index - previous index, per utility;
// total = rent + usage x unit price (both utilities) + service charges.
func (s *InvoiceService) Create(ownerID uint, spec InvoiceSpec) (*models.Invoice, error) {
	contract, err := s.Contracts.FindByID(ownerID, spec.ContractID)
	if err != nil {
		return nil, err
	}

	pricing := contract.Pricing.Data()
	if pricing.RoomType != models.RoomTypeLongTerm || pricing.LongTerm == nil {
		return nil, ErrContractNotLongTerm
	}
	longTerm := pricing.LongTerm

	if spec.Month < 1 || spec.Month > 12 || spec.Year < 2000 {
		return nil, ErrBillingPeriodInvalid
	}

	var existing int64
	if err := s.DB.Model(&models.Invoice{}).
		Where("contract_id = ? AND month = ? AND year = ?", contract.ID, spec.Month, spec.Year).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check billing period: %w", err)
	}
	if existing > 0 {
		return nil, ErrInvoicePeriodExists
	}

	prevElectric, prevWater, err := s.previousIndices(contract, longTerm, spec)
	if err != nil {
		return nil, err
	}
	if spec.CurrentElectricIndex < prevElectric || spec.CurrentWaterIndex < prevWater {
		return nil, ErrNegativeUsage
	}

	charges := s.recurringCharges(contract)
	if spec.ServiceCharges != nil {
		charges = *spec.ServiceCharges
	}
	serviceAmount := 0.0
	for i := range charges {
		charges[i].Name = strings.TrimSpace(charges[i].Name)
		if charges[i].Name == "" || charges[i].Amount < 0 {
			return nil, ErrServiceChargeInvalid
		}
		serviceAmount += charges[i].Amount
	}

	electricityAmount := (spec.CurrentElectricIndex - prevElectric) * longTerm.ElectricityUnitPrice
	waterAmount := (spec.CurrentWaterIndex - prevWater) * longTerm.WaterUnitPrice
	rentAmount := longTerm.RentPrice
	totalAmount := rentAmount + electricityAmount + waterAmount + serviceAmount

	dueDate := spec.DueDate
	if dueDate == nil {
		d := defaultDueDate(spec.Year, spec.Month, longTerm.PaymentDueDay)
		dueDate = &d
	}

	number, err := utils.EnsureUniqueCode("INV", s.numberExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	invoice := &models.Invoice{
		OwnerID:       ownerID,
		ContractID:    contract.ID,
		InvoiceNumber: number,
		Month:         spec.Month,
		Year:          spec.Year,

		PreviousElectricIndex: prevElectric,
		CurrentElectricIndex:  spec.CurrentElectricIndex,
		ElectricityUnitPrice:  longTerm.ElectricityUnitPrice,
		PreviousWaterIndex:    prevWater,
		CurrentWaterIndex:     spec.CurrentWaterIndex,
		WaterUnitPrice:        longTerm.WaterUnitPrice,

		RentAmount:        rentAmount,
		ElectricityAmount: electricityAmount,
		WaterAmount:       waterAmount,
		ServiceAmount:     serviceAmount,
		ServiceCharges:    charges,

		TotalAmount:     totalAmount,
		PaidAmount:      0,
		RemainingAmount: totalAmount,
		DueDate:         dueDate,
	}
	invoice.Status = deriveStatus(invoice, s.Clock())

	if err := s.DB.Omit(clause.Associations).Create(invoice).Error; err != nil {
		if isDuplicateEntry(err) {
			return nil, ErrInvoicePeriodExists
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, nil
}

// ApplyPayment records the cumulative paid amount and recomputes the
// remaining balance and status.
func (s *InvoiceService) ApplyPayment(ownerID, id uint, paidAmount float64, paidDate *time.Time) (*models.Invoice, error) {
	invoice, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if paidAmount < 0 {
		return nil, ErrPaymentAmountInvalid
	}

	invoice.PaidAmount = paidAmount
	invoice.RemainingAmount = invoice.TotalAmount - paidAmount
	if paidDate != nil {
		invoice.PaidDate = paidDate
	}
	invoice.Status = deriveStatus(invoice, s.Clock())

	if err := s.DB.Model(invoice).Select("paid_amount", "remaining_amount", "paid_date", "status").
		Updates(map[string]interface{}{
			"paid_amount":      invoice.PaidAmount,
			"remaining_amount": invoice.RemainingAmount,
			"paid_date":        invoice.PaidDate,
			"status":           invoice.Status,
		}).Error; err != nil {
		return nil, fmt.Errorf("failed to apply payment: %w", err)
	}
	return invoice, nil
}

// RefreshStatus re-derives the status against the current time, flipping
// unpaid invoices past their due date to OVERDUE.
func (s *InvoiceService) RefreshStatus(ownerID, id uint) (*models.Invoice, error) {
	invoice, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	next := deriveStatus(invoice, s.Clock())
	if next != invoice.Status {
		if err := s.DB.Model(invoice).Update("status", next).Error; err != nil {
			return nil, fmt.Errorf("failed to refresh invoice status: %w", err)
		}
		invoice.Status = next
	}
	return invoice, nil
}

// deriveStatus maintains the status invariant: PAID when nothing remains,
// OVERDUE when unpaid past the due date, PARTIAL when partly paid, else
// PENDING.
func deriveStatus(invoice *models.Invoice, now time.Time) string {
	switch {
	case invoice.RemainingAmount <= 0:
		return models.InvoiceStatusPaid
	case invoice.DueDate != nil && invoice.DueDate.Before(now):
		return models.InvoiceStatusOverdue
	case invoice.PaidAmount > 0 && invoice.PaidAmount < invoice.TotalAmount:
		return models.InvoiceStatusPartial
	default:
		return models.InvoiceStatusPending
	}
}

// previousIndices resolves the previous meter readings: explicit values win,
// then the latest earlier invoice's current readings, then the contract's
// initial indices.
func (s *InvoiceService) previousIndices(contract *models.Contract, longTerm *models.LongTermPricing, spec InvoiceSpec) (float64, float64, error) {
	prevElectric := longTerm.InitialElectricIndex
	prevWater := longTerm.InitialWaterIndex

	var last models.Invoice
	err := s.DB.Where("contract_id = ? AND (year < ? OR (year = ? AND month < ?))",
		contract.ID, spec.Year, spec.Year, spec.Month).
		Order("year DESC, month DESC").
		First(&last).Error
	if err == nil {
		prevElectric = last.CurrentElectricIndex
		prevWater = last.CurrentWaterIndex
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, 0, fmt.Errorf("failed to load previous invoice: %w", err)
	}

	if spec.PreviousElectricIndex != nil {
		prevElectric = *spec.PreviousElectricIndex
	}
	if spec.PreviousWaterIndex != nil {
		prevWater = *spec.PreviousWaterIndex
	}
	return prevElectric, prevWater, nil
}

func (s *InvoiceService) recurringCharges(contract *models.Contract) []models.ServiceCharge {
	out := make([]models.ServiceCharge, 0, len(contract.ServiceCharges))
	for _, charge := range contract.ServiceCharges {
		if charge.IsRecurring {
			out = append(out, charge)
		}
	}
	return out
}

// defaultDueDate is the contract's payment due day in the month after the
// billing period, clamped to that month's length.
func defaultDueDate(year, month, dueDay int) time.Time {
	next := time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := time.Date(next.Year(), next.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if dueDay < 1 {
		dueDay = 1
	}
	if dueDay > lastDay {
		dueDay = lastDay
	}
	return time.Date(next.Year(), next.Month(), dueDay, 0, 0, 0, 0, time.UTC)
}

func (s *InvoiceService) numberExists(code string) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Invoice{}).Unscoped().Where("invoice_number = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

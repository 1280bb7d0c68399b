package services

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"rental-backend/models"
	"rental-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContractService is the single authority for contract lifecycle transitions
// and the room/tenant status writes they require. Status fields on Room and
// Tenant are never written from anywhere else while a contract controls them.
type ContractService struct {
	DB      *gorm.DB
	Rooms   *RoomService
	Tenants *TenantService
	Catalog *CatalogService
	Clock   func() time.Time
}

func NewContractService(db *gorm.DB, rooms *RoomService, tenants *TenantService, catalog *CatalogService) *ContractService {
	return &ContractService{
		DB:      db,
		Rooms:   rooms,
		Tenants: tenants,
		Catalog: catalog,
		Clock:   time.Now,
	}
}

// NewTenantSpec is the inline payload for creating a tenant together with
// the contract.
type NewTenantSpec struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	IDCard   string `json:"idCard"`
	Email    string `json:"email"`
}

// ContractSpec is the create request. Exactly one of TenantID / NewTenant
// must be set. Pricing nil means "copy the room's current template".
type ContractSpec struct {
	RoomID         uint                         `json:"roomId"`
	TenantID       *uint                        `json:"tenantId,omitempty"`
	NewTenant      *NewTenantSpec               `json:"newTenant,omitempty"`
	Status         string                       `json:"status,omitempty"`
	Pricing        *models.PricingConfiguration `json:"pricing,omitempty"`
	DepositAmount  *float64                     `json:"depositAmount"`
	ServiceCharges []models.ServiceCharge       `json:"serviceCharges,omitempty"`
	StartDate      *time.Time                   `json:"startDate"`
	EndDate        *time.Time                   `json:"endDate,omitempty"`
}

// ContractPatch is the update request for DRAFT contracts. Room and tenant
// references are immutable and deliberately absent.
type ContractPatch struct {
	Status         *string                      `json:"status,omitempty"`
	Pricing        *models.PricingConfiguration `json:"pricing,omitempty"`
	DepositAmount  *float64                     `json:"depositAmount,omitempty"`
	ServiceCharges *[]models.ServiceCharge      `json:"serviceCharges,omitempty"`
	StartDate      *time.Time                   `json:"startDate,omitempty"`
	EndDate        *time.Time                   `json:"endDate,omitempty"`
}

func (s *ContractService) FindByID(ownerID, id uint) (*models.Contract, error) {
	var contract models.Contract
	if err := s.DB.Preload("Room").Preload("Tenant").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&contract).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, fmt.Errorf("failed to find contract: %w", err)
	}
	return &contract, nil
}

func (s *ContractService) GetAll(ownerID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	if err := s.DB.Preload("Room").Preload("Tenant").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&contracts).Error; err != nil {
		return nil, fmt.Errorf("failed to list contracts: %w", err)
	}
	return contracts, nil
}

// Create validates the full spec (checks run in a fixed order so the first
// failure is deterministic), persists the contract, then applies the status
// side effects for the resulting state. No write happens before validation
// completes.
func (s *ContractService) Create(ownerID uint, spec ContractSpec) (*models.Contract, error) {
	room, err := s.Rooms.FindByID(ownerID, spec.RoomID)
	if err != nil {
		return nil, err
	}
	// DEPOSITED/OCCUPIED rooms are held by another contract; MAINTENANCE
	// rooms are not rentable either. Only AVAILABLE rooms can be claimed.
	if room.Status != models.RoomStatusAvailable {
		return nil, ErrRoomNotAvailable
	}

	if (spec.TenantID == nil) == (spec.NewTenant == nil) {
		return nil, ErrTenantSpecInvalid
	}

	var tenant *models.Tenant
	if spec.TenantID != nil {
		tenant, err = s.Tenants.FindByID(ownerID, *spec.TenantID)
		if err != nil {
			return nil, err
		}
		if tenant.Status != models.TenantStatusActive {
			return nil, ErrTenantNotActive
		}
	} else {
		nt := spec.NewTenant
		if strings.TrimSpace(nt.FullName) == "" || strings.TrimSpace(nt.Phone) == "" || strings.TrimSpace(nt.IDCard) == "" {
			return nil, ErrIncompleteNewTenant
		}
	}

	pricing := room.Pricing.Data()
	if spec.Pricing != nil {
		pricing = *spec.Pricing
	}
	pricing = pricing.Normalized()
	if err := ValidatePricingConfiguration(pricing); err != nil {
		return nil, err
	}

	if spec.DepositAmount == nil || *spec.DepositAmount < 0 {
		return nil, ErrDepositInvalid
	}
	if spec.StartDate == nil {
		return nil, ErrStartDateRequired
	}
	if spec.EndDate != nil && spec.EndDate.Before(*spec.StartDate) {
		return nil, ErrEndBeforeStart
	}
	if err := s.validateServiceCharges(ownerID, spec.ServiceCharges); err != nil {
		return nil, err
	}

	status := spec.Status
	if status == "" {
		status = models.ContractStatusDraft
	}
	if status != models.ContractStatusDraft && status != models.ContractStatusActive {
		return nil, ErrContractStatusInvalid
	}

	// validation complete; writes start here. The inline tenant and the
	// contract row commit or roll back together.
	var contract *models.Contract
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if spec.NewTenant != nil {
			tenant = &models.Tenant{
				FullName: spec.NewTenant.FullName,
				Phone:    spec.NewTenant.Phone,
				IDCard:   spec.NewTenant.IDCard,
				Email:    spec.NewTenant.Email,
			}
			if err := s.Tenants.WithTx(tx).Create(ownerID, tenant); err != nil {
				return err
			}
		}

		code, err := utils.EnsureUniqueCode("CT", contractCodeTaken(tx))
		if err != nil {
			return fmt.Errorf("failed to generate contract code: %w", err)
		}

		contract = &models.Contract{
			OwnerID:        ownerID,
			Code:           code,
			RoomID:         room.ID,
			TenantID:       tenant.ID,
			Status:         status,
			Pricing:        datatypes.NewJSONType(pricing),
			DepositAmount:  *spec.DepositAmount,
			ServiceCharges: spec.ServiceCharges,
			StartDate:      spec.StartDate,
			EndDate:        spec.EndDate,
		}
		if err := tx.Omit(clause.Associations).Create(contract).Error; err != nil {
			return fmt.Errorf("failed to create contract: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	if status == models.ContractStatusActive {
		err = s.applyActivationEffects(ownerID, contract)
	} else {
		err = s.applyDraftEffects(ownerID, contract)
	}
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// Activate moves a DRAFT contract into force. Start and end dates are
// overwritten from the request; an omitted end date clears any previous one.
func (s *ContractService) Activate(ownerID, id uint, startDate time.Time, endDate *time.Time) (*models.Contract, error) {
	contract, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractStatusDraft {
		return nil, ErrContractNotDraft
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, ErrEndBeforeStart
	}

	contract.Status = models.ContractStatusActive
	contract.StartDate = &startDate
	contract.EndDate = endDate

	if err := s.DB.Model(contract).Select("status", "start_date", "end_date").Updates(map[string]interface{}{
		"status":     contract.Status,
		"start_date": contract.StartDate,
		"end_date":   contract.EndDate,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to activate contract: %w", err)
	}

	if err := s.applyActivationEffects(ownerID, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// Update patches a DRAFT contract. The merged result is re-validated with
// the same rules as Create, except the tenant-ACTIVE check: a draft's tenant
// is already DEPOSITED, so only its existence is re-checked.
func (s *ContractService) Update(ownerID, id uint, patch ContractPatch) (*models.Contract, error) {
	contract, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractStatusDraft {
		return nil, ErrOnlyDraftEditable
	}

	if _, err := s.Tenants.FindByID(ownerID, contract.TenantID); err != nil {
		return nil, err
	}

	pricing := contract.Pricing.Data()
	if patch.Pricing != nil {
		pricing = patch.Pricing.Normalized()
	}
	if err := ValidatePricingConfiguration(pricing); err != nil {
		return nil, err
	}

	deposit := contract.DepositAmount
	if patch.DepositAmount != nil {
		deposit = *patch.DepositAmount
	}
	if deposit < 0 {
		return nil, ErrDepositInvalid
	}

	startDate := contract.StartDate
	if patch.StartDate != nil {
		startDate = patch.StartDate
	}
	if startDate == nil {
		return nil, ErrStartDateRequired
	}
	endDate := contract.EndDate
	if patch.EndDate != nil {
		endDate = patch.EndDate
	}
	if endDate != nil && endDate.Before(*startDate) {
		return nil, ErrEndBeforeStart
	}

	charges := []models.ServiceCharge(contract.ServiceCharges)
	if patch.ServiceCharges != nil {
		charges = *patch.ServiceCharges
	}
	if err := s.validateServiceCharges(ownerID, charges); err != nil {
		return nil, err
	}

	status := contract.Status
	if patch.Status != nil {
		status = *patch.Status
		if status != models.ContractStatusDraft && status != models.ContractStatusActive {
			return nil, ErrContractStatusInvalid
		}
	}

	contract.Pricing = datatypes.NewJSONType(pricing)
	contract.DepositAmount = deposit
	contract.ServiceCharges = charges
	contract.StartDate = startDate
	contract.EndDate = endDate
	contract.Status = status

	if err := s.DB.Omit(clause.Associations).Save(contract).Error; err != nil {
		return nil, fmt.Errorf("failed to update contract: %w", err)
	}

	if status == models.ContractStatusActive {
		if err := s.applyActivationEffects(ownerID, contract); err != nil {
			return nil, err
		}
	}
	return contract, nil
}

// Remove releases the room and tenant, then soft-deletes the contract.
// Only drafts can be removed.
func (s *ContractService) Remove(ownerID, id uint) error {
	contract, err := s.FindByID(ownerID, id)
	if err != nil {
		return err
	}
	if contract.Status != models.ContractStatusDraft {
		return ErrOnlyDraftDeletable
	}

	if err := s.applyReleaseEffects(ownerID, contract); err != nil {
		return err
	}

	if err := s.DB.Delete(contract).Error; err != nil {
		return fmt.Errorf("failed to delete contract: %w", err)
	}
	return nil
}

// Terminate ends an ACTIVE contract early and releases the room and tenant.
func (s *ContractService) Terminate(ownerID, id uint) (*models.Contract, error) {
	contract, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}
	if contract.Status != models.ContractStatusActive {
		return nil, ErrContractNotActive
	}

	contract.Status = models.ContractStatusTerminated
	if err := s.DB.Model(contract).Update("status", contract.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to terminate contract: %w", err)
	}
	if err := s.applyReleaseEffects(ownerID, contract); err != nil {
		return nil, err
	}
	return contract, nil
}

// MarkExpired sweeps ACTIVE contracts whose end date has passed, moving them
// to EXPIRED and releasing their rooms and tenants. Returns how many
// contracts were expired.
func (s *ContractService) MarkExpired(ownerID uint) (int, error) {
	now := s.Clock()
	var contracts []models.Contract
	if err := s.DB.Where("owner_id = ? AND status = ? AND end_date IS NOT NULL AND end_date < ?",
		ownerID, models.ContractStatusActive, now).
		Find(&contracts).Error; err != nil {
		return 0, fmt.Errorf("failed to scan ended contracts: %w", err)
	}

	expired := 0
	for i := range contracts {
		contract := &contracts[i]
		if err := s.DB.Model(contract).Update("status", models.ContractStatusExpired).Error; err != nil {
			return expired, fmt.Errorf("failed to expire contract %d: %w", contract.ID, err)
		}
		contract.Status = models.ContractStatusExpired
		if err := s.applyReleaseEffects(ownerID, contract); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// validateServiceCharges checks each charge and, for charges referencing a
// catalog entry, pins name and amount to the catalog's current values so the
// client cannot submit a tampered price. Amount is the line total; for FIXED
// services it must equal price x quantity within the epsilon.
func (s *ContractService) validateServiceCharges(ownerID uint, charges []models.ServiceCharge) error {
	for i := range charges {
		charge := &charges[i]
		charge.Name = strings.TrimSpace(charge.Name)
		if charge.Name == "" || charge.Amount < 0 {
			return ErrServiceChargeInvalid
		}
		if charge.SourceServiceID == nil {
			continue
		}
		service, err := s.Catalog.FindByID(ownerID, *charge.SourceServiceID)
		if err != nil {
			return err
		}
		if !strings.EqualFold(charge.Name, service.Name) {
			return ErrServiceChargeMismatch
		}
		if service.PricingType == models.ServicePricingFixed {
			qty := charge.Quantity
			if qty < 1 {
				qty = 1
			}
			expected := service.Price * float64(qty)
			if math.Abs(charge.Amount-expected) > priceEpsilon {
				return ErrServiceChargeMismatch
			}
		}
	}
	return nil
}

// Side-effect application. The contract row is already written when these
// run; a failure here leaves contract and room/tenant out of sync, which is
// logged with the CONSISTENCY prefix and propagated as a ConsistencyError.
// Room and tenant writes carry no required relative order, but both must
// succeed for the operation to be considered successful.

func (s *ContractService) applyActivationEffects(ownerID uint, contract *models.Contract) error {
	if err := s.Rooms.SetStatus(ownerID, contract.RoomID, models.RoomStatusOccupied); err != nil {
		return s.consistencyFailure("room", contract.RoomID, contract.ID, err)
	}
	fields := map[string]interface{}{
		"status":          models.TenantStatusRenting,
		"current_room_id": contract.RoomID,
		"move_in_date":    contract.StartDate,
	}
	if err := s.Tenants.UpdateInternal(ownerID, contract.TenantID, fields); err != nil {
		return s.consistencyFailure("tenant", contract.TenantID, contract.ID, err)
	}
	return nil
}

func (s *ContractService) applyDraftEffects(ownerID uint, contract *models.Contract) error {
	if err := s.Rooms.SetStatus(ownerID, contract.RoomID, models.RoomStatusDeposited); err != nil {
		return s.consistencyFailure("room", contract.RoomID, contract.ID, err)
	}
	fields := map[string]interface{}{
		"status":          models.TenantStatusDeposited,
		"current_room_id": contract.RoomID,
	}
	if err := s.Tenants.UpdateInternal(ownerID, contract.TenantID, fields); err != nil {
		return s.consistencyFailure("tenant", contract.TenantID, contract.ID, err)
	}
	return nil
}

func (s *ContractService) applyReleaseEffects(ownerID uint, contract *models.Contract) error {
	if err := s.Rooms.SetStatus(ownerID, contract.RoomID, models.RoomStatusAvailable); err != nil {
		return s.consistencyFailure("room", contract.RoomID, contract.ID, err)
	}
	fields := map[string]interface{}{
		"status":          models.TenantStatusActive,
		"current_room_id": nil,
		"move_in_date":    nil,
	}
	if err := s.Tenants.UpdateInternal(ownerID, contract.TenantID, fields); err != nil {
		return s.consistencyFailure("tenant", contract.TenantID, contract.ID, err)
	}
	return nil
}

func (s *ContractService) consistencyFailure(entity string, entityID, contractID uint, err error) error {
	ce := &ConsistencyError{Entity: entity, ID: entityID, Err: err}
	log.Printf("CONSISTENCY: contract %d written but %s %d status update failed: %v", contractID, entity, entityID, err)
	return ce
}

func contractCodeTaken(db *gorm.DB) func(code string) (bool, error) {
	return func(code string) (bool, error) {
		var n int64
		if err := db.Model(&models.Contract{}).Unscoped().Where("code = ?", code).Count(&n).Error; err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

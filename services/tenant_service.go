package services

import (
	"errors"
	"fmt"
	"strings"

	"rental-backend/models"
	"rental-backend/utils"

	"gorm.io/gorm"
)

// TenantService owns tenant CRUD and the tenant side of contract status sync.
type TenantService struct {
	DB *gorm.DB
}

func NewTenantService(db *gorm.DB) *TenantService {
	return &TenantService{DB: db}
}

// WithTx returns a handle bound to the given transaction.
func (s *TenantService) WithTx(tx *gorm.DB) *TenantService {
	return &TenantService{DB: tx}
}

func (s *TenantService) FindByID(ownerID, id uint) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.DB.Where("id = ? AND owner_id = ?", id, ownerID).First(&tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return &tenant, nil
}

func (s *TenantService) GetAll(ownerID uint) ([]models.Tenant, error) {
	var tenants []models.Tenant
	if err := s.DB.Where("owner_id = ?", ownerID).Order("full_name").Find(&tenants).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	return tenants, nil
}

func (s *TenantService) Create(ownerID uint, tenant *models.Tenant) error {
	tenant.OwnerID = ownerID
	tenant.FullName = strings.TrimSpace(tenant.FullName)
	tenant.Phone = strings.TrimSpace(tenant.Phone)
	tenant.IDCard = strings.TrimSpace(tenant.IDCard)
	if tenant.FullName == "" || tenant.Phone == "" || tenant.IDCard == "" {
		return ErrIncompleteNewTenant
	}
	if tenant.Status == "" {
		tenant.Status = models.TenantStatusActive
	}

	code, err := utils.EnsureUniqueCode("TN", s.codeExists)
	if err != nil {
		return fmt.Errorf("failed to generate tenant code: %w", err)
	}
	tenant.Code = code

	if err := s.DB.Create(tenant).Error; err != nil {
		return fmt.Errorf("failed to create tenant: %w", err)
	}
	return nil
}

// TenantPatch carries user-editable tenant fields; nil means leave unchanged.
type TenantPatch struct {
	FullName *string `json:"fullName,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	IDCard   *string `json:"idCard,omitempty"`
	Email    *string `json:"email,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// Update applies a user-facing patch. RENTING and DEPOSITED belong to the
// contract lifecycle; setting them here is rejected. Lifecycle code goes
// through UpdateInternal instead.
func (s *TenantService) Update(ownerID, id uint, patch TenantPatch) (*models.Tenant, error) {
	tenant, err := s.FindByID(ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil && *patch.Status != tenant.Status {
		next := *patch.Status
		if next == models.TenantStatusRenting || next == models.TenantStatusDeposited {
			return nil, ErrTenantStatusLocked
		}
		if tenant.Status == models.TenantStatusRenting || tenant.Status == models.TenantStatusDeposited {
			return nil, ErrTenantStatusLocked
		}
		tenant.Status = next
	}
	if patch.FullName != nil {
		tenant.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Phone != nil {
		tenant.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.IDCard != nil {
		tenant.IDCard = strings.TrimSpace(*patch.IDCard)
	}
	if patch.Email != nil {
		tenant.Email = strings.TrimSpace(*patch.Email)
	}

	if err := s.DB.Save(tenant).Error; err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return tenant, nil
}

// UpdateInternal bypasses the status guard; only the contract lifecycle
// calls it.
func (s *TenantService) UpdateInternal(ownerID, id uint, fields map[string]interface{}) error {
	res := s.DB.Model(&models.Tenant{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("failed to update tenant: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTenantNotFound
	}
	return nil
}

// Delete refuses tenants still attached to a room.
func (s *TenantService) Delete(ownerID, id uint) error {
	tenant, err := s.FindByID(ownerID, id)
	if err != nil {
		return err
	}
	if tenant.CurrentRoomID != nil {
		return ErrTenantHasRoom
	}
	if err := s.DB.Delete(tenant).Error; err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	return nil
}

func (s *TenantService) codeExists(code string) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Tenant{}).Where("code = ?", code).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

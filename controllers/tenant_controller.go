package controllers

import (
	"net/http"

	"rental-backend/middleware"
	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type TenantController struct {
	Tenants *services.TenantService
}

func NewTenantController(tenants *services.TenantService) *TenantController {
	return &TenantController{Tenants: tenants}
}

func (tc *TenantController) GetTenants(c *gin.Context) {
	tenants, err := tc.Tenants.GetAll(middleware.OwnerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tenants)
}

func (tc *TenantController) GetTenant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	tenant, err := tc.Tenants.FindByID(middleware.OwnerID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tenant)
}

func (tc *TenantController) CreateTenant(c *gin.Context) {
	var tenant models.Tenant
	if err := c.ShouldBindJSON(&tenant); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	// status is derived; a fresh tenant always starts ACTIVE
	tenant.Status = models.TenantStatusActive
	tenant.CurrentRoomID = nil
	tenant.MoveInDate = nil

	if err := tc.Tenants.Create(middleware.OwnerID(c), &tenant); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, tenant)
}

func (tc *TenantController) UpdateTenant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var patch services.TenantPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	tenant, err := tc.Tenants.Update(middleware.OwnerID(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, tenant)
}

func (tc *TenantController) DeleteTenant(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := tc.Tenants.Delete(middleware.OwnerID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

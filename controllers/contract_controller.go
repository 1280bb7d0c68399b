package controllers

import (
	"net/http"
	"time"

	"rental-backend/middleware"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

type ContractController struct {
	Contracts *services.ContractService
}

func NewContractController(contracts *services.ContractService) *ContractController {
	return &ContractController{Contracts: contracts}
}

func (cc *ContractController) GetContracts(c *gin.Context) {
	contracts, err := cc.Contracts.GetAll(middleware.OwnerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contracts)
}

func (cc *ContractController) GetContract(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	contract, err := cc.Contracts.FindByID(middleware.OwnerID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contract)
}

func (cc *ContractController) CreateContract(c *gin.Context) {
	var spec services.ContractSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	contract, err := cc.Contracts.Create(middleware.OwnerID(c), spec)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, contract)
}

type activatePayload struct {
	StartDate time.Time  `json:"startDate" binding:"required"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

func (cc *ContractController) ActivateContract(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload activatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	contract, err := cc.Contracts.Activate(middleware.OwnerID(c), id, payload.StartDate, payload.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contract)
}

func (cc *ContractController) UpdateContract(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var patch services.ContractPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	contract, err := cc.Contracts.Update(middleware.OwnerID(c), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contract)
}

func (cc *ContractController) DeleteContract(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := cc.Contracts.Remove(middleware.OwnerID(c), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

func (cc *ContractController) TerminateContract(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	contract, err := cc.Contracts.Terminate(middleware.OwnerID(c), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, contract)
}

func (cc *ContractController) ExpireContracts(c *gin.Context) {
	expired, err := cc.Contracts.MarkExpired(middleware.OwnerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"expired": expired})
}

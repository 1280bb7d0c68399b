package controllers

import (
	"net/http"

	"rental-backend/models"
	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

// PricingController exposes the pure tier-table functions so the room and
// service configuration forms can validate against the same rules the
// contract path enforces.
type PricingController struct{}

func NewPricingController() *PricingController {
	return &PricingController{}
}

type tiersPayload struct {
	Tiers []models.PriceTier `json:"tiers"`
}

func (pc *PricingController) ValidateTiers(c *gin.Context) {
	var payload tiersPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	if err := services.ValidatePriceTiers(payload.Tiers); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"valid": true})
}

type evaluatePayload struct {
	Tiers       []models.PriceTier `json:"tiers"`
	UsageAmount float64            `json:"usageAmount"`
}

func (pc *PricingController) EvaluateTiers(c *gin.Context) {
	var payload evaluatePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErrorDetail(c, http.StatusBadRequest, "invalid request payload", err.Error())
		return
	}
	price, err := services.EvaluatePriceTiers(payload.Tiers, payload.UsageAmount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"price": price})
}

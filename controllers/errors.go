package controllers

import (
	"errors"
	"net/http"

	"rental-backend/services"
	"rental-backend/utils"

	"github.com/gin-gonic/gin"
)

var notFoundErrors = []error{
	services.ErrBuildingNotFound,
	services.ErrRoomNotFound,
	services.ErrTenantNotFound,
	services.ErrContractNotFound,
	services.ErrServiceNotFound,
	services.ErrInvoiceNotFound,
}

var conflictErrors = []error{
	services.ErrOnlyDraftEditable,
	services.ErrOnlyDraftDeletable,
	services.ErrContractNotDraft,
	services.ErrContractNotActive,
	services.ErrRoomNotAvailable,
	services.ErrRoomNotDeletable,
	services.ErrRoomStatusLocked,
	services.ErrRoomNumberTaken,
	services.ErrTenantHasRoom,
	services.ErrTenantStatusLocked,
	services.ErrInvoicePeriodExists,
	services.ErrBuildingHasRooms,
}

var validationErrors = []error{
	services.ErrTenantSpecInvalid,
	services.ErrTenantNotActive,
	services.ErrIncompleteNewTenant,
	services.ErrDepositInvalid,
	services.ErrStartDateRequired,
	services.ErrEndBeforeStart,
	services.ErrServiceChargeInvalid,
	services.ErrServiceChargeMismatch,
	services.ErrContractStatusInvalid,
	services.ErrRoomNumberRequired,
	services.ErrBuildingNameRequired,
	services.ErrServiceNameRequired,
	services.ErrServicePriceInvalid,
	services.ErrServicePricingTypeInvalid,
	services.ErrNegativeUsage,
	services.ErrPaymentAmountInvalid,
	services.ErrBillingPeriodInvalid,
	services.ErrContractNotLongTerm,
	services.ErrRoomTypeInvalid,
	services.ErrShortTermTypeInvalid,
	services.ErrRentPriceInvalid,
	services.ErrUtilityPriceInvalid,
	services.ErrUtilityIndexInvalid,
	services.ErrPaymentCycleInvalid,
	services.ErrPaymentDueDayInvalid,
	services.ErrFixedPriceInvalid,
	services.ErrPricePerHourInvalid,
	services.ErrUsageAmountInvalid,
	services.ErrLongTermConfigRequired,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondServiceError maps service errors to HTTP responses: not-found to
// 404, state conflicts to 409, validation rejections to 400, consistency
// failures and everything unrecognized to 500.
func respondServiceError(c *gin.Context, err error) {
	var tierErr *services.TierError
	switch {
	case services.IsConsistencyError(err):
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
	case matchesAny(err, notFoundErrors):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case matchesAny(err, conflictErrors):
		utils.JSONError(c, http.StatusConflict, err.Error())
	case errors.As(err, &tierErr), matchesAny(err, validationErrors):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error")
	}
}

package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned to controllers. Validation and state-conflict
// failures are reported before any write and never retried.
var (
	ErrBuildingNotFound = errors.New("building_not_found")
	ErrRoomNotFound     = errors.New("room_not_found")
	ErrTenantNotFound   = errors.New("tenant_not_found")
	ErrContractNotFound = errors.New("contract_not_found")
	ErrServiceNotFound  = errors.New("service_not_found")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")

	ErrTenantSpecInvalid     = errors.New("tenant_specification_invalid")
	ErrTenantNotActive       = errors.New("tenant_not_active")
	ErrIncompleteNewTenant   = errors.New("incomplete_new_tenant")
	ErrDepositInvalid        = errors.New("deposit_amount_invalid")
	ErrStartDateRequired     = errors.New("start_date_required")
	ErrEndBeforeStart        = errors.New("end_date_before_start_date")
	ErrServiceChargeInvalid  = errors.New("service_charge_invalid")
	ErrServiceChargeMismatch = errors.New("service_charge_catalog_mismatch")

	ErrContractStatusInvalid = errors.New("contract_status_invalid")

	ErrOnlyDraftEditable  = errors.New("only_draft_editable")
	ErrOnlyDraftDeletable = errors.New("only_draft_deletable")
	ErrContractNotDraft   = errors.New("contract_not_draft")
	ErrContractNotActive  = errors.New("contract_not_active")
	ErrRoomNotAvailable   = errors.New("room_not_available")

	ErrRoomNotDeletable   = errors.New("room_not_deletable")
	ErrRoomNumberRequired = errors.New("room_number_required")
	ErrRoomStatusLocked   = errors.New("room_status_locked")
	ErrRoomNumberTaken    = errors.New("room_number_taken")
	ErrTenantHasRoom      = errors.New("tenant_has_room")
	ErrTenantStatusLocked = errors.New("tenant_status_locked")

	ErrBuildingNameRequired = errors.New("building_name_required")
	ErrBuildingHasRooms     = errors.New("building_has_rooms")

	ErrServiceNameRequired       = errors.New("service_name_required")
	ErrServicePriceInvalid       = errors.New("service_price_invalid")
	ErrServicePricingTypeInvalid = errors.New("service_pricing_type_invalid")

	ErrInvoicePeriodExists  = errors.New("invoice_period_exists")
	ErrNegativeUsage        = errors.New("negative_usage")
	ErrPaymentAmountInvalid = errors.New("payment_amount_invalid")
	ErrBillingPeriodInvalid = errors.New("billing_period_invalid")
	ErrContractNotLongTerm  = errors.New("contract_not_long_term")
)

// Pricing configuration validation sentinels.
var (
	ErrRoomTypeInvalid        = errors.New("room_type_invalid")
	ErrShortTermTypeInvalid   = errors.New("short_term_pricing_type_invalid")
	ErrRentPriceInvalid       = errors.New("rent_price_invalid")
	ErrUtilityPriceInvalid    = errors.New("utility_unit_price_invalid")
	ErrUtilityIndexInvalid    = errors.New("initial_utility_index_invalid")
	ErrPaymentCycleInvalid    = errors.New("payment_cycle_invalid")
	ErrPaymentDueDayInvalid   = errors.New("payment_due_day_invalid")
	ErrFixedPriceInvalid      = errors.New("fixed_price_invalid")
	ErrPricePerHourInvalid    = errors.New("price_per_hour_invalid")
	ErrUsageAmountInvalid     = errors.New("usage_amount_invalid")
	ErrLongTermConfigRequired = errors.New("long_term_config_required")
)

// Tier table validation failure codes.
const (
	TierErrEmptyTable        = "empty_table"
	TierErrNonPositivePrice  = "non_positive_price"
	TierErrInvalidRange      = "invalid_range"
	TierErrSequenceGap       = "sequence_gap"
	TierErrMissingTerminator = "missing_terminator"
	TierErrNoMatchingTier    = "no_matching_tier"
)

// TierError reports which rule a tier table broke and at which index.
// Index is -1 when the failure is not tied to a single tier.
type TierError struct {
	Code  string
	Index int
}

func (e *TierError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("price_tiers: %s", e.Code)
	}
	return fmt.Sprintf("price_tiers: %s at tier %d", e.Code, e.Index)
}

// ConsistencyError means a contract write succeeded but a dependent room or
// tenant status write failed afterwards. There is no automatic compensation;
// the system is left in a detectably inconsistent state and the error must
// reach the operator, so it is logged and propagated distinctly from
// ordinary validation rejections.
type ConsistencyError struct {
	Entity string
	ID     uint
	Err    error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency: %s %d status update failed: %v", e.Entity, e.ID, e.Err)
}

func (e *ConsistencyError) Unwrap() error { return e.Err }

// IsConsistencyError reports whether err carries a ConsistencyError anywhere
// in its chain.
func IsConsistencyError(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}

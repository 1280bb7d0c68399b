package services

import (
	"rental-backend/models"
)

// Catalog prices are compared with a small epsilon so float round-trips
// through JSON never flag an honest payload.
const priceEpsilon = 0.01

// Usage carries whichever elapsed quantity the active pricing variant needs.
type Usage struct {
	Hours float64
	Days  float64
}

// ValidatePriceTiers checks an ordered tier table: positive prices, ordered
// ranges, strict contiguity (each fromValue equals the previous toValue) and
// a single open-ended terminator as the last element. Pure, no side effects.
func ValidatePriceTiers(tiers []models.PriceTier) error {
	if len(tiers) == 0 {
		return &TierError{Code: TierErrEmptyTable, Index: -1}
	}
	for i, tier := range tiers {
		if tier.Price <= 0 {
			return &TierError{Code: TierErrNonPositivePrice, Index: i}
		}
		if !tier.Unbounded() && tier.ToValue < tier.FromValue {
			return &TierError{Code: TierErrInvalidRange, Index: i}
		}
		if i > 0 && tier.FromValue != tiers[i-1].ToValue {
			return &TierError{Code: TierErrSequenceGap, Index: i}
		}
	}
	if !tiers[len(tiers)-1].Unbounded() {
		return &TierError{Code: TierErrMissingTerminator, Index: len(tiers) - 1}
	}
	return nil
}

// EvaluatePriceTiers returns the price of the tier covering usageAmount.
// For a validated table exactly one tier matches any usage >= 0, but the
// scan stays defensive for unvalidated input.
func EvaluatePriceTiers(tiers []models.PriceTier, usageAmount float64) (float64, error) {
	if usageAmount < 0 {
		return 0, &TierError{Code: TierErrNoMatchingTier, Index: -1}
	}
	for _, tier := range tiers {
		if tier.FromValue <= usageAmount && (tier.Unbounded() || usageAmount <= tier.ToValue) {
			return tier.Price, nil
		}
	}
	return 0, &TierError{Code: TierErrNoMatchingTier, Index: -1}
}

// ValidatePricingConfiguration enforces the per-variant required-field and
// positivity rules. The same rules run on create and on update.
func ValidatePricingConfiguration(cfg models.PricingConfiguration) error {
	switch cfg.RoomType {
	case models.RoomTypeLongTerm:
		lt := cfg.LongTerm
		if lt == nil {
			return ErrLongTermConfigRequired
		}
		if lt.RentPrice <= 0 {
			return ErrRentPriceInvalid
		}
		if lt.ElectricityUnitPrice <= 0 || lt.WaterUnitPrice <= 0 {
			return ErrUtilityPriceInvalid
		}
		if lt.InitialElectricIndex < 0 || lt.InitialWaterIndex < 0 {
			return ErrUtilityIndexInvalid
		}
		if lt.PaymentCycleMonths <= 0 {
			return ErrPaymentCycleInvalid
		}
		if lt.PaymentDueDay < 1 || lt.PaymentDueDay > 31 {
			return ErrPaymentDueDayInvalid
		}
		return nil

	case models.RoomTypeShortTerm:
		switch cfg.ShortTermPricingType {
		case models.ShortTermPricingFixed:
			if cfg.FixedPrice <= 0 {
				return ErrFixedPriceInvalid
			}
			return nil
		case models.ShortTermPricingHourly:
			if cfg.PricePerHour <= 0 {
				return ErrPricePerHourInvalid
			}
			return nil
		case models.ShortTermPricingHourlyTiered, models.ShortTermPricingDailyTiered:
			return ValidatePriceTiers(cfg.Tiers)
		default:
			return ErrShortTermTypeInvalid
		}

	default:
		return ErrRoomTypeInvalid
	}
}

// ResolveCharge computes the charge for one usage of the active pricing
// variant. Long-term contracts charge the fixed rent per cycle; utility
// consumption is billed separately by the invoice service.
func ResolveCharge(cfg models.PricingConfiguration, usage Usage) (float64, error) {
	switch cfg.RoomType {
	case models.RoomTypeLongTerm:
		if cfg.LongTerm == nil {
			return 0, ErrLongTermConfigRequired
		}
		return cfg.LongTerm.RentPrice, nil

	case models.RoomTypeShortTerm:
		switch cfg.ShortTermPricingType {
		case models.ShortTermPricingFixed:
			return cfg.FixedPrice, nil
		case models.ShortTermPricingHourly:
			if usage.Hours < 0 {
				return 0, ErrUsageAmountInvalid
			}
			return cfg.PricePerHour * usage.Hours, nil
		case models.ShortTermPricingHourlyTiered:
			return EvaluatePriceTiers(cfg.Tiers, usage.Hours)
		case models.ShortTermPricingDailyTiered:
			return EvaluatePriceTiers(cfg.Tiers, usage.Days)
		default:
			return 0, ErrShortTermTypeInvalid
		}

	default:
		return 0, ErrRoomTypeInvalid
	}
}

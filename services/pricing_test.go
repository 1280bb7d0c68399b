package services

import (
	"testing"

	"rental-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tier(from, to, price float64) models.PriceTier {
	return models.PriceTier{FromValue: from, ToValue: to, Price: price}
}

func TestValidatePriceTiers(t *testing.T) {
	t.Run("contiguous table with terminator passes", func(t *testing.T) {
		tiers := []models.PriceTier{
			tier(0, 3, 300000),
			tier(3, 4, 300000),
			tier(4, 5, 300000),
			tier(5, -1, 300000),
		}
		require.NoError(t, ValidatePriceTiers(tiers))
	})

	t.Run("empty table rejected", func(t *testing.T) {
		err := ValidatePriceTiers(nil)
		var tierErr *TierError
		require.ErrorAs(t, err, &tierErr)
		assert.Equal(t, TierErrEmptyTable, tierErr.Code)
	})

	t.Run("non-positive price rejected with index", func(t *testing.T) {
		tiers := []models.PriceTier{tier(0, 3, 100), tier(3, -1, 0)}
		var tierErr *TierError
		require.ErrorAs(t, ValidatePriceTiers(tiers), &tierErr)
		assert.Equal(t, TierErrNonPositivePrice, tierErr.Code)
		assert.Equal(t, 1, tierErr.Index)
	})

	t.Run("inverted range rejected", func(t *testing.T) {
		tiers := []models.PriceTier{tier(0, 5, 100), tier(5, 2, 100), tier(2, -1, 100)}
		var tierErr *TierError
		require.ErrorAs(t, ValidatePriceTiers(tiers), &tierErr)
		assert.Equal(t, TierErrInvalidRange, tierErr.Code)
		assert.Equal(t, 1, tierErr.Index)
	})

	t.Run("gap between tiers rejected", func(t *testing.T) {
		tiers := []models.PriceTier{tier(0, 3, 300000), tier(4, 5, 300000)}
		var tierErr *TierError
		require.ErrorAs(t, ValidatePriceTiers(tiers), &tierErr)
		assert.Equal(t, TierErrSequenceGap, tierErr.Code)
		assert.Equal(t, 1, tierErr.Index)
	})

	t.Run("missing open-ended terminator rejected", func(t *testing.T) {
		tiers := []models.PriceTier{tier(0, 3, 100), tier(3, 6, 100)}
		var tierErr *TierError
		require.ErrorAs(t, ValidatePriceTiers(tiers), &tierErr)
		assert.Equal(t, TierErrMissingTerminator, tierErr.Code)
	})
}

func TestEvaluatePriceTiers(t *testing.T) {
	tiers := []models.PriceTier{
		tier(0, 3, 100000),
		tier(3, 5, 150000),
		tier(5, -1, 200000),
	}

	t.Run("mid-range usage hits the covering tier", func(t *testing.T) {
		price, err := EvaluatePriceTiers(tiers, 4.5)
		require.NoError(t, err)
		assert.Equal(t, 150000.0, price)
	})

	t.Run("shared boundary belongs to the earlier tier", func(t *testing.T) {
		price, err := EvaluatePriceTiers(tiers, 3)
		require.NoError(t, err)
		assert.Equal(t, 100000.0, price)
	})

	t.Run("usage beyond the last bound uses the terminator", func(t *testing.T) {
		price, err := EvaluatePriceTiers(tiers, 1000)
		require.NoError(t, err)
		assert.Equal(t, 200000.0, price)
	})

	t.Run("negative usage rejected", func(t *testing.T) {
		_, err := EvaluatePriceTiers(tiers, -1)
		var tierErr *TierError
		require.ErrorAs(t, err, &tierErr)
		assert.Equal(t, TierErrNoMatchingTier, tierErr.Code)
	})

	t.Run("every non-negative usage matches exactly one tier", func(t *testing.T) {
		for usage := 0.0; usage <= 20; usage += 0.25 {
			matches := 0
			for _, tr := range tiers {
				if tr.FromValue <= usage && (tr.Unbounded() || usage <= tr.ToValue) {
					matches++
				}
			}
			// boundary values sit in two ranges on paper; the scan always
			// resolves to the first, so coverage just has to be >= 1
			require.GreaterOrEqual(t, matches, 1, "usage %v uncovered", usage)
			_, err := EvaluatePriceTiers(tiers, usage)
			require.NoError(t, err)
		}
	})
}

func longTermConfig() models.PricingConfiguration {
	return models.PricingConfiguration{
		RoomType: models.RoomTypeLongTerm,
		LongTerm: &models.LongTermPricing{
			RentPrice:            3000000,
			ElectricityUnitPrice: 3500,
			WaterUnitPrice:       15000,
			InitialElectricIndex: 100,
			InitialWaterIndex:    50,
			PaymentCycleMonths:   1,
			PaymentDueDay:        5,
		},
	}
}

func TestValidatePricingConfiguration(t *testing.T) {
	t.Run("long term happy path", func(t *testing.T) {
		require.NoError(t, ValidatePricingConfiguration(longTermConfig()))
	})

	t.Run("long term requires payload", func(t *testing.T) {
		cfg := models.PricingConfiguration{RoomType: models.RoomTypeLongTerm}
		assert.ErrorIs(t, ValidatePricingConfiguration(cfg), ErrLongTermConfigRequired)
	})

	t.Run("zero fixed price rejected", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingFixed,
			FixedPrice:           0,
		}
		assert.ErrorIs(t, ValidatePricingConfiguration(cfg), ErrFixedPriceInvalid)
	})

	t.Run("hourly requires positive rate", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingHourly,
		}
		assert.ErrorIs(t, ValidatePricingConfiguration(cfg), ErrPricePerHourInvalid)
	})

	t.Run("tiered variants delegate to tier validation", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingDailyTiered,
			Tiers:                []models.PriceTier{tier(0, 3, 100), tier(4, -1, 100)},
		}
		var tierErr *TierError
		require.ErrorAs(t, ValidatePricingConfiguration(cfg), &tierErr)
		assert.Equal(t, TierErrSequenceGap, tierErr.Code)
	})

	t.Run("unknown room type rejected", func(t *testing.T) {
		cfg := models.PricingConfiguration{RoomType: "WEEKLY"}
		assert.ErrorIs(t, ValidatePricingConfiguration(cfg), ErrRoomTypeInvalid)
	})

	t.Run("re-validation is idempotent", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingHourlyTiered,
			Tiers:                []models.PriceTier{tier(0, 3, 300000), tier(3, -1, 350000)},
		}
		first := ValidatePricingConfiguration(cfg)
		second := ValidatePricingConfiguration(cfg)
		assert.Equal(t, first, second)
		require.NoError(t, first)
	})
}

func TestResolveCharge(t *testing.T) {
	t.Run("long term charges fixed rent per cycle", func(t *testing.T) {
		amount, err := ResolveCharge(longTermConfig(), Usage{})
		require.NoError(t, err)
		assert.Equal(t, 3000000.0, amount)
	})

	t.Run("short term fixed ignores usage", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingFixed,
			FixedPrice:           500000,
		}
		amount, err := ResolveCharge(cfg, Usage{Hours: 7})
		require.NoError(t, err)
		assert.Equal(t, 500000.0, amount)
	})

	t.Run("hourly multiplies rate by elapsed hours", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingHourly,
			PricePerHour:         80000,
		}
		amount, err := ResolveCharge(cfg, Usage{Hours: 2.5})
		require.NoError(t, err)
		assert.Equal(t, 200000.0, amount)
	})

	t.Run("hourly rejects negative elapsed hours", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingHourly,
			PricePerHour:         80000,
		}
		_, err := ResolveCharge(cfg, Usage{Hours: -1})
		assert.ErrorIs(t, err, ErrUsageAmountInvalid)
	})

	t.Run("hourly table evaluates elapsed hours", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingHourlyTiered,
			Tiers:                []models.PriceTier{tier(0, 3, 300000), tier(3, -1, 400000)},
		}
		amount, err := ResolveCharge(cfg, Usage{Hours: 4})
		require.NoError(t, err)
		assert.Equal(t, 400000.0, amount)
	})

	t.Run("daily table evaluates elapsed days", func(t *testing.T) {
		cfg := models.PricingConfiguration{
			RoomType:             models.RoomTypeShortTerm,
			ShortTermPricingType: models.ShortTermPricingDailyTiered,
			Tiers:                []models.PriceTier{tier(0, 2, 700000), tier(2, -1, 600000)},
		}
		amount, err := ResolveCharge(cfg, Usage{Days: 1})
		require.NoError(t, err)
		assert.Equal(t, 700000.0, amount)
	})
}

func TestPricingConfigurationNormalized(t *testing.T) {
	cfg := models.PricingConfiguration{
		RoomType:             models.RoomTypeShortTerm,
		ShortTermPricingType: models.ShortTermPricingFixed,
		FixedPrice:           250000,
		// stale fields from a previously selected mode
		PricePerHour: 99999,
		LongTerm:     &models.LongTermPricing{RentPrice: 1},
		Tiers:        []models.PriceTier{tier(0, -1, 1)},
	}
	out := cfg.Normalized()
	assert.Equal(t, 250000.0, out.FixedPrice)
	assert.Zero(t, out.PricePerHour)
	assert.Nil(t, out.LongTerm)
	assert.Nil(t, out.Tiers)
}

package models

// Room pricing modes. LONG_TERM is fixed-cycle rent plus metered utilities;
// SHORT_TERM is priced per stay by one of the short-term pricing types below.
const (
	RoomTypeLongTerm  = "LONG_TERM"
	RoomTypeShortTerm = "SHORT_TERM"
)

const (
	ShortTermPricingFixed        = "FIXED"
	ShortTermPricingHourly       = "HOURLY"
	ShortTermPricingHourlyTiered = "HOURLY_TIERED"
	ShortTermPricingDailyTiered  = "DAILY_TIERED"
)

// TierOpenEnd marks a tier with no upper bound. Only the last tier of a
// table may carry it.
const TierOpenEnd = -1

// PriceTier is one range of a tiered price table. ToValue is the shared
// boundary with the next tier's FromValue; the frontend auto-links them
// but validation enforces it server-side regardless.
type PriceTier struct {
	FromValue float64 `json:"fromValue"`
	ToValue   float64 `json:"toValue"`
	Price     float64 `json:"price"`
}

// Unbounded reports whether the tier has no upper bound.
func (t PriceTier) Unbounded() bool {
	return t.ToValue == TierOpenEnd
}

// LongTermPricing holds the fixed-cycle rent configuration. Initial utility
// indices are the meter readings at move-in, used as the first invoice's
// previous indices.
type LongTermPricing struct {
	RentPrice            float64 `json:"rentPrice"`
	ElectricityUnitPrice float64 `json:"electricityUnitPrice"`
	WaterUnitPrice       float64 `json:"waterUnitPrice"`
	InitialElectricIndex float64 `json:"initialElectricIndex"`
	InitialWaterIndex    float64 `json:"initialWaterIndex"`
	PaymentCycleMonths   int     `json:"paymentCycleMonths"`
	PaymentDueDay        int     `json:"paymentDueDay"`
}

// PricingConfiguration is a tagged union over the pricing mode. RoomType
// selects long-term vs short-term; ShortTermPricingType selects the
// short-term variant. Exactly one variant payload is meaningful at a time;
// Normalized clears the rest so a saved configuration never carries stale
// fields from a previously selected mode.
type PricingConfiguration struct {
	RoomType             string `json:"roomType"`
	ShortTermPricingType string `json:"shortTermPricingType,omitempty"`

	LongTerm     *LongTermPricing `json:"longTerm,omitempty"`
	FixedPrice   float64          `json:"fixedPrice,omitempty"`
	PricePerHour float64          `json:"pricePerHour,omitempty"`
	Tiers        []PriceTier      `json:"tiers,omitempty"`
}

// Normalized returns a copy with every field that does not belong to the
// active variant cleared.
func (p PricingConfiguration) Normalized() PricingConfiguration {
	out := PricingConfiguration{RoomType: p.RoomType}
	if p.RoomType == RoomTypeLongTerm {
		out.LongTerm = p.LongTerm
		return out
	}
	out.ShortTermPricingType = p.ShortTermPricingType
	switch p.ShortTermPricingType {
	case ShortTermPricingFixed:
		out.FixedPrice = p.FixedPrice
	case ShortTermPricingHourly:
		out.PricePerHour = p.PricePerHour
	case ShortTermPricingHourlyTiered, ShortTermPricingDailyTiered:
		out.Tiers = p.Tiers
	}
	return out
}

// ServiceCharge is one itemized charge attached to a contract or invoice.
// Amount is the line total (quantity already folded in by the caller);
// Quantity is retained for display. SourceServiceID links back to the
// catalog entry the charge was picked from, if any.
type ServiceCharge struct {
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	Quantity        int     `json:"quantity,omitempty"`
	IsRecurring     bool    `json:"isRecurring"`
	SourceServiceID *uint   `json:"sourceServiceId,omitempty"`
}

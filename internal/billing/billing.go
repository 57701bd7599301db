// Package billing computes payable amounts for goods-received items.
// It is pure: no database access, no clock, no state. Every call site that
// needs an amount (item tables, invoice issue, CSV manifest, PDF) must go
// through this package so the numbers never drift between surfaces.
package billing

import "github.com/shopspring/decimal"

// CargoLeg selects which physical measurement of an item is billable.
type CargoLeg string

const (
	LegSea CargoLeg = "SEA" // billed by CBM (volume)
	LegAir CargoLeg = "AIR" // billed by weight (kg)
)

// WarehouseLocation is the warehouse leg a container belongs to.
// Only Ghana applies flat minimum charges for very small measurements.
type WarehouseLocation string

const (
	LocationChina WarehouseLocation = "CHINA"
	LocationGhana WarehouseLocation = "GHANA"
)

// PricingConfig is the billing configuration read off a container record.
// A zero ExchangeRate or UnitRate means "not configured yet" — the general
// formula then yields zero and callers should display the amount as
// unavailable rather than free (see HasRates).
type PricingConfig struct {
	CargoLeg          CargoLeg
	WarehouseLocation WarehouseLocation
	ExchangeRate      decimal.Decimal // the "dollar rate"
	UnitRate          decimal.Decimal // per-CBM (sea) or per-kg (air)
}

// HasRates reports whether both pricing multipliers are configured and
// positive. When false, display layers render amounts as "—" instead of a
// zero that would read as a free shipment.
func (c PricingConfig) HasRates() bool {
	return c.ExchangeRate.IsPositive() && c.UnitRate.IsPositive()
}

// LineItem carries the measurements of one goods-received item. Fields not
// listed here (tracking id, description) never participate in billing.
type LineItem struct {
	Quantity         int
	CBM              decimal.Decimal // billable for SEA
	Weight           decimal.Decimal // billable for AIR, kilograms
	ShippingMark     string
	SupplyTrackingID string
	Description      string
}

// Ghana minimum-charge bands. Items measuring at most 0.004 (CBM or kg) are
// charged a flat 30, items between 0.005 and 0.009 inclusive a flat 35,
// regardless of the configured rates. Measurements strictly between 0.004
// and 0.005 fall through to the general formula; that gap is present in the
// production rate card and is kept as-is until the rate card itself changes
// (pinned by TestComputeItemAmount_GhanaGapBand).
var (
	ghanaBandOneMax = decimal.New(4, -3) // 0.004
	ghanaBandTwoMin = decimal.New(5, -3) // 0.005
	ghanaBandTwoMax = decimal.New(9, -3) // 0.009
	ghanaBandOneFee = decimal.NewFromInt(30)
	ghanaBandTwoFee = decimal.NewFromInt(35)
)

// Measurement returns the billable measurement of item under cfg: CBM for
// sea freight, weight for air freight. Unset or negative values count as
// zero.
func Measurement(cfg PricingConfig, item LineItem) decimal.Decimal {
	var m decimal.Decimal
	switch cfg.CargoLeg {
	case LegAir:
		m = item.Weight
	default:
		m = item.CBM
	}
	if m.IsNegative() {
		return decimal.Zero
	}
	return m
}

// ComputeItemAmount returns the payable amount for one item, in the
// destination currency.
//
// The Ghana minimum-charge bands are evaluated before the general formula
// and are a full override, not a floor: when a band matches, the configured
// rates are ignored entirely (an unpriced container still bills 30 for a
// 0.003 CBM item in Ghana). Outside the bands, and always for China, the
// amount is measurement x exchange rate x unit rate. Never negative.
func ComputeItemAmount(cfg PricingConfig, item LineItem) decimal.Decimal {
	m := Measurement(cfg, item)

	if cfg.WarehouseLocation == LocationGhana && m.IsPositive() {
		if m.LessThanOrEqual(ghanaBandOneMax) {
			return ghanaBandOneFee
		}
		if m.GreaterThanOrEqual(ghanaBandTwoMin) && m.LessThanOrEqual(ghanaBandTwoMax) {
			return ghanaBandTwoFee
		}
	}

	amount := m.Mul(cfg.ExchangeRate).Mul(cfg.UnitRate)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

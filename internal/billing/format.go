package billing

import "github.com/shopspring/decimal"

// DefaultCurrency is the destination-side billing currency (Ghanaian cedi).
const DefaultCurrency = "GHS"

// FormatAmount renders a raw amount for display with two decimal places,
// e.g. "GHS 35.00". Computation code never formats; this is the one place
// presentation rounding happens.
func FormatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return currency + " " + amount.StringFixed(2)
}

// DisplayAmount is FormatAmount guarded by the pricing configuration: when
// the container has no rates set, it returns an em dash placeholder so the
// UI and exports never show a zero that reads as a free shipment. Ghana
// flat-minimum amounts are still shown because they do not depend on rates.
func DisplayAmount(cfg PricingConfig, item LineItem) string {
	amount := ComputeItemAmount(cfg, item)
	if !cfg.HasRates() && amount.IsZero() {
		return "—"
	}
	return FormatAmount(amount, DefaultCurrency)
}

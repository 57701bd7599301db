package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seaChina(rate, unit string) PricingConfig {
	return PricingConfig{
		CargoLeg:          LegSea,
		WarehouseLocation: LocationChina,
		ExchangeRate:      dec(rate),
		UnitRate:          dec(unit),
	}
}

func TestComputeItemAmount_GeneralFormula(t *testing.T) {
	cfg := seaChina("7.5", "2.0")
	item := LineItem{CBM: dec("0.5")}

	got := ComputeItemAmount(cfg, item)
	if !got.Equal(dec("7.5")) {
		t.Fatalf("amount = %s, want 7.5", got)
	}
}

func TestComputeItemAmount_BillableAxisFollowsLeg(t *testing.T) {
	// Sea must bill CBM and ignore weight entirely; air the reverse.
	item := LineItem{CBM: dec("0.5"), Weight: dec("120")}

	sea := seaChina("7.5", "2.0")
	if got := ComputeItemAmount(sea, item); !got.Equal(dec("7.5")) {
		t.Errorf("sea amount = %s, want 7.5 (from CBM)", got)
	}

	air := sea
	air.CargoLeg = LegAir
	if got := ComputeItemAmount(air, item); !got.Equal(dec("1800")) {
		t.Errorf("air amount = %s, want 1800 (from weight)", got)
	}
}

func TestComputeItemAmount_GhanaMinimumBands(t *testing.T) {
	cfg := PricingConfig{
		CargoLeg:          LegSea,
		WarehouseLocation: LocationGhana,
		ExchangeRate:      dec("7.5"),
		UnitRate:          dec("2.0"),
	}

	tests := []struct {
		name string
		cbm  string
		want string
	}{
		{"lower band smallest", "0.001", "30"},
		{"lower band upper edge", "0.004", "30"},
		{"upper band lower edge", "0.005", "35"},
		{"upper band middle", "0.007", "35"},
		{"upper band upper edge", "0.009", "35"},
		{"above bands uses formula", "0.010", "0.15"},
		{"zero measurement bills zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeItemAmount(cfg, LineItem{CBM: dec(tt.cbm)})
			if !got.Equal(dec(tt.want)) {
				t.Errorf("cbm=%s: amount = %s, want %s", tt.cbm, got, tt.want)
			}
		})
	}
}

// The rate card leaves (0.004, 0.005) uncovered by either flat band; such
// measurements bill by the general formula. This is deliberate pinning of
// current production behavior, not an endorsement — changing it must be a
// visible rate-card decision.
func TestComputeItemAmount_GhanaGapBand(t *testing.T) {
	cfg := PricingConfig{
		CargoLeg:          LegSea,
		WarehouseLocation: LocationGhana,
		ExchangeRate:      dec("7.5"),
		UnitRate:          dec("2.0"),
	}

	got := ComputeItemAmount(cfg, LineItem{CBM: dec("0.0045")})
	want := dec("0.0045").Mul(dec("7.5")).Mul(dec("2.0"))
	if !got.Equal(want) {
		t.Fatalf("gap-band amount = %s, want %s (general formula)", got, want)
	}
}

func TestComputeItemAmount_GhanaOverrideIgnoresRates(t *testing.T) {
	// The flat minimum is a full override: it fires even when the container
	// has no pricing configured at all.
	cfg := PricingConfig{
		CargoLeg:          LegAir,
		WarehouseLocation: LocationGhana,
	}

	if got := ComputeItemAmount(cfg, LineItem{Weight: dec("0.003")}); !got.Equal(dec("30")) {
		t.Errorf("unpriced ghana small item = %s, want 30", got)
	}

	cfg.ExchangeRate = dec("7.5")
	cfg.UnitRate = dec("2.0")
	if got := ComputeItemAmount(cfg, LineItem{Weight: dec("0.006")}); !got.Equal(dec("35")) {
		t.Errorf("priced ghana band item = %s, want 35 (formula result discarded)", got)
	}
}

func TestComputeItemAmount_ChinaNeverOverrides(t *testing.T) {
	cfg := seaChina("7.5", "2.0")

	for _, cbm := range []string{"0.001", "0.004", "0.0045", "0.005", "0.009"} {
		got := ComputeItemAmount(cfg, LineItem{CBM: dec(cbm)})
		want := dec(cbm).Mul(dec("7.5")).Mul(dec("2.0"))
		if !got.Equal(want) {
			t.Errorf("china cbm=%s: amount = %s, want %s", cbm, got, want)
		}
	}
}

func TestComputeItemAmount_MissingRates(t *testing.T) {
	cfg := PricingConfig{CargoLeg: LegSea, WarehouseLocation: LocationChina}

	if got := ComputeItemAmount(cfg, LineItem{CBM: dec("3.2")}); !got.IsZero() {
		t.Errorf("unpriced china amount = %s, want 0", got)
	}
	if cfg.HasRates() {
		t.Error("HasRates() = true for zero rates")
	}

	cfg.ExchangeRate = dec("7.5")
	if got := ComputeItemAmount(cfg, LineItem{CBM: dec("3.2")}); !got.IsZero() {
		t.Errorf("amount with only exchange rate = %s, want 0", got)
	}
	if cfg.HasRates() {
		t.Error("HasRates() = true with unit rate missing")
	}
}

func TestComputeItemAmount_NegativeInputsClampToZero(t *testing.T) {
	cfg := seaChina("7.5", "2.0")

	if got := ComputeItemAmount(cfg, LineItem{CBM: dec("-1")}); !got.IsZero() {
		t.Errorf("negative cbm amount = %s, want 0", got)
	}

	ghana := cfg
	ghana.WarehouseLocation = LocationGhana
	// Negative measurement must not trip the 0 < m band checks either.
	if got := ComputeItemAmount(ghana, LineItem{CBM: dec("-0.003")}); !got.IsZero() {
		t.Errorf("negative cbm in ghana = %s, want 0", got)
	}
}

func TestDisplayAmount(t *testing.T) {
	priced := seaChina("7.5", "2.0")
	if got := DisplayAmount(priced, LineItem{CBM: dec("0.5")}); got != "GHS 7.50" {
		t.Errorf("priced display = %q, want %q", got, "GHS 7.50")
	}

	unpriced := PricingConfig{CargoLeg: LegSea, WarehouseLocation: LocationChina}
	if got := DisplayAmount(unpriced, LineItem{CBM: dec("0.5")}); got != "—" {
		t.Errorf("unpriced display = %q, want placeholder", got)
	}

	// Ghana flat minimums display even without rates.
	ghana := PricingConfig{CargoLeg: LegSea, WarehouseLocation: LocationGhana}
	if got := DisplayAmount(ghana, LineItem{CBM: dec("0.003")}); got != "GHS 30.00" {
		t.Errorf("unpriced ghana band display = %q, want %q", got, "GHS 30.00")
	}
}

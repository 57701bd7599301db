package billing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestGroupByShippingMark(t *testing.T) {
	items := []LineItem{
		{ShippingMark: "KOFI-01", SupplyTrackingID: "a"},
		{ShippingMark: "AMA-02", SupplyTrackingID: "b"},
		{ShippingMark: "KOFI-01", SupplyTrackingID: "c"},
		{ShippingMark: "", SupplyTrackingID: "d"},
		{ShippingMark: "AMA-02", SupplyTrackingID: "e"},
	}

	groups := GroupByShippingMark(items)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}

	// Stable partition: every item lands in exactly one group.
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != len(items) {
		t.Errorf("partition covers %d items, want %d", total, len(items))
	}

	// Group order follows first occurrence; item order within a group
	// follows input order.
	if groups[0][0].SupplyTrackingID != "a" || groups[0][1].SupplyTrackingID != "c" {
		t.Errorf("first group = %v, want items a then c", groups[0])
	}
	if groups[1][0].SupplyTrackingID != "b" || groups[1][1].SupplyTrackingID != "e" {
		t.Errorf("second group = %v, want items b then e", groups[1])
	}
	if groups[2][0].SupplyTrackingID != "d" {
		t.Errorf("blank-mark group = %v, want item d", groups[2])
	}
}

func TestAggregateGroup_SumsPerItemAmounts(t *testing.T) {
	cfg := PricingConfig{
		CargoLeg:          LegSea,
		WarehouseLocation: LocationGhana,
		ExchangeRate:      dec("7.5"),
		UnitRate:          dec("2.0"),
	}

	// One band item bundled with one formula item. Summing measurements
	// first (0.003 + 0.5 = 0.503) would bill 0.503*7.5*2 = 7.545 and lose
	// the flat 30; the correct total is 30 + 7.5.
	items := []LineItem{
		{ShippingMark: "KOFI-01", Quantity: 2, CBM: dec("0.003")},
		{ShippingMark: "KOFI-01", Quantity: 5, CBM: dec("0.5")},
	}

	group := AggregateGroup(cfg, items)

	if group.ShippingMark != "KOFI-01" {
		t.Errorf("shipping mark = %q, want KOFI-01", group.ShippingMark)
	}
	if group.TotalQuantity != 7 {
		t.Errorf("total quantity = %d, want 7", group.TotalQuantity)
	}
	if !group.TotalMeasurement.Equal(dec("0.503")) {
		t.Errorf("total measurement = %s, want 0.503", group.TotalMeasurement)
	}
	if !group.TotalAmount.Equal(dec("37.5")) {
		t.Errorf("total amount = %s, want 37.5 (30 flat + 7.5 formula)", group.TotalAmount)
	}

	wantSum := decimal.Zero
	for _, item := range items {
		wantSum = wantSum.Add(ComputeItemAmount(cfg, item))
	}
	if !group.TotalAmount.Equal(wantSum) {
		t.Errorf("total amount = %s, want sum of per-item amounts %s", group.TotalAmount, wantSum)
	}
}

func TestAggregateGroup_EmptyItems(t *testing.T) {
	group := AggregateGroup(seaChina("7.5", "2.0"), nil)

	if group.TotalQuantity != 0 || !group.TotalMeasurement.IsZero() || !group.TotalAmount.IsZero() {
		t.Errorf("empty group aggregates = %+v, want all zero", group)
	}
}

func TestBuildInvoiceGroups(t *testing.T) {
	cfg := seaChina("10", "1")
	items := []LineItem{
		{ShippingMark: "KOFI-01", Quantity: 1, CBM: dec("0.2")},
		{ShippingMark: "", Quantity: 1, CBM: dec("0.1")},
		{ShippingMark: "KOFI-01", Quantity: 3, CBM: dec("0.3")},
	}

	groups := BuildInvoiceGroups(cfg, items)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	if groups[0].ShippingMark != "KOFI-01" {
		t.Errorf("groups[0].ShippingMark = %q, want KOFI-01", groups[0].ShippingMark)
	}
	if !groups[0].TotalAmount.Equal(dec("5")) {
		t.Errorf("KOFI-01 total = %s, want 5", groups[0].TotalAmount)
	}

	if groups[1].ShippingMark != UnknownShippingMark {
		t.Errorf("groups[1].ShippingMark = %q, want %q", groups[1].ShippingMark, UnknownShippingMark)
	}
	if !groups[1].TotalAmount.Equal(dec("1")) {
		t.Errorf("unknown-mark total = %s, want 1", groups[1].TotalAmount)
	}
}

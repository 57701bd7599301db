package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"cargoflow/internal/model"

	"github.com/shopspring/decimal"
)

func decPtr(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func dec(s string) decimal.Decimal {
	return *decPtr(s)
}

func TestWriteManifestCSV_SeaContainer(t *testing.T) {
	container := model.CargoContainer{
		ContainerNumber:   "MSKU1234567",
		CargoLeg:          model.CargoLegSea,
		WarehouseLocation: model.WarehouseGhana,
		ExchangeRate:      decPtr("15.5"),
		UnitRate:          decPtr("400"),
	}
	items := []model.GoodsReceivedItem{
		{
			SupplyTrackingID: "TRK-001",
			ShippingMark:     "KOFI",
			Description:      "Phone cases",
			Quantity:         3,
			CBM:              dec("0.003"), // Ghana flat minimum
			Weight:           dec("1.2"),
			Status:           model.ItemReceived,
			ReceivedAt:       time.Now(),
		},
		{
			SupplyTrackingID: "TRK-002",
			ShippingMark:     "AMA",
			Description:      "Fabric rolls",
			Quantity:         10,
			CBM:              dec("0.5"),
			Weight:           dec("80"),
			Status:           model.ItemLoaded,
			ReceivedAt:       time.Now(),
		},
	}

	var buf bytes.Buffer
	if err := WriteManifestCSV(&buf, container, items); err != nil {
		t.Fatalf("WriteManifestCSV() error = %v", err)
	}

	raw := buf.Bytes()
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("expected UTF-8 BOM prefix")
	}

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	header := strings.Join(records[0], ",")
	if !strings.Contains(header, "cbm") {
		t.Errorf("sea container header should use cbm, got %q", header)
	}
	if strings.Contains(header, "weight_kg") {
		t.Errorf("sea container header should not use weight_kg, got %q", header)
	}

	// Ghana flat minimum applies to the first row regardless of rates
	if got := records[1][6]; got != "GHS 30.00" {
		t.Errorf("row 1 amount = %q, want GHS 30.00", got)
	}
	// Second row uses the formula: 0.5 * 15.5 * 400 = 3100
	if got := records[2][6]; got != "GHS 3100.00" {
		t.Errorf("row 2 amount = %q, want GHS 3100.00", got)
	}
	if got := records[1][4]; got != "0.0030" {
		t.Errorf("row 1 measurement = %q, want 0.0030", got)
	}
}

func TestWriteManifestCSV_AirUnpriced(t *testing.T) {
	container := model.CargoContainer{
		ContainerNumber:   "AWB-889",
		CargoLeg:          model.CargoLegAir,
		WarehouseLocation: model.WarehouseChina,
	}
	items := []model.GoodsReceivedItem{
		{
			SupplyTrackingID: "TRK-100",
			ShippingMark:     "YAW",
			Quantity:         1,
			CBM:              dec("0.02"),
			Weight:           dec("12.5"),
			Status:           model.ItemReceived,
			ReceivedAt:       time.Now(),
		},
	}

	var buf bytes.Buffer
	if err := WriteManifestCSV(&buf, container, items); err != nil {
		t.Fatalf("WriteManifestCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	header := strings.Join(records[0], ",")
	if !strings.Contains(header, "weight_kg") {
		t.Errorf("air container header should use weight_kg, got %q", header)
	}

	// Air axis: measurement is the weight, not the CBM
	if got := records[1][4]; got != "12.5000" {
		t.Errorf("measurement = %q, want 12.5000", got)
	}
	// China warehouse without pricing: amount is unavailable, not zero
	if got := records[1][6]; got != "—" {
		t.Errorf("amount = %q, want —", got)
	}
}

func TestManifestFileName(t *testing.T) {
	container := model.CargoContainer{ContainerNumber: "MSKU1234567"}
	if got := ManifestFileName(container); got != "manifest_MSKU1234567.csv" {
		t.Errorf("ManifestFileName() = %q", got)
	}
}

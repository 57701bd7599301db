// Package export renders container manifests and invoices for download.
// All amounts come from the billing package; exporters never do their own
// arithmetic, so a CSV total can never drift from the on-screen one.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"cargoflow/internal/billing"
	"cargoflow/internal/model"
)

// WriteManifestCSV writes a container's goods-received manifest as CSV.
// A UTF-8 BOM is prepended so Excel opens the file correctly.
func WriteManifestCSV(w io.Writer, container model.CargoContainer, items []model.GoodsReceivedItem) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return err
	}

	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	measurementHeader := "cbm"
	if container.CargoLeg == model.CargoLegAir {
		measurementHeader = "weight_kg"
	}

	headers := []string{"supply_tracking_id", "shipping_mark", "description", "quantity", measurementHeader, "status", "amount"}
	if err := csvWriter.Write(headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	cfg := container.PricingConfig()
	for _, item := range items {
		line := item.LineItem()
		record := []string{
			item.SupplyTrackingID,
			item.ShippingMark,
			item.Description,
			fmt.Sprintf("%d", item.Quantity),
			billing.Measurement(cfg, line).StringFixed(4),
			item.Status,
			billing.DisplayAmount(cfg, line),
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// ManifestFileName builds the download name for a container manifest.
func ManifestFileName(container model.CargoContainer) string {
	return fmt.Sprintf("manifest_%s.csv", container.ContainerNumber)
}

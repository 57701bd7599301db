package service

import (
	"context"
	"fmt"

	"cargoflow/internal/model"

	"gorm.io/gorm"
)

// DashboardSummary is the landing-page aggregate for staff and admin.
type DashboardSummary struct {
	ContainersByStatus map[string]int64 `json:"containers_by_status"`
	ContainersByLeg    map[string]int64 `json:"containers_by_leg"`
	ItemsInWarehouse   int64            `json:"items_in_warehouse"`
	ActiveClients      int64            `json:"active_clients"`
	InvoicesIssued     int64            `json:"invoices_issued"`
	InvoicesPaid       int64            `json:"invoices_paid"`
	OutstandingAmount  string           `json:"outstanding_amount"` // issued, unpaid
}

type DashboardService interface {
	GetSummary(ctx context.Context) (DashboardSummary, error)
}

type dashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) DashboardService {
	return &dashboardService{db: db}
}

// GetSummary runs straight aggregate queries; nothing here re-derives
// billing amounts — invoice totals were frozen by the billing calculator at
// issue time.
func (s *dashboardService) GetSummary(ctx context.Context) (DashboardSummary, error) {
	summary := DashboardSummary{
		ContainersByStatus: map[string]int64{},
		ContainersByLeg:    map[string]int64{},
	}

	var statusRows []struct {
		Status string
		Count  int64
	}
	if err := s.db.WithContext(ctx).Model(&model.CargoContainer{}).
		Select("status, COUNT(*) as count").Group("status").Scan(&statusRows).Error; err != nil {
		return summary, fmt.Errorf("failed to count containers by status: %w", err)
	}
	for _, row := range statusRows {
		summary.ContainersByStatus[row.Status] = row.Count
	}

	var legRows []struct {
		CargoLeg string
		Count    int64
	}
	if err := s.db.WithContext(ctx).Model(&model.CargoContainer{}).
		Select("cargo_leg, COUNT(*) as count").Group("cargo_leg").Scan(&legRows).Error; err != nil {
		return summary, fmt.Errorf("failed to count containers by leg: %w", err)
	}
	for _, row := range legRows {
		summary.ContainersByLeg[row.CargoLeg] = row.Count
	}

	if err := s.db.WithContext(ctx).Model(&model.GoodsReceivedItem{}).
		Where("status = ?", model.ItemReceived).Count(&summary.ItemsInWarehouse).Error; err != nil {
		return summary, fmt.Errorf("failed to count warehouse items: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&model.Client{}).
		Where("is_active = ?", true).Count(&summary.ActiveClients).Error; err != nil {
		return summary, fmt.Errorf("failed to count clients: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("status = ?", model.InvoiceIssued).Count(&summary.InvoicesIssued).Error; err != nil {
		return summary, fmt.Errorf("failed to count issued invoices: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&model.Invoice{}).
		Where("status = ?", model.InvoicePaid).Count(&summary.InvoicesPaid).Error; err != nil {
		return summary, fmt.Errorf("failed to count paid invoices: %w", err)
	}

	var outstanding struct {
		Total string
	}
	s.db.WithContext(ctx).Model(&model.Invoice{}).
		Select("COALESCE(SUM(total_amount), 0)::text as total").
		Where("status = ?", model.InvoiceIssued).
		Scan(&outstanding)
	summary.OutstandingAmount = outstanding.Total

	return summary, nil
}

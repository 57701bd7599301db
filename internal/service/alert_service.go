package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"cargoflow/internal/repository"
	ws "cargoflow/internal/websocket"

	"github.com/google/uuid"
)

// OverdueAlert describes one goods item that has sat in a warehouse past
// the configured threshold without being loaded.
type OverdueAlert struct {
	ItemID           uuid.UUID `json:"item_id"`
	ContainerID      uuid.UUID `json:"container_id"`
	ContainerNumber  string    `json:"container_number"`
	SupplyTrackingID string    `json:"supply_tracking_id"`
	ShippingMark     string    `json:"shipping_mark"`
	Description      string    `json:"description"`
	ReceivedAt       time.Time `json:"received_at"`
	DaysOverdue      int       `json:"days_overdue"`
}

type AlertService interface {
	ListOverdue(ctx context.Context) ([]OverdueAlert, error)
	// BroadcastOverdue pushes the current overdue list to connected staff
	// dashboards. Called on a timer from main.
	BroadcastOverdue(ctx context.Context)
}

type alertService struct {
	goodsRepo    repository.GoodsRepository
	hub          *ws.Hub
	overdueAfter time.Duration
}

// NewAlertService builds an AlertService flagging items still RECEIVED
// after overdueDays days.
func NewAlertService(goodsRepo repository.GoodsRepository, hub *ws.Hub, overdueDays int) AlertService {
	if overdueDays <= 0 {
		overdueDays = 14
	}
	return &alertService{
		goodsRepo:    goodsRepo,
		hub:          hub,
		overdueAfter: time.Duration(overdueDays) * 24 * time.Hour,
	}
}

func (s *alertService) ListOverdue(ctx context.Context) ([]OverdueAlert, error) {
	cutoff := time.Now().Add(-s.overdueAfter)
	items, err := s.goodsRepo.ListOverdue(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch overdue items: %w", err)
	}

	alerts := make([]OverdueAlert, 0, len(items))
	for _, item := range items {
		alert := OverdueAlert{
			ItemID:           item.ID,
			ContainerID:      item.ContainerID,
			SupplyTrackingID: item.SupplyTrackingID,
			ShippingMark:     item.ShippingMark,
			Description:      item.Description,
			ReceivedAt:       item.ReceivedAt,
			DaysOverdue:      int(time.Since(item.ReceivedAt.Add(s.overdueAfter)).Hours() / 24),
		}
		if item.Container != nil {
			alert.ContainerNumber = item.Container.ContainerNumber
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func (s *alertService) BroadcastOverdue(ctx context.Context) {
	alerts, err := s.ListOverdue(ctx)
	if err != nil {
		log.Println("overdue alert scan failed:", err)
		return
	}
	if len(alerts) == 0 {
		return
	}
	s.hub.BroadcastEvent("overdue_items", map[string]interface{}{
		"count":  len(alerts),
		"alerts": alerts,
	})
}

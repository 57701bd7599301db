package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"cargoflow/internal/billing"
	"cargoflow/internal/export"
	"cargoflow/internal/model"
	"cargoflow/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

// GoodsItemPayload carries one item's fields. Measurements arrive as
// strings and are parsed at this boundary; blank means zero, matching how
// the warehouse teams leave unknown measurements empty.
type GoodsItemPayload struct {
	SupplyTrackingID string `json:"supply_tracking_id"`
	ShippingMark     string `json:"shipping_mark"`
	Description      string `json:"description"`
	Quantity         int    `json:"quantity" binding:"omitempty,gte=0"`
	CBM              string `json:"cbm"`
	Weight           string `json:"weight"`
	ReceivedAt       string `json:"received_at"` // RFC3339, defaults to now
}

type UpdateGoodsItemRequest struct {
	SupplyTrackingID *string `json:"supply_tracking_id"`
	ShippingMark     *string `json:"shipping_mark"`
	Description      *string `json:"description"`
	Quantity         *int    `json:"quantity" binding:"omitempty,gte=0"`
	CBM              *string `json:"cbm"`
	Weight           *string `json:"weight"`
	Status           *string `json:"status" binding:"omitempty,oneof=RECEIVED LOADED DELIVERED CLAIMED"`
}

// GoodsItemResponse includes the computed amount. Amount is recomputed on
// every read; "—" when the container has no pricing and no flat minimum
// applies.
type GoodsItemResponse struct {
	ID               uuid.UUID `json:"id"`
	ContainerID      uuid.UUID `json:"container_id"`
	SupplyTrackingID string    `json:"supply_tracking_id"`
	ShippingMark     string    `json:"shipping_mark"`
	Description      string    `json:"description"`
	Quantity         int       `json:"quantity"`
	CBM              string    `json:"cbm"`
	Weight           string    `json:"weight"`
	Status           string    `json:"status"`
	ReceivedAt       time.Time `json:"received_at"`
	Amount           string    `json:"amount"`
	AmountDisplay    string    `json:"amount_display"`
}

// --- Interface ---

type GoodsService interface {
	AddItem(ctx context.Context, containerID string, req GoodsItemPayload) (GoodsItemResponse, error)
	AddItems(ctx context.Context, containerID string, reqs []GoodsItemPayload) ([]GoodsItemResponse, error)
	UpdateItem(ctx context.Context, id string, req UpdateGoodsItemRequest) (GoodsItemResponse, error)
	DeleteItem(ctx context.Context, id string) error
	ListByContainer(ctx context.Context, containerID string) ([]GoodsItemResponse, error)
	ListByShippingMark(ctx context.Context, mark string, page, limit int) ([]GoodsItemResponse, int64, error)
	// ExportManifestCSV streams the container's manifest to w and returns the
	// suggested download name.
	ExportManifestCSV(ctx context.Context, containerID string, w io.Writer) (string, error)
}

type goodsService struct {
	goodsRepo     repository.GoodsRepository
	containerRepo repository.ContainerRepository
	auditRepo     repository.AuditRepository
}

func NewGoodsService(goodsRepo repository.GoodsRepository, containerRepo repository.ContainerRepository, auditRepo repository.AuditRepository) GoodsService {
	return &goodsService{goodsRepo: goodsRepo, containerRepo: containerRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func parseMeasurement(field, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", field, err)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative", field)
	}
	return v, nil
}

func (s *goodsService) buildItem(containerID uuid.UUID, req GoodsItemPayload) (model.GoodsReceivedItem, error) {
	cbm, err := parseMeasurement("cbm", req.CBM)
	if err != nil {
		return model.GoodsReceivedItem{}, err
	}
	weight, err := parseMeasurement("weight", req.Weight)
	if err != nil {
		return model.GoodsReceivedItem{}, err
	}

	receivedAt := time.Now()
	if req.ReceivedAt != "" {
		receivedAt, err = time.Parse(time.RFC3339, req.ReceivedAt)
		if err != nil {
			return model.GoodsReceivedItem{}, fmt.Errorf("invalid received_at: %w", err)
		}
	}

	return model.GoodsReceivedItem{
		ContainerID:      containerID,
		SupplyTrackingID: req.SupplyTrackingID,
		ShippingMark:     req.ShippingMark,
		Description:      req.Description,
		Quantity:         req.Quantity,
		CBM:              cbm,
		Weight:           weight,
		Status:           model.ItemReceived,
		ReceivedAt:       receivedAt,
	}, nil
}

func (s *goodsService) AddItem(ctx context.Context, containerID string, req GoodsItemPayload) (GoodsItemResponse, error) {
	items, err := s.AddItems(ctx, containerID, []GoodsItemPayload{req})
	if err != nil {
		return GoodsItemResponse{}, err
	}
	return items[0], nil
}

func (s *goodsService) AddItems(ctx context.Context, containerID string, reqs []GoodsItemPayload) ([]GoodsItemResponse, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("no items provided")
	}

	cid, err := uuid.Parse(containerID)
	if err != nil {
		return nil, fmt.Errorf("invalid container id: %w", err)
	}
	container, err := s.containerRepo.FindByID(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("container not found: %w", err)
	}

	items := make([]model.GoodsReceivedItem, 0, len(reqs))
	for i, req := range reqs {
		item, buildErr := s.buildItem(cid, req)
		if buildErr != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, buildErr)
		}
		items = append(items, item)
	}

	if err := s.goodsRepo.CreateBatch(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to create items: %w", err)
	}

	cfg := container.PricingConfig()
	result := make([]GoodsItemResponse, 0, len(items))
	for _, item := range items {
		s.auditItem(ctx, model.ActionCreateGoodsItem, item)
		result = append(result, toGoodsItemResponse(cfg, item))
	}
	return result, nil
}

func (s *goodsService) UpdateItem(ctx context.Context, id string, req UpdateGoodsItemRequest) (GoodsItemResponse, error) {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return GoodsItemResponse{}, fmt.Errorf("invalid item id: %w", err)
	}
	item, err := s.goodsRepo.FindByID(ctx, itemID)
	if err != nil {
		return GoodsItemResponse{}, fmt.Errorf("item not found: %w", err)
	}

	if req.SupplyTrackingID != nil {
		item.SupplyTrackingID = *req.SupplyTrackingID
	}
	if req.ShippingMark != nil {
		item.ShippingMark = *req.ShippingMark
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.CBM != nil {
		cbm, parseErr := parseMeasurement("cbm", *req.CBM)
		if parseErr != nil {
			return GoodsItemResponse{}, parseErr
		}
		item.CBM = cbm
	}
	if req.Weight != nil {
		weight, parseErr := parseMeasurement("weight", *req.Weight)
		if parseErr != nil {
			return GoodsItemResponse{}, parseErr
		}
		item.Weight = weight
	}
	if req.Status != nil {
		item.Status = *req.Status
	}

	if err := s.goodsRepo.Update(ctx, item); err != nil {
		return GoodsItemResponse{}, fmt.Errorf("failed to update item: %w", err)
	}

	container, err := s.containerRepo.FindByID(ctx, item.ContainerID)
	if err != nil {
		return GoodsItemResponse{}, fmt.Errorf("container not found: %w", err)
	}

	s.auditItem(ctx, model.ActionUpdateGoodsItem, *item)
	return toGoodsItemResponse(container.PricingConfig(), *item), nil
}

func (s *goodsService) DeleteItem(ctx context.Context, id string) error {
	itemID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid item id: %w", err)
	}
	item, err := s.goodsRepo.FindByID(ctx, itemID)
	if err != nil {
		return fmt.Errorf("item not found: %w", err)
	}
	if err := s.goodsRepo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	s.auditItem(ctx, model.ActionDeleteGoodsItem, *item)
	return nil
}

func (s *goodsService) ListByContainer(ctx context.Context, containerID string) ([]GoodsItemResponse, error) {
	cid, err := uuid.Parse(containerID)
	if err != nil {
		return nil, fmt.Errorf("invalid container id: %w", err)
	}
	container, err := s.containerRepo.FindByID(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("container not found: %w", err)
	}

	items, err := s.goodsRepo.ListByContainer(ctx, cid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	cfg := container.PricingConfig()
	result := make([]GoodsItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, toGoodsItemResponse(cfg, item))
	}
	return result, nil
}

func (s *goodsService) ListByShippingMark(ctx context.Context, mark string, page, limit int) ([]GoodsItemResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	items, total, err := s.goodsRepo.ListByShippingMark(ctx, mark, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch items: %w", err)
	}

	// Items here span containers, so pricing is resolved per item.
	result := make([]GoodsItemResponse, 0, len(items))
	for _, item := range items {
		cfg := billing.PricingConfig{}
		if container, findErr := s.containerRepo.FindByID(ctx, item.ContainerID); findErr == nil {
			cfg = container.PricingConfig()
		}
		result = append(result, toGoodsItemResponse(cfg, item))
	}
	return result, total, nil
}

func (s *goodsService) ExportManifestCSV(ctx context.Context, containerID string, w io.Writer) (string, error) {
	cid, err := uuid.Parse(containerID)
	if err != nil {
		return "", fmt.Errorf("invalid container id: %w", err)
	}
	container, err := s.containerRepo.FindByID(ctx, cid)
	if err != nil {
		return "", fmt.Errorf("container not found: %w", err)
	}
	items, err := s.goodsRepo.ListByContainer(ctx, cid)
	if err != nil {
		return "", fmt.Errorf("failed to fetch items: %w", err)
	}

	if err := export.WriteManifestCSV(w, *container, items); err != nil {
		return "", err
	}
	return export.ManifestFileName(*container), nil
}

// --- Helpers ---

func (s *goodsService) auditItem(ctx context.Context, action string, item model.GoodsReceivedItem) {
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   item.ID.String(),
		EntityName: item.ShippingMark + " / " + item.SupplyTrackingID,
		UserID:     UserIDFromContext(ctx),
	}
	_ = s.auditRepo.Log(ctx, entry)
}

// --- Mapping ---

func toGoodsItemResponse(cfg billing.PricingConfig, item model.GoodsReceivedItem) GoodsItemResponse {
	line := item.LineItem()
	return GoodsItemResponse{
		ID:               item.ID,
		ContainerID:      item.ContainerID,
		SupplyTrackingID: item.SupplyTrackingID,
		ShippingMark:     item.ShippingMark,
		Description:      item.Description,
		Quantity:         item.Quantity,
		CBM:              item.CBM.StringFixed(4),
		Weight:           item.Weight.StringFixed(4),
		Status:           item.Status,
		ReceivedAt:       item.ReceivedAt,
		Amount:           billing.ComputeItemAmount(cfg, line).StringFixed(2),
		AmountDisplay:    billing.DisplayAmount(cfg, line),
	}
}

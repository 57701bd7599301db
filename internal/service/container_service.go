package service

import (
	"context"
	"fmt"
	"time"

	"cargoflow/internal/model"
	"cargoflow/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// --- DTOs ---

type CreateContainerRequest struct {
	ContainerNumber   string `json:"container_number" binding:"required"`
	CargoLeg          string `json:"cargo_leg" binding:"required,oneof=SEA AIR"`
	WarehouseLocation string `json:"warehouse_location" binding:"required,oneof=CHINA GHANA"`
	ETA               string `json:"eta"` // RFC3339, optional
	Note              string `json:"note"`
}

type UpdateContainerRequest struct {
	ContainerNumber *string `json:"container_number"`
	Status          *string `json:"status" binding:"omitempty,oneof=IN_WAREHOUSE IN_TRANSIT ARRIVED DELIVERED"`
	ETA             *string `json:"eta"`
	Note            *string `json:"note"`
}

// UpdatePricingRequest carries the container's billing configuration. Rates
// arrive as strings so the boundary owns the decimal parsing, not the
// calculator (which assumes already-parsed values).
type UpdatePricingRequest struct {
	ExchangeRate string `json:"exchange_rate" binding:"required"`
	UnitRate     string `json:"unit_rate" binding:"required"`
}

type ContainerResponse struct {
	ID                uuid.UUID  `json:"id"`
	ContainerNumber   string     `json:"container_number"`
	CargoLeg          string     `json:"cargo_leg"`
	WarehouseLocation string     `json:"warehouse_location"`
	Status            string     `json:"status"`
	ExchangeRate      *string    `json:"exchange_rate"`
	UnitRate          *string    `json:"unit_rate"`
	HasPricing        bool       `json:"has_pricing"`
	LoadedAt          *time.Time `json:"loaded_at"`
	ETA               *time.Time `json:"eta"`
	ArrivedAt         *time.Time `json:"arrived_at"`
	Note              string     `json:"note"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type ContainerFilter struct {
	CargoLeg          string
	WarehouseLocation string
	Status            string
	Search            string
	Page              int
	Limit             int
}

// --- Interface ---

type ContainerService interface {
	CreateContainer(ctx context.Context, req CreateContainerRequest) (ContainerResponse, error)
	UpdateContainer(ctx context.Context, id string, req UpdateContainerRequest) (ContainerResponse, error)
	UpdatePricing(ctx context.Context, id string, req UpdatePricingRequest) (ContainerResponse, error)
	DeleteContainer(ctx context.Context, id string) error
	GetContainer(ctx context.Context, id string) (ContainerResponse, error)
	ListContainers(ctx context.Context, filter ContainerFilter) ([]ContainerResponse, int64, error)
}

type containerService struct {
	containerRepo repository.ContainerRepository
	auditRepo     repository.AuditRepository
}

func NewContainerService(containerRepo repository.ContainerRepository, auditRepo repository.AuditRepository) ContainerService {
	return &containerService{containerRepo: containerRepo, auditRepo: auditRepo}
}

// --- Implementation ---

func (s *containerService) CreateContainer(ctx context.Context, req CreateContainerRequest) (ContainerResponse, error) {
	container := model.CargoContainer{
		ContainerNumber:   req.ContainerNumber,
		CargoLeg:          req.CargoLeg,
		WarehouseLocation: req.WarehouseLocation,
		Status:            model.ContainerInWarehouse,
		Note:              req.Note,
	}

	if req.ETA != "" {
		eta, err := time.Parse(time.RFC3339, req.ETA)
		if err != nil {
			return ContainerResponse{}, fmt.Errorf("invalid eta: %w", err)
		}
		container.ETA = &eta
	}

	if err := s.containerRepo.Create(ctx, &container); err != nil {
		return ContainerResponse{}, fmt.Errorf("failed to create container: %w", err)
	}

	s.audit(ctx, model.ActionCreateContainer, container.ID.String(), container.ContainerNumber)
	return toContainerResponse(container), nil
}

func (s *containerService) UpdateContainer(ctx context.Context, id string, req UpdateContainerRequest) (ContainerResponse, error) {
	container, err := s.findContainer(ctx, id)
	if err != nil {
		return ContainerResponse{}, err
	}

	if req.ContainerNumber != nil {
		container.ContainerNumber = *req.ContainerNumber
	}
	if req.Status != nil && *req.Status != container.Status {
		applyStatusTimestamps(container, *req.Status)
		container.Status = *req.Status
	}
	if req.ETA != nil {
		if *req.ETA == "" {
			container.ETA = nil
		} else {
			eta, parseErr := time.Parse(time.RFC3339, *req.ETA)
			if parseErr != nil {
				return ContainerResponse{}, fmt.Errorf("invalid eta: %w", parseErr)
			}
			container.ETA = &eta
		}
	}
	if req.Note != nil {
		container.Note = *req.Note
	}

	if err := s.containerRepo.Update(ctx, container); err != nil {
		return ContainerResponse{}, fmt.Errorf("failed to update container: %w", err)
	}

	s.audit(ctx, model.ActionUpdateContainer, container.ID.String(), container.ContainerNumber)
	return toContainerResponse(*container), nil
}

// applyStatusTimestamps stamps transition times as the container moves
// through the pipeline.
func applyStatusTimestamps(container *model.CargoContainer, newStatus string) {
	now := time.Now()
	switch newStatus {
	case model.ContainerInTransit:
		if container.LoadedAt == nil {
			container.LoadedAt = &now
		}
	case model.ContainerArrived:
		if container.ArrivedAt == nil {
			container.ArrivedAt = &now
		}
	}
}

func (s *containerService) UpdatePricing(ctx context.Context, id string, req UpdatePricingRequest) (ContainerResponse, error) {
	container, err := s.findContainer(ctx, id)
	if err != nil {
		return ContainerResponse{}, err
	}

	exchangeRate, err := decimal.NewFromString(req.ExchangeRate)
	if err != nil {
		return ContainerResponse{}, fmt.Errorf("invalid exchange_rate: %w", err)
	}
	unitRate, err := decimal.NewFromString(req.UnitRate)
	if err != nil {
		return ContainerResponse{}, fmt.Errorf("invalid unit_rate: %w", err)
	}
	if exchangeRate.IsNegative() || unitRate.IsNegative() {
		return ContainerResponse{}, fmt.Errorf("rates must not be negative")
	}

	container.ExchangeRate = &exchangeRate
	container.UnitRate = &unitRate

	if err := s.containerRepo.Update(ctx, container); err != nil {
		return ContainerResponse{}, fmt.Errorf("failed to update pricing: %w", err)
	}

	s.audit(ctx, model.ActionUpdatePricing, container.ID.String(), container.ContainerNumber)
	return toContainerResponse(*container), nil
}

func (s *containerService) DeleteContainer(ctx context.Context, id string) error {
	container, err := s.findContainer(ctx, id)
	if err != nil {
		return err
	}
	if err := s.containerRepo.Delete(ctx, container.ID); err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}
	s.audit(ctx, model.ActionDeleteContainer, container.ID.String(), container.ContainerNumber)
	return nil
}

func (s *containerService) GetContainer(ctx context.Context, id string) (ContainerResponse, error) {
	container, err := s.findContainer(ctx, id)
	if err != nil {
		return ContainerResponse{}, err
	}
	return toContainerResponse(*container), nil
}

func (s *containerService) ListContainers(ctx context.Context, filter ContainerFilter) ([]ContainerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	containers, total, err := s.containerRepo.List(ctx, repository.ContainerListFilter{
		CargoLeg:          filter.CargoLeg,
		WarehouseLocation: filter.WarehouseLocation,
		Status:            filter.Status,
		Search:            filter.Search,
		Page:              filter.Page,
		Limit:             filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch containers: %w", err)
	}

	result := make([]ContainerResponse, 0, len(containers))
	for _, c := range containers {
		result = append(result, toContainerResponse(c))
	}
	return result, total, nil
}

// --- Helpers ---

func (s *containerService) findContainer(ctx context.Context, id string) (*model.CargoContainer, error) {
	containerID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid container id: %w", err)
	}
	container, err := s.containerRepo.FindByID(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("container not found: %w", err)
	}
	return container, nil
}

func (s *containerService) audit(ctx context.Context, action, entityID, entityName string) {
	entry := &model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
	}
	if uid := UserIDFromContext(ctx); uid != nil {
		entry.UserID = uid
	}
	// Audit failures are logged by the repo layer via gorm; they never fail
	// the primary operation.
	_ = s.auditRepo.Log(ctx, entry)
}

// --- Mapping ---

func toContainerResponse(c model.CargoContainer) ContainerResponse {
	resp := ContainerResponse{
		ID:                c.ID,
		ContainerNumber:   c.ContainerNumber,
		CargoLeg:          c.CargoLeg,
		WarehouseLocation: c.WarehouseLocation,
		Status:            c.Status,
		HasPricing:        c.PricingConfig().HasRates(),
		LoadedAt:          c.LoadedAt,
		ETA:               c.ETA,
		ArrivedAt:         c.ArrivedAt,
		Note:              c.Note,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
	if c.ExchangeRate != nil {
		v := c.ExchangeRate.StringFixed(4)
		resp.ExchangeRate = &v
	}
	if c.UnitRate != nil {
		v := c.UnitRate.StringFixed(4)
		resp.UnitRate = &v
	}
	return resp
}

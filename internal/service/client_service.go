package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cargoflow/internal/model"
	"cargoflow/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateClientRequest struct {
	Name         string `json:"name" binding:"required"`
	ShippingMark string `json:"shipping_mark" binding:"required"`
	Phone        string `json:"phone"`
	Email        string `json:"email" binding:"omitempty,email"`
	Address      string `json:"address"`
	Note         string `json:"note"`
}

type UpdateClientRequest struct {
	Name         *string `json:"name"`
	ShippingMark *string `json:"shipping_mark"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Address      *string `json:"address"`
	Note         *string `json:"note"`
	IsActive     *bool   `json:"is_active"`
}

type ClientResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ShippingMark string    `json:"shipping_mark"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	Address      string    `json:"address"`
	Note         string    `json:"note"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// --- Interface ---

type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
	GetClient(ctx context.Context, id string) (ClientResponse, error)
	GetClientByShippingMark(ctx context.Context, mark string) (ClientResponse, error)
	ListClients(ctx context.Context, search string, page, limit int) ([]ClientResponse, int64, error)
}

type clientService struct {
	clientRepo repository.ClientRepository
}

func NewClientService(clientRepo repository.ClientRepository) ClientService {
	return &clientService{clientRepo: clientRepo}
}

// --- Implementation ---

func (s *clientService) CreateClient(ctx context.Context, req CreateClientRequest) (ClientResponse, error) {
	// Shipping marks are the invoice grouping key; duplicates would make
	// client matching ambiguous.
	if existing, err := s.clientRepo.FindByShippingMark(ctx, req.ShippingMark); err == nil {
		return ClientResponse{}, fmt.Errorf("shipping mark %q already belongs to client %q", req.ShippingMark, existing.Name)
	}

	client := model.Client{
		Name:         req.Name,
		ShippingMark: req.ShippingMark,
		Phone:        req.Phone,
		Email:        req.Email,
		Address:      req.Address,
		Note:         req.Note,
		IsActive:     true,
	}

	if err := s.clientRepo.Create(ctx, &client); err != nil {
		return ClientResponse{}, fmt.Errorf("failed to create client: %w", err)
	}

	return toClientResponse(client), nil
}

func (s *clientService) UpdateClient(ctx context.Context, id string, req UpdateClientRequest) (ClientResponse, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("invalid client id: %w", err)
	}

	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("client not found: %w", err)
	}

	if req.ShippingMark != nil && *req.ShippingMark != client.ShippingMark {
		if existing, findErr := s.clientRepo.FindByShippingMark(ctx, *req.ShippingMark); findErr == nil {
			return ClientResponse{}, fmt.Errorf("shipping mark %q already belongs to client %q", *req.ShippingMark, existing.Name)
		}
		client.ShippingMark = *req.ShippingMark
	}
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Note != nil {
		client.Note = *req.Note
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return ClientResponse{}, fmt.Errorf("failed to update client: %w", err)
	}

	return toClientResponse(*client), nil
}

func (s *clientService) DeleteClient(ctx context.Context, id string) error {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid client id: %w", err)
	}
	if _, err := s.clientRepo.FindByID(ctx, clientID); err != nil {
		return fmt.Errorf("client not found: %w", err)
	}
	return s.clientRepo.Delete(ctx, clientID)
}

func (s *clientService) GetClient(ctx context.Context, id string) (ClientResponse, error) {
	clientID, err := uuid.Parse(id)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("invalid client id: %w", err)
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		return ClientResponse{}, fmt.Errorf("client not found: %w", err)
	}
	return toClientResponse(*client), nil
}

func (s *clientService) GetClientByShippingMark(ctx context.Context, mark string) (ClientResponse, error) {
	client, err := s.clientRepo.FindByShippingMark(ctx, mark)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientResponse{}, fmt.Errorf("no client registered for shipping mark %q", mark)
		}
		return ClientResponse{}, err
	}
	return toClientResponse(*client), nil
}

func (s *clientService) ListClients(ctx context.Context, search string, page, limit int) ([]ClientResponse, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	clients, total, err := s.clientRepo.List(ctx, search, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}

	result := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		result = append(result, toClientResponse(c))
	}
	return result, total, nil
}

// --- Mapping ---

func toClientResponse(c model.Client) ClientResponse {
	return ClientResponse{
		ID:           c.ID,
		Name:         c.Name,
		ShippingMark: c.ShippingMark,
		Phone:        c.Phone,
		Email:        c.Email,
		Address:      c.Address,
		Note:         c.Note,
		IsActive:     c.IsActive,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

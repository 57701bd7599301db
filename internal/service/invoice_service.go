package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"cargoflow/internal/billing"
	"cargoflow/internal/export"
	"cargoflow/internal/model"
	"cargoflow/internal/repository"

	"github.com/google/uuid"
)

// --- DTOs ---

type InvoiceItemResponse struct {
	SupplyTrackingID string `json:"supply_tracking_id"`
	Description      string `json:"description"`
	Quantity         int    `json:"quantity"`
	Measurement      string `json:"measurement"`
	Amount           string `json:"amount"`
}

// InvoicePreviewGroup is one shipping-mark group of a container, aggregated
// live by the billing calculator. Nothing is persisted during preview.
type InvoicePreviewGroup struct {
	ShippingMark     string                `json:"shipping_mark"`
	ClientID         *uuid.UUID            `json:"client_id"`
	ClientName       string                `json:"client_name"`
	TotalQuantity    int                   `json:"total_quantity"`
	TotalMeasurement string                `json:"total_measurement"`
	TotalAmount      string                `json:"total_amount"`
	Items            []InvoiceItemResponse `json:"items"`
}

type InvoicePreviewResponse struct {
	ContainerID     uuid.UUID             `json:"container_id"`
	ContainerNumber string                `json:"container_number"`
	CargoLeg        string                `json:"cargo_leg"`
	Currency        string                `json:"currency"`
	HasPricing      bool                  `json:"has_pricing"`
	Groups          []InvoicePreviewGroup `json:"groups"`
}

type IssueInvoiceRequest struct {
	ContainerID  string `json:"container_id" binding:"required"`
	ShippingMark string `json:"shipping_mark" binding:"required"`
}

type InvoiceResponse struct {
	ID               uuid.UUID             `json:"id"`
	InvoiceNo        string                `json:"invoice_no"`
	ContainerID      uuid.UUID             `json:"container_id"`
	ContainerNumber  string                `json:"container_number,omitempty"`
	ClientID         *uuid.UUID            `json:"client_id"`
	ClientName       string                `json:"client_name,omitempty"`
	ShippingMark     string                `json:"shipping_mark"`
	CargoLeg         string                `json:"cargo_leg"`
	Currency         string                `json:"currency"`
	TotalQuantity    int                   `json:"total_quantity"`
	TotalMeasurement string                `json:"total_measurement"`
	TotalAmount      string                `json:"total_amount"`
	Status           string                `json:"status"`
	PaidAt           *time.Time            `json:"paid_at"`
	Items            []InvoiceItemResponse `json:"items,omitempty"`
	CreatedAt        time.Time             `json:"created_at"`
}

type InvoiceFilter struct {
	Status       string
	ShippingMark string
	ContainerID  string
	Page         int
	Limit        int
}

// --- Interface ---

type InvoiceService interface {
	PreviewContainer(ctx context.Context, containerID string) (InvoicePreviewResponse, error)
	IssueInvoice(ctx context.Context, req IssueInvoiceRequest) (InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (InvoiceResponse, error)
	ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error)
	MarkPaid(ctx context.Context, id string) (InvoiceResponse, error)
	// ExportPDF renders the frozen invoice snapshot as a PDF and returns the
	// suggested download name alongside the bytes.
	ExportPDF(ctx context.Context, id string) (string, []byte, error)
}

type invoiceService struct {
	invoiceRepo   repository.InvoiceRepository
	containerRepo repository.ContainerRepository
	goodsRepo     repository.GoodsRepository
	clientRepo    repository.ClientRepository
	auditRepo     repository.AuditRepository
	txManager     repository.TransactionManager
}

func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	containerRepo repository.ContainerRepository,
	goodsRepo repository.GoodsRepository,
	clientRepo repository.ClientRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:   invoiceRepo,
		containerRepo: containerRepo,
		goodsRepo:     goodsRepo,
		clientRepo:    clientRepo,
		auditRepo:     auditRepo,
		txManager:     txManager,
	}
}

// --- Implementation ---

func (s *invoiceService) PreviewContainer(ctx context.Context, containerID string) (InvoicePreviewResponse, error) {
	cid, err := uuid.Parse(containerID)
	if err != nil {
		return InvoicePreviewResponse{}, fmt.Errorf("invalid container id: %w", err)
	}
	container, err := s.containerRepo.FindByID(ctx, cid)
	if err != nil {
		return InvoicePreviewResponse{}, fmt.Errorf("container not found: %w", err)
	}
	items, err := s.goodsRepo.ListByContainer(ctx, cid)
	if err != nil {
		return InvoicePreviewResponse{}, fmt.Errorf("failed to fetch items: %w", err)
	}

	cfg := container.PricingConfig()
	lines := make([]billing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, item.LineItem())
	}

	groups := billing.BuildInvoiceGroups(cfg, lines)
	resp := InvoicePreviewResponse{
		ContainerID:     container.ID,
		ContainerNumber: container.ContainerNumber,
		CargoLeg:        container.CargoLeg,
		Currency:        billing.DefaultCurrency,
		HasPricing:      cfg.HasRates(),
		Groups:          make([]InvoicePreviewGroup, 0, len(groups)),
	}

	for _, group := range groups {
		preview := InvoicePreviewGroup{
			ShippingMark:     group.ShippingMark,
			TotalQuantity:    group.TotalQuantity,
			TotalMeasurement: group.TotalMeasurement.StringFixed(4),
			TotalAmount:      group.TotalAmount.StringFixed(2),
			Items:            make([]InvoiceItemResponse, 0, len(group.Items)),
		}
		if client, findErr := s.clientRepo.FindByShippingMark(ctx, group.ShippingMark); findErr == nil {
			preview.ClientID = &client.ID
			preview.ClientName = client.Name
		}
		for _, line := range group.Items {
			preview.Items = append(preview.Items, InvoiceItemResponse{
				SupplyTrackingID: line.SupplyTrackingID,
				Description:      line.Description,
				Quantity:         line.Quantity,
				Measurement:      billing.Measurement(cfg, line).StringFixed(4),
				Amount:           billing.ComputeItemAmount(cfg, line).StringFixed(2),
			})
		}
		resp.Groups = append(resp.Groups, preview)
	}

	return resp, nil
}

// IssueInvoice freezes one shipping-mark group of a container into a
// persisted invoice. The snapshot is written in one transaction; the live
// items stay untouched and keep recomputing on read.
func (s *invoiceService) IssueInvoice(ctx context.Context, req IssueInvoiceRequest) (InvoiceResponse, error) {
	cid, err := uuid.Parse(req.ContainerID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid container id: %w", err)
	}
	container, err := s.containerRepo.FindByID(ctx, cid)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("container not found: %w", err)
	}

	allItems, err := s.goodsRepo.ListByContainer(ctx, cid)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to fetch items: %w", err)
	}

	// Collect the group's items, honoring the Unknown bucket for blank marks.
	var groupItems []model.GoodsReceivedItem
	for _, item := range allItems {
		mark := item.ShippingMark
		if mark == "" {
			mark = billing.UnknownShippingMark
		}
		if mark == req.ShippingMark {
			groupItems = append(groupItems, item)
		}
	}
	if len(groupItems) == 0 {
		return InvoiceResponse{}, fmt.Errorf("no items with shipping mark %q in container %s", req.ShippingMark, container.ContainerNumber)
	}

	cfg := container.PricingConfig()
	lines := make([]billing.LineItem, 0, len(groupItems))
	for _, item := range groupItems {
		lines = append(lines, item.LineItem())
	}
	group := billing.AggregateGroup(cfg, lines)

	invoiceNo, err := s.generateInvoiceNo(ctx)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to generate invoice number: %w", err)
	}

	invoice := model.Invoice{
		InvoiceNo:        invoiceNo,
		ContainerID:      container.ID,
		ShippingMark:     group.ShippingMark,
		CargoLeg:         container.CargoLeg,
		Currency:         billing.DefaultCurrency,
		TotalQuantity:    group.TotalQuantity,
		TotalMeasurement: group.TotalMeasurement,
		TotalAmount:      group.TotalAmount,
		Status:           model.InvoiceIssued,
	}

	if client, findErr := s.clientRepo.FindByShippingMark(ctx, group.ShippingMark); findErr == nil {
		invoice.ClientID = &client.ID
	}

	for _, item := range groupItems {
		itemID := item.ID
		invoice.Items = append(invoice.Items, model.InvoiceItem{
			GoodsItemID:      &itemID,
			SupplyTrackingID: item.SupplyTrackingID,
			Description:      item.Description,
			Quantity:         item.Quantity,
			Measurement:      billing.Measurement(cfg, item.LineItem()),
			Amount:           billing.ComputeItemAmount(cfg, item.LineItem()),
		})
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		return s.invoiceRepo.Create(txCtx, &invoice)
	})
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to issue invoice: %w", err)
	}

	s.audit(ctx, model.ActionIssueInvoice, invoice.ID.String(), invoice.InvoiceNo)

	reloaded, err := s.invoiceRepo.FindByIDWithItems(ctx, invoice.ID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return toInvoiceResponse(*reloaded), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, id string) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}
	invoice, err := s.invoiceRepo.FindByIDWithItems(ctx, invoiceID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invoice not found: %w", err)
	}
	return toInvoiceResponse(*invoice), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context, filter InvoiceFilter) ([]InvoiceResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	invoices, total, err := s.invoiceRepo.List(ctx, repository.InvoiceListFilter{
		Status:       filter.Status,
		ShippingMark: filter.ShippingMark,
		ContainerID:  filter.ContainerID,
		Page:         filter.Page,
		Limit:        filter.Limit,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch invoices: %w", err)
	}

	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, toInvoiceResponse(inv))
	}
	return result, total, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, id string) (InvoiceResponse, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("invalid invoice id: %w", err)
	}

	var invoice *model.Invoice
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		var findErr error
		invoice, findErr = s.invoiceRepo.FindByID(txCtx, invoiceID)
		if findErr != nil {
			return fmt.Errorf("invoice not found: %w", findErr)
		}
		if invoice.Status == model.InvoicePaid {
			return errors.New("invoice is already paid")
		}

		now := time.Now()
		invoice.Status = model.InvoicePaid
		invoice.PaidAt = &now
		return s.invoiceRepo.Update(txCtx, invoice)
	})
	if err != nil {
		return InvoiceResponse{}, err
	}

	s.audit(ctx, model.ActionPayInvoice, invoice.ID.String(), invoice.InvoiceNo)

	reloaded, err := s.invoiceRepo.FindByIDWithItems(ctx, invoice.ID)
	if err != nil {
		return InvoiceResponse{}, fmt.Errorf("failed to reload invoice: %w", err)
	}
	return toInvoiceResponse(*reloaded), nil
}

func (s *invoiceService) ExportPDF(ctx context.Context, id string) (string, []byte, error) {
	invoiceID, err := uuid.Parse(id)
	if err != nil {
		return "", nil, fmt.Errorf("invalid invoice id: %w", err)
	}
	invoice, err := s.invoiceRepo.FindByIDWithItems(ctx, invoiceID)
	if err != nil {
		return "", nil, fmt.Errorf("invoice not found: %w", err)
	}

	data, err := export.InvoicePDF(*invoice)
	if err != nil {
		return "", nil, err
	}
	return export.InvoiceFileName(*invoice), data, nil
}

// generateInvoiceNo builds a display identifier from a date stamp and a
// random suffix, e.g. INV-20250812-4821. It carries no billing meaning;
// collisions are retried a few times against the unique index.
func (s *invoiceService) generateInvoiceNo(ctx context.Context) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		candidate := fmt.Sprintf("INV-%s-%04d", time.Now().Format("20060102"), rand.Intn(10000))
		exists, err := s.invoiceRepo.ExistsByNo(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", errors.New("could not find a free invoice number")
}

func (s *invoiceService) audit(ctx context.Context, action, entityID, entityName string) {
	_ = s.auditRepo.Log(ctx, &model.AuditLog{
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		UserID:     UserIDFromContext(ctx),
	})
}

// --- Mapping ---

func toInvoiceResponse(inv model.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:               inv.ID,
		InvoiceNo:        inv.InvoiceNo,
		ContainerID:      inv.ContainerID,
		ClientID:         inv.ClientID,
		ShippingMark:     inv.ShippingMark,
		CargoLeg:         inv.CargoLeg,
		Currency:         inv.Currency,
		TotalQuantity:    inv.TotalQuantity,
		TotalMeasurement: inv.TotalMeasurement.StringFixed(4),
		TotalAmount:      inv.TotalAmount.StringFixed(2),
		Status:           inv.Status,
		PaidAt:           inv.PaidAt,
		CreatedAt:        inv.CreatedAt,
	}
	if inv.Container != nil {
		resp.ContainerNumber = inv.Container.ContainerNumber
	}
	if inv.Client != nil {
		resp.ClientName = inv.Client.Name
	}
	for _, item := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			SupplyTrackingID: item.SupplyTrackingID,
			Description:      item.Description,
			Quantity:         item.Quantity,
			Measurement:      item.Measurement.StringFixed(4),
			Amount:           item.Amount.StringFixed(2),
		})
	}
	return resp
}

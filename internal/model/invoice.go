package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus constants
const (
	InvoiceIssued = "ISSUED"
	InvoicePaid   = "PAID"
	InvoiceVoided = "VOIDED"
)

// Invoice is the persisted snapshot of one shipping-mark group within a
// container, taken at issue time. Totals are frozen copies of what the
// billing calculator produced then; live views always recompute instead of
// reading these back.
type Invoice struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceNo        string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"invoice_no"`
	ContainerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"container_id"`
	Container        *CargoContainer `gorm:"foreignKey:ContainerID" json:"container,omitempty"`
	ClientID         *uuid.UUID      `gorm:"type:uuid;index" json:"client_id"` // nil when no client owns the mark
	Client           *Client         `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	ShippingMark     string          `gorm:"type:varchar(100);not null;index" json:"shipping_mark"`
	CargoLeg         string          `gorm:"type:varchar(10);not null" json:"cargo_leg"`
	Currency         string          `gorm:"type:varchar(10);not null" json:"currency"`
	TotalQuantity    int             `gorm:"type:int;not null" json:"total_quantity"`
	TotalMeasurement decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_measurement"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	Status           string          `gorm:"type:varchar(20);not null;default:'ISSUED';index" json:"status"`
	PaidAt           *time.Time      `json:"paid_at"`
	Items            []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// InvoiceItem is one frozen line on an issued invoice.
type InvoiceItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	InvoiceID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	GoodsItemID      *uuid.UUID      `gorm:"type:uuid;index" json:"goods_item_id"` // source item, nullable if later deleted
	SupplyTrackingID string          `gorm:"type:varchar(100)" json:"supply_tracking_id"`
	Description      string          `gorm:"type:text" json:"description"`
	Quantity         int             `gorm:"type:int;not null" json:"quantity"`
	Measurement      decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"measurement"` // CBM or kg per the leg
	Amount           decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
}

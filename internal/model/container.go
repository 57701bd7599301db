package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"cargoflow/internal/billing"
)

// CargoLeg enum constants (which measurement is billable)
const (
	CargoLegSea = "SEA"
	CargoLegAir = "AIR"
)

// WarehouseLocation enum constants
const (
	WarehouseChina = "CHINA"
	WarehouseGhana = "GHANA"
)

// ContainerStatus constants
const (
	ContainerInWarehouse = "IN_WAREHOUSE"
	ContainerInTransit   = "IN_TRANSIT"
	ContainerArrived     = "ARRIVED"
	ContainerDelivered   = "DELIVERED"
)

// CargoContainer is one sea container or air waybill batch. ExchangeRate and
// UnitRate are nullable: until staff configure pricing, item amounts are
// undefined and shown as unavailable, never as zero.
type CargoContainer struct {
	ID                uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContainerNumber   string              `gorm:"type:varchar(100);uniqueIndex;not null" json:"container_number"`
	CargoLeg          string              `gorm:"type:varchar(10);not null;index" json:"cargo_leg"`           // SEA, AIR
	WarehouseLocation string              `gorm:"type:varchar(10);not null;index" json:"warehouse_location"`  // CHINA, GHANA
	Status            string              `gorm:"type:varchar(20);not null;default:'IN_WAREHOUSE';index" json:"status"`
	ExchangeRate      *decimal.Decimal    `gorm:"type:decimal(18,4)" json:"exchange_rate"` // the "dollar rate"
	UnitRate          *decimal.Decimal    `gorm:"type:decimal(18,4)" json:"unit_rate"`     // per CBM or per kg
	LoadedAt          *time.Time          `json:"loaded_at"`
	ETA               *time.Time          `json:"eta"`
	ArrivedAt         *time.Time          `json:"arrived_at"`
	Note              string              `gorm:"type:text" json:"note"`
	Items             []GoodsReceivedItem `gorm:"foreignKey:ContainerID" json:"items,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	DeletedAt         gorm.DeletedAt      `gorm:"index" json:"-"`
}

// PricingConfig projects the container's billing fields into the pure
// calculator's input type. Nil rates become zero, which the calculator
// treats as "not configured".
func (c CargoContainer) PricingConfig() billing.PricingConfig {
	cfg := billing.PricingConfig{
		CargoLeg:          billing.CargoLeg(c.CargoLeg),
		WarehouseLocation: billing.WarehouseLocation(c.WarehouseLocation),
	}
	if c.ExchangeRate != nil {
		cfg.ExchangeRate = *c.ExchangeRate
	}
	if c.UnitRate != nil {
		cfg.UnitRate = *c.UnitRate
	}
	return cfg
}

// ItemStatus constants for goods-received items
const (
	ItemReceived  = "RECEIVED"
	ItemLoaded    = "LOADED"
	ItemDelivered = "DELIVERED"
	ItemClaimed   = "CLAIMED"
)

// GoodsReceivedItem is one line item within a container. CBM is meaningful
// for sea freight, Weight (kg) for air; the billing package picks the axis.
// Amounts are computed on read and never stored on the item.
type GoodsReceivedItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ContainerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"container_id"`
	Container        *CargoContainer `gorm:"foreignKey:ContainerID" json:"-"`
	SupplyTrackingID string          `gorm:"type:varchar(100);index" json:"supply_tracking_id"`
	ShippingMark     string          `gorm:"type:varchar(100);index" json:"shipping_mark"`
	Description      string          `gorm:"type:text" json:"description"`
	Quantity         int             `gorm:"type:int;not null;default:0" json:"quantity"`
	CBM              decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"cbm"`
	Weight           decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"weight"`
	Status           string          `gorm:"type:varchar(20);not null;default:'RECEIVED';index" json:"status"`
	ReceivedAt       time.Time       `gorm:"not null" json:"received_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

// LineItem projects the item into the calculator's input type.
func (g GoodsReceivedItem) LineItem() billing.LineItem {
	return billing.LineItem{
		Quantity:         g.Quantity,
		CBM:              g.CBM,
		Weight:           g.Weight,
		ShippingMark:     g.ShippingMark,
		SupplyTrackingID: g.SupplyTrackingID,
		Description:      g.Description,
	}
}

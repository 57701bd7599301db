package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is a freight customer. The shipping mark is the business key:
// goods-received items carry the mark as free text, and invoices are matched
// back to the client owning that mark.
type Client struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	ShippingMark string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"shipping_mark"`
	Phone        string         `gorm:"type:varchar(50)" json:"phone"`
	Email        string         `gorm:"type:varchar(255)" json:"email"`
	Address      string         `gorm:"type:text" json:"address"`
	Note         string         `gorm:"type:text" json:"note"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

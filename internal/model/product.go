package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a downloadable digital product in the catalog.
type Product struct {
	ID           uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string          `json:"name" gorm:"size:255;not null;index"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Image        string          `json:"image,omitempty" gorm:"size:512"`
	Description  string          `json:"description,omitempty" gorm:"type:text"`
	DownloadLink string          `json:"downloadLink" gorm:"size:512;not null"`
	Discount     int             `json:"discount" gorm:"not null;default:0"` // percent, 0-100
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// EffectivePrice returns the price after discount, rounded to the whole unit.
// A zero discount returns the list price unchanged.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.Discount <= 0 {
		return p.Price
	}
	factor := decimal.NewFromInt(int64(100 - p.Discount)).Div(decimal.NewFromInt(100))
	return p.Price.Mul(factor).Round(0)
}

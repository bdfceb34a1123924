package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the lifecycle state of a payment.
// There is no rejected state: rejection deletes the record.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusApproved PaymentStatus = "Approved"
)

// Payment represents a manually-verified UPI checkout. The amount and
// reference id are taken from the buyer as submitted; verification happens
// during admin review, not here.
type Payment struct {
	ID          uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID       `json:"userId" gorm:"type:char(36);not null;index"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	ReferenceID string          `json:"referenceId" gorm:"size:64;not null"`
	Status      PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'Pending';index"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User  User          `json:"-" gorm:"foreignKey:UserID"`
	Items []PaymentItem `json:"items,omitempty" gorm:"foreignKey:PaymentID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProductIDs returns the referenced product ids in submission order.
func (p *Payment) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Items))
	for _, item := range p.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// PaymentItem is one product reference inside a payment. Position preserves
// the order the buyer submitted. The product reference is weak: deleting a
// product leaves the item dangling, and readers skip items whose product is
// gone.
type PaymentItem struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	PaymentID uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:char(36);not null;index"`
	Position  int       `json:"-" gorm:"not null"`
}

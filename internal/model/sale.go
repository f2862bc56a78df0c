package model

import "github.com/google/uuid"

// Payment methods accepted at the register.
const (
	PaymentCash   = "cash"
	PaymentMobile = "mobile"
)

// Sale is an immutable ledger entry. Once written it is never updated or
// deleted; the repository exposes no mutation for it.
type Sale struct {
	BaseModel
	Items         []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	Total         int64      `gorm:"not null" json:"total"` // Always Σ quantity * price_at_sale
	PaymentMethod string     `gorm:"type:varchar(20);not null" json:"payment_method"`
}

// SaleItem is a frozen line of a committed sale. PriceAtSale is snapshotted
// at checkout and never re-read from the live product.
type SaleItem struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	SaleID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255)" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	PriceAtSale int64     `gorm:"not null" json:"price_at_sale"`
}

// Subtotal is quantity times the frozen unit price.
func (i SaleItem) Subtotal() int64 {
	return int64(i.Quantity) * i.PriceAtSale
}

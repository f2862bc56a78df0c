package model

// Product is a catalog entry. Prices are integers in the smallest currency
// unit (FCFA has no subunit, so price == display amount).
type Product struct {
	BaseModel
	Name      string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category  string `gorm:"type:varchar(100)" json:"category"`
	Price     int64  `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	CostPrice int64  `gorm:"not null;default:0" json:"cost_price" validate:"gte=0"`
	Stock     int    `gorm:"not null;default:0" json:"stock" validate:"gte=0"`
	MinStock  int    `gorm:"not null;default:0" json:"min_stock" validate:"gte=0"`
	Unit      string `gorm:"type:varchar(20)" json:"unit"`
	Barcode   string `gorm:"type:varchar(50)" json:"barcode,omitempty"`
}

// LowStock reports whether the product is at or below its restock threshold.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinStock
}

// ProductDraft is the create payload: everything but id and timestamps.
type ProductDraft struct {
	Name      string `json:"name" validate:"required"`
	Category  string `json:"category"`
	Price     int64  `json:"price" validate:"gte=0"`
	CostPrice int64  `json:"cost_price" validate:"gte=0"`
	Stock     int    `json:"stock" validate:"gte=0"`
	MinStock  int    `json:"min_stock" validate:"gte=0"`
	Unit      string `json:"unit"`
	Barcode   string `json:"barcode"`
}

// ProductPatch carries a partial update. Nil fields are left untouched so a
// PUT with only {"price": 900} does not zero the rest of the row.
type ProductPatch struct {
	Name      *string `json:"name"`
	Category  *string `json:"category"`
	Price     *int64  `json:"price" validate:"omitempty,gte=0"`
	CostPrice *int64  `json:"cost_price" validate:"omitempty,gte=0"`
	Stock     *int    `json:"stock" validate:"omitempty,gte=0"`
	MinStock  *int    `json:"min_stock" validate:"omitempty,gte=0"`
	Unit      *string `json:"unit"`
	Barcode   *string `json:"barcode"`
}

// Apply merges the patch into the product. The id is never touched.
func (patch *ProductPatch) Apply(p *Product) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.CostPrice != nil {
		p.CostPrice = *patch.CostPrice
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.MinStock != nil {
		p.MinStock = *patch.MinStock
	}
	if patch.Unit != nil {
		p.Unit = *patch.Unit
	}
	if patch.Barcode != nil {
		p.Barcode = *patch.Barcode
	}
}

package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the API's persisted catalog entry.
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(255);not null;index:ix_products_name"`
	Description *string         `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:0"`
	ImageURL    *string         `gorm:"type:varchar(1024)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Product) TableName() string { return "products" }

// Fields is what create and update accept. Update replaces every field.
type Fields struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	Stock       int
	ImageURL    *string
}

func (f Fields) apply(p *Product) {
	p.Name = f.Name
	p.Description = f.Description
	p.Price = f.Price.Round(2)
	p.Stock = f.Stock
	p.ImageURL = f.ImageURL
}

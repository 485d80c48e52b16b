// Package productrepo provides data transfer objects and mapping functions for the product catalog.
package productrepo

import (
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for catalog entries.
type ProductDTO struct {
	ID      uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name    string          `gorm:"index"`
	Price   decimal.Decimal `gorm:"type:numeric(12,2)"`
	InStock bool
}

// TableName specifies the database table name for catalog entries.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product to its database representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:      p.ID().Bytes(),
		Name:    p.Name(),
		Price:   p.Price().Decimal(),
		InStock: p.InStock(),
	}
}

// toDomain converts a database DTO to a product.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoneyFromDecimal(dto.Price)
	if err != nil {
		return nil, err
	}
	return product.RestoreProduct(id, dto.Name, price, dto.InStock)
}

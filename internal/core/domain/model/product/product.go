package product

import (
	"errors"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrProductIsNotConstructed is returned when a Product instance was not
	// created through the NewProduct or RestoreProduct factory methods.
	ErrProductIsNotConstructed = errors.New("Product must be created via NewProduct or RestoreProduct constructor")
)

// Product is a catalog entry. The catalog holds the live price; carts point at
// products, orders snapshot them.
type Product struct {
	id      kernel.UUID
	name    string
	price   kernel.Money
	inStock bool

	isConstructed bool
}

// NewProduct creates a validated catalog entry.
func NewProduct(id kernel.UUID, name string, price kernel.Money, inStock bool) (*Product, error) {
	p := &Product{
		isConstructed: true,
		inStock:       inStock,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
	); err != nil {
		return nil, err
	}

	p.price = price
	return p, nil
}

// RestoreProduct reconstructs a catalog entry from persistence.
func RestoreProduct(id kernel.UUID, name string, price kernel.Money, inStock bool) (*Product, error) {
	return NewProduct(id, name, price, inStock)
}

// Validate ensures the Product instance was properly constructed through a
// factory method.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// IsEqual compares two products by their unique identifiers.
func (p *Product) IsEqual(other *Product) bool {
	return other != nil && p.id.IsEqual(other.id)
}

// ID returns the product's unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the catalog name.
func (p *Product) Name() string {
	return p.name
}

// Price returns the current catalog price.
func (p *Product) Price() kernel.Money {
	return p.price
}

// InStock reports whether the product can currently be purchased.
func (p *Product) InStock() bool {
	return p.inStock
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

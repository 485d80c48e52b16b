package cartrepo

import (
	"context"
	"errors"

	"storefront/internal/core/domain/model/cart"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Get retrieves the shopper's cart with its entries in insertion order.
func (r *GormCartRepository) Get(ctx context.Context, userID kernel.UUID) (*cart.Cart, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dto CartDTO
	if err := r.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cart", userID.String())
		}
		return nil, errs.NewTransientStoreError("get cart", err)
	}

	var itemDTOs []CartItemDTO
	err := r.db.WithContext(ctx).
		Order("position").
		Find(&itemDTOs, "user_id = ?", userID.Bytes()).Error
	if err != nil {
		return nil, errs.NewTransientStoreError("get cart items", err)
	}

	return toDomain(dto, itemDTOs)
}

// Save upserts the shopper's cart, replacing its stored entries wholesale.
// The cart is small enough that rewriting its rows beats diffing them.
func (r *GormCartRepository) Save(ctx context.Context, aggregate *cart.Cart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, itemDTOs := fromDomain(aggregate)

	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(&dto).Error
	if err != nil {
		return errs.NewTransientStoreError("save cart", err)
	}

	if err = db.Delete(&CartItemDTO{}, "user_id = ?", dto.UserID).Error; err != nil {
		return errs.NewTransientStoreError("clear cart items", err)
	}
	if len(itemDTOs) > 0 {
		if err = db.Create(&itemDTOs).Error; err != nil {
			return errs.NewTransientStoreError("save cart items", err)
		}
	}

	return nil
}

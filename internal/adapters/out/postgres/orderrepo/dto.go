// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"encoding/json"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Line items are stored as a jsonb document because they are an immutable
// snapshot read and written only as a whole; the status and merge-key columns
// are indexed for the per-user history read.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber     string          `gorm:"uniqueIndex"`
	UserID          uuid.UUID       `gorm:"type:uuid;index"`
	Status          string          `gorm:"index"`
	Items           []byte          `gorm:"type:jsonb"`
	Customer        CustomerDTO     `gorm:"embedded;embeddedPrefix:customer_"`
	Delivery        DeliveryDTO     `gorm:"embedded;embeddedPrefix:delivery_"`
	PaymentMethod   string          `gorm:"column:payment_method"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt       time.Time
	StatusUpdatedAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded contact snapshot within the order table.
type CustomerDTO struct {
	Name    string
	Phone   string
	Address string
}

// DeliveryDTO represents the embedded delivery window within the order table.
type DeliveryDTO struct {
	Date string
	Time string
}

// itemDTO is one line item inside the jsonb items document. The json keys
// match the API wire names so query handlers can decode the column directly.
type itemDTO struct {
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unitPrice"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) (OrderDTO, error) {
	items := aggregate.Items()
	itemDTOs := make([]itemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, itemDTO{
			ProductID:   item.ProductID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().String(),
		})
	}
	itemsJSON, err := json.Marshal(itemDTOs)
	if err != nil {
		return OrderDTO{}, err
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		UserID:      aggregate.UserID().Bytes(),
		Status:      aggregate.Status().String(),
		Items:       itemsJSON,
		Customer: CustomerDTO{
			Name:    aggregate.Customer().Name,
			Phone:   aggregate.Customer().Phone,
			Address: aggregate.Customer().Address,
		},
		Delivery: DeliveryDTO{
			Date: aggregate.Delivery().Date,
			Time: aggregate.Delivery().Time,
		},
		PaymentMethod:   aggregate.PaymentMethod(),
		TotalAmount:     aggregate.TotalAmount().Decimal(),
		CreatedAt:       aggregate.CreatedAt(),
		StatusUpdatedAt: aggregate.StatusUpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder so stored rows are
// validated on the way in.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var itemDTOs []itemDTO
	if err = json.Unmarshal(dto.Items, &itemDTOs); err != nil {
		return nil, err
	}
	items := make([]order.LineItem, 0, len(itemDTOs))
	for _, row := range itemDTOs {
		productID, pErr := kernel.UUIDFromBytes(row.ProductID[:])
		if pErr != nil {
			return nil, pErr
		}
		unitPrice, pErr := kernel.NewMoneyFromString(row.UnitPrice)
		if pErr != nil {
			return nil, pErr
		}
		item, pErr := order.NewLineItem(productID, row.ProductName, row.Quantity, unitPrice)
		if pErr != nil {
			return nil, pErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.OrderNumber,
		userID,
		items,
		order.CustomerInfo{Name: dto.Customer.Name, Phone: dto.Customer.Phone, Address: dto.Customer.Address},
		order.DeliveryWindow{Date: dto.Delivery.Date, Time: dto.Delivery.Time},
		dto.PaymentMethod,
		status,
		dto.CreatedAt,
		dto.StatusUpdatedAt,
	)
}

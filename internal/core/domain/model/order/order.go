package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrNoLineItems is returned when attempting to create an order without items.
	ErrNoLineItems = errs.NewValueIsRequiredError("order must contain at least one line item")
)

// Order represents a placed order. It is the aggregate root that owns the
// order's identity, its immutable line item snapshots, and the status
// lifecycle from pending through the terminal states.
//
// Order follows these invariants:
//   - Must have valid identity (id, order number, owning user)
//   - Line items, contact info, and the total are frozen at checkout
//   - Status transitions follow the table in the Status state machine
//   - statusUpdatedAt is monotonically non-decreasing
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains its
// invariants through validated methods. Status mutation happens exclusively
// through ChangeStatus; nothing else in the system writes order status.
type Order struct {
	id              kernel.UUID
	orderNumber     string
	userID          kernel.UUID
	items           []LineItem
	customer        CustomerInfo
	delivery        DeliveryWindow
	paymentMethod   string
	totalAmount     kernel.Money
	status          Status
	createdAt       time.Time
	statusUpdatedAt time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status from checkout data.
// The total amount is computed here, once, from the line item snapshots;
// it is not recomputed afterwards.
//
// Parameters:
//   - id: unique identifier for the order
//   - userID: the shopper who placed the order
//   - items: at least one line item snapshot
//   - customer: contact snapshot (all fields required)
//   - delivery: requested delivery window (both fields required)
//   - paymentMethod: payment tag, e.g. "cash" or "card"
//   - now: creation instant; also the first statusUpdatedAt
//
// Returns a validation error aggregating every invalid input.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []LineItem,
	customer CustomerInfo,
	delivery DeliveryWindow,
	paymentMethod string,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
		o.setCustomer(customer),
		o.setDelivery(delivery),
		o.setPaymentMethod(paymentMethod),
	); err != nil {
		return nil, err
	}

	o.orderNumber = NewOrderNumber(id)
	o.totalAmount = totalOf(o.items)
	o.createdAt = now
	o.statusUpdatedAt = now
	return o, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence.
// Unlike NewOrder it accepts an arbitrary valid status and the stored
// timestamps; it still validates every field so corrupt rows cannot produce
// a broken aggregate.
func RestoreOrder(
	id kernel.UUID,
	orderNumber string,
	userID kernel.UUID,
	items []LineItem,
	customer CustomerInfo,
	delivery DeliveryWindow,
	paymentMethod string,
	status Status,
	createdAt time.Time,
	statusUpdatedAt time.Time,
) (*Order, error) {
	o := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setUserID(userID),
		o.setItems(items),
		o.setCustomer(customer),
		o.setDelivery(delivery),
		o.setPaymentMethod(paymentMethod),
		o.setStatus(status),
		o.setOrderNumber(orderNumber),
	); err != nil {
		return nil, err
	}

	o.totalAmount = totalOf(o.items)
	o.createdAt = createdAt
	o.statusUpdatedAt = statusUpdatedAt
	return o, nil
}

// NewOrderNumber derives the human-readable order number from the order id.
// The shopper sees this, not the UUID.
func NewOrderNumber(id kernel.UUID) string {
	raw := strings.ReplaceAll(id.String(), "-", "")
	return "ORD-" + strings.ToUpper(raw[:8])
}

// Validate ensures the Order instance was properly constructed through a
// factory method. Call when reconstructing orders from persistence.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNumber returns the human-readable order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// UserID returns the owning shopper's identifier.
func (o *Order) UserID() kernel.UUID {
	return o.userID
}

// Items returns a copy of the line item snapshots.
func (o *Order) Items() []LineItem {
	items := make([]LineItem, len(o.items))
	copy(items, o.items)
	return items
}

// Customer returns the contact snapshot captured at checkout.
func (o *Order) Customer() CustomerInfo {
	return o.customer
}

// Delivery returns the requested delivery window.
func (o *Order) Delivery() DeliveryWindow {
	return o.delivery
}

// PaymentMethod returns the payment tag.
func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

// TotalAmount returns the frozen order total.
func (o *Order) TotalAmount() kernel.Money {
	return o.totalAmount
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns the checkout instant.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// StatusUpdatedAt returns the instant of the last successful transition.
func (o *Order) StatusUpdatedAt() time.Time {
	return o.statusUpdatedAt
}

// ChangeStatus moves the order along an edge of the status transition table
// and stamps statusUpdatedAt.
//
// On success it returns the StatusChangeEvent to hand to the fan-out channel.
// On failure the order is left completely unchanged and the error is an
// *errs.InvalidTransitionError.
//
// statusUpdatedAt strictly increases with every transition: if the supplied
// clock reads at or before the previous update (stalled clock, skew between
// replicas), the instant is bumped just past the previous one. Downstream
// merge rules treat equal timestamps as stale, so two transitions must never
// share one.
func (o *Order) ChangeStatus(next Status, now time.Time) (StatusChangeEvent, error) {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return StatusChangeEvent{}, err
	}

	if !now.After(o.statusUpdatedAt) {
		now = o.statusUpdatedAt.Add(time.Microsecond)
	}

	previous := o.status
	o.status = newStatus
	o.statusUpdatedAt = now

	return StatusChangeEvent{
		OrderID:     o.id,
		OrderNumber: o.orderNumber,
		UserID:      o.userID,
		Previous:    previous,
		New:         newStatus,
		OccurredAt:  now,
	}, nil
}

func totalOf(items []LineItem) kernel.Money {
	total := kernel.MoneyZero()
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("userId", err)
	}
	o.userID = userID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return ErrNoLineItems
	}
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID()]; ok {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("duplicate line item for product %s", item.ProductID()))
		}
		seen[item.ProductID()] = struct{}{}
	}
	o.items = make([]LineItem, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setCustomer(customer CustomerInfo) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setDelivery(delivery DeliveryWindow) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.delivery = delivery
	return nil
}

func (o *Order) setPaymentMethod(paymentMethod string) error {
	if paymentMethod == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	o.paymentMethod = paymentMethod
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

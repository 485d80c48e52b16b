package kernel

import (
	"fmt"

	"storefront/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object representing an exact monetary amount.
// It wraps github.com/shopspring/decimal to avoid floating-point rounding in
// prices and totals. Money carries no currency: the storefront prices
// everything in a single currency, so the amount alone is sufficient.
//
// Money is immutable; arithmetic methods return new values.
// The zero value represents zero money and is valid.
type Money struct {
	amount decimal.Decimal
}

// MoneyZero returns a Money of zero amount.
func MoneyZero() Money {
	return Money{amount: decimal.Zero}
}

// NewMoneyFromString parses a decimal string such as "199.99" into Money.
// Negative amounts are rejected: nothing in the storefront costs less than nothing.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoneyFromDecimal(d)
}

// NewMoneyFromDecimal wraps an existing decimal as Money.
// Negative amounts are rejected.
func NewMoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", d.String()))
	}
	return Money{amount: d}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// MulInt returns the amount multiplied by an integer factor, such as a line
// item quantity.
func (m Money) MulInt(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares two amounts for numeric equality ("1.5" equals "1.50").
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the plain decimal representation, e.g. "199.99".
func (m Money) String() string {
	return m.amount.String()
}

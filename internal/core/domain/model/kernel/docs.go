// Package kernel provides shared value objects used across the storefront domain.
//
// The package includes:
//   - UUID: an immutable identifier wrapping github.com/google/uuid
//   - Money: an exact decimal amount wrapping github.com/shopspring/decimal
//
// Both types are value objects in the Domain-Driven Design sense: immutable,
// compared by value, and validated at construction. The zero value of each is
// invalid and must be obtained through the provided factory functions.
package kernel

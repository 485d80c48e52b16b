// Package cart contains the shopping cart aggregate.
//
// A cart is a mutable scratchpad keyed by shopper: product references plus
// quantities, nothing more. Prices are never stored in the cart; they are read
// live from the catalog when the cart is displayed or checked out. Checkout
// converts the cart into an immutable order snapshot and clears it.
package cart

// Package services contains domain services that coordinate several
// aggregates for one business operation without belonging to any of them.
package services

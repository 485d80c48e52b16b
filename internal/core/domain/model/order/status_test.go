package order_test

import (
	"fmt"
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Constants(t *testing.T) {
	t.Run("should have correct enum values", func(t *testing.T) {
		assert.Equal(t, 0, int(order.Unknown))
		assert.Equal(t, 1, int(order.Pending))
		assert.Equal(t, 2, int(order.Processing))
		assert.Equal(t, 3, int(order.Delivered))
		assert.Equal(t, 4, int(order.Cancelled))
	})
}

func TestStatus_Validate(t *testing.T) {
	t.Run("should validate valid statuses", func(t *testing.T) {
		validStatuses := []order.Status{
			order.Pending,
			order.Processing,
			order.Delivered,
			order.Cancelled,
		}

		for _, status := range validStatuses {
			t.Run(fmt.Sprintf("should validate %s status", status.String()), func(t *testing.T) {
				require.NoError(t, status.Validate())
			})
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
		assert.Contains(t, err.Error(), "status")
	})

	t.Run("should reject out of range values", func(t *testing.T) {
		for _, status := range []order.Status{order.Status(-1), order.Status(5), order.Status(100)} {
			require.Error(t, status.Validate())
		}
	})
}

func TestStatus_String(t *testing.T) {
	t.Run("wire names are lower case", func(t *testing.T) {
		assert.Equal(t, "pending", order.Pending.String())
		assert.Equal(t, "processing", order.Processing.String())
		assert.Equal(t, "delivered", order.Delivered.String())
		assert.Equal(t, "cancelled", order.Cancelled.String())
		assert.Equal(t, "unknown", order.Unknown.String())
		assert.Equal(t, "unknown", order.Status(42).String())
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("round trips every valid status", func(t *testing.T) {
		for _, status := range []order.Status{order.Pending, order.Processing, order.Delivered, order.Cancelled} {
			parsed, err := order.StatusFromString(status.String())
			require.NoError(t, err)
			assert.Equal(t, status, parsed)
		}
	})

	t.Run("rejects unknown strings", func(t *testing.T) {
		for _, s := range []string{"", "unknown", "Pending", "shipped"} {
			_, err := order.StatusFromString(s)
			require.Error(t, err, "input %q", s)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestStatus_TransitionTable(t *testing.T) {
	type edge struct {
		from, to order.Status
	}

	allowed := []edge{
		{order.Pending, order.Processing},
		{order.Pending, order.Cancelled},
		{order.Processing, order.Delivered},
		{order.Processing, order.Cancelled},
	}

	isAllowed := func(e edge) bool {
		for _, a := range allowed {
			if a == e {
				return true
			}
		}
		return false
	}

	all := []order.Status{order.Pending, order.Processing, order.Delivered, order.Cancelled}

	t.Run("exactly the table edges are permitted", func(t *testing.T) {
		for _, from := range all {
			for _, to := range all {
				e := edge{from, to}
				next, err := from.TransitionTo(to)

				if isAllowed(e) {
					require.NoError(t, err, "%s -> %s should be allowed", from, to)
					assert.Equal(t, to, next)
				} else {
					require.Error(t, err, "%s -> %s should be rejected", from, to)
					require.ErrorIs(t, err, errs.ErrInvalidTransition)
					assert.Equal(t, order.Status(0), next)
				}
			}
		}
	})

	t.Run("terminal statuses have no outgoing edges", func(t *testing.T) {
		assert.True(t, order.Delivered.IsTerminal())
		assert.True(t, order.Cancelled.IsTerminal())
		assert.False(t, order.Pending.IsTerminal())
		assert.False(t, order.Processing.IsTerminal())

		for _, to := range all {
			_, err := order.Delivered.TransitionTo(to)
			require.Error(t, err)
			_, err = order.Cancelled.TransitionTo(to)
			require.Error(t, err)
		}
	})

	t.Run("self transitions are rejected", func(t *testing.T) {
		for _, s := range all {
			_, err := s.TransitionTo(s)
			require.Error(t, err, "%s -> %s must be rejected", s, s)
		}
	})

	t.Run("transition to Unknown is rejected as validation error", func(t *testing.T) {
		_, err := order.Pending.TransitionTo(order.Unknown)
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

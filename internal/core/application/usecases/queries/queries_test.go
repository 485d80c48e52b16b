package queries_test

import (
	"testing"

	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrdersByUserQuery(t *testing.T) {
	t.Run("creates valid query", func(t *testing.T) {
		userID := kernel.NewUUID()
		q, err := queries.NewGetOrdersByUserQuery(userID)
		require.NoError(t, err)
		assert.Equal(t, userID, q.UserID())
		require.NoError(t, q.Validate())
	})

	t.Run("rejects empty user id", func(t *testing.T) {
		_, err := queries.NewGetOrdersByUserQuery(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var q queries.GetOrdersByUserQuery
		require.ErrorIs(t, q.Validate(), queries.ErrGetOrdersByUserQueryIsNotConstructed)
	})
}

func TestNewGetCartQuery(t *testing.T) {
	t.Run("creates valid query", func(t *testing.T) {
		userID := kernel.NewUUID()
		q, err := queries.NewGetCartQuery(userID)
		require.NoError(t, err)
		assert.Equal(t, userID, q.UserID())
		require.NoError(t, q.Validate())
	})

	t.Run("rejects empty user id", func(t *testing.T) {
		_, err := queries.NewGetCartQuery(kernel.UUID{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var q queries.GetCartQuery
		require.ErrorIs(t, q.Validate(), queries.ErrGetCartQueryIsNotConstructed)
	})
}

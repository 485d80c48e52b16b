package commands_test

import (
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddCartItemCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		userID, productID := kernel.NewUUID(), kernel.NewUUID()
		cmd, err := commands.NewAddCartItemCommand(userID, productID, 3)
		require.NoError(t, err)

		assert.Equal(t, userID, cmd.UserID())
		assert.Equal(t, productID, cmd.ProductID())
		assert.Equal(t, 3, cmd.Quantity())
		require.NoError(t, cmd.Validate())
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		for _, qty := range []int{0, -5} {
			_, err := commands.NewAddCartItemCommand(kernel.NewUUID(), kernel.NewUUID(), qty)
			require.ErrorIs(t, err, errs.ErrValueIsOutOfRange, "quantity %d", qty)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AddCartItemCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrAddCartItemCommandIsNotConstructed)
	})
}

func TestNewSetCartItemQuantityCommand(t *testing.T) {
	t.Run("zero quantity is valid and means remove", func(t *testing.T) {
		cmd, err := commands.NewSetCartItemQuantityCommand(kernel.NewUUID(), kernel.NewUUID(), 0)
		require.NoError(t, err)
		assert.Equal(t, 0, cmd.Quantity())
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		_, err := commands.NewSetCartItemQuantityCommand(kernel.NewUUID(), kernel.NewUUID(), -1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestNewRemoveCartItemCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		cmd, err := commands.NewRemoveCartItemCommand(kernel.NewUUID(), kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("rejects empty ids", func(t *testing.T) {
		_, err := commands.NewRemoveCartItemCommand(kernel.UUID{}, kernel.NewUUID())
		require.Error(t, err)
		_, err = commands.NewRemoveCartItemCommand(kernel.NewUUID(), kernel.UUID{})
		require.Error(t, err)
	})
}

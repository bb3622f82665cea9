package commands_test

import (
	"testing"

	"afalstore/internal/core/application/usecases/commands"
	"afalstore/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBookCourierCommand(t *testing.T) {
	t.Run("should create valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewBookCourierCommand(orderID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
	})

	t.Run("should reject invalid order ID", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewBookCourierCommand(invalidID)

		require.Error(t, err)
	})
}

func TestBookCourierCommand_Validate(t *testing.T) {
	cmd := commands.BookCourierCommand{}

	err := cmd.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewBookCourierCommand constructor")
}

package commands_test

import (
	"encoding/json"
	"testing"
	"time"

	"afalstore/internal/core/application/usecases/commands"
	"afalstore/internal/core/domain/model/courier"
	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func makeEditableOrder(t *testing.T, editVersion int) *order.Order {
	t.Helper()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 2, 500)
	require.NoError(t, err)

	o, err := order.RestoreOrder(kernel.NewUUID(), order.Pending, editVersion, courier.TypeLeopards,
		nil, nil, order.Customer{Name: "Ayesha Khan", Phone: "+92 300 1234567",
			Address: "House 12, Street 4", City: "Lahore"},
		200, 0, "", []*order.Line{line})
	require.NoError(t, err)
	return o
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func TestSubmitOrderEditCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := makeEditableOrder(t, 1)
	newPhone := "+92 321 0000000"
	shipping := int64(300)

	cmd, err := commands.NewSubmitOrderEditCommand(o.ID(), 1, commands.EditPatch{
		Contact:        order.ContactPatch{Phone: &newPhone},
		ShippingAmount: &shipping,
	}, "customer changed phone", commands.ActorContext{TimeZone: "Asia/Karachi", UserAgent: "ua"})
	require.NoError(t, err)

	var savedRecord *order.EditRecord
	orderRepo := new(MockOrderRepository)
	editRepo := new(MockEditRecordRepository)
	uow := new(MockEditUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("UpdateWithVersion", mock.Anything, o, 1).Return(nil).Once(),
		uow.On("EditRecordRepository").Return(editRepo).Once(),
		editRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.EditRecord")).
			Run(func(args mock.Arguments) {
				savedRecord = args.Get(1).(*order.EditRecord)
			}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEditUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderEditCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.Subtotal)
	assert.Equal(t, int64(300), result.ShippingAmount)
	assert.Equal(t, int64(1300), result.Total)
	assert.Equal(t, 2, result.NewEditVersion)
	assert.False(t, result.CNBooked)

	require.NotNil(t, savedRecord)
	assert.True(t, savedRecord.OrderID().IsEqual(o.ID()))
	assert.Equal(t, "customer changed phone", savedRecord.Reason())

	var diff map[string]any
	require.NoError(t, json.Unmarshal([]byte(savedRecord.Diff()), &diff))
	fields := diff["fields"].(map[string]any)
	assert.Contains(t, fields, "customerPhone")
	assert.Contains(t, fields, "shippingAmount")
	assert.NotContains(t, fields, "customerName")

	orderRepo.AssertExpectations(t)
	editRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestSubmitOrderEditCommandHandler_Handle_VersionMismatch(t *testing.T) {
	ctx := t.Context()
	o := makeEditableOrder(t, 4)

	cmd, err := commands.NewSubmitOrderEditCommand(o.ID(), 3, commands.EditPatch{},
		"stale editor", commands.ActorContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockEditUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEditUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderEditCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	// Exactly one of two racing editors wins; the loser gets a version error
	// with no partial write.
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
	assert.Equal(t, 4, o.EditVersion())
	orderRepo.AssertNotCalled(t, "UpdateWithVersion", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSubmitOrderEditCommandHandler_Handle_NotEditable(t *testing.T) {
	ctx := t.Context()
	line, err := order.NewLine(kernel.NewUUID(), kernel.NewUUID(), 1, 100)
	require.NoError(t, err)
	o, err := order.RestoreOrder(kernel.NewUUID(), order.Shipped, 1, courier.TypeLeopards,
		nil, nil, order.Customer{Name: "N", Phone: "P", Address: "A", City: "C"},
		0, 0, "", []*order.Line{line})
	require.NoError(t, err)

	cmd, err := commands.NewSubmitOrderEditCommand(o.ID(), 1, commands.EditPatch{},
		"too late", commands.ActorContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockEditUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEditUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderEditCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrOrderNotEditable)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSubmitOrderEditCommandHandler_Handle_CNLockStripsFinancialsAndLines(t *testing.T) {
	ctx := t.Context()
	o := makeEditableOrder(t, 1)
	require.NoError(t, o.ConfirmBooking("LE-778899", nowUTC()))
	newAddress := "Flat 3B, Clifton Block 2"
	shipping := int64(999)

	cmd, err := commands.NewSubmitOrderEditCommand(o.ID(), 1, commands.EditPatch{
		Contact:        order.ContactPatch{Address: &newAddress},
		ShippingAmount: &shipping,
		Lines: []order.LineSpec{
			{VariantID: kernel.NewUUID(), Qty: 9, UnitPrice: 1},
		},
	}, "address fix after booking", commands.ActorContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	editRepo := new(MockEditRecordRepository)
	uow := new(MockEditUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		orderRepo.On("UpdateWithVersion", mock.Anything, o, 1).Return(nil).Once(),
		uow.On("EditRecordRepository").Return(editRepo).Once(),
		editRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.EditRecord")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEditUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderEditCommandHandler(factory)
	result, err := h.Handle(ctx, cmd)

	// Financial and line parts of the patch are discarded, not errored; the
	// contact change still goes through.
	require.NoError(t, err)
	assert.True(t, result.CNBooked)
	assert.Equal(t, int64(200), result.ShippingAmount)
	assert.Equal(t, int64(1000), result.Subtotal)
	assert.Equal(t, newAddress, o.Customer().Address)
	assert.Len(t, o.Lines(), 1)
	assert.Equal(t, 2, result.NewEditVersion)
}

func TestSubmitOrderEditCommandHandler_Handle_UnknownLineID(t *testing.T) {
	ctx := t.Context()
	o := makeEditableOrder(t, 1)
	unknownID := kernel.NewUUID()

	cmd, err := commands.NewSubmitOrderEditCommand(o.ID(), 1, commands.EditPatch{
		Lines: []order.LineSpec{
			{ID: &unknownID, VariantID: kernel.NewUUID(), Qty: 1, UnitPrice: 100},
		},
	}, "edit ghost line", commands.ActorContext{})
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockEditUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("GetForUpdate", mock.Anything, o.ID()).Return(o, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockEditUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSubmitOrderEditCommandHandler(factory)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	orderRepo.AssertNotCalled(t, "UpdateWithVersion", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestSubmitOrderEditCommandHandler_Handle_InvalidCommand(t *testing.T) {
	ctx := t.Context()

	factory := new(MockEditUoWFactory)
	h := commands.NewSubmitOrderEditCommandHandler(factory)

	_, err := h.Handle(ctx, commands.SubmitOrderEditCommand{})

	require.Error(t, err)
	factory.AssertNotCalled(t, "Create")
}

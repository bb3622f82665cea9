package commands_test

import (
	"context"

	"afalstore/internal/core/application/usecases/commands"
	"afalstore/internal/core/domain/model/courier"
	"afalstore/internal/core/domain/model/kernel"
	"afalstore/internal/core/domain/model/order"
	"afalstore/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateWithVersion(ctx context.Context, o *order.Order, expectedVersion int) error {
	args := m.Called(ctx, o, expectedVersion)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockEditRecordRepository struct{ mock.Mock }

func (m *MockEditRecordRepository) Add(ctx context.Context, record *order.EditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockEditUoW struct{ mock.Mock }

func (m *MockEditUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEditUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEditUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockEditUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockEditUoW) EditRecordRepository() ports.EditRecordRepository {
	args := m.Called()
	return args.Get(0).(ports.EditRecordRepository)
}

type MockEditUoWFactory struct{ mock.Mock }

func (m *MockEditUoWFactory) Create() commands.EditUoW {
	args := m.Called()
	return args.Get(0).(commands.EditUoW)
}

type MockLedgerClient struct{ mock.Mock }

func (m *MockLedgerClient) ReleaseReservation(ctx context.Context, orderID kernel.UUID, idempotencyKey string) error {
	args := m.Called(ctx, orderID, idempotencyKey)
	return args.Error(0)
}

func (m *MockLedgerClient) AdjustForStatusChange(ctx context.Context, adjustment ports.StockAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type MockCourierClient struct {
	mock.Mock
	courierType courier.Type
}

func (m *MockCourierClient) Type() courier.Type {
	return m.courierType
}

func (m *MockCourierClient) Book(ctx context.Context, request ports.BookingRequest) (ports.BookingConfirmation, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.BookingConfirmation), args.Error(1)
}

type MockCityMappingStore struct{ mock.Mock }

func (m *MockCityMappingStore) Lookup(
	ctx context.Context,
	courierType courier.Type,
	cityName string,
) (courier.CityMapping, error) {
	args := m.Called(ctx, courierType, cityName)
	return args.Get(0).(courier.CityMapping), args.Error(1)
}

type MockCourierLogRepository struct{ mock.Mock }

func (m *MockCourierLogRepository) Add(ctx context.Context, entry *courier.LogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

package loader_test

import (
	"context"
	"errors"
	"testing"

	"bulk-ingest/core/loader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockFeature struct {
	mock.Mock
	name string
}

func (m *mockFeature) Name() string { return m.name }

func (m *mockFeature) Run(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	orders := &mockFeature{name: "orders"}
	customers := &mockFeature{name: "customers"}
	customers.On("Run", ctx).Return(errors.New("batch failed"))

	m := loader.NewManager()
	m.Register(orders)
	m.Register(customers)

	assert.Equal(t, []string{"customers", "orders"}, m.Names())
	assert.EqualError(t, m.Run(ctx, "customers"), "batch failed")
	customers.AssertExpectations(t)
	orders.AssertNotCalled(t, "Run", mock.Anything)

	err := m.Run(ctx, "products")
	assert.ErrorContains(t, err, "unknown dataset")
}

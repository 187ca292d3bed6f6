package handler

import (
	"context"

	labelapp "github.com/Pratham6392/shipment/internal/application/label"
	"github.com/stretchr/testify/mock"
)

// MockLabelGenerator is a mock implementation of LabelGenerator
type MockLabelGenerator struct {
	mock.Mock
}

func (m *MockLabelGenerator) Generate(ctx context.Context, waybill string) (*labelapp.LabelResult, error) {
	args := m.Called(ctx, waybill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*labelapp.LabelResult), args.Error(1)
}

package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/kaufy/projection-engine/internal/domain"
)

type MockPortfolioRepository struct {
	mock.Mock
}

func (m *MockPortfolioRepository) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockPortfolioRepository) ListActiveUnits(ctx context.Context, tenantID uuid.UUID) ([]domain.Unit, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Unit), args.Error(1)
}

func (m *MockPortfolioRepository) ListActiveLeases(ctx context.Context, tenantID uuid.UUID) ([]domain.Lease, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lease), args.Error(1)
}

func (m *MockPortfolioRepository) ListLoans(ctx context.Context, tenantID uuid.UUID) ([]domain.Loan, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}

type MockMarketRepository struct {
	mock.Mock
}

func (m *MockMarketRepository) ActiveInterestRates(ctx context.Context) ([]domain.InterestRateEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InterestRateEntry), args.Error(1)
}

func (m *MockMarketRepository) TaxParameters(ctx context.Context) ([]domain.TaxParameter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxParameter), args.Error(1)
}

func (m *MockMarketRepository) ChurchTaxRate(ctx context.Context, stateCode string) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, stateCode)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

type MockProjectionCache struct {
	mock.Mock
}

func (m *MockProjectionCache) Get(ctx context.Context, key string) ([]domain.YearlySnapshot, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.YearlySnapshot), args.Bool(1), args.Error(2)
}

func (m *MockProjectionCache) Set(ctx context.Context, key string, snapshots []domain.YearlySnapshot, ttl time.Duration) error {
	args := m.Called(ctx, key, snapshots, ttl)
	return args.Error(0)
}

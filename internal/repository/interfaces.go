package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kaufy/projection-engine/internal/domain"
)

// PortfolioRepository defines the interface for a tenant's property records
type PortfolioRepository interface {
	// ListTenantIDs returns every tenant that owns at least one active property
	ListTenantIDs(ctx context.Context) ([]uuid.UUID, error)

	// ListActiveUnits retrieves units of active properties with their property's market value
	ListActiveUnits(ctx context.Context, tenantID uuid.UUID) ([]domain.Unit, error)

	// ListActiveLeases retrieves the tenant's active leases
	ListActiveLeases(ctx context.Context, tenantID uuid.UUID) ([]domain.Lease, error)

	// ListLoans retrieves all loans of the tenant
	ListLoans(ctx context.Context, tenantID uuid.UUID) ([]domain.Loan, error)
}

// MarketRepository defines the interface for financing and tax reference data
type MarketRepository interface {
	// ActiveInterestRates retrieves the current rate matrix
	ActiveInterestRates(ctx context.Context) ([]domain.InterestRateEntry, error)

	// TaxParameters retrieves the current tax constants
	TaxParameters(ctx context.Context) ([]domain.TaxParameter, error)

	// ChurchTaxRate returns the church tax rate in percent for a federal state, false when unknown
	ChurchTaxRate(ctx context.Context, stateCode string) (decimal.Decimal, bool, error)
}

// ProjectionCache stores projected snapshot sequences by key
type ProjectionCache interface {
	// Get returns the cached snapshots, false on a miss
	Get(ctx context.Context, key string) ([]domain.YearlySnapshot, bool, error)

	// Set stores snapshots for ttl; zero ttl means no expiry
	Set(ctx context.Context, key string, snapshots []domain.YearlySnapshot, ttl time.Duration) error
}

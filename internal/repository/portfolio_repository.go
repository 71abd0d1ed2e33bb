package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kaufy/projection-engine/internal/domain"
)

type portfolioRepository struct {
	db *sqlx.DB
}

func NewPortfolioRepository(db *sqlx.DB) PortfolioRepository {
	return &portfolioRepository{db: db}
}

func (r *portfolioRepository) ListTenantIDs(ctx context.Context) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT tenant_id
		FROM properties
		WHERE status = 'active'
		ORDER BY tenant_id
	`

	var tenantIDs []uuid.UUID
	err := r.db.SelectContext(ctx, &tenantIDs, query)
	if err != nil {
		return nil, err
	}

	return tenantIDs, nil
}

func (r *portfolioRepository) ListActiveUnits(ctx context.Context, tenantID uuid.UUID) ([]domain.Unit, error) {
	query := `
		SELECT u.id, u.property_id,
			COALESCE(u.area_sqm, 0) AS area_sqm,
			COALESCE(u.current_monthly_rent, 0) AS current_monthly_rent,
			COALESCE(p.market_value, 0) AS market_value,
			p.status AS property_status
		FROM units u
		JOIN properties p ON p.id = u.property_id
		WHERE u.tenant_id = $1 AND p.status = 'active'
		ORDER BY u.property_id, u.id
	`

	var units []domain.Unit
	err := r.db.SelectContext(ctx, &units, query, tenantID)
	if err != nil {
		return nil, err
	}

	return units, nil
}

func (r *portfolioRepository) ListActiveLeases(ctx context.Context, tenantID uuid.UUID) ([]domain.Lease, error) {
	query := `
		SELECT unit_id,
			COALESCE(monthly_rent, 0) AS monthly_rent,
			COALESCE(rent_cold_eur, 0) AS rent_cold_eur,
			status
		FROM leases
		WHERE tenant_id = $1 AND status = 'active'
	`

	var leases []domain.Lease
	err := r.db.SelectContext(ctx, &leases, query, tenantID)
	if err != nil {
		return nil, err
	}

	return leases, nil
}

func (r *portfolioRepository) ListLoans(ctx context.Context, tenantID uuid.UUID) ([]domain.Loan, error) {
	query := `
		SELECT id, property_id,
			COALESCE(outstanding_balance_eur, 0) AS outstanding_balance_eur,
			COALESCE(annuity_monthly_eur, 0) AS annuity_monthly_eur,
			COALESCE(interest_rate_percent, 0) AS interest_rate_percent
		FROM loans
		WHERE tenant_id = $1
	`

	var loans []domain.Loan
	err := r.db.SelectContext(ctx, &loans, query, tenantID)
	if err != nil {
		return nil, err
	}

	return loans, nil
}

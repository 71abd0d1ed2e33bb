package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/kaufy/projection-engine/internal/domain"
)

type marketRepository struct {
	db *sqlx.DB
}

func NewMarketRepository(db *sqlx.DB) MarketRepository {
	return &marketRepository{db: db}
}

func (r *marketRepository) ActiveInterestRates(ctx context.Context) ([]domain.InterestRateEntry, error) {
	query := `
		SELECT term_years, ltv_percent, interest_rate
		FROM interest_rates
		WHERE valid_until IS NULL
	`

	var entries []domain.InterestRateEntry
	err := r.db.SelectContext(ctx, &entries, query)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *marketRepository) TaxParameters(ctx context.Context) ([]domain.TaxParameter, error) {
	query := `
		SELECT code, value
		FROM tax_parameters
		WHERE valid_until IS NULL
	`

	var params []domain.TaxParameter
	err := r.db.SelectContext(ctx, &params, query)
	if err != nil {
		return nil, err
	}

	return params, nil
}

func (r *marketRepository) ChurchTaxRate(ctx context.Context, stateCode string) (decimal.Decimal, bool, error) {
	query := `
		SELECT rate
		FROM church_tax_rates
		WHERE state_code = $1
	`

	var rate decimal.Decimal
	err := r.db.GetContext(ctx, &rate, query, stateCode)
	if errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, false, nil
	}
	if err != nil {
		return decimal.Zero, false, err
	}

	return rate, true, nil
}

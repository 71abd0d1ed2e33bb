package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kaufy/projection-engine/internal/config"
	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/engine"
	"github.com/kaufy/projection-engine/internal/repository"
	customError "github.com/kaufy/projection-engine/pkg/errors"
)

type PortfolioService struct {
	repo        repository.PortfolioRepository
	projections *ProjectionService
	config      *config.Config
	logger      *logrus.Logger
}

func NewPortfolioService(
	repo repository.PortfolioRepository,
	projections *ProjectionService,
	config *config.Config,
	logger *logrus.Logger,
) *PortfolioService {
	return &PortfolioService{
		repo:        repo,
		projections: projections,
		config:      config,
		logger:      logger,
	}
}

// DefaultAssumptions returns the configured slider positions of the portfolio view
func (s *PortfolioService) DefaultAssumptions() domain.PortfolioAssumptions {
	return domain.PortfolioAssumptions{
		ValueGrowthRate: s.config.GetValueGrowthRate(),
		RentGrowthRate:  s.config.GetRentGrowthRate(),
		HorizonYears:    s.config.Projection.HorizonYears,
		MarginalTaxRate: s.config.GetMarginalTaxRate(),
	}
}

// Summary aggregates the tenant's portfolio, projects it and derives the cashflow statement
func (s *PortfolioService) Summary(ctx context.Context, tenantID uuid.UUID, assumptions domain.PortfolioAssumptions) (*domain.PortfolioResponse, error) {
	units, err := s.repo.ListActiveUnits(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	leases, err := s.repo.ListActiveLeases(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	loans, err := s.repo.ListLoans(ctx, tenantID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary, ok := engine.AggregatePortfolio(units, leases, loans)
	if !ok {
		return nil, customError.WrapPortfolioNotFound(tenantID.String())
	}

	input := summary.ProjectionInput(assumptions.ValueGrowthRate, assumptions.RentGrowthRate, assumptions.HorizonYears)

	// Stored loans may carry debt without an annuity; project them anyway and let
	// the degenerate flag tell the caller.
	if err := engine.Validate(input); err != nil {
		s.logger.WithError(err).WithField("tenantId", tenantID).Warn("Portfolio projection input is inconsistent")
	}

	return &domain.PortfolioResponse{
		TenantID:   tenantID,
		Summary:    summary,
		Cashflow:   engine.Cashflow(summary, assumptions.MarginalTaxRate),
		Projection: s.projections.project(ctx, input, nil),
	}, nil
}

// WarmCache projects every tenant's portfolio with the default assumptions.
// It returns how many portfolios were projected; single tenant failures are logged and skipped.
func (s *PortfolioService) WarmCache(ctx context.Context) (int, error) {
	tenantIDs, err := s.repo.ListTenantIDs(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	assumptions := s.DefaultAssumptions()
	warmed := 0

	for _, tenantID := range tenantIDs {
		if err := ctx.Err(); err != nil {
			return warmed, err
		}

		resp, err := s.Summary(ctx, tenantID, assumptions)
		if err != nil {
			s.logger.WithError(err).WithField("tenantId", tenantID).Error("Failed to project portfolio")
			continue
		}

		if resp.Projection.Degenerate {
			s.logger.WithFields(logrus.Fields{
				"tenantId":          tenantID,
				"totalDebt":         resp.Summary.TotalDebt.String(),
				"annualDebtService": resp.Summary.AnnualDebtService.String(),
			}).Warn("Portfolio debt service does not amortize")
		}

		warmed++
	}

	return warmed, nil
}

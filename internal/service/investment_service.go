package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/kaufy/projection-engine/internal/config"
	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/engine"
	"github.com/kaufy/projection-engine/internal/repository"
	customError "github.com/kaufy/projection-engine/pkg/errors"
)

type InvestmentService struct {
	repo   repository.MarketRepository
	config *config.Config
	logger *logrus.Logger
}

func NewInvestmentService(
	repo repository.MarketRepository,
	config *config.Config,
	logger *logrus.Logger,
) *InvestmentService {
	return &InvestmentService{
		repo:   repo,
		config: config,
		logger: logger,
	}
}

// Calculate evaluates an acquisition against the current rate matrix and tax parameters
func (s *InvestmentService) Calculate(ctx context.Context, req domain.InvestmentRequest) (*domain.InvestmentResult, error) {
	if err := engine.ValidateInvestment(req); err != nil {
		return nil, err
	}

	rates, err := s.repo.ActiveInterestRates(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	taxParams, err := s.repo.TaxParameters(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	churchTax := s.config.GetChurchTaxPercent()
	if req.HasChurchTax && req.ChurchTaxState != "" {
		rate, found, err := s.repo.ChurchTaxRate(ctx, req.ChurchTaxState)
		if err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if found {
			churchTax = rate
		}
	}

	result := engine.CalculateInvestment(req, engine.InvestmentParams{
		Rates:            engine.NewRateMatrix(rates),
		FallbackRate:     s.config.GetFallbackInterestRate(),
		Afa:              engine.NewAfaRates(taxParams),
		ChurchTaxPercent: churchTax,
		HorizonYears:     s.config.Projection.HorizonYears,
	})

	s.logger.WithFields(logrus.Fields{
		"rates":         len(rates),
		"taxParameters": len(taxParams),
		"monthlyBurden": result.Summary.MonthlyBurden.String(),
	}).Info("Investment calculated")

	return result, nil
}

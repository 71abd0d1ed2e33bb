package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/mocks"
	customError "github.com/kaufy/projection-engine/pkg/errors"
)

func investmentRequest() domain.InvestmentRequest {
	return domain.InvestmentRequest{
		PurchasePrice:         d("300000"),
		MonthlyRent:           d("1000"),
		Equity:                d("60000"),
		TermYears:             30,
		RepaymentRate:         d("2"),
		TaxableIncome:         d("60000"),
		MaritalStatus:         domain.MaritalStatusSingle,
		AfaModel:              domain.AfaModelLinear,
		BuildingShare:         d("0.8"),
		ManagementCostMonthly: d("30"),
		ValueGrowthRate:       d("2"),
		RentGrowthRate:        d("0"),
	}
}

func newInvestmentService(repo *mocks.MockMarketRepository) *InvestmentService {
	logger, _ := test.NewNullLogger()
	return NewInvestmentService(repo, testConfig(), logger)
}

func expectMarketData(repo *mocks.MockMarketRepository) {
	repo.On("ActiveInterestRates", mock.Anything).Return([]domain.InterestRateEntry{
		{TermYears: 30, LTVPercent: 80, InterestRate: d("3.8")},
	}, nil)
	repo.On("TaxParameters", mock.Anything).Return([]domain.TaxParameter{
		{Code: domain.TaxParamAfaLinear, Value: d("2")},
	}, nil)
}

func TestInvestmentService_Calculate(t *testing.T) {
	repo := &mocks.MockMarketRepository{}
	svc := newInvestmentService(repo)
	expectMarketData(repo)

	result, err := svc.Calculate(context.Background(), investmentRequest())

	require.NoError(t, err)
	assert.True(t, result.Summary.InterestRate.Equal(d("3.8")))
	assert.True(t, result.Summary.YearlyTaxSavings.Equal(d("892.34")))
	assert.True(t, result.Summary.MonthlyBurden.Equal(d("115.64")))
	assert.Len(t, result.Projection, 40)
	repo.AssertNotCalled(t, "ChurchTaxRate", mock.Anything, mock.Anything)
}

func TestInvestmentService_Calculate_ChurchTaxByState(t *testing.T) {
	repo := &mocks.MockMarketRepository{}
	svc := newInvestmentService(repo)
	expectMarketData(repo)
	repo.On("ChurchTaxRate", mock.Anything, "BY").Return(d("8"), true, nil)
	repo.On("ChurchTaxRate", mock.Anything, "XX").Return(decimal.Zero, false, nil)

	req := investmentRequest()
	req.TaxableIncome = d("120000")

	withoutChurch, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	req.HasChurchTax = true
	req.ChurchTaxState = "XX"
	defaultRate, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)
	// unknown states fall back to the configured 9 %
	assert.True(t, defaultRate.Summary.YearlyTaxSavings.Equal(d("1096.46")))

	req.ChurchTaxState = "BY"
	bavaria, err := svc.Calculate(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, bavaria.Summary.YearlyTaxSavings.LessThan(defaultRate.Summary.YearlyTaxSavings))
	assert.True(t, bavaria.Summary.YearlyTaxSavings.GreaterThan(withoutChurch.Summary.YearlyTaxSavings))
	repo.AssertExpectations(t)
}

func TestInvestmentService_Calculate_InvalidRequest(t *testing.T) {
	repo := &mocks.MockMarketRepository{}
	svc := newInvestmentService(repo)

	req := investmentRequest()
	req.AfaModel = "unknown"

	result, err := svc.Calculate(context.Background(), req)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, customError.ErrInvalidInvestment)
	repo.AssertNotCalled(t, "ActiveInterestRates", mock.Anything)
}

func TestInvestmentService_Calculate_DatabaseError(t *testing.T) {
	repo := &mocks.MockMarketRepository{}
	svc := newInvestmentService(repo)
	repo.On("ActiveInterestRates", mock.Anything).Return(nil, errors.New("relation does not exist"))

	_, err := svc.Calculate(context.Background(), investmentRequest())

	be, ok := customError.IsBusinessError(err)
	require.True(t, ok)
	assert.Equal(t, customError.ErrCodeDatabaseError, be.Code)
}

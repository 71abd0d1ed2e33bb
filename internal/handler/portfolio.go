package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/service"
	customError "github.com/kaufy/projection-engine/pkg/errors"
	"github.com/kaufy/projection-engine/pkg/response"
)

type PortfolioHandler struct {
	service *service.PortfolioService
}

func NewPortfolioHandler(service *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

// Summary handles GET /api/v1/tenants/{tenantId}/portfolio. Growth and tax rates
// in the query are fractions; omitted ones use the configured defaults.
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rawTenantID := mux.Vars(r)["tenantId"]
	tenantID, err := uuid.Parse(rawTenantID)
	if err != nil {
		response.BusinessError(w, customError.WrapInvalidTenantID(rawTenantID))
		return
	}

	assumptions, err := parseAssumptions(r, h.service.DefaultAssumptions())
	if err != nil {
		response.BusinessError(w, customError.WrapInvalidInput(err))
		return
	}

	result, err := h.service.Summary(r.Context(), tenantID, assumptions)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, result)
}

func parseAssumptions(r *http.Request, defaults domain.PortfolioAssumptions) (domain.PortfolioAssumptions, error) {
	query := r.URL.Query()
	assumptions := defaults

	rates := []struct {
		name   string
		target *decimal.Decimal
	}{
		{name: "valueGrowth", target: &assumptions.ValueGrowthRate},
		{name: "rentGrowth", target: &assumptions.RentGrowthRate},
		{name: "marginalTaxRate", target: &assumptions.MarginalTaxRate},
	}
	for _, rate := range rates {
		raw := query.Get(rate.name)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return defaults, fmt.Errorf("%s must be a decimal: %w", rate.name, err)
		}
		*rate.target = value
	}

	if raw := query.Get("horizon"); raw != "" {
		horizon, err := strconv.Atoi(raw)
		if err != nil {
			return defaults, fmt.Errorf("horizon must be an integer: %w", err)
		}
		if horizon < 0 || horizon > domain.MaxHorizonYears {
			return defaults, fmt.Errorf("horizon must be between 0 and %d", domain.MaxHorizonYears)
		}
		assumptions.HorizonYears = horizon
	}

	return assumptions, nil
}

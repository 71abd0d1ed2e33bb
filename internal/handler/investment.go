package handler

import (
	"encoding/json"
	"net/http"

	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/service"
	"github.com/kaufy/projection-engine/pkg/response"
)

type InvestmentHandler struct {
	service *service.InvestmentService
}

func NewInvestmentHandler(service *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

// Calculate handles POST /api/v1/investments/calculate
func (h *InvestmentHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req domain.InvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	result, err := h.service.Calculate(r.Context(), req)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, result)
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/kaufy/projection-engine/internal/domain"
	"github.com/kaufy/projection-engine/internal/service"
	"github.com/kaufy/projection-engine/internal/validation"
	customError "github.com/kaufy/projection-engine/pkg/errors"
	"github.com/kaufy/projection-engine/pkg/response"
)

type ProjectionHandler struct {
	service   *service.ProjectionService
	validator *validator.Validate
}

func NewProjectionHandler(service *service.ProjectionService) *ProjectionHandler {
	return &ProjectionHandler{
		service:   service,
		validator: validation.New(),
	}
}

// Project handles POST /api/v1/projections
func (h *ProjectionHandler) Project(w http.ResponseWriter, r *http.Request) {
	var req domain.ProjectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.check(req, req.Input.HorizonYears); err != nil {
		response.BusinessError(w, err)
		return
	}

	result, err := h.service.Project(r.Context(), req.Input, req.Milestones)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, result)
}

// Combine handles POST /api/v1/projections/combine
func (h *ProjectionHandler) Combine(w http.ResponseWriter, r *http.Request) {
	var req domain.CombineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.check(req, req.Base.HorizonYears); err != nil {
		response.BusinessError(w, err)
		return
	}

	result, err := h.service.Combine(r.Context(), req.Base, req.Asset, req.Milestones)
	if err != nil {
		response.BusinessError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *ProjectionHandler) check(req interface{}, horizon int) error {
	if err := h.validator.Struct(req); err != nil {
		return customError.WrapInvalidInput(err)
	}
	if horizon > domain.MaxHorizonYears {
		return customError.WrapInvalidInput(fmt.Errorf("horizon_years must not exceed %d", domain.MaxHorizonYears))
	}
	return nil
}

package transport

import (
	"net/http"

	"github.com/muhammadheryan/commerce-engine/model"
)

// CalculateBestPromotion handler
// @Summary Best promotion for an order
// @Description Select the single promotion or stack of promotions that gives the largest discount
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body model.OrderContext true "Order"
// @Success 200 {object} model.DiscountPlan
// @Failure 400 {object} Response
// @Router /v1/promotions/calculate [post]
func (s *RestHandler) CalculateBestPromotion(w http.ResponseWriter, r *http.Request) {
	var req model.OrderContext
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.PromotionApp.CalculateBest(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ValidatePromotion handler
// @Summary Validate promotion code
// @Description Check whether a promotion code applies to an order and which rule fails if not
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body model.ValidatePromotionRequest true "Code and order"
// @Success 200 {object} model.PromotionValidation
// @Failure 404 {object} Response
// @Router /v1/promotions/validate [post]
func (s *RestHandler) ValidatePromotion(w http.ResponseWriter, r *http.Request) {
	var req model.ValidatePromotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.PromotionApp.ValidatePromotion(r.Context(), req.Code, &req.Order)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ApplyPromotion handler
// @Summary Apply promotion code
// @Description Record one use of a promotion code against an order
// @Tags Promotion
// @Accept json
// @Produce json
// @Param request body model.ApplyPromotionRequest true "Apply request"
// @Success 200 {object} model.AppliedPromotion
// @Failure 409 {object} Response
// @Failure 422 {object} Response
// @Router /v1/promotions/apply [post]
func (s *RestHandler) ApplyPromotion(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyPromotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.PromotionApp.ApplyToOrder(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CreatePromotion handler
// @Summary Create promotion
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreatePromotionRequest true "Promotion"
// @Success 200 {object} model.Promotion
// @Failure 400 {object} Response
// @Router /admin/v1/promotions [post]
func (s *RestHandler) CreatePromotion(w http.ResponseWriter, r *http.Request) {
	var req model.CreatePromotionRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.PromotionApp.CreatePromotion(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ActivatePromotion handler
// @Summary Activate promotion
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Promotion ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /admin/v1/promotions/{id}/activate [post]
func (s *RestHandler) ActivatePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.PromotionApp.ActivatePromotion(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// DeactivatePromotion handler
// @Summary Deactivate promotion
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Promotion ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /admin/v1/promotions/{id}/deactivate [post]
func (s *RestHandler) DeactivatePromotion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.PromotionApp.DeactivatePromotion(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// PromotionUsageStats handler
// @Summary Promotion usage statistics
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Promotion ID"
// @Success 200 {object} model.PromotionUsageStats
// @Failure 404 {object} Response
// @Router /admin/v1/promotions/{id}/stats [get]
func (s *RestHandler) PromotionUsageStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	res, err := s.PromotionApp.GetUsageStats(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

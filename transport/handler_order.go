package transport

import (
	"net/http"

	"github.com/muhammadheryan/commerce-engine/model"
)

// PlaceOrder handler
// @Summary Place order
// @Description Price the order with the best promotions, reserve stock and schedule expiration
// @Tags Order
// @Accept json
// @Produce json
// @Param request body model.OrderRequest true "Order"
// @Success 200 {object} model.OrderResponse
// @Failure 409 {object} Response
// @Router /v1/orders [post]
func (s *RestHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.OrderApp.PlaceOrder(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// PayOrder handler
// @Summary Pay order
// @Tags Order
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /v1/orders/{id}/pay [post]
func (s *RestHandler) PayOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.OrderApp.PayOrder(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// CancelOrder handler
// @Summary Cancel order
// @Description Release the reservations of an unpaid order
// @Tags Internal
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /internal/v1/order/{id}/cancel [post]
func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.OrderApp.CancelOrder(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

package transport

import (
	"net/http"

	"github.com/muhammadheryan/commerce-engine/model"
)

// PreviewAllocation handler
// @Summary Preview warehouse allocation
// @Description Plan which warehouses would fulfill each line without reserving stock
// @Tags Inventory
// @Accept json
// @Produce json
// @Param request body model.AllocationRequest true "Lines and destination city"
// @Success 200 {array} model.AllocationEntry
// @Failure 409 {object} Response
// @Router /v1/allocations/preview [post]
func (s *RestHandler) PreviewAllocation(w http.ResponseWriter, r *http.Request) {
	var req model.AllocationRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.InventoryApp.PreviewAllocation(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReserveAllocation handler
// @Summary Reserve an allocation
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.ReserveRequest true "Order and allocation entries"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /admin/v1/inventory/reserve [post]
func (s *RestHandler) ReserveAllocation(w http.ResponseWriter, r *http.Request) {
	var req model.ReserveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := s.InventoryApp.ReserveAllocation(r.Context(), &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// AdjustStock handler
// @Summary Adjust on-hand stock
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AdjustStockRequest true "Adjustment"
// @Success 200 {object} model.InventoryItem
// @Failure 400 {object} Response
// @Router /admin/v1/inventory/adjust [post]
func (s *RestHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var req model.AdjustStockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.InventoryApp.AdjustStock(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Restock handler
// @Summary Restock a product in a warehouse
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.RestockRequest true "Restock"
// @Success 200 {object} model.InventoryItem
// @Failure 404 {object} Response
// @Router /admin/v1/inventory/restock [post]
func (s *RestHandler) Restock(w http.ResponseWriter, r *http.Request) {
	var req model.RestockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := s.InventoryApp.Restock(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ActivateWarehouse handler
// @Summary Activate warehouse
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Warehouse ID"
// @Success 200 {object} Response
// @Failure 404 {object} Response
// @Router /admin/v1/warehouses/{id}/activate [post]
func (s *RestHandler) ActivateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.WarehouseApp.ActivateWarehouse(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// DeactivateWarehouse handler
// @Summary Deactivate warehouse
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Warehouse ID"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /admin/v1/warehouses/{id}/deactivate [post]
func (s *RestHandler) DeactivateWarehouse(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.WarehouseApp.DeactivateWarehouse(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// TransferStock handler
// @Summary Transfer stock between warehouses
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.TransferStockRequest true "Transfer"
// @Success 200 {object} Response
// @Failure 409 {object} Response
// @Router /admin/v1/warehouses/transfer [post]
func (s *RestHandler) TransferStock(w http.ResponseWriter, r *http.Request) {
	var req model.TransferStockRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := s.WarehouseApp.TransferStock(r.Context(), &req); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	inventoryapp "github.com/muhammadheryan/commerce-engine/application/inventory"
	orderapp "github.com/muhammadheryan/commerce-engine/application/order"
	promotionapp "github.com/muhammadheryan/commerce-engine/application/promotion"
	warehouseapp "github.com/muhammadheryan/commerce-engine/application/warehouse"
	"github.com/muhammadheryan/commerce-engine/constant"
	"github.com/muhammadheryan/commerce-engine/utils/errors"
	validatorx "github.com/muhammadheryan/commerce-engine/utils/validator"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RestHandler struct {
	PromotionApp promotionapp.PromotionApp
	InventoryApp inventoryapp.InventoryApp
	WarehouseApp warehouseapp.WarehouseApp
	OrderApp     orderapp.OrderApp
}

func NewTransport(rh *RestHandler, internalAPIKey string) http.Handler {
	mux := mux.NewRouter()

	// Swagger UI
	mux.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	v1 := mux.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/promotions/calculate", rh.CalculateBestPromotion).Methods(http.MethodPost)
	v1.HandleFunc("/promotions/validate", rh.ValidatePromotion).Methods(http.MethodPost)
	v1.HandleFunc("/promotions/apply", rh.ApplyPromotion).Methods(http.MethodPost)
	v1.HandleFunc("/allocations/preview", rh.PreviewAllocation).Methods(http.MethodPost)
	v1.HandleFunc("/orders", rh.PlaceOrder).Methods(http.MethodPost)
	v1.HandleFunc("/orders/{id:[0-9]+}/pay", rh.PayOrder).Methods(http.MethodPost)

	// Admin routes
	admin := mux.PathPrefix("/admin/v1").Subrouter()
	admin.Use(InternalMiddleware(internalAPIKey))
	admin.HandleFunc("/promotions", rh.CreatePromotion).Methods(http.MethodPost)
	admin.HandleFunc("/promotions/{id:[0-9]+}/activate", rh.ActivatePromotion).Methods(http.MethodPost)
	admin.HandleFunc("/promotions/{id:[0-9]+}/deactivate", rh.DeactivatePromotion).Methods(http.MethodPost)
	admin.HandleFunc("/promotions/{id:[0-9]+}/stats", rh.PromotionUsageStats).Methods(http.MethodGet)
	admin.HandleFunc("/inventory/adjust", rh.AdjustStock).Methods(http.MethodPost)
	admin.HandleFunc("/inventory/restock", rh.Restock).Methods(http.MethodPost)
	admin.HandleFunc("/inventory/reserve", rh.ReserveAllocation).Methods(http.MethodPost)
	admin.HandleFunc("/warehouses/{id:[0-9]+}/activate", rh.ActivateWarehouse).Methods(http.MethodPost)
	admin.HandleFunc("/warehouses/{id:[0-9]+}/deactivate", rh.DeactivateWarehouse).Methods(http.MethodPost)
	admin.HandleFunc("/warehouses/transfer", rh.TransferStock).Methods(http.MethodPost)

	// Internal routes, called by the reservation expiration consumer
	internal := mux.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(internalAPIKey))
	internal.HandleFunc("/order/{id:[0-9]+}/cancel", rh.CancelOrder).Methods(http.MethodPost)

	// middleware
	mux.Use(LoggingMiddleware())

	return mux
}

// decodeAndValidate reads a JSON body into req and validates it.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest).WithReason("malformed JSON body"))
		return false
	}
	if err := validatorx.ValidateStruct(req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest).WithReason(err.Error()))
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest).WithReason("invalid id"))
		return 0, false
	}
	return id, true
}

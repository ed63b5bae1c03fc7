package constant

import "net/http"

type ErrorType int

const (
	Successful ErrorType = iota
	ErrInternal
	ErrNotFound
	ErrInvalidRequest
	ErrUnauthorize
	ErrInsufficientStock
	ErrInvalidOrderStatus
	ErrWarehouseHasReservedStock
	ErrPromotionIneligible
	ErrPromotionUsageLimit
	ErrPromotionAlreadyApplied
	ErrAlreadyReserved
	ErrConcurrentUpdate
)

var ErrorTypeMessage = map[ErrorType]string{
	Successful:                   "success",
	ErrInternal:                  "error internal",
	ErrNotFound:                  "data not found",
	ErrInvalidRequest:            "invalid request",
	ErrUnauthorize:               "unauthorize request",
	ErrInsufficientStock:         "insufficient stock",
	ErrInvalidOrderStatus:        "invalid order status",
	ErrWarehouseHasReservedStock: "warehouse still has reserved stock",
	ErrPromotionIneligible:       "promotion not eligible",
	ErrPromotionUsageLimit:       "promotion usage limit reached",
	ErrPromotionAlreadyApplied:   "promotion already applied to order",
	ErrAlreadyReserved:           "stock already reserved for order",
	ErrConcurrentUpdate:          "concurrent update, please retry",
}

var ErrorTypeHTTPCode = map[ErrorType]int{
	Successful:                   http.StatusOK,
	ErrInternal:                  http.StatusInternalServerError,
	ErrNotFound:                  http.StatusNotFound,
	ErrInvalidRequest:            http.StatusBadRequest,
	ErrUnauthorize:               http.StatusUnauthorized,
	ErrInsufficientStock:         http.StatusConflict,
	ErrInvalidOrderStatus:        http.StatusBadRequest,
	ErrWarehouseHasReservedStock: http.StatusConflict,
	ErrPromotionIneligible:       http.StatusUnprocessableEntity,
	ErrPromotionUsageLimit:       http.StatusConflict,
	ErrPromotionAlreadyApplied:   http.StatusConflict,
	ErrAlreadyReserved:           http.StatusConflict,
	ErrConcurrentUpdate:          http.StatusConflict,
}

var ErrorTypeCode = map[ErrorType]string{
	Successful:                   "0000",
	ErrInternal:                  "0001",
	ErrNotFound:                  "0002",
	ErrInvalidRequest:            "0003",
	ErrUnauthorize:               "0004",
	ErrInsufficientStock:         "0005",
	ErrInvalidOrderStatus:        "0006",
	ErrWarehouseHasReservedStock: "0007",
	ErrPromotionIneligible:       "0008",
	ErrPromotionUsageLimit:       "0009",
	ErrPromotionAlreadyApplied:   "0010",
	ErrAlreadyReserved:           "0011",
	ErrConcurrentUpdate:          "0012",
}

package constant

// Event topics used as routing keys on the commerce events exchange.
const (
	TopicPromotionSelected      = "promotion.selected"
	TopicPromotionApplied       = "promotion.applied"
	TopicPromotionActivated     = "promotion.activated"
	TopicPromotionDeactivated   = "promotion.deactivated"
	TopicPromotionLimitReached  = "promotion.usage_limit_reached"
	TopicStockAdjusted          = "stock.adjusted"
	TopicStockRestocked         = "stock.restocked"
	TopicStockReserved          = "stock.reserved"
	TopicStockReleased          = "stock.released"
	TopicStockFulfilled         = "stock.fulfilled"
	TopicStockLow               = "stock.low"
	TopicAllocationPlanComputed = "allocation.planned"
)

const (
	EventsExchange = "commerce_events"

	ReservationExpirationExchange   = "reservation_expiration_exchange"
	ReservationExpirationQueue      = "reservation_expiration_queue"
	ReservationExpirationRoutingKey = "reservation_expiration"
)

package constant

type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 1
	OrderStatusCompleted OrderStatus = 2
	OrderStatusCanceled  OrderStatus = 3
)

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "pending"
	case OrderStatusCompleted:
		return "completed"
	case OrderStatusCanceled:
		return "canceled"
	}
	return "unknown"
}

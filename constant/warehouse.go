package constant

type WarehouseStatus int

const (
	WarehouseStatusInactive WarehouseStatus = 0
	WarehouseStatusActive   WarehouseStatus = 1
)

// Stock movement reasons recorded on adjust events.
const (
	AdjustReasonManual   = "manual"
	AdjustReasonTransfer = "transfer"
	AdjustReasonDamage   = "damage"
	AdjustReasonCount    = "cycle_count"
)

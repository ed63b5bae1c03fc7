// Package allocation decides which warehouses fulfill each requested line.
// Plans are advisory: nothing here reserves stock.
package allocation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muhammadheryan/commerce-engine/model"
)

// Stock is the warehouse state a request is planned against.
type Stock struct {
	Warehouses []model.Warehouse
	// Items holds the inventory rows of every requested product, keyed by
	// product id.
	Items map[uint64][]model.InventoryItem
}

// source is an inventory row joined with its active warehouse.
type source struct {
	warehouse model.Warehouse
	item      model.InventoryItem
	available int64
}

// Plan allocates every line of req in request order. It stops at the first
// line that cannot be covered and returns the entries planned so far
// together with a *model.StockShortageError; earlier lines are not undone.
func Plan(req model.AllocationRequest, stock Stock) ([]model.AllocationEntry, error) {
	active := make(map[uint64]model.Warehouse, len(stock.Warehouses))
	for _, w := range stock.Warehouses {
		if w.IsActive() {
			active[w.ID] = w
		}
	}

	entries := make([]model.AllocationEntry, 0, len(req.Lines))
	for _, line := range req.Lines {
		planned, err := AllocateLine(line, req.CustomerCity, active, stock.Items[line.ProductID])
		if err != nil {
			return entries, err
		}
		entries = append(entries, planned...)
	}
	return entries, nil
}

// AllocateLine covers one line from a single warehouse when possible and
// otherwise splits it across warehouses, largest available first.
func AllocateLine(line model.AllocationLine, city string, warehouses map[uint64]model.Warehouse, items []model.InventoryItem) ([]model.AllocationEntry, error) {
	if line.Quantity <= 0 {
		return nil, fmt.Errorf("product %d: %w", line.ProductID, model.ErrInvalidQuantity)
	}

	sources := make([]source, 0, len(items))
	for _, item := range items {
		w, ok := warehouses[item.WarehouseID]
		if !ok || item.ProductID != line.ProductID {
			continue
		}
		sources = append(sources, source{warehouse: w, item: item, available: item.Available()})
	}

	if best, ok := bestSingle(sources, line.Quantity, city); ok {
		return []model.AllocationEntry{entry(line.ProductID, best, line.Quantity, false)}, nil
	}
	return split(line, sources)
}

func bestSingle(sources []source, qty int64, city string) (source, bool) {
	candidates := make([]source, 0, len(sources))
	for _, s := range sources {
		if s.available >= qty {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return source{}, false
	}

	city = strings.TrimSpace(city)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		am, bm := cityMatch(a.warehouse, city), cityMatch(b.warehouse, city)
		if am != bm {
			return am
		}
		if a.warehouse.Priority != b.warehouse.Priority {
			return a.warehouse.Priority < b.warehouse.Priority
		}
		if a.available != b.available {
			return a.available > b.available
		}
		return a.warehouse.ID < b.warehouse.ID
	})
	return candidates[0], true
}

func split(line model.AllocationLine, sources []source) ([]model.AllocationEntry, error) {
	pool := make([]source, 0, len(sources))
	var total int64
	for _, s := range sources {
		if s.available > 0 {
			pool = append(pool, s)
			total += s.available
		}
	}
	if total < line.Quantity {
		return nil, &model.StockShortageError{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Requested:   line.Quantity,
			Available:   total,
		}
	}

	sort.SliceStable(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if a.available != b.available {
			return a.available > b.available
		}
		if a.warehouse.Priority != b.warehouse.Priority {
			return a.warehouse.Priority < b.warehouse.Priority
		}
		return a.warehouse.ID < b.warehouse.ID
	})

	remaining := line.Quantity
	entries := make([]model.AllocationEntry, 0, len(pool))
	for _, s := range pool {
		if remaining == 0 {
			break
		}
		take := min(s.available, remaining)
		entries = append(entries, entry(line.ProductID, s, take, true))
		remaining -= take
	}
	return entries, nil
}

func cityMatch(w model.Warehouse, city string) bool {
	return city != "" && strings.EqualFold(strings.TrimSpace(w.City), city)
}

func entry(productID uint64, s source, qty int64, split bool) model.AllocationEntry {
	return model.AllocationEntry{
		ProductID:       productID,
		WarehouseID:     s.warehouse.ID,
		WarehouseCode:   s.warehouse.Code,
		InventoryItemID: s.item.ID,
		Quantity:        qty,
		Split:           split,
	}
}

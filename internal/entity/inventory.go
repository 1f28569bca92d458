package entity

import "slices"

// InventoryEntry is one stack of an item.
type InventoryEntry struct {
	ItemID string `json:"itemId"`
	Qty    int    `json:"qty"`
}

// Inventory is an ordered list of stacks. An item may occupy several stacks
// once its per-stack limit is reached.
type Inventory []InventoryEntry

// Count returns the total quantity of an item across all stacks.
func (inv Inventory) Count(itemID string) int {
	total := 0
	for _, e := range inv {
		if e.ItemID == itemID {
			total += e.Qty
		}
	}
	return total
}

// Add stores qty units of an item. Existing stacks are topped up first and
// the rest overflows into new stacks of at most stackLimit units. A
// stackLimit of 0 means unlimited.
func (inv *Inventory) Add(itemID string, qty, stackLimit int) {
	if qty <= 0 {
		return
	}

	for i := range *inv {
		if qty == 0 {
			return
		}
		e := &(*inv)[i]
		if e.ItemID != itemID {
			continue
		}
		space := qty
		if stackLimit > 0 {
			space = min(qty, stackLimit-e.Qty)
		}
		if space > 0 {
			e.Qty += space
			qty -= space
		}
	}

	for qty > 0 {
		n := qty
		if stackLimit > 0 {
			n = min(qty, stackLimit)
		}
		*inv = append(*inv, InventoryEntry{ItemID: itemID, Qty: n})
		qty -= n
	}
}

// Remove takes qty units of an item, draining the last stacks first. It
// returns false and leaves the inventory untouched if there are not enough.
func (inv *Inventory) Remove(itemID string, qty int) bool {
	if qty <= 0 {
		return true
	}
	if inv.Count(itemID) < qty {
		return false
	}

	for i := len(*inv) - 1; i >= 0 && qty > 0; i-- {
		e := &(*inv)[i]
		if e.ItemID != itemID {
			continue
		}
		take := min(qty, e.Qty)
		e.Qty -= take
		qty -= take
	}

	*inv = slices.DeleteFunc(*inv, func(e InventoryEntry) bool { return e.Qty <= 0 })
	return true
}

// Clone returns a copy of the inventory.
func (inv Inventory) Clone() Inventory {
	return slices.Clone(inv)
}

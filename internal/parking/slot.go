package parking

import "fmt"

// Slot is a single parking space of a fixed vehicle class. The class never
// changes after construction.
type Slot struct {
	Number   int
	Class    VehicleClass
	Occupied bool
}

func (s *Slot) Label() string {
	return slotLabel(s.Class, s.Number)
}

func slotLabel(class VehicleClass, number int) string {
	return fmt.Sprintf("%s-%d", class, number)
}

// SlotInventory owns the fixed pool of slots for every vehicle class.
// It is not safe for concurrent use on its own; the Lot serializes access.
type SlotInventory struct {
	pools map[VehicleClass][]*Slot
}

func NewSlotInventory(capacities map[VehicleClass]int) *SlotInventory {
	pools := make(map[VehicleClass][]*Slot, len(capacities))
	for class, capacity := range capacities {
		slots := make([]*Slot, capacity)
		for i := 0; i < capacity; i++ {
			slots[i] = &Slot{Number: i + 1, Class: class}
		}
		pools[class] = slots
	}
	return &SlotInventory{pools: pools}
}

// Capacity reports (total, available) for a class. Unknown classes report
// zero capacity rather than an error; the lot validates classes up front.
func (inv *SlotInventory) Capacity(class VehicleClass) (total, available int) {
	slots := inv.pools[class]
	total = len(slots)
	for _, s := range slots {
		if !s.Occupied {
			available++
		}
	}
	return total, available
}

// Acquire marks the lowest-numbered free slot of the class occupied and
// returns it. The lowest-free policy keeps allocation deterministic for a
// given inventory state.
func (inv *SlotInventory) Acquire(class VehicleClass) (*Slot, error) {
	for _, slot := range inv.pools[class] {
		if !slot.Occupied {
			slot.Occupied = true
			return slot, nil
		}
	}
	return nil, fmt.Errorf("%w for %s", ErrNoSlotAvailable, class)
}

// Release frees a previously acquired slot. Both failure modes indicate a
// broken invariant in the caller, never a user-level condition.
func (inv *SlotInventory) Release(class VehicleClass, number int) error {
	slots := inv.pools[class]
	if number < 1 || number > len(slots) {
		return fmt.Errorf("%w: %s-%d", ErrUnknownSlot, class, number)
	}
	slot := slots[number-1]
	if !slot.Occupied {
		return fmt.Errorf("%w: %s-%d", ErrSlotAlreadyFree, class, number)
	}
	slot.Occupied = false
	return nil
}

package parking

import (
	"fmt"
	"sort"
	"time"
)

// Ticket records one vehicle's parking session. While active, the ticket
// owns its slot; once closed it exists only long enough to produce the
// ledger entry.
type Ticket struct {
	ID         int64
	VehicleNo  string
	Class      VehicleClass
	SlotNumber int
	EntryTime  time.Time
	ExitTime   time.Time // zero while active
}

// TicketRegistry maps active vehicles to their admission records. Ticket
// ids are assigned monotonically for the lifetime of the registry.
// Not safe for concurrent use on its own; the Lot serializes access.
type TicketRegistry struct {
	active map[string]*Ticket
	nextID int64
}

func NewTicketRegistry() *TicketRegistry {
	return &TicketRegistry{
		active: make(map[string]*Ticket),
		nextID: 1,
	}
}

// Open creates an active ticket for the vehicle. The vehicle number must
// already be normalized; a vehicle cannot hold two active tickets.
func (r *TicketRegistry) Open(vehicleNo string, class VehicleClass, slotNumber int, entryTime time.Time) (*Ticket, error) {
	if _, ok := r.active[vehicleNo]; ok {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyParked, vehicleNo)
	}
	t := &Ticket{
		ID:         r.nextID,
		VehicleNo:  vehicleNo,
		Class:      class,
		SlotNumber: slotNumber,
		EntryTime:  entryTime,
	}
	r.nextID++
	r.active[vehicleNo] = t
	return t, nil
}

func (r *TicketRegistry) FindActive(vehicleNo string) (*Ticket, bool) {
	t, ok := r.active[vehicleNo]
	return t, ok
}

// Close transitions the matching active ticket to closed and removes it
// from the active index, so the vehicle number may be reused immediately.
func (r *TicketRegistry) Close(vehicleNo string, exitTime time.Time) (*Ticket, error) {
	t, ok := r.active[vehicleNo]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, vehicleNo)
	}
	delete(r.active, vehicleNo)
	t.ExitTime = exitTime
	return t, nil
}

// ListActive returns a snapshot of all active tickets ordered by entry
// time ascending (ties broken by ticket id).
func (r *TicketRegistry) ListActive() []*Ticket {
	tickets := make([]*Ticket, 0, len(r.active))
	for _, t := range r.active {
		tickets = append(tickets, t)
	}
	sort.Slice(tickets, func(i, j int) bool {
		if tickets[i].EntryTime.Equal(tickets[j].EntryTime) {
			return tickets[i].ID < tickets[j].ID
		}
		return tickets[i].EntryTime.Before(tickets[j].EntryTime)
	})
	return tickets
}

// CountActive reports the number of active tickets for a class.
func (r *TicketRegistry) CountActive(class VehicleClass) int {
	n := 0
	for _, t := range r.active {
		if t.Class == class {
			n++
		}
	}
	return n
}

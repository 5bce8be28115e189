package parking

import (
	"fmt"
	"sync"
	"time"
)

// Clock supplies the current time. Injected so billing and elapsed-time
// behavior is deterministic under test.
type Clock func() time.Time

// ParkResult is the outcome of a successful admission.
type ParkResult struct {
	TicketID   int64
	Class      VehicleClass
	SlotNumber int
	SlotLabel  string
	EntryTime  time.Time
}

// Bill is the outcome of a successful exit.
type Bill struct {
	TicketID        int64
	VehicleNo       string
	Class           VehicleClass
	DurationMinutes int64
	BilledHours     int64
	Amount          float64
	EntryTime       time.Time
	ExitTime        time.Time
}

// SearchResult describes a currently parked vehicle.
type SearchResult struct {
	TicketID       int64
	Class          VehicleClass
	SlotLabel      string
	ElapsedMinutes int64
}

// ClassStatus is the per-class capacity snapshot.
type ClassStatus struct {
	Total     int
	Available int
}

// ParkedVehicle is one row of the active-vehicle listing.
type ParkedVehicle struct {
	Class      VehicleClass
	SlotNumber int
	SlotLabel  string
	VehicleNo  string
	Elapsed    time.Duration
}

// Lot is the allocation service: it owns the slot inventory, ticket
// registry, tariff and transaction ledger, and exposes every external
// operation as an atomic unit. A single lock guards all four aggregates so
// an in-flight exit is never observable half-applied: a concurrent status
// read sees either the slot still occupied or the slot free with the
// ledger already updated.
type Lot struct {
	mu        sync.RWMutex
	inventory *SlotInventory
	registry  *TicketRegistry
	tariff    *Tariff
	ledger    *Ledger
	now       Clock
}

// NewLot builds a lot with fixed per-class capacities. A nil clock falls
// back to time.Now.
func NewLot(capacities map[VehicleClass]int, tariff *Tariff, clock Clock) *Lot {
	if tariff == nil {
		tariff = DefaultTariff()
	}
	if clock == nil {
		clock = time.Now
	}
	return &Lot{
		inventory: NewSlotInventory(capacities),
		registry:  NewTicketRegistry(),
		tariff:    tariff,
		ledger:    NewLedger(),
		now:       clock,
	}
}

// Park admits a vehicle: it checks for an existing active ticket before
// touching the inventory, acquires the lowest free slot of the class, and
// opens a ticket. If ticket creation fails after the slot was acquired the
// slot is released again, so no failure path leaks a slot.
func (l *Lot) Park(vehicleNo string, class VehicleClass) (ParkResult, error) {
	vehicleNo = NormalizePlate(vehicleNo)

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.registry.FindActive(vehicleNo); ok {
		return ParkResult{}, ErrAlreadyParked
	}

	slot, err := l.inventory.Acquire(class)
	if err != nil {
		return ParkResult{}, err
	}

	ticket, err := l.registry.Open(vehicleNo, class, slot.Number, l.now())
	if err != nil {
		if relErr := l.inventory.Release(class, slot.Number); relErr != nil {
			return ParkResult{}, relErr
		}
		return ParkResult{}, err
	}

	return ParkResult{
		TicketID:   ticket.ID,
		Class:      class,
		SlotNumber: slot.Number,
		SlotLabel:  slot.Label(),
		EntryTime:  ticket.EntryTime,
	}, nil
}

// Exit closes the vehicle's ticket, bills the stay, frees the slot and
// appends the transaction to the ledger as one atomic unit. The fee is
// computed before any state changes, so a billing failure leaves the
// ticket and slot untouched.
func (l *Lot) Exit(vehicleNo string) (Bill, error) {
	vehicleNo = NormalizePlate(vehicleNo)

	l.mu.Lock()
	defer l.mu.Unlock()

	ticket, ok := l.registry.FindActive(vehicleNo)
	if !ok {
		return Bill{}, ErrNotFound
	}

	exitTime := l.now()
	minutes, hours, amount, err := l.tariff.ComputeFee(ticket.Class, ticket.EntryTime, exitTime)
	if err != nil {
		return Bill{}, err
	}

	closed, err := l.registry.Close(vehicleNo, exitTime)
	if err != nil {
		return Bill{}, err
	}
	if err := l.inventory.Release(closed.Class, closed.SlotNumber); err != nil {
		return Bill{}, err
	}

	l.ledger.Append(Transaction{
		TicketID:    closed.ID,
		VehicleNo:   closed.VehicleNo,
		Class:       closed.Class,
		BilledHours: hours,
		Amount:      amount,
		CompletedAt: exitTime,
	})

	return Bill{
		TicketID:        closed.ID,
		VehicleNo:       closed.VehicleNo,
		Class:           closed.Class,
		DurationMinutes: minutes,
		BilledHours:     hours,
		Amount:          amount,
		EntryTime:       closed.EntryTime,
		ExitTime:        exitTime,
	}, nil
}

// Search reports the active ticket for a vehicle, if any, without mutating
// anything.
func (l *Lot) Search(vehicleNo string) (SearchResult, bool) {
	vehicleNo = NormalizePlate(vehicleNo)

	l.mu.RLock()
	defer l.mu.RUnlock()

	ticket, ok := l.registry.FindActive(vehicleNo)
	if !ok {
		return SearchResult{}, false
	}

	elapsed := l.now().Sub(ticket.EntryTime)
	if elapsed < 0 {
		elapsed = 0
	}
	return SearchResult{
		TicketID:       ticket.ID,
		Class:          ticket.Class,
		SlotLabel:      slotLabel(ticket.Class, ticket.SlotNumber),
		ElapsedMinutes: int64(elapsed / time.Minute),
	}, true
}

// Status reports (total, available) per vehicle class as a point-in-time
// consistent snapshot.
func (l *Lot) Status() map[VehicleClass]ClassStatus {
	l.mu.RLock()
	defer l.mu.RUnlock()

	status := make(map[VehicleClass]ClassStatus, len(Classes))
	for _, class := range Classes {
		total, available := l.inventory.Capacity(class)
		status[class] = ClassStatus{Total: total, Available: available}
	}
	return status
}

// ListParked returns every active ticket ordered by entry time ascending,
// with the elapsed duration computed against the lot clock.
func (l *Lot) ListParked() []ParkedVehicle {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.now()
	tickets := l.registry.ListActive()
	parked := make([]ParkedVehicle, 0, len(tickets))
	for _, t := range tickets {
		elapsed := now.Sub(t.EntryTime)
		if elapsed < 0 {
			elapsed = 0
		}
		parked = append(parked, ParkedVehicle{
			Class:      t.Class,
			SlotNumber: t.SlotNumber,
			SlotLabel:  slotLabel(t.Class, t.SlotNumber),
			VehicleNo:  t.VehicleNo,
			Elapsed:    elapsed,
		})
	}
	return parked
}

// History returns up to limit completed transactions, newest first. A
// non-positive limit returns all of them.
func (l *Lot) History(limit int) []Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.ledger.Recent(limit)
}

// FormatDuration renders an elapsed stay as "1h 5m", the form the
// dashboard displays.
func FormatDuration(d time.Duration) string {
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

package parking

import (
	"errors"
	"testing"
	"time"
)

func TestOpenAssignsMonotonicIDs(t *testing.T) {
	r := NewTicketRegistry()
	entry := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	t1, err := r.Open("KA01AB1234", Car, 1, entry)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	t2, err := r.Open("KA01AB5678", Car, 2, entry)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	if t1.ID != 1 || t2.ID != 2 {
		t.Errorf("Expected ids 1 and 2, got %d and %d", t1.ID, t2.ID)
	}
}

func TestOpenRejectsDuplicateActiveVehicle(t *testing.T) {
	r := NewTicketRegistry()
	entry := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	r.Open("KA01AB1234", Car, 1, entry)
	_, err := r.Open("KA01AB1234", Bike, 1, entry)
	if !errors.Is(err, ErrAlreadyParked) {
		t.Errorf("Expected ErrAlreadyParked, got %v", err)
	}
}

func TestCloseReturnsSnapshotAndFreesPlate(t *testing.T) {
	r := NewTicketRegistry()
	entry := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	exit := entry.Add(90 * time.Minute)

	r.Open("KA01AB1234", Car, 2, entry)

	closed, err := r.Close("KA01AB1234", exit)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if closed.SlotNumber != 2 || !closed.EntryTime.Equal(entry) || !closed.ExitTime.Equal(exit) {
		t.Errorf("Closed snapshot incomplete: %+v", closed)
	}

	if _, ok := r.FindActive("KA01AB1234"); ok {
		t.Error("Expected plate to be free after close")
	}

	// The plate may be reused immediately, with a fresh ticket id.
	reopened, err := r.Open("KA01AB1234", Car, 1, exit)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if reopened.ID == closed.ID {
		t.Error("Expected a fresh ticket id after reuse")
	}
}

func TestCloseUnknownVehicle(t *testing.T) {
	r := NewTicketRegistry()
	_, err := r.Close("NOTFOUND", time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListActiveOrderedByEntryTime(t *testing.T) {
	r := NewTicketRegistry()
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	r.Open("LATE", Car, 3, base.Add(2*time.Hour))
	r.Open("EARLY", Car, 1, base)
	r.Open("MID", Bike, 1, base.Add(time.Hour))

	active := r.ListActive()
	want := []string{"EARLY", "MID", "LATE"}
	if len(active) != len(want) {
		t.Fatalf("Expected %d active tickets, got %d", len(want), len(active))
	}
	for i, plate := range want {
		if active[i].VehicleNo != plate {
			t.Errorf("Expected %s at position %d, got %s", plate, i, active[i].VehicleNo)
		}
	}
}

func TestCountActivePerClass(t *testing.T) {
	r := NewTicketRegistry()
	entry := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	r.Open("CAR1", Car, 1, entry)
	r.Open("CAR2", Car, 2, entry)
	r.Open("BIKE1", Bike, 1, entry)
	r.Close("CAR1", entry.Add(time.Hour))

	if n := r.CountActive(Car); n != 1 {
		t.Errorf("Expected 1 active CAR ticket, got %d", n)
	}
	if n := r.CountActive(Bike); n != 1 {
		t.Errorf("Expected 1 active BIKE ticket, got %d", n)
	}
}

package parking

import (
	"errors"
	"testing"
)

func newTestInventory() *SlotInventory {
	return NewSlotInventory(map[VehicleClass]int{Car: 3, Bike: 2})
}

func TestNewSlotInventory(t *testing.T) {
	inv := newTestInventory()

	total, available := inv.Capacity(Car)
	if total != 3 || available != 3 {
		t.Errorf("Expected CAR capacity 3/3, got %d/%d", available, total)
	}

	total, available = inv.Capacity(Bike)
	if total != 2 || available != 2 {
		t.Errorf("Expected BIKE capacity 2/2, got %d/%d", available, total)
	}
}

func TestAcquireLowestFreeSlot(t *testing.T) {
	inv := newTestInventory()

	for want := 1; want <= 3; want++ {
		slot, err := inv.Acquire(Car)
		if err != nil {
			t.Fatalf("Unexpected error: %s", err.Error())
		}
		if slot.Number != want {
			t.Errorf("Expected slot number %d, got %d", want, slot.Number)
		}
	}

	_, err := inv.Acquire(Car)
	if !errors.Is(err, ErrNoSlotAvailable) {
		t.Errorf("Expected ErrNoSlotAvailable when pool is full, got %v", err)
	}
}

func TestAcquireIsolatedPerClass(t *testing.T) {
	inv := newTestInventory()

	inv.Acquire(Bike)
	inv.Acquire(Bike)
	if _, err := inv.Acquire(Bike); !errors.Is(err, ErrNoSlotAvailable) {
		t.Fatalf("Expected full BIKE pool, got %v", err)
	}

	slot, err := inv.Acquire(Car)
	if err != nil {
		t.Errorf("Full BIKE pool must not affect CAR: %v", err)
	}
	if slot.Number != 1 {
		t.Errorf("Expected CAR slot 1, got %d", slot.Number)
	}
}

func TestReleaseMakesSlotReusable(t *testing.T) {
	inv := newTestInventory()

	inv.Acquire(Car)
	inv.Acquire(Car)

	if err := inv.Release(Car, 1); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}

	_, available := inv.Capacity(Car)
	if available != 2 {
		t.Errorf("Expected 2 available after release, got %d", available)
	}

	slot, err := inv.Acquire(Car)
	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if slot.Number != 1 {
		t.Errorf("Expected to reuse slot 1, got %d", slot.Number)
	}
}

func TestReleaseInvariantViolations(t *testing.T) {
	inv := newTestInventory()

	if err := inv.Release(Car, 99); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("Expected ErrUnknownSlot, got %v", err)
	}
	if err := inv.Release(Car, 0); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("Expected ErrUnknownSlot for slot 0, got %v", err)
	}

	inv.Acquire(Car)
	if err := inv.Release(Car, 1); err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
	if err := inv.Release(Car, 1); !errors.Is(err, ErrSlotAlreadyFree) {
		t.Errorf("Expected ErrSlotAlreadyFree on double release, got %v", err)
	}
}

func TestSlotLabel(t *testing.T) {
	slot := &Slot{Number: 3, Class: Car}
	if slot.Label() != "CAR-3" {
		t.Errorf("Expected label CAR-3, got %s", slot.Label())
	}
}

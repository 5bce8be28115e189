package parking

import (
	"errors"
	"testing"
)

func TestParseVehicleClass(t *testing.T) {
	cases := map[string]VehicleClass{
		"CAR":    Car,
		"car":    Car,
		" Bike ": Bike,
		"BIKE":   Bike,
	}
	for input, want := range cases {
		got, err := ParseVehicleClass(input)
		if err != nil {
			t.Errorf("Unexpected error for %q: %s", input, err.Error())
		}
		if got != want {
			t.Errorf("Expected %s for %q, got %s", want, input, got)
		}
	}

	if _, err := ParseVehicleClass("TRUCK"); !errors.Is(err, ErrUnknownVehicleClass) {
		t.Errorf("Expected ErrUnknownVehicleClass, got %v", err)
	}
}

func TestNormalizePlate(t *testing.T) {
	if got := NormalizePlate("  ka01ab1234 "); got != "KA01AB1234" {
		t.Errorf("Expected KA01AB1234, got %q", got)
	}
}

package parking

import (
	"fmt"
	"strings"
)

// VehicleClass identifies which slot pool and tariff a vehicle uses.
type VehicleClass string

const (
	Car  VehicleClass = "CAR"
	Bike VehicleClass = "BIKE"
)

// Classes lists every supported vehicle class, in display order.
var Classes = []VehicleClass{Car, Bike}

func ParseVehicleClass(s string) (VehicleClass, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(Car):
		return Car, nil
	case string(Bike):
		return Bike, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownVehicleClass, s)
	}
}

// NormalizePlate canonicalizes a vehicle number so lookups never depend on
// caller casing or stray whitespace.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

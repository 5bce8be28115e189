package parking

import "errors"

// Business failures reachable through the public contract.
var (
	ErrAlreadyParked       = errors.New("vehicle already has an active ticket")
	ErrNoSlotAvailable     = errors.New("no slot available")
	ErrNotFound            = errors.New("no active ticket for vehicle")
	ErrUnknownVehicleClass = errors.New("unknown vehicle class")
)

// Invariant violations. These are unreachable through correct use of the
// allocation service; observing one means a bug, not a user error.
var (
	ErrUnknownSlot     = errors.New("slot does not exist")
	ErrSlotAlreadyFree = errors.New("slot already free")
	ErrInvalidInterval = errors.New("exit time precedes entry time")
)

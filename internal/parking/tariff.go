package parking

import (
	"fmt"
	"time"
)

// Tariff is the rate table: one hourly rate per vehicle class. Rates are
// configuration injected at construction, not logic.
type Tariff struct {
	hourlyRates map[VehicleClass]float64
}

// Default hourly rates, in currency units per billed hour.
const (
	DefaultCarRate  = 30.0
	DefaultBikeRate = 20.0
)

func NewTariff(hourlyRates map[VehicleClass]float64) *Tariff {
	rates := make(map[VehicleClass]float64, len(hourlyRates))
	for class, rate := range hourlyRates {
		rates[class] = rate
	}
	return &Tariff{hourlyRates: rates}
}

func DefaultTariff() *Tariff {
	return NewTariff(map[VehicleClass]float64{
		Car:  DefaultCarRate,
		Bike: DefaultBikeRate,
	})
}

func (t *Tariff) HourlyRate(class VehicleClass) float64 {
	return t.hourlyRates[class]
}

// ComputeFee bills a stay in whole-hour increments, rounded up, with a
// minimum of one billed hour. An exit before entry is a caller contract
// violation and surfaces loudly rather than being clamped, so clock and
// ordering bugs are not silently absorbed.
func (t *Tariff) ComputeFee(class VehicleClass, entryTime, exitTime time.Time) (durationMinutes, billedHours int64, amount float64, err error) {
	if exitTime.Before(entryTime) {
		return 0, 0, 0, fmt.Errorf("%w: entry %s, exit %s",
			ErrInvalidInterval, entryTime.Format(time.RFC3339), exitTime.Format(time.RFC3339))
	}

	elapsed := exitTime.Sub(entryTime)
	durationMinutes = int64((elapsed + time.Minute - 1) / time.Minute)

	billedHours = (durationMinutes + 59) / 60
	if billedHours == 0 {
		billedHours = 1
	}

	return durationMinutes, billedHours, float64(billedHours) * t.hourlyRates[class], nil
}

package parking

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type InstrumentedLot struct {
	*Lot
	telemetry *TelemetryProvider

	// Metrics
	parkOperations    metric.Int64Counter
	exitOperations    metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	revenueCounter    metric.Float64Counter
	operationDuration metric.Float64Histogram
	totalSlotsGauge   metric.Int64UpDownCounter
}

func NewInstrumentedLot(capacities map[VehicleClass]int, tariff *Tariff, clock Clock, telemetry *TelemetryProvider) (*InstrumentedLot, error) {
	baseLot := NewLot(capacities, tariff, clock)

	meter := telemetry.Meter()

	parkOperations, err := meter.Int64Counter("park_operations_total",
		metric.WithDescription("Total number of park operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	exitOperations, err := meter.Int64Counter("exit_operations_total",
		metric.WithDescription("Total number of exit operations"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_lot_occupancy",
		metric.WithDescription("Current number of occupied parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	revenueCounter, err := meter.Float64Counter("parking_revenue_total",
		metric.WithDescription("Total billed amount across completed exits"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("operation_duration_seconds",
		metric.WithDescription("Duration of parking lot operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSlotsGauge, err := meter.Int64UpDownCounter("parking_lot_total_slots",
		metric.WithDescription("Total number of parking slots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	il := &InstrumentedLot{
		Lot:               baseLot,
		telemetry:         telemetry,
		parkOperations:    parkOperations,
		exitOperations:    exitOperations,
		occupancyGauge:    occupancyGauge,
		revenueCounter:    revenueCounter,
		operationDuration: operationDuration,
		totalSlotsGauge:   totalSlotsGauge,
	}

	// Set initial total slots metric, per class
	for class, capacity := range capacities {
		totalSlotsGauge.Add(context.Background(), int64(capacity),
			metric.WithAttributes(attribute.String("vehicle_class", string(class))))
	}

	return il, nil
}

func (il *InstrumentedLot) Park(ctx context.Context, vehicleNo string, class VehicleClass) (ParkResult, error) {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.park",
		trace.WithAttributes(
			attribute.String("vehicle.number", NormalizePlate(vehicleNo)),
			attribute.String("vehicle.class", string(class)),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("acquiring_slot")

	result, err := il.Lot.Park(vehicleNo, class)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "park"),
		attribute.String("vehicle_class", string(class)),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", parkFailureStatus(err)))
	} else {
		labels = append(labels, attribute.String("status", "success"))
		span.SetAttributes(
			attribute.Int64("ticket.id", result.TicketID),
			attribute.String("slot.label", result.SlotLabel),
		)
		span.AddEvent("slot_allocated", trace.WithAttributes(
			attribute.Int("slot_number", result.SlotNumber),
		))
		il.occupancyGauge.Add(ctx, 1,
			metric.WithAttributes(attribute.String("vehicle_class", string(class))))
	}

	il.parkOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return result, err
}

func (il *InstrumentedLot) Exit(ctx context.Context, vehicleNo string) (Bill, error) {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.exit",
		trace.WithAttributes(
			attribute.String("vehicle.number", NormalizePlate(vehicleNo)),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("closing_ticket")

	bill, err := il.Lot.Exit(vehicleNo)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "exit"),
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		labels = append(labels, attribute.String("status", "failed"))
	} else {
		labels = append(labels,
			attribute.String("status", "success"),
			attribute.String("vehicle_class", string(bill.Class)),
		)
		span.SetAttributes(
			attribute.Int64("ticket.id", bill.TicketID),
			attribute.Int64("bill.hours", bill.BilledHours),
			attribute.Float64("bill.amount", bill.Amount),
		)
		span.AddEvent("slot_released", trace.WithAttributes(
			attribute.String("vehicle_class", string(bill.Class)),
		))
		il.occupancyGauge.Add(ctx, -1,
			metric.WithAttributes(attribute.String("vehicle_class", string(bill.Class))))
		il.revenueCounter.Add(ctx, bill.Amount,
			metric.WithAttributes(attribute.String("vehicle_class", string(bill.Class))))
	}

	il.exitOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return bill, err
}

func (il *InstrumentedLot) Search(ctx context.Context, vehicleNo string) (SearchResult, bool) {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.search",
		trace.WithAttributes(
			attribute.String("vehicle.number", NormalizePlate(vehicleNo)),
		))
	defer span.End()

	start := time.Now()

	result, found := il.Lot.Search(vehicleNo)

	duration := time.Since(start).Seconds()

	labels := []attribute.KeyValue{
		attribute.String("operation", "search"),
	}

	if found {
		span.SetAttributes(attribute.Int64("ticket.id", result.TicketID))
		span.AddEvent("vehicle_found")
		labels = append(labels, attribute.String("status", "found"))
	} else {
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", "not_found"))
	}

	il.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return result, found
}

func (il *InstrumentedLot) Status(ctx context.Context) map[VehicleClass]ClassStatus {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.status")
	defer span.End()

	start := time.Now()

	status := il.Lot.Status()

	duration := time.Since(start).Seconds()

	for class, cs := range status {
		span.SetAttributes(
			attribute.Int("status."+string(class)+".total", cs.Total),
			attribute.Int("status."+string(class)+".available", cs.Available),
		)
	}

	il.operationDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("operation", "status"),
		attribute.String("status", "success"),
	))

	return status
}

func (il *InstrumentedLot) ListParked(ctx context.Context) []ParkedVehicle {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.list_parked")
	defer span.End()

	start := time.Now()

	parked := il.Lot.ListParked()

	duration := time.Since(start).Seconds()

	span.SetAttributes(attribute.Int("parked_count", len(parked)))

	il.operationDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("operation", "list_parked"),
		attribute.String("status", "success"),
	))

	return parked
}

func (il *InstrumentedLot) History(ctx context.Context, limit int) []Transaction {
	tracer := il.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "parking_lot.history",
		trace.WithAttributes(attribute.Int("limit", limit)))
	defer span.End()

	start := time.Now()

	history := il.Lot.History(limit)

	duration := time.Since(start).Seconds()

	span.SetAttributes(attribute.Int("history_count", len(history)))

	il.operationDuration.Record(ctx, duration, metric.WithAttributes(
		attribute.String("operation", "history"),
		attribute.String("status", "success"),
	))

	return history
}

func parkFailureStatus(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyParked):
		return "already_parked"
	case errors.Is(err, ErrNoSlotAvailable):
		return "lot_full"
	default:
		return "failed"
	}
}

package parking

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Shell is an interactive console over the same lot the HTTP server
// exposes, so operators can drive the engine without the dashboard.
type Shell struct {
	lot       *InstrumentedLot
	scanner   *bufio.Scanner
	telemetry *TelemetryProvider
}

func NewShell(lot *InstrumentedLot, telemetry *TelemetryProvider) *Shell {
	return &Shell{
		lot:       lot,
		scanner:   bufio.NewScanner(os.Stdin),
		telemetry: telemetry,
	}
}

func (s *Shell) Run(ctx context.Context) {
	tracer := s.telemetry.Tracer()
	ctx, span := tracer.Start(ctx, "shell.run")
	defer span.End()

	span.AddEvent("shell_started")
	fmt.Println("Parking lot shell. Commands: park, exit, search, status, parked, history, quit")

	for {
		if !s.scanner.Scan() {
			break
		}

		input := strings.TrimSpace(s.scanner.Text())
		if input == "" {
			continue
		}

		cmdCtx, cmdSpan := tracer.Start(ctx, "shell.process_command",
			trace.WithAttributes(attribute.String("command.input", input)))

		quit := s.processCommand(cmdCtx, input)
		cmdSpan.End()

		if quit {
			break
		}
	}

	span.AddEvent("shell_ended")
}

func (s *Shell) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	switch parts[0] {
	case "park":
		s.handlePark(ctx, parts)
	case "exit":
		s.handleExit(ctx, parts)
	case "search":
		s.handleSearch(ctx, parts)
	case "status":
		s.handleStatus(ctx)
	case "parked":
		s.handleParked(ctx)
	case "history":
		s.handleHistory(ctx, parts)
	case "quit":
		return true
	default:
		fmt.Printf("Unknown command: %s\n", parts[0])
	}
	return false
}

func (s *Shell) handlePark(ctx context.Context, parts []string) {
	if len(parts) != 3 {
		fmt.Println("Usage: park <CAR|BIKE> <vehicle_number>")
		return
	}

	class, err := ParseVehicleClass(parts[1])
	if err != nil {
		fmt.Println("Invalid vehicle class, expected CAR or BIKE")
		return
	}

	result, err := s.lot.Park(ctx, parts[2], class)
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Parked. Ticket %d, slot %s\n", result.TicketID, result.SlotLabel)
}

func (s *Shell) handleExit(ctx context.Context, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: exit <vehicle_number>")
		return
	}

	bill, err := s.lot.Exit(ctx, parts[1])
	if err != nil {
		fmt.Printf("Error: %s\n", err.Error())
		return
	}

	fmt.Printf("Bill for %s: %d hour(s), amount %.2f\n", bill.VehicleNo, bill.BilledHours, bill.Amount)
}

func (s *Shell) handleSearch(ctx context.Context, parts []string) {
	if len(parts) != 2 {
		fmt.Println("Usage: search <vehicle_number>")
		return
	}

	result, found := s.lot.Search(ctx, parts[1])
	if !found {
		fmt.Println("Not found")
		return
	}

	fmt.Printf("Ticket %d, %s in %s, parked for %dm\n",
		result.TicketID, result.Class, result.SlotLabel, result.ElapsedMinutes)
}

func (s *Shell) handleStatus(ctx context.Context) {
	status := s.lot.Status(ctx)
	for _, class := range Classes {
		cs := status[class]
		fmt.Printf("%s: %d/%d available\n", class, cs.Available, cs.Total)
	}
}

func (s *Shell) handleParked(ctx context.Context) {
	parked := s.lot.ListParked(ctx)
	if len(parked) == 0 {
		fmt.Println("No vehicles currently parked")
		return
	}

	fmt.Println("Slot\tVehicle\t\tDuration")
	for _, p := range parked {
		fmt.Printf("%s\t%s\t%s\n", p.SlotLabel, p.VehicleNo, FormatDuration(p.Elapsed))
	}
}

func (s *Shell) handleHistory(ctx context.Context, parts []string) {
	limit := 10
	if len(parts) == 2 {
		n, err := strconv.Atoi(parts[1])
		if err != nil || n <= 0 {
			fmt.Println("Usage: history [count]")
			return
		}
		limit = n
	}

	history := s.lot.History(ctx, limit)
	if len(history) == 0 {
		fmt.Println("No completed exits yet")
		return
	}

	fmt.Println("Vehicle\t\tType\tAmount")
	for _, tx := range history {
		fmt.Printf("%s\t%s\t%.2f\n", tx.VehicleNo, tx.Class, tx.Amount)
	}
}

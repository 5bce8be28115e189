package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"parking-lot/internal/parking"
	"parking-lot/internal/server"
)

var (
	mode      = flag.String("mode", "server", "Mode to run: cli, server, or both")
	port      = flag.String("port", "8080", "Port for HTTP server")
	carSlots  = flag.Int("car-slots", 5, "Number of CAR slots")
	bikeSlots = flag.Int("bike-slots", 5, "Number of BIKE slots")
	carRate   = flag.Float64("car-rate", parking.DefaultCarRate, "Hourly rate for CAR")
	bikeRate  = flag.Float64("bike-rate", parking.DefaultBikeRate, "Hourly rate for BIKE")
)

func main() {
	flag.Parse()

	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", "parking-lot").Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	telemetry, err := parking.NewTelemetryProvider("", "")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}

	tariff := parking.NewTariff(map[parking.VehicleClass]float64{
		parking.Car:  *carRate,
		parking.Bike: *bikeRate,
	})
	capacities := map[parking.VehicleClass]int{
		parking.Car:  *carSlots,
		parking.Bike: *bikeSlots,
	}

	lot, err := parking.NewInstrumentedLot(capacities, tariff, nil, telemetry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create parking lot")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	switch *mode {
	case "cli":
		runCLI(ctx, cancel, lot, telemetry, log, sigChan)
	case "server":
		runServer(ctx, cancel, lot, telemetry, log, sigChan)
	case "both":
		runBoth(ctx, cancel, lot, telemetry, log, sigChan)
	default:
		log.Fatal().Str("mode", *mode).Msg("invalid mode, must be cli, server, or both")
	}
}

func runCLI(ctx context.Context, cancel context.CancelFunc, lot *parking.InstrumentedLot, telemetry *parking.TelemetryProvider, log zerolog.Logger, sigChan chan os.Signal) {
	go func() {
		<-sigChan
		log.Info().Msg("shutting down")
		cancel()
	}()

	shell := parking.NewShell(lot, telemetry)
	shell.Run(ctx)

	shutdownTelemetry(telemetry, log)
}

func runServer(ctx context.Context, cancel context.CancelFunc, lot *parking.InstrumentedLot, telemetry *parking.TelemetryProvider, log zerolog.Logger, sigChan chan os.Signal) {
	srv := server.NewServer(*port, lot, log)

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}

		cancel()
	}()

	if err := srv.Start(); err != nil && err != http.ErrServerClosed {
		log.Error().Err(err).Msg("server error")
	}

	shutdownTelemetry(telemetry, log)
}

func runBoth(ctx context.Context, cancel context.CancelFunc, lot *parking.InstrumentedLot, telemetry *parking.TelemetryProvider, log zerolog.Logger, sigChan chan os.Signal) {
	srv := server.NewServer(*port, lot, log)

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	cliDone := make(chan bool, 1)
	go func() {
		shell := parking.NewShell(lot, telemetry)
		shell.Run(ctx)
		cliDone <- true
	}()

	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}

		cancel()
	}()

	select {
	case err := <-serverDone:
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	case <-cliDone:
		log.Info().Msg("shell exited")
	case <-ctx.Done():
		log.Info().Msg("context cancelled")
	}

	shutdownTelemetry(telemetry, log)
}

func shutdownTelemetry(telemetry *parking.TelemetryProvider, log zerolog.Logger) {
	log.Info().Msg("shutting down telemetry")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error shutting down telemetry")
	}
}

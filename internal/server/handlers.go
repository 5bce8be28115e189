package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"parking-lot/internal/parking"
)

// defaultHistoryLimit bounds the dashboard history view.
const defaultHistoryLimit = 10

func getServiceName() string {
	if name := os.Getenv("OTEL_SERVICE_NAME"); name != "" {
		return name
	}
	return "parking-lot-service"
}

type Handler struct {
	lot *parking.InstrumentedLot
	log zerolog.Logger
}

func NewHandler(lot *parking.InstrumentedLot, log zerolog.Logger) *Handler {
	return &Handler{lot: lot, log: log}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: getServiceName(),
		Meta:    extractMeta(r.Context()),
	})
}

// Park admits a vehicle. The dashboard posts form-encoded bodies; JSON is
// accepted as well for non-browser callers.
func (h *Handler) Park(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ParkRequest
	if err := decodeParkRequest(r, &req); err != nil {
		WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Number) == "" {
		WriteFailure(w, http.StatusBadRequest, "Vehicle number is required")
		return
	}

	class, err := parking.ParseVehicleClass(req.Type)
	if err != nil {
		WriteFailure(w, http.StatusBadRequest, "Vehicle type must be CAR or BIKE")
		return
	}

	result, err := h.lot.Park(ctx, req.Number, class)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrAlreadyParked):
			WriteFailure(w, http.StatusConflict, "Vehicle is already parked")
		case errors.Is(err, parking.ErrNoSlotAvailable):
			WriteFailure(w, http.StatusBadRequest, "No space available")
		default:
			h.logInternal(r, "park", err)
			WriteFailure(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	WriteJSON(w, http.StatusOK, ParkResponse{
		Success:  true,
		TicketID: result.TicketID,
		Slot:     result.SlotLabel,
	})
}

func (h *Handler) Exit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ExitRequest
	if err := decodeExitRequest(r, &req); err != nil {
		WriteFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if strings.TrimSpace(req.Number) == "" {
		WriteFailure(w, http.StatusBadRequest, "Vehicle number is required")
		return
	}

	bill, err := h.lot.Exit(ctx, req.Number)
	if err != nil {
		switch {
		case errors.Is(err, parking.ErrNotFound):
			WriteFailure(w, http.StatusNotFound, "Vehicle not found")
		default:
			// Invariant violations (unknown slot, double release, inverted
			// clock) land here; they indicate a bug, not a user error.
			h.logInternal(r, "exit", err)
			WriteFailure(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	WriteJSON(w, http.StatusOK, ExitResponse{
		Success: true,
		Hours:   bill.BilledHours,
		Amount:  bill.Amount,
	})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	number := r.URL.Query().Get("number")
	if strings.TrimSpace(number) == "" {
		WriteFailure(w, http.StatusBadRequest, "Vehicle number is required")
		return
	}

	result, found := h.lot.Search(ctx, number)
	if !found {
		WriteJSON(w, http.StatusNotFound, SearchResponse{Found: false})
		return
	}

	WriteJSON(w, http.StatusOK, SearchResponse{
		Found:    true,
		Type:     string(result.Class),
		TicketID: result.TicketID,
		Minutes:  result.ElapsedMinutes,
	})
}

func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	status := h.lot.Status(r.Context())

	WriteJSON(w, http.StatusOK, StatusResponse{
		Car: ClassStatus{
			Total:     status[parking.Car].Total,
			Available: status[parking.Car].Available,
		},
		Bike: ClassStatus{
			Total:     status[parking.Bike].Total,
			Available: status[parking.Bike].Available,
		},
	})
}

func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	history := h.lot.History(r.Context(), limit)

	entries := make([]HistoryEntry, 0, len(history))
	for _, tx := range history {
		entries = append(entries, HistoryEntry{
			VehicleNo: tx.VehicleNo,
			Type:      string(tx.Class),
			Amount:    tx.Amount,
		})
	}

	WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) Parked(w http.ResponseWriter, r *http.Request) {
	parked := h.lot.ListParked(r.Context())

	entries := make([]ParkedEntry, 0, len(parked))
	for _, p := range parked {
		entries = append(entries, ParkedEntry{
			Type:      string(p.Class),
			Slot:      p.SlotLabel,
			VehicleNo: p.VehicleNo,
			Duration:  parking.FormatDuration(p.Elapsed),
		})
	}

	WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) logInternal(r *http.Request, operation string, err error) {
	h.log.Error().
		Err(err).
		Str("operation", operation).
		Str("path", r.URL.Path).
		Msg("internal invariant violation")
}

func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}

func decodeParkRequest(r *http.Request, req *ParkRequest) error {
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return err
		}
		req.Type = r.PostForm.Get("type")
		req.Number = r.PostForm.Get("number")
		return nil
	}
	return json.NewDecoder(r.Body).Decode(req)
}

func decodeExitRequest(r *http.Request, req *ExitRequest) error {
	if isForm(r) {
		if err := r.ParseForm(); err != nil {
			return err
		}
		req.Number = r.PostForm.Get("number")
		return nil
	}
	return json.NewDecoder(r.Body).Decode(req)
}

package server

import (
	"context"
	"encoding/json"
	"net/http"

	"go.opentelemetry.io/otel/trace"
)

type Meta struct {
	TraceID   string `json:"trace_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Wire shapes the dashboard consumes. These are the contract; the internal
// result types never leak past this package.

type ParkRequest struct {
	Type   string `json:"type"`
	Number string `json:"number"`
}

type ParkResponse struct {
	Success  bool   `json:"success"`
	TicketID int64  `json:"ticketId"`
	Slot     string `json:"slot"`
}

type ExitRequest struct {
	Number string `json:"number"`
}

type ExitResponse struct {
	Success bool    `json:"success"`
	Hours   int64   `json:"hours"`
	Amount  float64 `json:"amount"`
}

type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type SearchResponse struct {
	Found    bool   `json:"found"`
	Type     string `json:"type,omitempty"`
	TicketID int64  `json:"ticketId,omitempty"`
	Minutes  int64  `json:"minutes,omitempty"`
}

type ClassStatus struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

type StatusResponse struct {
	Car  ClassStatus `json:"car"`
	Bike ClassStatus `json:"bike"`
}

type HistoryEntry struct {
	VehicleNo string  `json:"vehicleNo"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
}

type ParkedEntry struct {
	Type      string `json:"type"`
	Slot      string `json:"slot"`
	VehicleNo string `json:"vehicleNo"`
	Duration  string `json:"duration"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Meta    *Meta  `json:"meta,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func WriteFailure(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, FailureResponse{Success: false, Error: message})
}

func extractMeta(ctx context.Context) *Meta {
	meta := &Meta{}

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().HasTraceID() {
		meta.TraceID = span.SpanContext().TraceID().String()
	}

	if reqID, ok := ctx.Value(RequestIDKey).(string); ok {
		meta.RequestID = reqID
	}

	return meta
}

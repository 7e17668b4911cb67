// Package httpapi exposes the simulation engine over JSON HTTP, along
// with health, readiness, and metrics endpoints. It owns payload
// validation and unit conversion; the engine only sees typed requests
// in canonical units.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/pfas-riskscope/internal/domain"
	"github.com/couchcryptid/pfas-riskscope/internal/observability"
)

// ResultPublisher streams successful simulation results to downstream
// consumers. Implementations must be best-effort and non-blocking from
// the caller's point of view.
type ResultPublisher interface {
	Publish(ctx context.Context, result domain.Result)
}

// Server exposes the simulation API.
type Server struct {
	httpServer *http.Server
	simulator  *domain.Simulator
	locator    domain.RegionLocator // nil when geocoding is disabled
	publisher  ResultPublisher      // nil when the result stream is disabled
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with simulation, health, readiness,
// and metrics routes. locator and publisher may be nil to disable the
// corresponding features.
func NewServer(addr string, simulator *domain.Simulator, locator domain.RegionLocator, publisher ResultPublisher, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		simulator: simulator,
		locator:   locator,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}

	mux.HandleFunc("POST /simulate", s.handleSimulate)
	mux.HandleFunc("POST /simulate-location", s.handleSimulateLocation)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// simulatePayload is the /simulate request body. Flows arrive in MGD
// and are converted before reaching the engine.
type simulatePayload struct {
	Region           string                  `json:"region"`
	DischargePPT     domain.ConcentrationMap `json:"discharge_ppt"`
	ReceivingFlowMGD float64                 `json:"receiving_flow_mgd"`
	DischargeFlowMGD float64                 `json:"discharge_flow_mgd"`
	CoolingType      domain.CoolingType      `json:"cooling_type"`
	Environment      domain.Environment      `json:"environment"`
}

// locationPayload is the /simulate-location request body: a coordinate
// in place of a region code.
type locationPayload struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	simulatePayload
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var payload simulatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.metrics.SimulationErrors.WithLabelValues("validation").Inc()
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}

	s.runSimulation(w, r, payload)
}

func (s *Server) handleSimulateLocation(w http.ResponseWriter, r *http.Request) {
	if s.locator == nil {
		writeError(w, http.StatusServiceUnavailable, "region resolution is not enabled")
		return
	}

	var payload locationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.metrics.SimulationErrors.WithLabelValues("validation").Inc()
		writeError(w, http.StatusBadRequest, "invalid JSON payload: "+err.Error())
		return
	}

	region, err := s.locator.LocateRegion(r.Context(), payload.Lat, payload.Lon)
	if err != nil {
		s.metrics.SimulationErrors.WithLabelValues("geocode").Inc()
		s.logger.Error("region resolution failed", "lat", payload.Lat, "lon", payload.Lon, "error", err)
		writeError(w, http.StatusBadGateway, "region resolution failed")
		return
	}
	if region == "" {
		// Offshore or non-US point: the national fallback still gives a
		// usable screening answer.
		region = domain.NationalRegion
	}

	payload.Region = string(region)
	s.runSimulation(w, r, payload.simulatePayload)
}

func (s *Server) runSimulation(w http.ResponseWriter, r *http.Request, payload simulatePayload) {
	req := domain.Request{
		Region:           payload.Region,
		Discharge:        payload.DischargePPT,
		ReceivingFlowCFS: domain.MGDToCFS(payload.ReceivingFlowMGD),
		DischargeFlowCFS: domain.MGDToCFS(payload.DischargeFlowMGD),
		Cooling:          payload.CoolingType,
		Env:              payload.Environment,
	}

	start := time.Now()
	result, err := s.simulator.Simulate(req)
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			s.metrics.SimulationErrors.WithLabelValues("validation").Inc()
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		s.metrics.SimulationErrors.WithLabelValues("internal").Inc()
		s.logger.Error("simulation failed", "region", payload.Region, "error", err)
		writeError(w, http.StatusInternalServerError, "simulation failed")
		return
	}

	s.metrics.SimulationsTotal.Inc()
	s.metrics.SimulationDuration.Observe(time.Since(start).Seconds())
	s.metrics.RiskCategory.WithLabelValues(string(result.Category)).Inc()

	if s.publisher != nil {
		s.publisher.Publish(r.Context(), result)
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleReady reports ready once the simulator exists; the baseline and
// limits tables are loaded before the server is constructed, so a
// running server is a ready server.
func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	if s.simulator == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}

package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"iocfeed/internal/export"
	"iocfeed/internal/ioc"
)

// Server exposes the IOC collection over HTTP.
type Server struct {
	svc    *ioc.Service
	cfg    *Config
	router *mux.Router
}

func New(svc *ioc.Service, cfg *Config) *Server {
	s := &Server{svc: svc, cfg: cfg, router: mux.NewRouter()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api := s.router.PathPrefix("/api/iocs").Subrouter()
	api.HandleFunc("", s.handleQuery).Methods(http.MethodGet)
	api.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/counts", s.handleCounts).Methods(http.MethodGet)
	api.HandleFunc("/stats", s.handleStats).Methods(http.MethodGet)
	api.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)
	api.HandleFunc("/lookup", s.handleLookup).Methods(http.MethodGet)
}

func (s *Server) Router() http.Handler { return s.router }

// StartMetrics serves Prometheus metrics on its own listener.
func (s *Server) StartMetrics(addr string) {
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil && err != http.ErrServerClosed {
			slog.Error("metrics server error", "err", err)
		}
	}()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Threat Intelligence API Server",
		"endpoints": map[string]string{
			"health":  "/health",
			"iocs":    "/api/iocs",
			"refresh": "/api/iocs/refresh",
			"counts":  "/api/iocs/counts",
			"stats":   "/api/iocs/stats",
			"export":  "/api/iocs/export",
			"lookup":  "/api/iocs/lookup",
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "timestamp": time.Now()})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	page := ioc.Query(s.svc.Store(), queryParams(r))
	writeData(w, page)
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	p := queryParams(r)
	p.CountsOnly = true
	writeData(w, ioc.QueryCounts(s.svc.Store(), p))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, ioc.ComputeStats(s.svc.Store()))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.RefreshAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to refresh feeds", err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	value := r.URL.Query().Get("value")
	if source == "" || value == "" {
		writeError(w, http.StatusBadRequest, "Missing lookup parameters", fmt.Errorf("source and value are required"))
		return
	}
	in, ok := s.svc.Store().Lookup(source, value)
	if !ok {
		writeError(w, http.StatusNotFound, "Indicator not found", fmt.Errorf("no indicator for %s|%s", source, value))
		return
	}
	writeData(w, in)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	// exports are not paginated; serve the whole filtered set
	indicators := ioc.Filter(s.svc.Store().Snapshot(), queryParams(r))

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("iocs-%d.csv", time.Now().UnixMilli())))
		_, _ = w.Write([]byte(export.CSV(indicators)))
		return
	}

	body, err := export.JSON(indicators)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export IOCs", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("iocs-%d.json", time.Now().UnixMilli())))
	_, _ = w.Write(body)
}

func queryParams(r *http.Request) ioc.QueryParams {
	q := r.URL.Query()
	return ioc.QueryParams{
		Type:   q.Get("type"),
		Source: q.Get("source"),
		Q:      q.Get("q"),
		Page:   intParam(q.Get("page"), 1),
		Limit:  intParam(q.Get("limit"), ioc.DefaultLimit),
		Sort:   q.Get("sort"),
	}
}

func intParam(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now(),
	})
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	slog.Error(msg, "err", err)
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   msg,
		"message": err.Error(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Package api serves the cipher operations over HTTP and streams recovery
// candidates over a websocket.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/raphaelgruber/shiftcrack/internal/service"
	"github.com/vmihailenco/msgpack/v4"
)

const maxBodyBytes = 8 << 20

type api struct {
	svc      *service.CipherService
	logger   *slog.Logger
	upgrader websocket.Upgrader
	handler  http.Handler
}

// Option defines functional option parameters for api.
type Option func(*api)

// WithLogger is a functional option to inject a Logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *api) {
		a.logger = logger
	}
}

// WithCheckOrigin overrides the websocket origin check.
func WithCheckOrigin(fn func(r *http.Request) bool) Option {
	return func(a *api) {
		a.upgrader.CheckOrigin = fn
	}
}

// New constructs the HTTP handler for svc.
func New(svc *service.CipherService, options ...Option) http.Handler {
	a := &api{
		svc:    svc,
		logger: slog.Default(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	for _, option := range options {
		option(a)
	}

	a.initRoutes()
	return a
}

func (a *api) initRoutes() {
	const extension = ".{extension:json|msgpack}"
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/health", a.health).Methods(http.MethodGet)
	router.HandleFunc("/ws/candidates", a.candidates).Methods(http.MethodGet)
	router.HandleFunc("/api/encrypt", a.encrypt).Methods(http.MethodPost)
	router.HandleFunc("/api/decrypt", a.decrypt).Methods(http.MethodPost)
	router.HandleFunc("/api/frequency", a.frequency).Methods(http.MethodPost)
	router.HandleFunc("/api/frequency"+extension, a.frequency).Methods(http.MethodPost)
	router.HandleFunc("/api/crack", a.crack).Methods(http.MethodPost)
	router.HandleFunc("/api/stats", a.stats).Methods(http.MethodGet)
	router.HandleFunc("/api/stats"+extension, a.stats).Methods(http.MethodGet)

	// CompressHandler passes websocket upgrades through untouched.
	recovery := handlers.RecoveryHandler(
		handlers.RecoveryLogger(slog.NewLogLogger(a.logger.Handler(), slog.LevelError)),
		handlers.PrintRecoveryStack(true),
	)
	a.handler = recovery(handlers.CompressHandler(router))
}

func (a *api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}

func (a *api) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintln(w, "ok")
}

func (a *api) stats(w http.ResponseWriter, r *http.Request) {
	collector := a.svc.Metrics()
	if collector == nil {
		writeError(w, http.StatusNotFound, "metrics are disabled")
		return
	}
	a.write(w, r, http.StatusOK, collector.Snapshot())
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// decode reads a JSON request body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// write encodes v as msgpack when the route asked for it, JSON otherwise.
func (a *api) write(w http.ResponseWriter, r *http.Request, status int, v any) {
	if mux.Vars(r)["extension"] == "msgpack" {
		w.Header().Set("Content-Type", "application/msgpack")
		w.WriteHeader(status)
		enc := msgpack.NewEncoder(w)
		enc.UseJSONTag(true)
		if err := enc.Encode(v); err != nil {
			a.logger.Error("failed encoding response", "error", err)
		}
		return
	}
	writeJSON(w, status, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps service errors to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidShift):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNoSelection):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

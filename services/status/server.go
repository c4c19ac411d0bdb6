package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"sjsage522/propertymonitor/logger"
)

// ServiceName is reported by the health endpoint
const ServiceName = "Turin Property Monitor"

// Server answers lightweight health and status queries. It shares no state
// with the monitor, so pipeline failures never surface here.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
}

// NewRouter registers the status routes
func NewRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/status", handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/api/status", handleStatus).Methods(http.MethodGet)
	return r
}

// NewServer creates a status server listening on port
func NewServer(port int) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		log: logger.ForServer(),
	}
}

// ListenAndServe blocks until the server stops; a graceful shutdown is not an error
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("Status server listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests until ctx is done
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"status":  "running",
		"service": ServiceName,
	})
}

func handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"message": "Property monitoring service is active",
	})
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(body)
}

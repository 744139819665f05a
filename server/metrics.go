package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "redisd"

var (
	openConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "open_connections",
		Help:      "Number of currently open client connections.",
	})

	commandsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "commands_processed_total",
		Help:      "Commands successfully parsed and executed.",
	})

	protocolErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "protocol_errors_total",
		Help:      "Connections closed due to a malformed frame.",
	})

	bytesWritten = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "bytes_written_total",
		Help:      "Bytes written back to clients across all connections.",
	})
)

// MetricsServer serves the Prometheus registry over HTTP. It is entirely
// independent of the RESP listener: it never touches the Store or parses
// a command, and redis-cli never talks to it.
type MetricsServer struct {
	addr   string
	router *mux.Router
	srv    *http.Server
}

// NewMetricsServer builds a metrics HTTP server bound to addr, exposing
// the registry at /metrics.
func NewMetricsServer(addr string) *MetricsServer {
	router := mux.NewRouter()
	router.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.Handler())
	return &MetricsServer{
		addr:   addr,
		router: router,
		srv:    &http.Server{Addr: addr, Handler: router},
	}
}

// ListenAndServe blocks serving metrics until the server is shut down.
func (m *MetricsServer) ListenAndServe() error {
	return m.srv.ListenAndServe()
}

// Close shuts the metrics server down immediately.
func (m *MetricsServer) Close() error {
	return m.srv.Close()
}

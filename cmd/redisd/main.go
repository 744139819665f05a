// Command redisd runs the RESP key/value server. Listener addresses are
// compile-time constants, not flags or environment variables: this
// server intentionally has no configuration surface beyond the port it
// binds.
package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"redisd/internal/logging"
	"redisd/server"
	"redisd/store"
)

const (
	respAddr    = "0.0.0.0:6379"
	metricsAddr = "0.0.0.0:9121"
)

func main() {
	db := store.New()
	srv := server.New(respAddr, db)
	metrics := server.NewMetricsServer(metricsAddr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := metrics.ListenAndServe(); err != nil {
			logging.Warnf("metrics server stopped: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		logging.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		_ = metrics.Close()
	}()

	if err := srv.Start(); err != nil {
		logging.Errorf("server stopped: %v", err)
	}
}

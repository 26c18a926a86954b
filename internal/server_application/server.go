package server_application

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RunServer serves the HTTP API on httpAddr and the gRPC service on grpcAddr
// until ctx is done, then shuts both down and closes every screen.
func RunServer(ctx context.Context, app *Application, gatherer prometheus.Gatherer, httpAddr, grpcAddr string) error {
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", grpcAddr, err)
	}
	grpcServer := NewGRPCServer(app)

	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           NewHandler(app, gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		app.Log.Info("grpc server listening", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()
	go func() {
		app.Log.Info("http server listening", "addr", httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to serve http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		err = nil
	case err = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		app.Log.Error("http shutdown failed", "error", shutdownErr)
	}
	grpcServer.GracefulStop()

	app.Screens.CloseAll()
	app.Log.Info("server stopped")
	return err
}

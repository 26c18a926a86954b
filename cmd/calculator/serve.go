package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/ERRORIK404/calculator_screen/database"
	"github.com/ERRORIK404/calculator_screen/internal/metrics"
	"github.com/ERRORIK404/calculator_screen/internal/server_application"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host calculator screens over HTTP and gRPC",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := cfg.RequireSecret(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, err := database.InitDB(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		histories, closer, err := openHistories(ctx, cfg, db, log)
		if err != nil {
			return err
		}
		defer closer.Close()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

		app := &server_application.Application{
			Users:    db,
			Screens:  server_application.NewSafeScreenMap(histories, metrics.New(reg), log),
			Secret:   cfg.JWTSecret,
			TokenTTL: cfg.TokenTTL,
			Log:      log,
		}
		return server_application.RunServer(ctx, app, reg, cfg.HTTPAddr, cfg.GRPCAddr)
	},
}

package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/fleetory/console/internal/logger"
	"github.com/fleetory/console/internal/mockapi"
)

func main() {
	var (
		listenAddr string
		logLevel   string
	)
	pflag.StringVarP(&listenAddr, "address", "a", "localhost:8080", "Address to listen on")
	pflag.StringVarP(&logLevel, "log-level", "l", logger.LevelInfo, "Logging level")
	pflag.Parse()

	log, err := logger.NewTextLogger(logLevel)
	if err != nil {
		slog.Error("can't initialize logger", "error", err.Error())
		os.Exit(1)
	}

	srv := mockapi.NewServer(log)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", srv.Handler()))

	fmt.Printf("Fleetory stub API on http://%s/api/v1\n", listenAddr)
	fmt.Printf("Seed accounts:\n")
	fmt.Printf("  %s / %s (SUPER_ADMIN)\n", mockapi.SeedAdminEmail, mockapi.SeedAdminPassword)
	fmt.Printf("  %s / %s (DISTRIBUTOR)\n", mockapi.SeedDistributorEmail, mockapi.SeedDistributorPassword)

	if err := http.ListenAndServe(listenAddr, mux); err != nil {
		log.Error("HTTP server error", "error", err.Error())
		os.Exit(1)
	}
}

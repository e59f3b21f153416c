/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the overtime engine server. Handles configuration,
  dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (optional) and parse flags
  2. Open the SQLite state store
  3. Build the registry (read-once load of persisted state)
  4. Configure the HTTP router
  5. Start the server with graceful shutdown

CONFIGURATION:
  OVERTIME_PORT / -port   HTTP server port (default: 8080)
  OVERTIME_DB   / -db     SQLite database path (default: overtime.db)
                          Use ":memory:" for an in-memory database
  Flags override environment values.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait for active requests
  (30s timeout), close the store, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - registry: State ownership and persistence
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/warp/overtime-engine/api"
	"github.com/warp/overtime-engine/registry"
	"github.com/warp/overtime-engine/store/sqlite"
)

func main() {
	log := logrus.StandardLogger()

	// .env is optional; real environments set variables directly.
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded configuration from .env")
	}

	port := flag.Int("port", envInt("OVERTIME_PORT", 8080), "HTTP server port")
	dbPath := flag.String("db", envString("OVERTIME_DB", "overtime.db"), "SQLite database path")
	flag.Parse()

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer store.Close()

	reg, err := registry.New(context.Background(), store, registry.WithLogger(log))
	if err != nil {
		log.WithError(err).Fatal("failed to load registry state")
	}

	router := api.NewRouter(api.NewHandler(reg, log))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("addr", server.Addr).Info("overtime engine listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"studyhub/domain"
	"studyhub/engine"
	"studyhub/engine/model"
	"studyhub/extract"
	"studyhub/infrastructure/ws"
	"studyhub/ingest"
	"studyhub/runtime"
	"studyhub/runtime/workers"
	"studyhub/services"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so every defer executes before the process
// exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Model bindings
	httpClient := &http.Client{Timeout: config.ModelRequestTimeout}
	bind := func(modelName string) *model.Client {
		if modelName == "" {
			modelName = config.PlannerModel
		}
		return model.NewClient(model.Config{
			BaseURL:    config.ModelBaseURL,
			APIKey:     config.ModelAPIKey,
			Model:      modelName,
			HTTPClient: httpClient,
		})
	}
	team := engine.NewStudyTeam(log,
		bind(config.PlannerModel),
		bind(config.FacilitatorModel),
		bind(config.SelectorModel),
		config.TurnSentinel,
		config.MaxUtterances,
	)

	// 3. Room machinery
	hub := runtime.NewHub(log)
	orchestrator := runtime.NewOrchestrator(log, hub, team, config.ResponderRole, config.TurnSentinel)
	builder := ingest.NewBuilder(ingest.NewNormalizer(log, extract.NewPDF()))
	session := services.NewRoomSession(log, domain.NewRoom(1, config.RoomName),
		hub, builder, orchestrator)

	// 4. Supervision
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(orchestrator, workers.NewTelemetryWorker(log, config.TelemetryInterval, hub))

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	supDone := make(chan struct{})
	go func() {
		defer close(supDone)
		sup.Run(ctx)
	}()

	// 6. HTTP/WebSocket server
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           ws.NewServer(log, session).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting hub server", "address", address, "room", config.RoomName, "at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	// 7. Wait for Stop or Error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	// 8. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("Forced server shutdown", "error", err)
	}
	stop()
	<-supDone
	log.Info("Program stopped cleanly")

	return nil
}

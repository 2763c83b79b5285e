package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	otelapi "go.opentelemetry.io/otel"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/mcpserver"
	scbotel "github.com/scenebridge/scenebridge/otel"
)

// NewServeCmd creates the "serve" subcommand.
func NewServeCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool catalog to an MCP client over stdio",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, version)
		},
	}
	cmd.Flags().String("config", "", "Path to scenebridge.yaml (default: discover)")
	return cmd
}

func runServe(cmd *cobra.Command, version string) error {
	// Stdout is the MCP transport; everything human-readable goes to
	// stderr.
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	cfg, configPath, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if configPath != "" {
		logger.Info("loaded config", "path", configPath)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := scbotel.Setup(ctx, scbotel.ProviderConfig{
		Endpoint:       cfg.Telemetry.OTLPEndpoint,
		ServiceName:    serverName,
		ServiceVersion: version,
	})
	if err != nil {
		return exitError(exitRuntime, "initializing telemetry: %v", err)
	}
	defer func() {
		_ = shutdownTelemetry(context.Background())
	}()

	observer, err := scbotel.NewBridgeObserver(
		otelapi.GetMeterProvider().Meter("scenebridge/bridge"),
		otelapi.GetTracerProvider().Tracer("scenebridge/bridge"),
	)
	if err != nil {
		return exitError(exitRuntime, "initializing bridge observability: %v", err)
	}
	bridge.SetObserver(observer)
	defer bridge.SetObserver(nil)

	client, err := buildBridgeClient(cfg)
	if err != nil {
		return err
	}
	registry, err := buildRegistry(cfg, client)
	if err != nil {
		return err
	}

	if cfg.Health.Cron != "" {
		scheduler, err := bridge.NewHealthScheduler(bridge.HealthSchedulerConfig{
			Client:       client,
			Spec:         cfg.Health.Cron,
			ProbeTimeout: cfg.Health.ProbeTimeout(),
			OnEvent: func(event bridge.HealthEvent) {
				logger.Info("bridge health changed",
					"from", event.Previous,
					"to", event.State,
					"status", event.Report.Status,
					"error", event.Report.Error,
				)
			},
		})
		if err != nil {
			return exitError(exitConfig, "creating health scheduler: %v", err)
		}
		scheduler.Start()
		defer func() {
			_ = scheduler.Stop(context.Background())
		}()
	}

	s := mcpserver.New(mcpserver.Config{
		Name:     serverName,
		Version:  version,
		Registry: registry,
	})
	logger.Info("serving MCP over stdio",
		"tools", registry.Len(),
		"bridge", client.BaseURL(),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- mcpserver.ServeStdio(s)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return nil
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return exitError(exitRuntime, "server error: %v", err)
		}
		return nil
	}
}

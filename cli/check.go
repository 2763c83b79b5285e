package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scenebridge/scenebridge/bridge"
)

// NewCheckCmd creates the "check" subcommand, a one-shot bridge probe.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Probe the editor bridge once and report its health",
		RunE:  runCheck,
	}
	cmd.Flags().String("config", "", "Path to scenebridge.yaml (default: discover)")
	return cmd
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	client, err := buildBridgeClient(cfg)
	if err != nil {
		return err
	}

	report := client.Probe(cmd.Context(), cfg.Health.ProbeTimeout())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "bridge: %s\n", client.BaseURL())
	fmt.Fprintf(out, "state: %s\n", report.State)
	fmt.Fprintf(out, "latency_ms: %d\n", report.LatencyMS)
	if report.Status != "" {
		fmt.Fprintf(out, "status: %s\n", report.Status)
	}

	if report.State != bridge.HealthHealthy {
		return exitError(exitUnhealthy, "%s", report.Error)
	}
	return nil
}

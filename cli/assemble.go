package cli

import (
	"github.com/spf13/cobra"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/config"
	"github.com/scenebridge/scenebridge/editor"
	"github.com/scenebridge/scenebridge/interact"
	"github.com/scenebridge/scenebridge/toolset"
)

// serverName is the identity announced to MCP clients.
const serverName = "scenebridge"

func resolveConfig(cmd *cobra.Command) (config.Config, string, error) {
	explicit, _ := cmd.Flags().GetString("config")
	cfg, path, err := config.Resolve(explicit)
	if err != nil {
		return config.Config{}, "", exitError(exitConfig, "%v", err)
	}
	return cfg, path, nil
}

func buildBridgeClient(cfg config.Config) (*bridge.Client, error) {
	client, err := bridge.NewClient(bridge.ClientConfig{BaseURL: cfg.Bridge.BaseURL})
	if err != nil {
		return nil, exitError(exitConfig, "%v", err)
	}
	return client, nil
}

// buildRegistry assembles the enabled tool modules. Registration is
// fail-fast: an invalid module or a tool-name collision aborts startup
// instead of surfacing at dispatch time.
func buildRegistry(cfg config.Config, client *bridge.Client) (*toolset.Registry, error) {
	registry := toolset.NewRegistry()

	if cfg.EditorEnabled() {
		module := editor.NewModule(client, editor.WithTimeouts(editor.Timeouts{
			Query:   cfg.Bridge.QueryTimeout(),
			Capture: cfg.Bridge.CaptureTimeout(),
			RunCode: cfg.Bridge.RunCodeTimeout(),
		}))
		if err := registry.Add(module); err != nil {
			return nil, exitError(exitConfig, "registering editor tools: %v", err)
		}
	}

	if cfg.InteractEnabled() {
		opts := make([]interact.Option, 0, 2)
		if cfg.Prompt.Backend != "" {
			opts = append(opts, interact.WithBackend(interact.Backend(cfg.Prompt.Backend)))
		}
		if cfg.Prompt.Timeout() > 0 {
			opts = append(opts, interact.WithTimeout(cfg.Prompt.Timeout()))
		}
		if err := registry.Add(interact.NewModule(interact.NewDialogPrompter(opts...))); err != nil {
			return nil, exitError(exitConfig, "registering interact tools: %v", err)
		}
	}

	if registry.Len() == 0 {
		return nil, exitError(exitConfig, "all tool modules are disabled; enable at least one under modules")
	}
	return registry, nil
}

package cli

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scenebridge/scenebridge/toolset"
)

// NewToolsCmd creates the "tools" subcommand, which lists the tool
// catalog the configured server would expose.
func NewToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server would expose",
		RunE:  runTools,
	}
	cmd.Flags().String("config", "", "Path to scenebridge.yaml (default: discover)")
	return cmd
}

func runTools(cmd *cobra.Command, _ []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	client, err := buildBridgeClient(cfg)
	if err != nil {
		return err
	}
	registry, err := buildRegistry(cfg, client)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(writer, "NAME\tMODULE\tARGS\tDESCRIPTION")
	for _, registered := range registry.Descriptors() {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			registered.Descriptor.Name,
			registered.ModuleName,
			argumentSummary(registered.Descriptor.Schema),
			registered.Descriptor.Description,
		)
	}
	return writer.Flush()
}

func argumentSummary(schema toolset.Schema) string {
	if len(schema) == 0 {
		return "-"
	}
	names := make([]string, 0, len(schema))
	for name, field := range schema {
		if field.Required {
			name += "*"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

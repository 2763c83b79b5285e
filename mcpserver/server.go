// Package mcpserver exposes a toolset registry to an MCP client. Each
// descriptor becomes one MCP tool; the generic dispatch handler gates
// every call through schema validation before the tool handler runs and
// converts the normalized content blocks into MCP content.
package mcpserver

import (
	"context"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/toolset"
)

// Config configures the MCP server assembly.
type Config struct {
	Name     string
	Version  string
	Registry *toolset.Registry
}

// New builds an MCP server with every registered tool attached.
func New(cfg Config) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithToolCapabilities(true),
	)
	for _, registered := range cfg.Registry.Descriptors() {
		s.AddTool(buildTool(registered.Descriptor), dispatch(registered.Descriptor))
	}
	return s
}

// ServeStdio runs the server over stdin/stdout until the client hangs up.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

func buildTool(descriptor toolset.Descriptor) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(descriptor.Description)}

	names := make([]string, 0, len(descriptor.Schema))
	for name := range descriptor.Schema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		opts = append(opts, fieldOption(name, descriptor.Schema[name]))
	}
	return mcp.NewTool(descriptor.Name, opts...)
}

func fieldOption(name string, field toolset.Field) mcp.ToolOption {
	common := []mcp.PropertyOption{mcp.Description(field.Description)}
	if field.Required {
		common = append(common, mcp.Required())
	}

	switch field.Type {
	case toolset.TypeString:
		if len(field.Enum) > 0 {
			common = append(common, mcp.Enum(field.Enum...))
		}
		if text, ok := field.Default.(string); ok {
			common = append(common, mcp.DefaultString(text))
		}
		return mcp.WithString(name, common...)

	case toolset.TypeInteger, toolset.TypeFloat:
		if field.Minimum != nil {
			common = append(common, mcp.Min(*field.Minimum))
		}
		if field.Maximum != nil {
			common = append(common, mcp.Max(*field.Maximum))
		}
		if number, ok := defaultNumber(field.Default); ok {
			common = append(common, mcp.DefaultNumber(number))
		}
		return mcp.WithNumber(name, common...)

	case toolset.TypeBoolean:
		if flag, ok := field.Default.(bool); ok {
			common = append(common, mcp.DefaultBool(flag))
		}
		return mcp.WithBoolean(name, common...)

	case toolset.TypeArray:
		if field.Items != nil {
			common = append(common, mcp.Items(map[string]any{"type": jsonType(field.Items.Type)}))
		}
		return mcp.WithArray(name, common...)

	default:
		return mcp.WithObject(name, common...)
	}
}

func defaultNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

func jsonType(fieldType string) string {
	switch fieldType {
	case toolset.TypeFloat:
		return "number"
	case toolset.TypeInteger:
		return "integer"
	case toolset.TypeBoolean:
		return "boolean"
	case toolset.TypeArray:
		return "array"
	case toolset.TypeObject:
		return "object"
	default:
		return "string"
	}
}

// dispatch wraps a descriptor's handler with the validation gate and the
// block-to-content conversion. Validation failures and handler errors
// both come back as MCP tool errors, before any side effect in the
// validation case.
func dispatch(descriptor toolset.Descriptor) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := request.Params.Arguments.(map[string]any)
		if !ok {
			if request.Params.Arguments != nil {
				return mcp.NewToolResultError("arguments must be an object"), nil
			}
			args = map[string]any{}
		}

		coerced, err := descriptor.Schema.Apply(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := descriptor.Handler(ctx, coerced)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toCallToolResult(result), nil
	}
}

func toCallToolResult(result bridge.Result) *mcp.CallToolResult {
	content := make([]mcp.Content, 0, len(result.Content))
	for _, block := range result.Content {
		switch block.Kind {
		case bridge.BlockImage:
			content = append(content, mcp.ImageContent{
				Type:     "image",
				Data:     block.Data,
				MIMEType: block.MIMEType,
			})
		default:
			content = append(content, mcp.TextContent{
				Type: "text",
				Text: block.Text,
			})
		}
	}
	return &mcp.CallToolResult{Content: content}
}

// Package editor exposes the bridge-backed tool module: viewport and
// camera captures, scene-hierarchy queries, and editor-side code
// execution. Handlers here are deliberately thin; argument validation
// happens in the dispatcher and all response-shape variance is absorbed
// by the bridge client.
package editor

import (
	"context"
	"time"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/toolset"
)

// Bridge endpoints used by this module.
const (
	pathScreenshot       = "screenshot"
	pathCameraScreenshot = "camera_screenshot"
	pathSceneTree        = "scene_tree"
	pathRunCode          = "run_code"
)

// Per-endpoint timeouts. Read queries are quick; captures render a frame;
// run_code can trigger arbitrary editor work and gets the longest budget.
const (
	queryTimeout   = 15 * time.Second
	captureTimeout = 30 * time.Second
	runCodeTimeout = 120 * time.Second
)

// Timeouts overrides the built-in per-endpoint budgets. Zero fields keep
// the defaults.
type Timeouts struct {
	Query   time.Duration
	Capture time.Duration
	RunCode time.Duration
}

func (t Timeouts) query() time.Duration {
	if t.Query > 0 {
		return t.Query
	}
	return queryTimeout
}

func (t Timeouts) capture() time.Duration {
	if t.Capture > 0 {
		return t.Capture
	}
	return captureTimeout
}

func (t Timeouts) runCode() time.Duration {
	if t.RunCode > 0 {
		return t.RunCode
	}
	return runCodeTimeout
}

// Option configures the editor module.
type Option func(t *Timeouts)

// WithTimeouts applies per-endpoint timeout overrides.
func WithTimeouts(overrides Timeouts) Option {
	return func(t *Timeouts) { *t = overrides }
}

// NewModule builds the editor tool module bound to a bridge client.
func NewModule(client *bridge.Client, opts ...Option) toolset.Module {
	var timeouts Timeouts
	for _, opt := range opts {
		opt(&timeouts)
	}
	return toolset.Module{
		Name:        "editor",
		Description: "Tools that drive the running editor through its bridge plugin.",
		Tools: []toolset.Descriptor{
			screenshotTool(client, timeouts),
			cameraScreenshotTool(client, timeouts),
			sceneTreeTool(client, timeouts),
			runCodeTool(client, timeouts),
		},
	}
}

func screenshotTool(client *bridge.Client, timeouts Timeouts) toolset.Descriptor {
	return toolset.Descriptor{
		Name:        "editor_screenshot",
		Description: "Capture a screenshot of the active editor viewport.",
		Schema:      toolset.Schema{},
		Handler: func(ctx context.Context, args map[string]any) (bridge.Result, error) {
			return client.Call(ctx, pathScreenshot, nil, timeouts.capture()), nil
		},
	}
}

func cameraScreenshotTool(client *bridge.Client, timeouts Timeouts) toolset.Descriptor {
	vector3 := &toolset.Field{Type: toolset.TypeFloat}
	return toolset.Descriptor{
		Name:        "editor_camera_screenshot",
		Description: "Capture a screenshot from a free camera placed in the scene.",
		Schema: toolset.Schema{
			"position": {
				Type:        toolset.TypeArray,
				Description: "Camera world position as [x, y, z].",
				Required:    true,
				Items:       vector3,
			},
			"target": {
				Type:        toolset.TypeArray,
				Description: "Point the camera looks at as [x, y, z].",
				Default:     []any{0.0, 0.0, 0.0},
				Items:       vector3,
			},
			"fov": {
				Type:        toolset.TypeFloat,
				Description: "Vertical field of view in degrees.",
				Default:     60.0,
				Minimum:     toolset.FloatPtr(1),
				Maximum:     toolset.FloatPtr(179),
			},
			"width": {
				Type:        toolset.TypeInteger,
				Description: "Capture width in pixels.",
				Default:     int64(1280),
				Minimum:     toolset.FloatPtr(1),
				Maximum:     toolset.FloatPtr(8192),
			},
			"height": {
				Type:        toolset.TypeInteger,
				Description: "Capture height in pixels.",
				Default:     int64(720),
				Minimum:     toolset.FloatPtr(1),
				Maximum:     toolset.FloatPtr(8192),
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (bridge.Result, error) {
			body := map[string]any{
				"position": args["position"],
				"target":   args["target"],
				"fov":      args["fov"],
				"width":    args["width"],
				"height":   args["height"],
			}
			return client.Call(ctx, pathCameraScreenshot, body, timeouts.capture()), nil
		},
	}
}

func sceneTreeTool(client *bridge.Client, timeouts Timeouts) toolset.Descriptor {
	return toolset.Descriptor{
		Name:        "editor_scene_tree",
		Description: "Query the hierarchy of the currently open scene.",
		Schema: toolset.Schema{
			"mode": {
				Type:        toolset.TypeString,
				Description: "flat lists node paths only; detailed includes types and properties.",
				Default:     "flat",
				Enum:        []string{"flat", "detailed"},
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (bridge.Result, error) {
			body := map[string]any{"mode": args["mode"]}
			return client.Call(ctx, pathSceneTree, body, timeouts.query()), nil
		},
	}
}

func runCodeTool(client *bridge.Client, timeouts Timeouts) toolset.Descriptor {
	return toolset.Descriptor{
		Name:        "editor_run_code",
		Description: "Execute a code snippet inside the editor process and return its output.",
		Schema: toolset.Schema{
			"code": {
				Type:        toolset.TypeString,
				Description: "Source code to execute in the editor scripting runtime.",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (bridge.Result, error) {
			body := map[string]any{"code": args["code"]}
			return client.Call(ctx, pathRunCode, body, timeouts.runCode()), nil
		},
	}
}

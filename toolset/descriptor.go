// Package toolset defines the registration and dispatch contract for
// callable tools: self-describing descriptors, declarative parameter
// schemas, and a registry that groups descriptors under module namespaces.
package toolset

import (
	"context"

	"github.com/scenebridge/scenebridge/bridge"
)

// Handler executes one tool invocation. It is only ever called with
// arguments that already satisfied the descriptor's schema, and it must
// not keep mutable state between invocations.
type Handler func(ctx context.Context, args map[string]any) (bridge.Result, error)

// Descriptor is the immutable self-description of one callable tool.
type Descriptor struct {
	Name        string
	Description string
	Schema      Schema
	Handler     Handler
}

// ModuleFlags carries per-module behavioral switches.
type ModuleFlags struct {
	// SuppressDiagnostics keeps ambient diagnostic content out of this
	// module's results. Interactive prompts set it: their output is
	// user-facing, not log material.
	SuppressDiagnostics bool
}

// Module groups related descriptors under a namespace.
type Module struct {
	Name        string
	Description string
	Tools       []Descriptor
	Flags       ModuleFlags
}

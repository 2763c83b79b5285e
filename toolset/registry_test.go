package toolset

import (
	"context"
	"strings"
	"testing"

	"github.com/scenebridge/scenebridge/bridge"
)

func stubHandler(ctx context.Context, args map[string]any) (bridge.Result, error) {
	return bridge.Result{Content: []bridge.Block{bridge.TextBlock("ok")}}, nil
}

func stubModule(name string, tools ...string) Module {
	module := Module{Name: name, Description: name + " tools"}
	for _, tool := range tools {
		module.Tools = append(module.Tools, Descriptor{
			Name:        tool,
			Description: tool,
			Handler:     stubHandler,
		})
	}
	return module
}

func TestRegistryAddAndLookup(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Add(stubModule("editor", "editor_screenshot", "editor_scene_tree")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := registry.Add(stubModule("interact", "ask_user")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if registry.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", registry.Len())
	}

	registered, ok := registry.Lookup("editor_scene_tree")
	if !ok {
		t.Fatal("Lookup(editor_scene_tree) not found")
	}
	if registered.ModuleName != "editor" {
		t.Fatalf("ModuleName = %q, want editor", registered.ModuleName)
	}

	if _, ok := registry.Lookup("missing_tool"); ok {
		t.Fatal("Lookup(missing_tool) found, want miss")
	}
}

func TestRegistryDescriptorsPreserveOrder(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Add(stubModule("editor", "b_tool", "a_tool")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	descriptors := registry.Descriptors()
	if len(descriptors) != 2 {
		t.Fatalf("len = %d, want 2", len(descriptors))
	}
	if descriptors[0].Descriptor.Name != "b_tool" || descriptors[1].Descriptor.Name != "a_tool" {
		t.Fatalf("order = [%s %s], want registration order", descriptors[0].Descriptor.Name, descriptors[1].Descriptor.Name)
	}
}

func TestRegistryRejectsCollisionAcrossModules(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Add(stubModule("editor", "editor_screenshot")); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	err := registry.Add(stubModule("other", "editor_screenshot"))
	if err == nil {
		t.Fatal("Add() error = nil, want collision failure")
	}
	if !strings.Contains(err.Error(), "editor_screenshot") || !strings.Contains(err.Error(), "editor") {
		t.Fatalf("error = %v, want tool and module names", err)
	}

	// Failed registration must not leave partial state behind.
	if registry.Len() != 1 {
		t.Fatalf("Len() = %d after failed Add, want 1", registry.Len())
	}
}

func TestRegistryRejectsCollisionWithinModule(t *testing.T) {
	registry := NewRegistry()
	if err := registry.Add(stubModule("editor", "dup", "dup")); err == nil {
		t.Fatal("Add() error = nil, want collision failure")
	}
	if registry.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", registry.Len())
	}
}

func TestRegistryRejectsInvalidModules(t *testing.T) {
	registry := NewRegistry()

	if err := registry.Add(Module{Name: "  "}); err == nil {
		t.Fatal("Add() accepted empty module name")
	}
	if err := registry.Add(Module{Name: "empty"}); err == nil {
		t.Fatal("Add() accepted module without tools")
	}
	if err := registry.Add(Module{Name: "nohandler", Tools: []Descriptor{{Name: "x"}}}); err == nil {
		t.Fatal("Add() accepted descriptor without handler")
	}
}

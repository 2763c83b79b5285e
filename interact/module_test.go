package interact

import (
	"context"
	"errors"
	"testing"

	"github.com/scenebridge/scenebridge/bridge"
)

type scriptedPrompter struct {
	answer     string
	askErr     error
	confirmErr error
	lastPrompt string
}

func (p *scriptedPrompter) Ask(_ context.Context, prompt string) (string, error) {
	p.lastPrompt = prompt
	return p.answer, p.askErr
}

func (p *scriptedPrompter) Confirm(_ context.Context, prompt string) error {
	p.lastPrompt = prompt
	return p.confirmErr
}

func TestModuleFlags(t *testing.T) {
	module := NewModule(&scriptedPrompter{})
	if !module.Flags.SuppressDiagnostics {
		t.Fatal("SuppressDiagnostics not set on interact module")
	}
	if len(module.Tools) != 2 {
		t.Fatalf("len(tools) = %d, want 2", len(module.Tools))
	}
}

func TestAskUserReturnsAnswer(t *testing.T) {
	prompter := &scriptedPrompter{answer: "the tower level"}
	module := NewModule(prompter)

	tool := module.Tools[0]
	if tool.Name != "ask_user" {
		t.Fatalf("tools[0] = %q, want ask_user", tool.Name)
	}

	args, err := tool.Schema.Apply(map[string]any{"question": "Which level?"})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	result, err := tool.Handler(context.Background(), args)
	if err != nil {
		t.Fatalf("Handler() error = %v", err)
	}

	if prompter.lastPrompt != "Which level?" {
		t.Fatalf("prompt = %q", prompter.lastPrompt)
	}
	if len(result.Content) != 1 || result.Content[0].Text != "the tower level" {
		t.Fatalf("content = %+v", result.Content)
	}
	if result.Content[0].Kind != bridge.BlockText {
		t.Fatalf("kind = %s, want text", result.Content[0].Kind)
	}
}

func TestConfirmActionConfirmed(t *testing.T) {
	module := NewModule(&scriptedPrompter{})
	tool := module.Tools[1]
	if tool.Name != "confirm_action" {
		t.Fatalf("tools[1] = %q, want confirm_action", tool.Name)
	}

	result, err := tool.Handler(context.Background(), map[string]any{"message": "Rebuild lighting?"})
	if err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	if len(result.Content) != 1 || result.Content[0].Text != Confirmed {
		t.Fatalf("content = %+v, want fixed confirmation string", result.Content)
	}
}

func TestConfirmActionCancelled(t *testing.T) {
	module := NewModule(&scriptedPrompter{confirmErr: ErrCancelled})
	tool := module.Tools[1]

	_, err := tool.Handler(context.Background(), map[string]any{"message": "Rebuild lighting?"})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("Handler() error = %v, want ErrCancelled", err)
	}
}

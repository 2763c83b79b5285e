package interact

import (
	"context"

	"github.com/scenebridge/scenebridge/bridge"
	"github.com/scenebridge/scenebridge/toolset"
)

// NewModule builds the interactive confirmation tool module.
//
// SuppressDiagnostics is set: prompt results go straight to the calling
// agent and must not carry ambient diagnostic content.
func NewModule(prompter Prompter) toolset.Module {
	return toolset.Module{
		Name:        "interact",
		Description: "Tools that block on human input through a dialog or terminal prompt.",
		Flags:       toolset.ModuleFlags{SuppressDiagnostics: true},
		Tools: []toolset.Descriptor{
			askUserTool(prompter),
			confirmActionTool(prompter),
		},
	}
}

func askUserTool(prompter Prompter) toolset.Descriptor {
	return toolset.Descriptor{
		Name:        "ask_user",
		Description: "Ask the user a free-text question and wait for their answer. The call blocks until the user responds.",
		Schema: toolset.Schema{
			"question": {
				Type:        toolset.TypeString,
				Description: "Question shown to the user.",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (bridge.Result, error) {
			question, _ := args["question"].(string)
			answer, err := prompter.Ask(ctx, question)
			if err != nil {
				return bridge.Result{}, err
			}
			return bridge.Result{Content: []bridge.Block{bridge.TextBlock(answer)}}, nil
		},
	}
}

func confirmActionTool(prompter Prompter) toolset.Descriptor {
	return toolset.Descriptor{
		Name:        "confirm_action",
		Description: "Ask the user to confirm or cancel an action. Fails with a cancellation error when dismissed.",
		Schema: toolset.Schema{
			"message": {
				Type:        toolset.TypeString,
				Description: "Description of the action awaiting confirmation.",
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, args map[string]any) (bridge.Result, error) {
			message, _ := args["message"].(string)
			if err := prompter.Confirm(ctx, message); err != nil {
				return bridge.Result{}, err
			}
			return bridge.Result{Content: []bridge.Block{bridge.TextBlock(Confirmed)}}, nil
		},
	}
}

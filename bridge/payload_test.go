package bridge

import (
	"encoding/json"
	"testing"
)

func TestClassifyCurrentShape(t *testing.T) {
	payload, err := Classify([]byte(`{"messages":[{"type":"text","content":"hi"}]}`))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	messages, ok := payload.(MessagesPayload)
	if !ok {
		t.Fatalf("Classify() = %T, want MessagesPayload", payload)
	}
	if len(messages.Messages) != 1 || messages.Messages[0].Content != "hi" {
		t.Fatalf("messages = %+v", messages.Messages)
	}
}

func TestClassifyEmptyMessagesStaysCurrent(t *testing.T) {
	payload, err := Classify([]byte(`{"messages":[]}`))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if _, ok := payload.(MessagesPayload); !ok {
		t.Fatalf("Classify() = %T, want MessagesPayload", payload)
	}
}

func TestClassifyLegacyShape(t *testing.T) {
	payload, err := Classify([]byte(`{"message":"done","data":"42","status":"idle"}`))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	legacy, ok := payload.(LegacyPayload)
	if !ok {
		t.Fatalf("Classify() = %T, want LegacyPayload", payload)
	}
	if legacy.Message != "done" || legacy.Data != "42" || legacy.Status != "idle" {
		t.Fatalf("legacy = %+v", legacy)
	}
}

func TestClassifyEmptyBody(t *testing.T) {
	payload, err := Classify([]byte("  \n"))
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if _, ok := payload.(LegacyPayload); !ok {
		t.Fatalf("Classify() = %T, want LegacyPayload", payload)
	}
}

func TestClassifyRejectsNonObject(t *testing.T) {
	if _, err := Classify([]byte(`"just a string"`)); err == nil {
		t.Fatal("Classify() error = nil, want decode failure")
	}
	if _, err := Classify([]byte(`not json at all`)); err == nil {
		t.Fatal("Classify() error = nil, want decode failure")
	}
}

func TestLogEntryUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want LogEntry
	}{
		{"lowercase", `{"level":"warning","message":"low disk"}`, LogEntry{Level: "warning", Message: "low disk"}},
		{"capitalized", `{"Level":"Error","Message":"crash"}`, LogEntry{Level: "Error", Message: "crash"}},
		{"bare string", `"plain"`, LogEntry{Message: "plain"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var entry LogEntry
			if err := json.Unmarshal([]byte(tc.raw), &entry); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if entry != tc.want {
				t.Fatalf("entry = %+v, want %+v", entry, tc.want)
			}
		})
	}
}

func TestLogEntryRender(t *testing.T) {
	if got := (LogEntry{Level: "Warning", Message: "oops"}).Render(); got != "Warning: oops" {
		t.Fatalf("Render() = %q", got)
	}
	if got := (LogEntry{Message: "plain string"}).Render(); got != "plain string" {
		t.Fatalf("Render() = %q", got)
	}
}

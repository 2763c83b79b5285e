package bridge

import (
	"strings"
	"testing"
)

func TestNormalizeMessagesTextAndImage(t *testing.T) {
	result := Normalize(MessagesPayload{Messages: []Message{
		{Type: "text", Content: "hello"},
		{Type: "image", Content: "AAAA", Text: "caption"},
	}})

	if len(result.Content) != 3 {
		t.Fatalf("len(content) = %d, want 3", len(result.Content))
	}
	if result.Content[0].Kind != BlockText || result.Content[0].Text != "hello" {
		t.Fatalf("content[0] = %+v, want text %q", result.Content[0], "hello")
	}
	if result.Content[1].Kind != BlockText || result.Content[1].Text != "caption" {
		t.Fatalf("content[1] = %+v, want caption block", result.Content[1])
	}
	if result.Content[2].Kind != BlockImage || result.Content[2].Data != "AAAA" || result.Content[2].MIMEType != MIMEPNG {
		t.Fatalf("content[2] = %+v, want PNG image %q", result.Content[2], "AAAA")
	}
}

func TestNormalizeMessagesImageWithoutCaption(t *testing.T) {
	result := Normalize(MessagesPayload{Messages: []Message{
		{Type: "image", Content: "AAAA"},
	}})

	if len(result.Content) != 1 {
		t.Fatalf("len(content) = %d, want 1", len(result.Content))
	}
	if result.Content[0].Kind != BlockImage {
		t.Fatalf("content[0].Kind = %s, want image", result.Content[0].Kind)
	}
}

func TestNormalizeMessagesSkipsUnknownTypes(t *testing.T) {
	result := Normalize(MessagesPayload{Messages: []Message{
		{Type: "audio", Content: "ignored"},
		{Type: "text", Content: "kept"},
	}})

	if len(result.Content) != 1 {
		t.Fatalf("len(content) = %d, want 1", len(result.Content))
	}
	if result.Content[0].Text != "kept" {
		t.Fatalf("content[0].Text = %q, want %q", result.Content[0].Text, "kept")
	}
}

func TestNormalizeShapePriority(t *testing.T) {
	// Legacy fields alongside a messages array must be ignored.
	raw := []byte(`{"messages":[{"type":"text","content":"current"}],"message":"legacy","status":"idle"}`)

	payload, err := Classify(raw)
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if _, ok := payload.(MessagesPayload); !ok {
		t.Fatalf("Classify() = %T, want MessagesPayload", payload)
	}

	result := Normalize(payload)
	if len(result.Content) != 1 || result.Content[0].Text != "current" {
		t.Fatalf("content = %+v, want single %q text block", result.Content, "current")
	}
}

func TestNormalizeLegacyDeDuplication(t *testing.T) {
	same := Normalize(LegacyPayload{Message: "X", Data: "X"})
	if len(same.Content) != 1 || same.Content[0].Text != "X" {
		t.Fatalf("content = %+v, want exactly one %q block", same.Content, "X")
	}

	distinct := Normalize(LegacyPayload{Message: "X", Data: "Y"})
	if len(distinct.Content) != 2 {
		t.Fatalf("len(content) = %d, want 2", len(distinct.Content))
	}
	if distinct.Content[0].Text != "X" || distinct.Content[1].Text != "Y" {
		t.Fatalf("content = %+v, want %q then %q", distinct.Content, "X", "Y")
	}
}

func TestNormalizeLegacyImagePairing(t *testing.T) {
	result := Normalize(LegacyPayload{Image: "BBBB"})

	if len(result.Content) != 2 {
		t.Fatalf("len(content) = %d, want 2", len(result.Content))
	}
	if result.Content[0].Kind != BlockText || result.Content[0].Text != screenshotCaption {
		t.Fatalf("content[0] = %+v, want fixed caption", result.Content[0])
	}
	if result.Content[1].Kind != BlockImage || result.Content[1].Data != "BBBB" || result.Content[1].MIMEType != MIMEPNG {
		t.Fatalf("content[1] = %+v, want PNG image", result.Content[1])
	}
}

func TestNormalizeLegacyErrorRendering(t *testing.T) {
	result := Normalize(LegacyPayload{Errors: []LogEntry{
		{Level: "Warning", Message: "oops"},
		{Message: "plain string"},
	}})

	if len(result.Content) != 1 {
		t.Fatalf("len(content) = %d, want 1", len(result.Content))
	}
	text := result.Content[0].Text
	if !strings.HasPrefix(text, logHeading) {
		t.Fatalf("text = %q, want %q heading", text, logHeading)
	}
	if !strings.Contains(text, "Warning: oops\nplain string") {
		t.Fatalf("text = %q, want joined error lines", text)
	}
}

func TestNormalizeLegacyFieldOrder(t *testing.T) {
	result := Normalize(LegacyPayload{
		Message: "msg",
		Data:    "data",
		Image:   "CCCC",
		Errors:  []LogEntry{{Level: "Error", Message: "bad"}},
	})

	kinds := make([]BlockKind, 0, len(result.Content))
	for _, block := range result.Content {
		kinds = append(kinds, block.Kind)
	}
	want := []BlockKind{BlockText, BlockText, BlockText, BlockImage, BlockText}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds[%d] = %s, want %s", i, kinds[i], want[i])
		}
	}
	if result.Content[0].Text != "msg" || result.Content[1].Text != "data" {
		t.Fatalf("message/data order violated: %+v", result.Content[:2])
	}
}

func TestNormalizeLegacyStatusFallback(t *testing.T) {
	result := Normalize(LegacyPayload{Status: "idle"})

	if len(result.Content) != 1 {
		t.Fatalf("len(content) = %d, want 1", len(result.Content))
	}
	if !strings.Contains(result.Content[0].Text, "idle") {
		t.Fatalf("text = %q, want mention of %q", result.Content[0].Text, "idle")
	}
}

func TestNormalizeNeverEmpty(t *testing.T) {
	payloads := []Payload{
		LegacyPayload{},
		LegacyPayload{Status: "busy"},
		LegacyPayload{Errors: []LogEntry{{Message: "x"}}},
		MessagesPayload{},
		MessagesPayload{Messages: []Message{{Type: "mystery"}}},
	}
	for i, payload := range payloads {
		if result := Normalize(payload); result.IsEmpty() {
			t.Fatalf("payload[%d] (%T) produced empty result", i, payload)
		}
	}
}

func TestNormalizeFailureWithoutBody(t *testing.T) {
	result := NormalizeFailure("Could not reach the editor bridge at http://127.0.0.1:8090.", nil)

	if len(result.Content) != 1 {
		t.Fatalf("len(content) = %d, want 1", len(result.Content))
	}
	text := result.Content[0].Text
	if !strings.Contains(text, "Could not reach the editor bridge") {
		t.Fatalf("text = %q, want connectivity message", text)
	}
	if !strings.Contains(text, remediationHint) {
		t.Fatalf("text = %q, want remediation hint", text)
	}
}

func TestNormalizeFailureStructuredBody(t *testing.T) {
	result := NormalizeFailure("bridge unreachable", []byte(`{"message":"compile failed","errors":["line 3: oops"]}`))

	if len(result.Content) != 3 {
		t.Fatalf("len(content) = %d, want 3", len(result.Content))
	}
	if result.Content[1].Text != "compile failed" {
		t.Fatalf("content[1].Text = %q, want %q", result.Content[1].Text, "compile failed")
	}
	if !strings.Contains(result.Content[2].Text, "line 3: oops") {
		t.Fatalf("content[2].Text = %q, want rendered error line", result.Content[2].Text)
	}
}

func TestNormalizeFailureMalformedBody(t *testing.T) {
	result := NormalizeFailure("bridge unreachable", []byte(`<html>502 Bad Gateway</html>`))

	if len(result.Content) != 2 {
		t.Fatalf("len(content) = %d, want 2", len(result.Content))
	}
	if result.Content[1].Text != "<html>502 Bad Gateway</html>" {
		t.Fatalf("content[1].Text = %q, want raw body", result.Content[1].Text)
	}
}

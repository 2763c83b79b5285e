package bridge

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Message types recognized in current-shape payloads. Entries with any
// other type value are skipped during normalization, not errored.
const (
	MessageText  = "text"
	MessageImage = "image"
)

// Payload is a classified upstream response body. The bridge speaks one of
// two historical formats; classification turns duck-typed field probing
// into an explicit tagged union so normalization never inspects raw maps.
type Payload interface {
	payloadShape() string
}

// Message is one entry of a current-shape response.
type Message struct {
	Type    string `json:"type"`
	Content string `json:"content"`
	Text    string `json:"text,omitempty"`
}

// MessagesPayload is the current bridge response shape: an ordered list of
// typed messages.
type MessagesPayload struct {
	Messages []Message `json:"messages"`
}

func (MessagesPayload) payloadShape() string { return "messages" }

// LegacyPayload is the pre-messages bridge response shape: a flat record of
// optional fields, all of which may be absent.
type LegacyPayload struct {
	Message string     `json:"message,omitempty"`
	Data    string     `json:"data,omitempty"`
	Image   string     `json:"image,omitempty"`
	Errors  []LogEntry `json:"errors,omitempty"`
	Status  string     `json:"status,omitempty"`
}

func (LegacyPayload) payloadShape() string { return "legacy" }

// LogEntry is one diagnostic line reported by the bridge. Old editor
// builds emitted capitalized field names and occasionally bare strings;
// all three spellings decode to the same entry.
type LogEntry struct {
	Level   string
	Message string
}

// UnmarshalJSON accepts {"level","message"}, {"Level","Message"}, or a
// plain JSON string.
func (e *LogEntry) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		e.Level = ""
		e.Message = plain
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("bridge: decode log entry: %w", err)
	}
	e.Level = stringField(obj, "level", "Level")
	e.Message = stringField(obj, "message", "Message")
	return nil
}

// Render formats the entry as "Level: Message". Entries decoded from bare
// strings carry no level and render as the message alone.
func (e LogEntry) Render() string {
	if strings.TrimSpace(e.Level) == "" {
		return e.Message
	}
	return e.Level + ": " + e.Message
}

func stringField(obj map[string]json.RawMessage, keys ...string) string {
	for _, key := range keys {
		raw, ok := obj[key]
		if !ok {
			continue
		}
		var value string
		if err := json.Unmarshal(raw, &value); err == nil {
			return value
		}
	}
	return ""
}

// classifyEnvelope probes for the current shape without committing to a
// full decode.
type classifyEnvelope struct {
	Messages *[]Message `json:"messages"`
}

// Classify decodes a raw upstream body into a typed payload. The current
// shape wins whenever a messages array is present, regardless of any
// legacy fields that may accompany it; otherwise the body decodes as
// legacy. Bodies that are not JSON objects fail with a decode error.
func Classify(raw []byte) (Payload, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return LegacyPayload{}, nil
	}

	var envelope classifyEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Messages != nil {
		return MessagesPayload{Messages: *envelope.Messages}, nil
	}

	var legacy LegacyPayload
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, newBridgeError(CodeDecodeFailure, "bridge: response is not a recognized shape", err)
	}
	return legacy, nil
}

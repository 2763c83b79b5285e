package bridge

import (
	"fmt"
	"strings"
)

const (
	// screenshotCaption labels legacy image payloads, which carry no
	// caption of their own.
	screenshotCaption = "Screenshot captured:"

	// logHeading prefixes the rendered diagnostic lines of a legacy
	// errors field.
	logHeading = "Editor log:"

	// unknownStatus is echoed when a legacy payload carries no
	// recognized field and no status either.
	unknownStatus = "unknown"

	// remediationHint is appended to every connectivity failure message.
	remediationHint = "Check that the editor is running, that the bridge " +
		"plugin is enabled, and that it is listening on the configured port."
)

// Normalize converts a classified payload into the canonical content-block
// sequence. The result is never empty: a legacy payload with no recognized
// field degrades to a single status-echo text block.
func Normalize(payload Payload) Result {
	switch p := payload.(type) {
	case MessagesPayload:
		return normalizeMessages(p)
	case LegacyPayload:
		return normalizeLegacy(p)
	default:
		return statusFallback("")
	}
}

func normalizeMessages(p MessagesPayload) Result {
	blocks := make([]Block, 0, len(p.Messages))
	for _, msg := range p.Messages {
		switch msg.Type {
		case MessageText:
			blocks = append(blocks, TextBlock(msg.Content))
		case MessageImage:
			if strings.TrimSpace(msg.Text) != "" {
				blocks = append(blocks, TextBlock(msg.Text))
			}
			blocks = append(blocks, ImageBlock(msg.Content, MIMEPNG))
		default:
			// Unrecognized message types from newer bridge builds are
			// skipped rather than errored.
		}
	}
	if len(blocks) == 0 {
		return statusFallback("")
	}
	return Result{Content: blocks}
}

// normalizeLegacy evaluates the legacy fields in fixed order: message,
// data, image, errors. The data field is suppressed when it echoes the
// message verbatim; old bridge builds duplicated the two on several
// endpoints. The comparison is exact, not whitespace-insensitive.
func normalizeLegacy(p LegacyPayload) Result {
	blocks := make([]Block, 0, 4)

	if p.Message != "" {
		blocks = append(blocks, TextBlock(p.Message))
	}
	if strings.TrimSpace(p.Data) != "" && p.Data != p.Message {
		blocks = append(blocks, TextBlock(p.Data))
	}
	if p.Image != "" {
		blocks = append(blocks, TextBlock(screenshotCaption))
		blocks = append(blocks, ImageBlock(p.Image, MIMEPNG))
	}
	if len(p.Errors) > 0 {
		lines := make([]string, 0, len(p.Errors))
		for _, entry := range p.Errors {
			lines = append(lines, entry.Render())
		}
		blocks = append(blocks, TextBlock(logHeading+"\n"+strings.Join(lines, "\n")))
	}

	if len(blocks) == 0 {
		return statusFallback(p.Status)
	}
	return Result{Content: blocks}
}

// NormalizeRaw classifies and normalizes a raw body in one step. A body
// that cannot be classified degrades to a single raw-text block instead of
// surfacing a parse error.
func NormalizeRaw(raw []byte) Result {
	payload, err := Classify(raw)
	if err != nil {
		trimmed := strings.TrimSpace(string(raw))
		if trimmed == "" {
			return statusFallback("")
		}
		return Result{Content: []Block{TextBlock(trimmed)}}
	}
	return Normalize(payload)
}

// NormalizeFailure renders a failed bridge call. The first block always
// carries the connectivity message and the remediation hint. A structured
// failure body is run back through classification and its blocks appended;
// bodies that resist even that degrade to raw text.
func NormalizeFailure(message string, body []byte) Result {
	blocks := []Block{TextBlock(failureText(message))}
	if strings.TrimSpace(string(body)) == "" {
		return Result{Content: blocks}
	}
	blocks = append(blocks, NormalizeRaw(body).Content...)
	return Result{Content: blocks}
}

func failureText(message string) string {
	clean := strings.TrimSpace(message)
	if clean == "" {
		clean = "Editor bridge call failed."
	}
	return clean + "\n\n" + remediationHint
}

func statusFallback(status string) Result {
	if strings.TrimSpace(status) == "" {
		status = unknownStatus
	}
	text := fmt.Sprintf("Editor bridge returned status %q with no content.", status)
	return Result{Content: []Block{TextBlock(text)}}
}

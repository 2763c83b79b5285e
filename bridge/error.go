package bridge

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// CodeConnectivity is returned when the bridge endpoint is unreachable.
	CodeConnectivity = "CONNECTIVITY_FAILURE"
	// CodeTimeout is returned when a bridge call exceeds its deadline.
	CodeTimeout = "TIMEOUT"
	// CodeDecodeFailure is returned when a response body cannot be classified.
	CodeDecodeFailure = "DECODE_FAILURE"
	// CodeUpstreamFailure is returned for non-success HTTP responses.
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
	// CodeValidation is returned when tool arguments violate their schema.
	CodeValidation = "VALIDATION_FAILURE"
	// CodeUserCancelled is returned when a human dismisses a prompt.
	CodeUserCancelled = "USER_CANCELLED"
	// CodeCallFailed is a generic fallback for bridge call failures.
	CodeCallFailed = "CALL_FAILED"
)

// BridgeError is a structured failure that keeps a machine-readable code
// alongside the human-readable message as it flows across the client,
// health probing, and the tool surface.
type BridgeError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Cause   error          `json:"-"`

	// Retryable marks transient transport conditions. The client never
	// retries on its own; the flag is advice for the calling agent.
	Retryable bool `json:"retryable,omitempty"`
}

func (e *BridgeError) Error() string {
	if e == nil {
		return ""
	}
	code := strings.TrimSpace(e.Code)
	msg := strings.TrimSpace(e.Message)
	switch {
	case code == "" && msg == "":
		return CodeCallFailed
	case code == "":
		return msg
	case msg == "":
		return code
	default:
		return fmt.Sprintf("%s: %s", code, msg)
	}
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *BridgeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func newBridgeError(code, message string, cause error) *BridgeError {
	cleanCode := strings.TrimSpace(code)
	if cleanCode == "" {
		cleanCode = CodeCallFailed
	}
	cleanMsg := strings.TrimSpace(message)
	if cleanMsg == "" && cause != nil {
		cleanMsg = cause.Error()
	}
	return &BridgeError{
		Code:    cleanCode,
		Message: cleanMsg,
		Cause:   cause,
	}
}

// ErrorCode extracts the bridge error code from err, or returns fallback
// when err carries none.
func ErrorCode(err error, fallback string) string {
	var bridgeErr *BridgeError
	if errors.As(err, &bridgeErr) && bridgeErr != nil && strings.TrimSpace(bridgeErr.Code) != "" {
		return bridgeErr.Code
	}
	if strings.TrimSpace(fallback) == "" {
		return CodeCallFailed
	}
	return fallback
}

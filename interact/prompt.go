// Package interact implements the tool family that blocks on human input.
// Unlike the bridge-backed tools there is no HTTP upstream here: the call
// suspends until a person answers a platform dialog or a terminal prompt,
// then resolves to exactly one string or a cancellation error.
package interact

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrCancelled reports that the human dismissed the prompt. Callers must
// not conflate it with connectivity problems; it is a deliberate decision,
// not a transport failure.
var ErrCancelled = errors.New("interact: cancelled by user")

// Confirmed is the fixed result of a successful confirm_action call.
const Confirmed = "Confirmed."

// Prompter blocks until the human responds or dismisses.
type Prompter interface {
	// Ask presents a free-text question and returns the entered string.
	Ask(ctx context.Context, prompt string) (string, error)

	// Confirm presents a binary ok/cancel decision. It returns nil on
	// confirmation and ErrCancelled on dismissal.
	Confirm(ctx context.Context, prompt string) error
}

// CommandRunner executes one OS command and captures its output. It is a
// seam for tests; production use shells out through os/exec.
type CommandRunner func(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)

func execRunner(ctx context.Context, name string, args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Backend selects the prompt mechanism.
type Backend string

const (
	// BackendAuto picks a native dialog when the platform has one and
	// falls back to the terminal otherwise.
	BackendAuto     Backend = "auto"
	BackendDialog   Backend = "dialog"
	BackendTerminal Backend = "terminal"
)

// DialogPrompter asks through a platform-native dialog (osascript on
// macOS, zenity on Linux) with a terminal fallback. Waiting is unbounded
// unless WithTimeout is supplied; callers needing an upper bound and not
// using the option must impose one through the context.
type DialogPrompter struct {
	backend Backend
	goos    string
	runner  CommandRunner
	timeout time.Duration
	stdin   io.Reader
	stderr  io.Writer
}

// Option configures a DialogPrompter.
type Option func(p *DialogPrompter)

// WithTimeout bounds each wait. Zero keeps the default: no timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *DialogPrompter) { p.timeout = d }
}

// WithBackend forces a prompt backend.
func WithBackend(b Backend) Option {
	return func(p *DialogPrompter) { p.backend = b }
}

// WithRunner overrides command execution, primarily for tests.
func WithRunner(r CommandRunner) Option {
	return func(p *DialogPrompter) { p.runner = r }
}

// NewDialogPrompter creates a prompter with platform auto-detection.
func NewDialogPrompter(opts ...Option) *DialogPrompter {
	p := &DialogPrompter{
		backend: BackendAuto,
		goos:    runtime.GOOS,
		runner:  execRunner,
		stdin:   os.Stdin,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask implements Prompter.
func (p *DialogPrompter) Ask(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := p.waitContext(ctx)
	defer cancel()

	switch p.dispatch() {
	case "osascript":
		return p.askOsascript(ctx, prompt)
	case "zenity":
		return p.askZenity(ctx, prompt)
	default:
		return p.askTerminal(ctx, prompt)
	}
}

// Confirm implements Prompter.
func (p *DialogPrompter) Confirm(ctx context.Context, prompt string) error {
	ctx, cancel := p.waitContext(ctx)
	defer cancel()

	switch p.dispatch() {
	case "osascript":
		return p.confirmOsascript(ctx, prompt)
	case "zenity":
		return p.confirmZenity(ctx, prompt)
	default:
		return p.confirmTerminal(ctx, prompt)
	}
}

// waitContext applies the optional timeout. The default is deliberately
// no timeout: an unanswered prompt suspends forever.
func (p *DialogPrompter) waitContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout > 0 {
		return context.WithTimeout(ctx, p.timeout)
	}
	return ctx, func() {}
}

// dispatch is the three-way platform branch: native dialog on macOS,
// zenity on Linux desktops, terminal everywhere else.
func (p *DialogPrompter) dispatch() string {
	if p.backend == BackendTerminal {
		return "terminal"
	}
	switch p.goos {
	case "darwin":
		return "osascript"
	case "linux":
		if p.backend == BackendDialog || hasZenity() {
			return "zenity"
		}
		return "terminal"
	default:
		return "terminal"
	}
}

func hasZenity() bool {
	_, err := exec.LookPath("zenity")
	return err == nil
}

func (p *DialogPrompter) askOsascript(ctx context.Context, prompt string) (string, error) {
	script := fmt.Sprintf("text returned of (display dialog %s default answer \"\" with title \"SceneBridge\")",
		appleScriptString(prompt))
	stdout, _, err := p.runner(ctx, "osascript", "-e", script)
	if err != nil {
		return "", dismissalError(ctx, err)
	}
	return strings.TrimRight(stdout, "\n"), nil
}

func (p *DialogPrompter) confirmOsascript(ctx context.Context, prompt string) error {
	script := fmt.Sprintf("display dialog %s buttons {\"Cancel\", \"OK\"} default button \"OK\" with title \"SceneBridge\"",
		appleScriptString(prompt))
	_, _, err := p.runner(ctx, "osascript", "-e", script)
	if err != nil {
		return dismissalError(ctx, err)
	}
	return nil
}

func (p *DialogPrompter) askZenity(ctx context.Context, prompt string) (string, error) {
	stdout, _, err := p.runner(ctx, "zenity", "--entry", "--title=SceneBridge", "--text="+prompt)
	if err != nil {
		return "", dismissalError(ctx, err)
	}
	return strings.TrimRight(stdout, "\n"), nil
}

func (p *DialogPrompter) confirmZenity(ctx context.Context, prompt string) error {
	_, _, err := p.runner(ctx, "zenity", "--question", "--title=SceneBridge", "--text="+prompt)
	if err != nil {
		return dismissalError(ctx, err)
	}
	return nil
}

func (p *DialogPrompter) askTerminal(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(p.stderr, "%s\n> ", prompt)
	line, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	return line, nil
}

func (p *DialogPrompter) confirmTerminal(ctx context.Context, prompt string) error {
	fmt.Fprintf(p.stderr, "%s [y/N] ", prompt)
	line, err := p.readLine(ctx)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return nil
	default:
		return ErrCancelled
	}
}

// readLine reads one line without outliving the context: the blocking
// read runs in its own goroutine so a timeout or cancellation can return
// first. The reader goroutine is abandoned, not killed; stdin reads
// cannot be interrupted portably.
func (p *DialogPrompter) readLine(ctx context.Context) (string, error) {
	type lineResult struct {
		line string
		err  error
	}
	results := make(chan lineResult, 1)
	go func() {
		reader := bufio.NewReader(p.stdin)
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			results <- lineResult{err: err}
			return
		}
		if line == "" && errors.Is(err, io.EOF) {
			results <- lineResult{err: ErrCancelled}
			return
		}
		results <- lineResult{line: strings.TrimRight(line, "\r\n")}
	}()

	select {
	case result := <-results:
		return result.line, result.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// dismissalError maps a dialog tool's failure to the cancellation error.
// Both osascript and zenity exit nonzero when the user hits Cancel or
// closes the dialog; a context deadline surfaces as-is.
func dismissalError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ErrCancelled
	}
	return fmt.Errorf("interact: prompt failed: %w", err)
}

func appleScriptString(s string) string {
	escaped := strings.ReplaceAll(s, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}

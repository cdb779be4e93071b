package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/cidrcalc/lang"
	"github.com/ardnew/cidrcalc/log"
)

const defaultEditor = "vi"

// editHeader starts every file opened by the edit command.
const editHeader = `# Each line below is a statement. Save to replace all variables with the
# ones assigned here; save an empty file to cancel.
`

// editScopeCommand implements [tea.ExecCommand] for the scope
// edit-evaluate-retry loop. It writes the current bindings as assignment
// statements to a temp file, opens the user's editor, and evaluates the result
// into a new session. On evaluation error the user is prompted to re-edit;
// declining keeps the current session.
type editScopeCommand struct {
	state    *lang.State
	opts     []lang.Option
	ctxFunc  func() context.Context
	newState *lang.State
	logger   log.Logger
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editScopeCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editScopeCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editScopeCommand) SetStderr(w io.Writer) { c.stderr = w }

// scopeScript renders the bindings of state as a script that recreates them.
func scopeScript(state *lang.State) string {
	var b strings.Builder

	b.WriteString(editHeader)

	for _, line := range state.Scope() {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

// evalScript evaluates script into a new session and returns the session
// together with the error lines of any failing statements.
func evalScript(
	ctx context.Context,
	script string,
	opts ...lang.Option,
) (*lang.State, []string) {
	state := lang.CreateState(opts...)

	var failed []string

	for _, r := range state.Results(ctx, script) {
		if r.Value.IsError() {
			failed = append(failed, fmt.Sprintf("%s: %s", r.Input, r.Line()))
		}
	}

	return state, failed
}

// Run executes the edit-evaluate-retry loop. If the user declines to re-edit
// after an error, it returns [ErrEditDeclined].
func (c *editScopeCommand) Run() error {
	ctx := c.ctxFunc()

	content := scopeScript(c.state)

	f, err := os.CreateTemp(os.TempDir(), "cidrcalc-scope-*.cidr")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Chmod(0o600); err != nil {
		f.Close()

		return err
	}

	f.Close()

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		// An empty file cancels the edit.
		if strings.TrimSpace(string(data)) == "" {
			return nil
		}

		state, failed := evalScript(ctx, string(data), c.opts...)
		c.logger.TraceContext(
			ctx,
			"editor evaluate attempt",
			slog.Int("content_length", len(data)),
			slog.Int("failed", len(failed)),
		)

		if len(failed) == 0 {
			c.newState = state

			return nil
		}

		state.Release()

		fmt.Fprintf(c.stderr, "\n%s\n", strings.Join(failed, "\n"))
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}

		content = string(data)
	}
}

// runEditor launches the user's editor on the given file path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}

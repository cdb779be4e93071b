package repl

import (
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/cidrcalc/lang"
)

func TestRenderResults(t *testing.T) {
	state := lang.CreateState()
	results := state.Results(t.Context(), "a = 10.0.0.0/24; a + 1; b")

	got := strings.Split(renderResults(results), "\n")
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(got), got)
	}

	for i, want := range []string{"10.0.0.0/24", "10.0.1.0/24", "NameError: "} {
		if !strings.Contains(got[i], want) {
			t.Errorf("line %d = %q, want it to contain %q", i, got[i], want)
		}
	}
}

func TestRenderScope(t *testing.T) {
	state := lang.CreateState()
	state.Eval(t.Context(), "lan = 10.0.0.0/24; host = 10.0.0.7; n = 3")

	tests := []struct {
		name   string
		filter string
		want   []string
		absent []string
	}{
		{"all", "", []string{"lan", "host", "n"}, nil},
		{"networks", `kind == "Network"`, []string{"lan"}, []string{"host", "n"}},
		{"none", `name == "zzz"`, []string{"no variables"}, []string{"lan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := renderScope(state, tt.filter)
			if err != nil {
				t.Fatal(err)
			}

			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}

			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("output contains %q:\n%s", s, out)
				}
			}
		})
	}

	if _, err := renderScope(state, "kind =="); err == nil {
		t.Error("invalid filter accepted")
	}
}

func TestModel_EnterEvaluates(t *testing.T) {
	m := testModel(t, "")

	m = typeText(m, "gw = 192.168.1.1")

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("Enter produced no output command")
	}

	if m.input.Value() != "" {
		t.Errorf("input not cleared: %q", m.input.Value())
	}

	if got := m.state.Scope(); !slices.Equal(got, []string{"gw = 192.168.1.1"}) {
		t.Errorf("scope = %v", got)
	}

	if m.history.Len() != 1 {
		t.Errorf("history length = %d, want 1", m.history.Len())
	}
}

func TestModel_ResetCommand(t *testing.T) {
	m := testModel(t, "a = 1; b = 2")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	m = typeText(m, "reset")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if len(m.state.Names()) != 0 {
		t.Errorf("variables after reset: %v", m.state.Names())
	}

	if e, _ := m.history.GetEntry(0); e.Mode != modeCtrl || e.Line != "reset" {
		t.Errorf("history entry = %+v", e)
	}
}

func TestModel_QuitAndCtrlC(t *testing.T) {
	m := testModel(t, "")

	m = typeText(m, "abc")
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})

	if m.input.Value() != "" || m.quitting {
		t.Fatalf("Ctrl+C with input: value %q quitting %v", m.input.Value(), m.quitting)
	}

	m, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.quitting || cmd == nil {
		t.Error("Ctrl+C on empty line did not quit")
	}

	if m.View() != "" {
		t.Errorf("View after quit = %q", m.View())
	}
}

func TestModel_ModePreservesInput(t *testing.T) {
	m := testModel(t, "")

	m = typeText(m, "1 + 1")
	m, _ = m.toggleMode()

	if m.input.Value() != "" {
		t.Errorf("control input = %q, want empty", m.input.Value())
	}

	m = typeText(m, "help")
	m, _ = m.toggleMode()

	if m.input.Value() != "1 + 1" || m.mode != modeEval {
		t.Errorf("eval input = %q mode = %v", m.input.Value(), m.mode)
	}

	m, _ = m.toggleMode()
	if m.input.Value() != "help" {
		t.Errorf("control input = %q, want help", m.input.Value())
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := testModel(t, "")

	for _, e := range []HistoryEntry{{"1 + 1", modeEval}, {"scope", modeCtrl}, {"2 + 2", modeEval}} {
		if _, err := m.history.WriteWithMode(e.Line, e.Mode); err != nil {
			t.Fatal(err)
		}
	}

	m.historyIdx = m.history.Len()

	m, _ = m.historyPrev()
	if m.input.Value() != "2 + 2" || m.mode != modeEval {
		t.Fatalf("prev = %q (%v)", m.input.Value(), m.mode)
	}

	m, _ = m.historyPrev()
	if m.input.Value() != "scope" || m.mode != modeCtrl {
		t.Fatalf("prev = %q (%v)", m.input.Value(), m.mode)
	}

	m, _ = m.historyNext()
	m, _ = m.historyNext()

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("past end: %q at %d", m.input.Value(), m.historyIdx)
	}

	m, _ = m.historyPrevInMode()
	if m.input.Value() != "2 + 2" {
		t.Errorf("prev in mode = %q", m.input.Value())
	}
}

func TestModel_EditMessages(t *testing.T) {
	m := testModel(t, "old = 1")

	replacement := lang.CreateState()
	replacement.Eval(t.Context(), "new = 2")

	next, _ := m.Update(editStateMsg{state: replacement})

	got := next.(model).state.Names()
	if !slices.Equal(got, []string{"new"}) {
		t.Errorf("names after edit = %v", got)
	}
}

func TestEditor_ScopeScriptRoundTrip(t *testing.T) {
	state := lang.CreateState()
	state.Eval(t.Context(), "lan = 10.0.0.0/24; gw = lan + 1; up = true; v6 = ::1")

	script := scopeScript(state)
	if !strings.HasPrefix(script, "#") {
		t.Errorf("script lacks header: %q", script)
	}

	rebuilt, failed := evalScript(t.Context(), script)
	if len(failed) != 0 {
		t.Fatalf("failed statements: %v", failed)
	}

	if !slices.Equal(rebuilt.Scope(), state.Scope()) {
		t.Errorf("rebuilt scope = %v, want %v", rebuilt.Scope(), state.Scope())
	}
}

func TestEditor_EvalScriptReportsFailures(t *testing.T) {
	_, failed := evalScript(t.Context(), "a = 1\nb = missing\nc = 10.0.0.0/33")
	if len(failed) != 2 {
		t.Fatalf("failed = %v, want 2 entries", failed)
	}

	if !strings.HasPrefix(failed[0], "b = missing: NameError") {
		t.Errorf("failed[0] = %q", failed[0])
	}
}

func TestHelpMessage_ListsCommands(t *testing.T) {
	help := helpMessage()

	for _, c := range ctrlCommands {
		if !strings.Contains(help, c) {
			t.Errorf("help missing command %q", c)
		}
	}
}

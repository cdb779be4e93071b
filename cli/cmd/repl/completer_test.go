package repl

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/cidrcalc/lang"
	"github.com/ardnew/cidrcalc/log"
)

func TestWordBounds_Operators(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_minus", "lan-fo", 6, "fo", 4, 6},
		{"after_paren", "(fo", 3, "fo", 1, 3},
		{"after_assign", "x=fo", 4, "fo", 2, 4},
		{"after_separator", "a = 1;fo", 8, "fo", 6, 8},
		{"after_in", "a in fo", 7, "fo", 5, 7},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a&b", 2, "b", 2, 3},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
		// Address literals are single words.
		{"ipv4", "10.0.0.0/8", 8, "10.0.0.0", 0, 8},
		{"ipv6", "x + fe80::1", 11, "fe80::1", 4, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCompletable(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"", false},
		{"lan", true},
		{"_tmp", true},
		{"10", false},
		{"0x1f", false},
		{"fe80::1", false},
		{"10.0.0.1", false},
	}

	for _, tt := range tests {
		if got := completable(tt.word); got != tt.want {
			t.Errorf("completable(%q) = %v, want %v", tt.word, got, tt.want)
		}
	}
}

func testModel(t *testing.T, script string) model {
	t.Helper()

	state := lang.CreateState()
	state.Eval(t.Context(), script)

	return newModel(t.Context(), state, NewHistory(""), log.Logger{})
}

func typeText(m model, text string) model {
	for _, r := range text {
		m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	return m
}

func matchStrings(m model) []string {
	out := make([]string, len(m.matches))
	for i, match := range m.matches {
		out[i] = match.Str
	}

	return out
}

func TestComputeMatches_EvalMode(t *testing.T) {
	m := testModel(t, "lan = 10.0.0.0/24; label = 1; wan = 192.168.0.0/16")

	m = typeText(m, "x + la")

	got := matchStrings(m)
	if !slices.Contains(got, "lan") || !slices.Contains(got, "label") {
		t.Errorf("matches = %v, want lan and label", got)
	}

	if slices.Contains(got, "wan") {
		t.Errorf("matches = %v, should not include wan", got)
	}
}

func TestComputeMatches_Keywords(t *testing.T) {
	m := testModel(t, "")

	m = typeText(m, "tr")

	if got := matchStrings(m); !slices.Contains(got, "true") {
		t.Errorf("matches = %v, want true", got)
	}
}

func TestComputeMatches_CtrlMode(t *testing.T) {
	m := testModel(t, "")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl {
		t.Fatal("Esc did not switch to control mode")
	}

	m = typeText(m, "sco")
	if got := matchStrings(m); len(got) == 0 || got[0] != "scope" {
		t.Errorf("command matches = %v, want scope first", got)
	}

	m = typeText(m, "pe pref")
	if got := matchStrings(m); len(got) == 0 || got[0] != "prefix" {
		t.Errorf("filter matches = %v, want prefix first", got)
	}
}

func TestCycle_Tab(t *testing.T) {
	m := testModel(t, "lan1 = 1; lan2 = 2")

	m = typeText(m, "lan")
	if len(m.matches) != 2 {
		t.Fatalf("matches = %v, want 2", matchStrings(m))
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	first := m.input.Value()

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyTab})
	second := m.input.Value()

	if first == second || !slices.Contains([]string{"lan1", "lan2"}, first) {
		t.Errorf("tab cycled %q then %q", first, second)
	}

	// Esc restores the text from before tab-cycling.
	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.input.Value() != "lan" || m.mode != modeEval {
		t.Errorf("after Esc input = %q mode = %v", m.input.Value(), m.mode)
	}
}

func TestRenderCandidateBar_Ellipsis(t *testing.T) {
	m := testModel(t, "alpha1 = 1; alpha2 = 2; alpha3 = 3; alpha4 = 4")
	m = typeText(m, "alpha")

	bar := renderCandidateBar(m.matches, -1, false, 20)
	if bar == "" {
		t.Fatal("empty bar")
	}

	if got := renderCandidateBar(nil, 0, false, 80); got != "" {
		t.Errorf("bar without matches = %q", got)
	}
}

package repl

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/cidrcalc/filter"
	"github.com/ardnew/cidrcalc/lang"
)

// ctrlCommands are the available control-mode commands.
var ctrlCommands = []string{"help", "scope", "edit", "reset", "clear", "quit"}

// isWordBoundary returns true if the rune is a word delimiter for completion
// purposes: whitespace, parentheses, operators, and statement separators.
// Dots and colons are intentionally excluded so that an address literal is a
// single word.
func isWordBoundary(r rune) bool {
	switch r {
	case ' ', '\t', '(', ')',
		'+', '-', '*', '/', '%',
		'<', '>', '=', '!',
		'&', '|', '^', ',', ';', '"':
		return true
	}

	return false
}

// wordBounds returns the current word at the cursor position and its byte
// boundaries within input.
// Returns an empty word when the cursor sits on a boundary (after a space,
// start of line, etc.).
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	// Walk backward from cursor to find word start.
	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	// Walk forward from cursor to find word end.
	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// completable reports whether word could be the prefix of a name: it is
// non-empty, does not start with a digit, and is not an address literal.
func completable(word string) bool {
	if word == "" || strings.ContainsAny(word, ".:#") {
		return false
	}

	r, _ := utf8.DecodeRuneInString(word)

	return !unicode.IsDigit(r)
}

// evalCandidates returns the session's variable names followed by the
// language keywords.
func evalCandidates(state *lang.State) []string {
	return slices.Concat(stateNames(state), lang.Keywords())
}

// computeMatches calculates the fuzzy match results for the word at the
// cursor. It returns the matches (ranked best-first), the candidate list, and
// the word boundaries.
//
// In control mode the first word completes to a command name and later words
// complete to filter fields, since the only command with arguments is scope.
func (m model) computeMatches() (
	matches fuzzy.Matches,
	candidates []string,
	wordStart, wordEnd int,
) {
	input := m.input.Value()

	word, wordStart, wordEnd := wordBounds(input, m.input.Position())

	if !completable(word) {
		return nil, nil, wordStart, wordEnd
	}

	switch {
	case m.mode == modeEval:
		candidates = evalCandidates(m.state)

	case strings.TrimSpace(input[:wordStart]) == "":
		candidates = ctrlCommands

	default:
		candidates = filter.Fields()
	}

	if len(candidates) == 0 {
		return nil, nil, wordStart, wordEnd
	}

	return fuzzy.Find(word, candidates), candidates, wordStart, wordEnd
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within the given terminal width. Each candidate is rendered with its matched
// characters highlighted. The selected candidate (when tabbing) uses the
// selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	sepWidth := lipgloss.Width(sep)
	ellipsis := hintStyle.Render("...")
	ellipsisWidth := lipgloss.Width(ellipsis)

	var b strings.Builder

	used := 0

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)

		entryWidth := lipgloss.Width(rendered)
		if i > 0 {
			entryWidth += sepWidth
		}

		// Check if adding this candidate would exceed width.
		if i > 0 && used+entryWidth+ellipsisWidth > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += entryWidth
	}

	return b.String()
}

// renderCandidate renders a single candidate with matched characters
// highlighted. Keywords are shown in the hint style.
func renderCandidate(match fuzzy.Match, selected bool) string {
	baseStyle := suggestionStyle
	if slices.Contains(lang.Keywords(), match.Str) {
		baseStyle = hintStyle
	}

	highlightStyle := baseStyle.Bold(true)

	if selected {
		baseStyle = selectedStyle
		highlightStyle = selectedStyle.Bold(true)
	}

	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(highlightStyle.Render(string(r)))
		} else {
			b.WriteString(baseStyle.Render(string(r)))
		}
	}

	return b.String()
}

package cmd

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestScope_Text(t *testing.T) {
	const script = "lan = 10.0.0.0/24\nhost = 10.0.0.7\nwide = 10.0.0.0/8\nn = 5\n"

	tests := []struct {
		name   string
		filter string
		want   string
	}{
		{"all", "", "lan = 10.0.0.0/24\nhost = 10.0.0.7\nwide = 10.0.0.0/8\nn = 5\n"},
		{"networks", `kind == "Network"`, "lan = 10.0.0.0/24\nwide = 10.0.0.0/8\n"},
		{"prefix", "prefix >= 24", "lan = 10.0.0.0/24\n"},
		{"within", `within("10.0.0.0/16")`, "lan = 10.0.0.0/24\nhost = 10.0.0.7\n"},
		{"none", `name == "absent"`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withStdin(t, script)

			var buf bytes.Buffer

			c := Scope{Filter: tt.filter, Output: FormatText}
			if err := c.Run(WithOutput(t.Context(), &buf)); err != nil {
				t.Fatalf("Run() = %v", err)
			}

			if got := buf.String(); got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScope_SourcesOnly(t *testing.T) {
	withStdin(t, "ignored = 1\n")

	prelude := writeScript(t, t.TempDir(), "prelude.cidr", "gw = 192.168.0.1\n")

	var buf bytes.Buffer

	ctx := WithOutput(WithSourceFiles(t.Context(), []string{prelude}), &buf)

	c := Scope{Output: FormatText}
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if got, want := buf.String(), "gw = 192.168.0.1\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestScope_JSON(t *testing.T) {
	file := writeScript(t, t.TempDir(), "a.cidr", "up = 10.0.0.1 in 10.0.0.0/8\n")

	var buf bytes.Buffer

	c := Scope{Files: []string{file}, Output: FormatJSON, Indent: 0}
	if err := c.Run(WithOutput(t.Context(), &buf)); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	var got struct {
		Results []any            `json:"results"`
		Scope   []map[string]any `json:"scope"`
	}

	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}

	if got.Results != nil {
		t.Errorf("results present in scope output: %v", got.Results)
	}

	if len(got.Scope) != 1 || got.Scope[0]["name"] != "up" || got.Scope[0]["value"] != true {
		t.Errorf("scope = %v", got.Scope)
	}
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/cidrcalc/lang"
	"github.com/ardnew/cidrcalc/pkg"
)

// Format selects how batch results are written.
type Format string

// Supported output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{string(FormatText), string(FormatJSON), string(FormatYAML)}
}

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats(), string(f)) {
		return "", pkg.MakeError(pkg.ErrInvalidFormat).
			Wrapf("%q (valid formats: %s)", s, strings.Join(Formats(), ", "))
	}

	return f, nil
}

// report is the outcome of evaluating one script. A nil results slice
// omits results from encoded output.
type report struct {
	source    string
	results   []lang.Result
	scope     []lang.Binding
	showScope bool
}

// ToMap returns a native map representation of the report for encoding.
func (r report) ToMap() map[string]any {
	results := make([]map[string]any, len(r.results))
	for i, res := range r.results {
		results[i] = res.ToMap()
	}

	m := map[string]any{}

	if r.results != nil {
		m["results"] = results
	}

	if r.source != "" {
		m["source"] = r.source
	}

	if r.showScope {
		scope := make([]map[string]any, len(r.scope))
		for i, b := range r.scope {
			scope[i] = b.ToMap()
		}

		m["scope"] = scope
	}

	return m
}

// failed reports whether any statement in r evaluated to an error.
func (r report) failed() bool {
	return slices.ContainsFunc(r.results, func(res lang.Result) bool {
		return res.Value.IsError()
	})
}

// encoded returns the value handed to the JSON and YAML encoders: a single
// map for one report, a list otherwise.
func encoded(reports []report) any {
	if len(reports) == 1 {
		return reports[0].ToMap()
	}

	list := make([]map[string]any, len(reports))
	for i, r := range reports {
		list[i] = r.ToMap()
	}

	return list
}

// writeReports writes reports to w in the given format.
func writeReports(
	ctx context.Context,
	w io.Writer,
	format Format,
	indent int,
	reports []report,
) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, indent, encoded(reports))

	case FormatYAML:
		return writeYAML(ctx, w, indent, encoded(reports))

	default:
		return writeText(w, reports)
	}
}

// writeText writes result lines followed, when requested, by a blank line
// and the scope listing. Multiple reports are introduced by a header naming
// their source.
func writeText(w io.Writer, reports []report) error {
	var sb strings.Builder

	for i, r := range reports {
		if len(reports) > 1 {
			if i > 0 {
				sb.WriteByte('\n')
			}

			fmt.Fprintf(&sb, "==> %s <==\n", r.source)
		}

		for _, res := range r.results {
			sb.WriteString(res.Line())
			sb.WriteByte('\n')
		}

		if r.showScope {
			if len(r.results) > 0 {
				sb.WriteByte('\n')
			}

			for _, b := range r.scope {
				sb.WriteString(b.String())
				sb.WriteByte('\n')
			}
		}
	}

	return writeString(w, sb.String())
}

func writeJSON(w io.Writer, indent int, v any) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(v, "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return pkg.MakeError(err).Wrap(pkg.ErrJSONMarshal)
	}

	return writeString(w, string(data)+"\n")
}

func writeYAML(ctx context.Context, w io.Writer, indent int, v any) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, v, opts...)
	if err != nil {
		return pkg.MakeError(err).Wrap(pkg.ErrYAMLMarshal)
	}

	out := string(data)
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}

	return writeString(w, out)
}

func writeString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

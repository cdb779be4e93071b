package cli

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cidrcalc/pkg"
)

func load(t *testing.T, text string) config {
	t.Helper()

	res, err := resolve(t.Context())(strings.NewReader(text))
	if err != nil {
		t.Fatalf("resolve() = %v", err)
	}

	cfg, ok := res.(config)
	if !ok {
		t.Fatalf("resolver type = %T, want config", res)
	}

	return cfg
}

func TestResolve_Flatten(t *testing.T) {
	tests := []struct {
		name string
		text string
		want config
	}{
		{
			name: "empty",
			text: "",
			want: config{},
		},
		{
			name: "flat",
			text: "log-level: debug\nlog_pretty: false\n",
			want: config{"log-level": "debug", "log-pretty": false},
		},
		{
			name: "nested",
			text: "log:\n  level: trace\n  time_layout: ms\n",
			want: config{"log-level": "trace", "log-time-layout": "ms"},
		},
		{
			name: "numbers",
			text: "indent: 4\nratio: 0.5\n",
			want: config{"indent": "4", "ratio": "0.5"},
		},
		{
			name: "list",
			text: "source:\n  - a.cidr\n  - b.cidr\n",
			want: config{"source": []any{"a.cidr", "b.cidr"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := load(t, tt.text); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestResolve_Invalid(t *testing.T) {
	_, err := resolve(t.Context())(strings.NewReader("log: [unterminated\n"))
	if !errors.Is(err, pkg.ErrConfig) {
		t.Errorf("resolve() = %v, want %v", err, pkg.ErrConfig)
	}
}

func TestConfig_Resolve(t *testing.T) {
	cfg := config{"log-level": "debug"}

	got, err := cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-level"}})
	if err != nil || got != "debug" {
		t.Errorf("Resolve(log-level) = %v, %v", got, err)
	}

	got, err = cfg.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: "log-format"}})
	if err != nil || got != nil {
		t.Errorf("Resolve(log-format) = %v, %v, want nil", got, err)
	}

	if err := cfg.Validate(nil); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestResolve_AppliesToFlags(t *testing.T) {
	var grammar struct {
		Log    logConfig `embed:"" prefix:"log-"`
		Indent int       `default:"2"`
	}

	parser, err := kong.New(&grammar,
		kong.Resolvers(load(t, "log:\n  format: json\n  pretty: false\nindent: 4\n")),
		(&logConfig{}).vars(),
	)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := parser.Parse(nil); err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { (&logConfig{Level: "info", Format: "text", TimeLayout: "RFC3339", Pretty: true}).start(t.Context()) })

	if grammar.Log.Format != "json" || grammar.Log.Pretty || grammar.Indent != 4 {
		t.Errorf("flags = %+v, indent %d", grammar.Log, grammar.Indent)
	}
}

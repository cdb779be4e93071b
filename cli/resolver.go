package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/cidrcalc/pkg"
)

// resolve returns a [kong.ConfigurationLoader] that reads YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx), "/path/to/config.yaml")
//
// Nested mappings are flattened into hyphenated flag names and underscores
// in keys are read as hyphens, so the following are equivalent:
//
//	log:
//	  level: debug
//	  pretty: false
//
//	log_level: debug
//	log-pretty: false
//
// Both apply to Kong flags as:
//
//	--log-level=debug
//	--no-log-pretty
//
// An empty file yields no values. Command-line flags override config file
// values.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil {
			if errors.Is(err, io.EOF) {
				return config{}, nil
			}

			return nil, pkg.MakeError(err).Wrap(pkg.ErrConfig)
		}

		cfg := make(config)
		cfg.flatten("", doc)

		return cfg, nil
	}
}

// config implements [kong.Resolver] for flattened YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Not found; Kong uses the flag default.
	return nil, nil
}

// flatten stores every scalar and list in m under its hyphen-joined path.
func (c config) flatten(prefix string, m map[string]any) {
	for key, val := range m {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		switch v := val.(type) {
		case map[string]any:
			c.flatten(name, v)

		case []any:
			list := make([]any, len(v))
			for i, e := range v {
				list[i] = scalar(e)
			}

			c[name] = list

		default:
			c[name] = scalar(v)
		}
	}
}

// scalar converts YAML numbers to strings, which Kong requires for parsing.
func scalar(v any) any {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	case string, bool, nil:
		return n
	default:
		return fmt.Sprint(n)
	}
}

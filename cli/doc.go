// Package cli contains the command line interface for cidrcalc.
//
// # Usage
//
// Without a command, cidrcalc starts the interactive calculator:
//
//	cidrcalc
//	cidrcalc -s lab.cidr repl
//
// Batch commands evaluate expressions or scripts and print one line per
// statement:
//
//	cidrcalc eval '10.0.0.0/24 + 1'
//	cidrcalc run -f plan.cidr --scope -o yaml
//	cidrcalc scope -f plan.cidr 'kind == "Network" && prefix >= 24'
//	cidrcalc fmt plan.cidr
//
// # Configuration
//
// Flag defaults are read from config.yaml in the user configuration
// directory ([pkg.ConfigDir]), then from config.json beside it. The init
// command writes config.yaml from the current flag values. Nested YAML
// mappings are flattened into hyphenated flag names:
//
//	log:
//	  level: debug
//	  format: json
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o cidrcalc .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/cidrcalc/pprof)
package cli

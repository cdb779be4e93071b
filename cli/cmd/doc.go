// Package cmd implements the cidrcalc subcommands: eval, run, scope, fmt,
// init, and repl.
//
// Source files given with the global --source flag are evaluated first, in
// order, into the session each command works with. Batch commands write
// results as text, JSON, or YAML; scope listings can be narrowed with an
// expr-lang filter over the fields of each binding.
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// HistoryIdentifier is the kong variable identifier containing the path
	// to the REPL history file.
	HistoryIdentifier = "history"
)

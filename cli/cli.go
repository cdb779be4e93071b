package cli

import (
	"context"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/cidrcalc/cli/cmd"
	"github.com/ardnew/cidrcalc/pkg"
)

// baseConfig is the base name of the configuration file.
const baseConfig = "config"

// CLI is the top-level command-line interface for cidrcalc.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Source  []string         `help:"Script file(s) or '-' for stdin, evaluated into every session first" name:"source" short:"s" type:"existingfile"`
	Version kong.VersionFlag `help:"Print version and exit"                                               short:"V"`

	Init cmd.Init `cmd:"" help:"Initialize configuration file"`
	Fmt  cmd.Fmt  `cmd:"" help:"Show how scripts parse without evaluating"`

	Eval  cmd.Eval  `cmd:"" help:"Evaluate expressions given as arguments"`
	Run   cmd.Run   `cmd:"" help:"Evaluate script files or stdin"`
	Scope cmd.Scope `cmd:"" help:"Print variables defined by scripts"`
	Repl  cmd.Repl  `cmd:"" help:"Start the interactive calculator" default:"1"`
}

// Run executes the cidrcalc CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := pkg.MkdirAll(); err != nil {
		return err
	}

	configFilePath := pkg.ConfigPath(baseConfig + ".yaml")

	vars := kong.Vars{
		cmd.ConfigIdentifier:  configFilePath,
		cmd.CacheIdentifier:   pkg.CacheDir(),
		cmd.HistoryIdentifier: pkg.CachePath("history"),
		"formatEnum":          strings.Join(cmd.Formats(), ","),
		"version":             pkg.Name + " " + pkg.Version,
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Apply logger flags before parsing so parse errors are logged with them.
	cli.Log.scan(args)

	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, pkg.ConfigPath(baseConfig+".json")),
		kong.Configuration(resolve(ctx), configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithSourceFiles(ctx, cli.Source)

	if srcs := cmd.SourceFilesFrom(ctx); srcs != nil {
		defer srcs.Close()
	}

	// Apply the options Kong parsed without a TextUnmarshaler hook.
	defer cli.Log.start(ctx)()

	// No-op unless built with tag pprof and a mode was selected.
	defer cli.Pprof.start(ctx)()

	return ktx.Run(ctx, &cli)
}

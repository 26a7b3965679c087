package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/3leaps/verbump/internal/cache"
	"github.com/3leaps/verbump/internal/check"
	"github.com/3leaps/verbump/internal/cli"
	"github.com/3leaps/verbump/internal/config"
	"github.com/3leaps/verbump/internal/host/github"
	"github.com/3leaps/verbump/internal/registry"
	"github.com/3leaps/verbump/internal/report"
	"github.com/3leaps/verbump/pkg/bump"
)

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return usageError{err}
	}
	return nil
}

// app carries per-invocation state shared by the subcommands.
type app struct {
	cfg        config.Config
	configFile string
	noColor    bool
	log        *slog.Logger
	rep        *report.Reporter
	stdout     io.Writer
	stderr     io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return cli.ExitOK
	}

	var ce *check.Error
	var ue usageError
	switch {
	case errors.As(err, &ce):
		a.reporter().Failure(err)
		return cli.ExitFailed
	case errors.As(err, &ue):
		fmt.Fprintf(stderr, "error: %v\n", err)
		fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.CommandPath())
		return cli.ExitUsage
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return cli.ExitFailed
	}
}

func (a *app) reporter() *report.Reporter {
	if a.rep == nil {
		a.rep = report.New(a.stdout, a.stderr, a.noColor)
	}
	return a.rep
}

func (a *app) rootCmd() *cobra.Command {
	d := config.Defaults()
	root := &cobra.Command{
		Use:           "verbump",
		Short:         "Fail the build when the library version was not bumped",
		Long:          "verbump compares the version declared in a library manifest against the last recorded version (cached) or the version published in a package registry (published).",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "path to config file (default: ./.verbump.yaml when present)")
	pf.String("manifest", d.Manifest, "path to the library manifest (JSON)")
	pf.Bool("validate-manifest", false, "validate the manifest against the library schema first")
	pf.String("manifest-key", "", "minisign public key; require a valid <manifest>.minisig")
	pf.Bool("verbose", false, "enable debug logging")
	pf.BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags(), a.configFile, "")
		if err != nil {
			return usageError{err}
		}
		a.cfg = cfg

		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		a.log = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
		if cfg.File != "" {
			a.log.Debug("loaded config", "file", cfg.File)
		}
		return nil
	}

	root.AddCommand(a.cachedCmd(d), a.publishedCmd(d), a.versionCmd())
	return root
}

func (a *app) options() check.Options {
	return check.Options{
		Validate:    a.cfg.ValidateManifest,
		PublicKey:   a.cfg.ManifestKey,
		InitMissing: a.cfg.Init,
		DryRun:      a.cfg.DryRun,
		Logger:      a.log,
	}
}

func (a *app) cachedCmd(d config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cached",
		Short: "Compare the manifest version with the last recorded version",
		Long:  "Fails when the manifest version equals the version recorded in the cache file; otherwise records the manifest version.",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := check.Cached(a.cfg.Manifest, cache.FileStore{Path: a.cfg.Cache}, a.options())
			if err != nil {
				return err
			}
			switch {
			case res.Other == "":
				a.reporter().Success("Library version check completed: recorded %s in %s", res.Local, a.cfg.Cache)
			case !res.Wrote:
				a.reporter().Success("Library version check completed: %s -> %s (dry run, cache unchanged)", res.Other, res.Local)
			default:
				a.reporter().Success("Library version check completed: %s -> %s", res.Other, res.Local)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.String("cache", d.Cache, "path to the cache file holding the last version")
	f.Bool("init", false, "seed a missing cache file instead of failing")
	f.Bool("dry-run", false, "do not update the cache file")
	return cmd
}

func (a *app) publishedCmd(d config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "published",
		Short: "Compare the manifest version with the published version",
		Long: "Queries a package registry for the published version and fails when it equals the manifest version " +
			"or orders above it. The default lexical comparator orders versions as strings, so 10.0.0 sorts before 9.0.0; " +
			"use --comparator=semver for numeric ordering.",
		Args: noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmp, err := bump.ParseComparator(a.cfg.Comparator)
			if err != nil {
				return usageError{err}
			}
			prober, err := a.prober()
			if err != nil {
				return usageError{err}
			}

			ctx := cmd.Context()
			if a.cfg.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, a.cfg.Timeout)
				defer cancel()
			}

			res, err := check.Published(ctx, a.cfg.Manifest, a.cfg.Package, prober, cmp, a.options())
			if err != nil {
				return err
			}
			a.reporter().Success("Library version check completed: published %s, local %s", res.Other, res.Local)
			return nil
		},
	}
	f := cmd.Flags()
	f.String("package", d.Package, "package name to query (owner/name for --source=github)")
	f.String("source", d.Source, "registry source: command or github")
	f.String("command", d.Command, "registry command; {{package}} is replaced by the package name")
	f.String("github-api", "", "GitHub API base URL (default: "+github.DefaultAPIBase+")")
	f.String("comparator", d.Comparator, "version ordering: lexical or semver")
	f.Duration("timeout", 0, "abort the registry query after this long (0 waits indefinitely)")
	return cmd
}

func (a *app) prober() (registry.Prober, error) {
	switch a.cfg.Source {
	case config.SourceGitHub:
		return &registry.GitHubProber{Client: github.NewClient(a.cfg.GitHubAPI, github.UserAgent(version))}, nil
	default:
		return registry.NewCommandProber(a.cfg.CommandArgs())
	}
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "verbump %s\n", version)
			return nil
		},
	}
}

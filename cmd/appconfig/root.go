package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/appconfig"
)

// options holds flags shared by all subcommands
type options struct {
	schema    string
	file      string
	format    string
	envPrefix string
	dotenv    []string
	logLevel  string
	logFormat string
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "appconfig",
		Short:         "Validate configurations against a parameter schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.schema, "schema", "s", "", "HCL file declaring the parameters (required)")
	flags.StringVarP(&opts.file, "file", "f", "", "configuration file (TOML, JSON or YAML)")
	flags.StringVar(&opts.format, "format", "auto", "configuration file format: auto, toml, json, yaml")
	flags.StringVar(&opts.envPrefix, "env-prefix", "", "environment variable prefix")
	flags.StringSliceVar(&opts.dotenv, "dotenv", nil, "dotenv files, earlier files win")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "text", "log format: text, json")
	_ = root.MarkPersistentFlagRequired("schema")

	root.AddCommand(
		newCheckCmd(opts),
		newDumpCmd(opts),
		newWatchCmd(opts),
	)
	return root
}

// setup declares the schema's parameters on a fresh container
func (o *options) setup() appconfig.SetupFunc {
	return func(c *appconfig.Container) error {
		return c.DeclareFromHCL(o.schema)
	}
}

// loader builds a value loader; args are the parameter arguments after "--"
func (o *options) loader(args []string) *appconfig.Loader {
	l := appconfig.NewLoader().
		WithArgs(args).
		WithEnvPrefix(o.envPrefix).
		WithFileFormat(o.format).
		WithDotenv(o.dotenv...)
	if o.file != "" {
		l = l.WithFile(o.file)
	}
	return l
}

// ready runs one configuration pass into a holder
func (o *options) ready(ctx context.Context, cmd *cobra.Command, args []string) (*appconfig.Holder, *appconfig.Loader, error) {
	logger := newLogger(o.logLevel, o.logFormat, cmd.ErrOrStderr())
	holder := appconfig.NewHolder(appconfig.WithLogger(logger))
	loader := o.loader(args)
	if _, err := holder.Reload(ctx, o.setup(), loader); err != nil {
		return nil, nil, err
	}
	return holder, loader, nil
}

func newCheckCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check [-- --name=value ...]",
		Short: "Load values and report whether the configuration is ready",
		RunE: func(cmd *cobra.Command, args []string) error {
			holder, _, err := opts.ready(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d parameters ready\n", len(holder.Current().Names()))
			return nil
		},
	}
}

func newDumpCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [-- --name=value ...]",
		Short: "Load values, validate and print the result as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			holder, _, err := opts.ready(cmd.Context(), cmd, args)
			if err != nil {
				return err
			}
			return holder.Current().Dump(cmd.OutOrStdout())
		},
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	var debounce = appconfig.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "watch [-- --name=value ...]",
		Short: "Revalidate whenever the configuration file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.file == "" {
				return fmt.Errorf("watch requires --file")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			holder, loader, err := opts.ready(ctx, cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ready %s\n", holder.Current().ID())

			events, err := holder.WatchFile(ctx, opts.setup(), loader, appconfig.WatchOptions{Debounce: debounce})
			if err != nil {
				return err
			}
			for ev := range events {
				if ev.Err != nil {
					fmt.Fprintf(out, "rejected %s: %v\n", ev.Generation, ev.Err)
					continue
				}
				fmt.Fprintf(out, "ready %s\n", ev.Generation)
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "delay before reloading after a change")
	return cmd
}

// newLogger creates a slog.Logger writing to w at the given level and format
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mainbong/spagrep/internal/config"
	"github.com/mainbong/spagrep/internal/logger"
	"github.com/mainbong/spagrep/internal/runner"
	"github.com/mainbong/spagrep/internal/search"
	"github.com/mainbong/spagrep/internal/terminal"
)

const version = "0.1.0"

type options struct {
	configPath string
	logLevel   string
	watch      bool
	version    bool
	help       bool
}

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "spagrep <query> <filename>",
		Short: "Print the lines of a file that contain a query",
		Long: "spagrep prints every line of a file that contains the query, quoted.\n" +
			"Set CASE_INSENSITIVE (to any value) for case-insensitive matching.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(cmd.OutOrStdout(), "spagrep version %s\n", version)
				return nil
			}
			return run(cmd, opts, append([]string{cmd.Root().Name()}, args...), lookupEnv)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "settings file (.toml, .yaml or .json); defaults to $"+config.ConfigEnv+" or "+config.GetConfigFile())
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "override log_level (debug, info, warn, error)")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "search again every time the file changes")
	// long forms only, so "-v" or "-h" never shadow a query
	cmd.Flags().BoolVar(&opts.version, "version", false, "print the version and exit")
	cmd.Flags().BoolVar(&opts.help, "help", false, "print this help and exit")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", config.ErrInvalidArguments, err)
	})

	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string, lookupEnv func(string) (string, bool)) error {
	req, err := config.Resolve(args, lookupEnv)
	if err != nil {
		return err
	}

	settings, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if opts.logLevel != "" {
		if err := settings.Set("log_level", opts.logLevel); err != nil {
			return err
		}
	}

	level, err := logger.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if err := logger.Init(settings.LogDir, level); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Close()

	terminal.ConfigureColor(settings.Color)
	logger.Info("spagrep %s started", version)

	r := runner.New(cmd.OutOrStdout())
	if !opts.watch {
		return r.Run(req)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.Watch(ctx, req, func(err error) {
		logger.Warn("watch refresh failed: %v", err)
		report(err, cmd.OutOrStdout(), cmd.ErrOrStderr())
	})
}

// report prints err to the stream its kind belongs to.
func report(err error, stdout, stderr io.Writer) {
	var readErr *runner.FileReadError
	switch {
	case errors.Is(err, config.ErrInvalidArguments):
		msg := config.ErrInvalidArguments.Error()
		fmt.Fprintf(stdout, "Welcome to spagrep. %s%s\n", strings.ToUpper(msg[:1]), msg[1:])
	case errors.As(err, &readErr):
		fmt.Fprintf(stdout, "error reading the file: %v\n", err)
	case errors.Is(err, search.ErrNoMatches):
		fmt.Fprintf(stderr, "Mmmmh... %v, retry with other queries\n", err)
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
}

// execute runs the CLI and returns the process exit code. Every error is terminal.
func execute(args []string, stdout, stderr io.Writer, lookupEnv func(string) (string, bool)) int {
	cmd := newRootCmd(lookupEnv)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		report(err, stdout, stderr)
		return 1
	}
	return 0
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr, os.LookupEnv))
}

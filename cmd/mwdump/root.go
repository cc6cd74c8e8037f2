package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jacoelho/mwdump"
	"github.com/jacoelho/mwdump/internal/logging"
)

const envPrefix = "MWDUMP"

// Configuration keys. Each can be set by flag, MWDUMP_* variable, or config file.
const (
	keyLogLevel       = "log.level"
	keyLogFormat      = "log.format"
	keyExtendedCodecs = "parse.extended-codecs"
	keyMaxTokenSize   = "parse.max-token-size"
	keyIndexDB        = "index.db"
)

// usageError marks command line mistakes.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func (e *usageError) Unwrap() error { return e.err }

// app carries the state shared by all subcommands of one invocation.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	v       *viper.Viper
	logger  *zap.Logger
	prof    profiler
	cfgFile string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		v:      viper.New(),
		logger: zap.NewNop(),
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "mwdump",
		Short: "Inspect MediaWiki revision-history dumps",
		Long: "mwdump streams MediaWiki XML export files, optionally compressed with\n" +
			"bzip2 (.bz2) or LZMA (.7z), and reports on their pages and revisions.",
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log encoding: console or json")
	flags.Bool("extended-codecs", false, "also decompress .gz and .zst files")
	flags.Int("max-token-size", 0, "largest XML token in bytes (0 selects the default)")
	flags.String("cpuprofile", "", "write CPU profile to file")
	flags.String("memprofile", "", "write memory profile to file")

	a.bindFlag(keyLogLevel, flags.Lookup("log-level"))
	a.bindFlag(keyLogFormat, flags.Lookup("log-format"))
	a.bindFlag(keyExtendedCodecs, flags.Lookup("extended-codecs"))
	a.bindFlag(keyMaxTokenSize, flags.Lookup("max-token-size"))

	root.AddCommand(
		a.statsCommand(),
		a.findCommand(),
		a.exportCommand(),
		a.indexCommand(),
	)
	return root
}

func (a *app) bindFlag(key string, flag *pflag.Flag) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

// setup loads configuration, builds the logger and starts profiling.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.loadConfig(); err != nil {
		return err
	}

	logger, err := logging.New(logging.Config{
		Level:    a.v.GetString(keyLogLevel),
		Encoding: a.v.GetString(keyLogFormat),
	}, a.stderr)
	if err != nil {
		return err
	}
	a.logger = logger.With(zap.String("command", cmd.Name()))

	flags := cmd.Flags()
	if path, _ := flags.GetString("cpuprofile"); path != "" {
		if err := a.prof.startCPU(path); err != nil {
			return err
		}
	}
	if path, _ := flags.GetString("memprofile"); path != "" {
		a.prof.memPath = path
	}
	return nil
}

func (a *app) loadConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	a.v.AutomaticEnv()

	if a.cfgFile != "" {
		a.v.SetConfigFile(a.cfgFile)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", a.cfgFile, err)
		}
	}
	return nil
}

// close releases what setup acquired.
func (a *app) close() error {
	err := a.prof.stop()
	_ = a.logger.Sync()
	return err
}

func (a *app) parseOptions() mwdump.ParseOptions {
	return mwdump.ParseOptions{
		Logger:         a.logger,
		MaxTokenSize:   a.v.GetInt(keyMaxTokenSize),
		ExtendedCodecs: a.v.GetBool(keyExtendedCodecs),
	}
}

// untilDone stops decoding once ctx is cancelled and otherwise calls fn.
func (a *app) untilDone(ctx context.Context, fn mwdump.PageFunc) mwdump.PageFunc {
	return func(p *mwdump.Page) error {
		if err := ctx.Err(); err != nil {
			a.logger.Warn("interrupted", zap.Error(err))
			return mwdump.ErrStop
		}
		return fn(p)
	}
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nhle/stepwise/internal/ai"
	"github.com/nhle/stepwise/internal/model"
)

// options holds the persistent flag values shared by every subcommand.
type options struct {
	configPath string
	dbPath     string
	logLevel   string
	mock       bool

	cfg    *model.AppConfig
	logger *log.Logger

	// saved is the config init writes: the file and environment values
	// plus --db, without the per-run --mock and --log-level overrides.
	saved model.AppConfig

	// lockWait bounds how long a command waits for another stepwise
	// process to release the database.
	lockWait time.Duration

	// interactive reports whether prompts and spinners may be shown.
	interactive func() bool

	// newCompleter overrides the configured language model client.
	newCompleter func() ai.Completer
}

// NewRootCommand builds the stepwise command tree.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&options{
		lockWait:    5 * time.Second,
		interactive: stdinIsTerminal,
	})
}

func newRootCommand(opts *options) *cobra.Command {
	root := &cobra.Command{
		Use:   "stepwise",
		Short: "Break a goal you keep putting off into small steps",
		Long: `Stepwise turns a goal you keep putting off into 5 to 9 tiny, ordered,
emoji-tagged steps plus a few action tips, stores them locally and tracks
which steps are done.

Examples:
  # Plan a new goal
  stepwise new "I want to learn JavaScript"

  # See all goals and one goal's steps
  stepwise list
  stepwise show 0d9c2f4e

  # Check off a step
  stepwise done 7a1b3c9d`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default is $HOME/.config/stepwise/config.yaml)")
	flags.StringVarP(&opts.dbPath, "db", "d", "", "database file path (overrides database.path)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides log.level)")
	flags.BoolVar(&opts.mock, "mock", false, "use the built-in starter plan instead of the language model")

	root.AddCommand(
		newInitCommand(opts),
		newNewCommand(opts),
		newAddCommand(opts),
		newListCommand(opts),
		newShowCommand(opts),
		newArchiveCommand(opts),
		newDeleteCommand(opts),
		newDoneCommand(opts),
		newUndoCommand(opts),
		newPinCommand(opts),
		newUnpinCommand(opts),
		newTodayCommand(opts),
		newKeyCommand(opts),
	)

	return root
}

// Execute runs the root command against os.Args.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// load reads the config file and applies flag overrides.
func (o *options) load(cmd *cobra.Command) error {
	if o.configPath == "" {
		o.configPath = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(o.configPath)
	if err != nil {
		return err
	}

	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	o.saved = *cfg

	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.mock {
		cfg.AI.Mock = true
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logger
	return nil
}

// newLogger builds the process logger from config.
func newLogger(cfg model.LogConfig, out io.Writer) (*log.Logger, error) {
	logger := log.New()
	logger.SetOutput(out)

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", cfg.Format)
	}

	return logger, nil
}

func stdinIsTerminal() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

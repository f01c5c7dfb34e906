package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/danielpatrickdp/mindreader/internal/config"
	"github.com/danielpatrickdp/mindreader/internal/logging"
	"github.com/danielpatrickdp/mindreader/internal/state"
	"github.com/spf13/cobra"
)

// #region main
func main() {
	err := newRootCmd().Execute()
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	if err != nil {
		os.Exit(1)
	}
}

// #endregion main

// #region app
// app carries settings resolved once per invocation.
type app struct {
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
}

// exitError ends the process with code without printing usage.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func newRootCmd() *cobra.Command {
	a := &app{cfg: config.Default()}

	root := &cobra.Command{
		Use:   "mindreader",
		Short: "Matching pennies against an opponent-modeling predictor",
		Long: `mindreader guesses your next 0 or 1 from how you played after
winning or losing the previous two rounds. Without a confirmed pattern
it flips a coin.

Commands:
  play      Play the mind reader on stdin
  pennies   Play against a plain coin flip
  replay    Re-run a fixture or stored session and compare
  inspect   List sessions or show one session's turns and pattern table
  export    Write a stored session as a replay fixture
  serve     Run the gRPC predictor service
  check     Run the built-in self test`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "path to YAML config file")
	pf.String("db", "", "path to the SQLite database")
	pf.String("driver", "", "turn driver: pull, coroutine or pennies")
	pf.Uint64("seed", 0, "random seed (0 picks a fresh one)")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.String("log-format", "", "text or json")

	root.AddCommand(
		newPlayCmd(a),
		newPenniesCmd(a),
		newReplayCmd(a),
		newInspectCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newCheckCmd(a),
	)

	return root
}

// load resolves config from file, environment and changed flags, in that order.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return a.fail(cmd, err)
	}

	flags := cmd.Flags()
	if flags.Changed("db") {
		cfg.DBPath, _ = flags.GetString("db")
	}
	if flags.Changed("driver") {
		cfg.Driver, _ = flags.GetString("driver")
	}
	if flags.Changed("seed") {
		cfg.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if err := cfg.Validate(); err != nil {
		return a.fail(cmd, err)
	}

	logger, err := logging.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return a.fail(cmd, err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}

// fail prints err the way every subcommand reports errors.
func (a *app) fail(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	return &exitError{code: 1, msg: err.Error()}
}

func (a *app) openStore() (*state.Store, error) {
	store, err := state.NewStore(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return store, nil
}

// #endregion app

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/bennorth/countdown-numbers-solver/config"
	"github.com/bennorth/countdown-numbers-solver/pprint"
)

var log = commonlog.GetLogger("countdown.cli")

// app carries the global flags and the configuration resolved from them.
type app struct {
	configPath string
	verbose    int
	symbols    string
	format     string
	dbPath     string

	cfg  *config.Config
	opts pprint.Options
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "countdown",
		Short: "Decode Countdown numbers-game solver programs",
		Long: `countdown turns the compact stack programs emitted by a Countdown
numbers-game solver into canonical infix arithmetic.

Programs are read as raw instruction files, hex strings, or CBOR solution
batches. Settings come from countdown.toml, found by walking up from the
current directory, and may be overridden with flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to countdown.toml (default: search upward)")
	pf.CountVarP(&a.verbose, "verbose", "v", "increase log verbosity")
	pf.StringVar(&a.symbols, "symbols", "", "operator symbols: unicode or ascii")
	pf.StringVar(&a.format, "format", "", "output format: text, json or yaml")
	pf.StringVar(&a.dbPath, "db", "", "archive database path")

	root.AddCommand(
		newDecodeCmd(a),
		newDisasmCmd(a),
		newFlatCmd(a),
		newCompareCmd(a),
		newArchiveCmd(a),
	)
	return root
}

// setup loads configuration, applies flag overrides and configures logging.
func (a *app) setup(cmd *cobra.Command) error {
	var err error
	switch {
	case a.configPath != "":
		a.cfg, err = config.LoadFile(a.configPath)
	default:
		a.cfg, err = config.FindAndLoad(".")
	}
	if err != nil {
		return err
	}
	if a.cfg == nil {
		a.cfg = config.Default()
	}

	flags := cmd.Flags()
	if flags.Changed("symbols") {
		a.cfg.Output.Symbols = a.symbols
	}
	if flags.Changed("format") {
		a.cfg.Output.Format = a.format
	}
	if flags.Changed("db") {
		a.cfg.Archive.Path = a.dbPath
	}
	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	if a.opts, err = a.cfg.DecodeOptions(); err != nil {
		return err
	}

	var logPath *string
	if a.cfg.Log.File != "" {
		logPath = &a.cfg.Log.File
	}
	commonlog.Configure(a.cfg.Log.Verbosity+a.verbose, logPath)
	if a.cfg.Dir != "" {
		log.Debugf("using configuration from %s", a.cfg.Dir)
	}
	return nil
}

// cards resolves the card set from a --cards flag value or the configuration.
func (a *app) cards(flagValues []int) (pprint.Cards, error) {
	var cards pprint.Cards
	switch {
	case len(flagValues) != 0:
		if len(flagValues) != len(cards) {
			return cards, fmt.Errorf("--cards: got %d values, want %d", len(flagValues), len(cards))
		}
		copy(cards[:], flagValues)
		return cards, nil
	case a.cfg.HasCards():
		return a.cfg.CardSet()
	default:
		return cards, fmt.Errorf("no cards given: pass --cards or set [cards] values in %s", config.FileName)
	}
}

package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brensch/pokesim/config"
	"github.com/brensch/pokesim/logging"
	"github.com/brensch/pokesim/selfplay"
)

// app is the state shared by every subcommand once the config is loaded.
type app struct {
	configPath string
	cfg        config.Config
	log        *logrus.Logger
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:           "pokesim",
		Short:         "Pokemon battle simulator and expectimax decision engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (env POKESIM_* overrides it)")

	root.AddCommand(
		newSelfPlayCmd(a),
		newChooseCmd(a),
		newDebugCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root, a
}

func (a *app) load() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	log, err := logging.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// player builds the search setup from the loaded config.
func (a *app) player() (selfplay.Player, error) {
	foe, err := a.cfg.Foe()
	if err != nil {
		return selfplay.Player{}, err
	}
	opts := a.cfg.Options(foe)
	opts.Log = a.log
	return selfplay.Player{Depth: a.cfg.Depth(), Weights: a.cfg.Weights, Options: opts}, nil
}

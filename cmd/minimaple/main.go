// cmd/minimaple/main.go: command line front end for minimaple
//
// Usage:
//
//	minimaple diff "x^2 + 2*x + 1" --var x [--trace] [--latex]
//	minimaple parse "x/(x+1)" [--json]
//	minimaple expand "(x+1)^2"
//	minimaple terms "(x+1)*(x-1)"
//	minimaple tools
package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/minimaple/internal/config"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	noColor    bool

	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "minimaple",
		Short:         "Differentiate and simplify single-variable expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to "+config.FileName)
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newDiffCmd(a),
		newParseCmd(a),
		newExpandCmd(a),
		newTermsCmd(a),
		newToolsCmd(a),
	)
	return root
}

func (a *app) init() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return errors.Wrap(err, "working directory")
		}
		a.cfg, _, err = config.FindAndLoad(wd)
	}
	if err != nil {
		return err
	}
	if a.noColor {
		a.cfg.Output.Color = false
	}
	a.logger, err = a.cfg.NewLogger()
	return err
}

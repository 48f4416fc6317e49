package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"segprep/internal/config"
	"segprep/internal/metrics"
)

// app holds state shared by every subcommand.
type app struct {
	cfgPath string
	verbose bool

	log *zap.Logger
	cfg config.Pipeline
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}
	root := &cobra.Command{
		Use:           "segprep",
		Short:         "Clean demographic extracts for customer segmentation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			log, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.log = log
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "segprep.yaml", "pipeline config (.json, .yaml or .yml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newRunCmd(a),
		newMissingCmd(a),
		newValidateCmd(a),
		newClassifyCmd(a),
	)
	return root, a
}

// shutdown flushes metrics and syncs the logger. Cobra skips post-run hooks
// when a command fails, so callers invoke it after Execute returns.
func (a *app) shutdown() {
	if err := metrics.Flush(); err != nil && a.log != nil {
		a.log.Warn("metrics flush failed", zap.Error(err))
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	pcsv "segprep/internal/parser/csv"
)

func newRunCmd(a *app) *cobra.Command {
	var stdout bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load the extract, clean it and export to the configured sinks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.load(); err != nil {
				return err
			}
			start := time.Now()
			ds, err := a.dataset(ctx)
			if err != nil {
				return err
			}
			p, err := a.pipeline(ds)
			if err != nil {
				return err
			}
			clean, err := p.Run(ctx)
			if err != nil {
				return err
			}
			if err := a.export(ctx, clean); err != nil {
				return err
			}
			if stdout {
				comma := a.cfg.Parser.Options.Rune("comma", ',')
				if err := pcsv.Write(cmd.OutOrStdout(), clean, comma); err != nil {
					return fmt.Errorf("write cleaned dataset: %w", err)
				}
			}
			a.log.Info("run completed",
				zap.String("run_id", p.RunID().String()),
				zap.Int("rows", clean.Len()),
				zap.Int("columns", clean.Width()),
				zap.String("sinks", sinkNames(a.cfg.Sinks)),
				zap.Duration("elapsed", time.Since(start)),
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&stdout, "stdout", false, "also write the cleaned dataset to stdout")
	return cmd
}

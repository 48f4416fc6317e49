package main

import (
	"github.com/spf13/cobra"

	"segprep/internal/report"
)

func newMissingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "missing",
		Short: "Chart missing values before and after sentinel normalization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.load(); err != nil {
				return err
			}
			ds, err := a.dataset(ctx)
			if err != nil {
				return err
			}
			p, err := a.pipeline(ds)
			if err != nil {
				return err
			}
			opt := report.Options{Width: a.cfg.Report.Width}
			out := cmd.OutOrStdout()

			before := report.TopMissing(p.MissingBefore(), a.cfg.Report.TopN)
			if err := report.Render(out, "Missing values before cleaning", before, opt); err != nil {
				return err
			}
			counts, err := p.MissingAfter(ctx)
			if err != nil {
				return err
			}
			after := report.TopMissing(counts, a.cfg.Report.TopN)
			return report.Render(out, "Missing values after sentinel normalization", after, opt)
		},
	}
}

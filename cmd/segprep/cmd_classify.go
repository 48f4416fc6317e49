package main

import (
	"github.com/spf13/cobra"
)

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Print the column classification report",
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
			cls, err := p.Classify(ctx)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(cls.Render())
			return err
		},
	}
}

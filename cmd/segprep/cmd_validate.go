package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"segprep/internal/config"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Lint the pipeline config and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.cfgPath)
			if err != nil {
				return err
			}
			cfg.ApplyEnv(os.Getenv)
			issues := config.ValidatePipeline(cfg)
			out := cmd.OutOrStdout()
			for _, iss := range issues {
				fmt.Fprintf(out, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
			}
			if config.HasErrors(issues) {
				return fmt.Errorf("config %s is invalid", a.cfgPath)
			}
			fmt.Fprintf(out, "config %s is valid\n", a.cfgPath)
			return nil
		},
	}
}

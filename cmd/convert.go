package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopak/sigma2splunk/internal/config"
	"github.com/gopak/sigma2splunk/internal/manager"
	"github.com/gopak/sigma2splunk/internal/sigma"
)

func init() {
	var rulePath, pipeline string
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Print the Splunk query for a Sigma rule without touching Splunk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rulePath == "" {
				return fmt.Errorf("%w: --rule is required", config.ErrUsage)
			}
			if err := config.CheckRuleFile(rulePath); err != nil {
				return err
			}
			env, err := config.LoadEnv(envFile)
			if err != nil {
				return err
			}
			m := manager.New(nil, sigma.NewConverter(env.SigmaBin), nil)
			_, q, err := m.Convert(cmd.Context(), rulePath, pipeline)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), q)
			return nil
		},
	}
	cmd.Flags().StringVarP(&rulePath, "rule", "r", "", "path to the Sigma rule file (.yml)")
	cmd.Flags().StringVarP(&pipeline, "pipeline", "p", "", "sigma-cli processing pipeline (default: --without-pipeline)")
	rootCmd.AddCommand(cmd)
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopak/sigma2splunk/internal/config"
	"github.com/gopak/sigma2splunk/internal/ui/console"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved searches on the Splunk host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateHost(inv.Host); err != nil {
				return err
			}
			if err := config.ValidateScheme(inv.Scheme); err != nil {
				return err
			}
			env, err := config.LoadEnv(envFile)
			if err != nil {
				return err
			}
			m, err := newManager(env)
			if err != nil {
				return err
			}
			list, err := m.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), console.RenderSavedSearches(list))
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

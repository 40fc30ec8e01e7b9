package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gopak/sigma2splunk/internal/config"
	"github.com/gopak/sigma2splunk/internal/rule"
)

var validateRule string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a Sigma rule against the embedded rule schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if validateRule == "" {
			return fmt.Errorf("%w: --rule is required", config.ErrUsage)
		}
		if err := config.CheckRuleFile(validateRule); err != nil {
			return err
		}
		r, err := rule.Load(validateRule)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rule is valid: %s", r.Title)
		if r.Level != "" {
			fmt.Fprintf(cmd.OutOrStdout(), " [%s]", r.Level)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateRule, "rule", "r", "", "path to the Sigma rule file (.yml)")
	rootCmd.AddCommand(validateCmd)
}

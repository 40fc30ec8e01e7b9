package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/gopak/sigma2splunk/internal/config"
	"github.com/gopak/sigma2splunk/internal/logging"
	"github.com/gopak/sigma2splunk/internal/manager"
	"github.com/gopak/sigma2splunk/internal/sigma"
	"github.com/gopak/sigma2splunk/internal/splunk"
	"github.com/gopak/sigma2splunk/internal/ui/console"
)

var inv = config.Defaults()
var noExec bool
var envFile string
var verbose bool
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "s2s",
	Short: "Convert Sigma rules to Splunk scheduled searches",
	Long: "s2s converts a Sigma rule to SPL with sigma-cli and stores it as a scheduled\n" +
		"saved search on a Splunk instance, replacing an existing search of the same name.\n\n" +
		"Credentials come from SPLUNK_USER and SPLUNK_PASS (a .env file is read too);\n" +
		"anything missing is asked for interactively.",
	Example: "  s2s -n \"Test Search\" -r rule.yml\n" +
		"  s2s -n \"Test Search\" -r rule.yml -p splunk_windows -t \"0 * * * *\"\n" +
		"  s2s -d -n \"Test Search\"",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

func Execute(ctx context.Context) error { return rootCmd.ExecuteContext(ctx) }

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&inv.Name, "name", "n", "", "name of the saved search (required)")
	f.StringVarP(&inv.RulePath, "rule", "r", "", "path to the Sigma rule file (.yml); required unless --delete")
	f.StringVarP(&inv.Timer, "timer", "t", config.DefaultTimer, "cron schedule of the saved search")
	f.StringVarP(&inv.Pipeline, "pipeline", "p", "", "sigma-cli processing pipeline (default: --without-pipeline)")
	f.BoolVarP(&inv.Delete, "delete", "d", false, "delete the saved search instead of creating it")
	f.BoolVar(&noExec, "no-exec", false, "do not run the query once after saving it")
	f.IntVar(&inv.MaxResults, "max-results", config.DefaultMaxResults, "maximum result rows to print when running the query")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&inv.Host, "host", config.DefaultHost, "Splunk management API host:port")
	pf.StringVar(&inv.Scheme, "scheme", config.DefaultScheme, "http or https")
	pf.BoolVar(&inv.VerifyTLS, "verify-tls", false, "verify the splunkd TLS certificate")
	pf.DurationVar(&inv.Timeout, "timeout", 0, "per-request timeout (0 = none)")
	pf.StringVar(&inv.App, "app", "", "Splunk app namespace for saved searches (default: user context)")
	pf.StringVar(&inv.Owner, "owner", "", "Splunk owner namespace, used with --app (default: nobody)")
	pf.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file to read SPLUNK_USER/SPLUNK_PASS/SIGMA_BIN from")
	pf.BoolVarP(&verbose, "verbose", "v", false, "show detailed steps and commands")

	rootCmd.Version = version
	cobra.OnInitialize(initLogging)
}

func initLogging() {
	logging.Init()
	logging.SetVerbose(verbose)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	inv.Execute = !noExec
	if err := inv.Validate(); err != nil {
		return err
	}
	if inv.Delete && (inv.RulePath != "" || inv.Pipeline != "" || cmd.Flags().Changed("timer")) {
		logging.Debug("--delete set: ignoring --rule, --timer and --pipeline")
	}
	env, err := config.LoadEnv(envFile)
	if err != nil {
		return err
	}
	m, err := newManager(env)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if inv.Delete {
		_, err = m.Delete(ctx, inv.Name)
		return err
	}
	_, err = m.Create(ctx, inv)
	return err
}

// newManager resolves credentials and wires the splunkd client and the
// sigma converter.
func newManager(env config.Env) (*manager.Manager, error) {
	creds, err := config.ResolveCredentials(env, console.NewPrompter())
	if err != nil {
		return nil, err
	}
	logging.Debug("connecting to " + inv.Host + " as " + creds.String())
	client := splunk.NewClient(splunk.Options{
		BaseURL:   splunk.BaseURL(inv.Scheme, inv.Host),
		Username:  creds.Username,
		Password:  creds.Password,
		App:       inv.App,
		Owner:     inv.Owner,
		VerifyTLS: inv.VerifyTLS,
		Timeout:   inv.Timeout,
	})
	return manager.New(client, sigma.NewConverter(env.SigmaBin), console.NewConsoleReporter(os.Stdout)), nil
}

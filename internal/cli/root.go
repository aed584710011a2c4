// Package cli implements the prepr command line tool.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/prepr/internal/output"
)

var version = "0.1.0"

// rootOptions holds the persistent flags shared by all commands.
type rootOptions struct {
	configFile  string
	envName     string
	envFile     string
	token       string
	baseURL     string
	timeout     time.Duration
	customerID  string
	userID      string
	format      string
	selectPath  string
	noColorFlag bool
	noColor     bool
	verbose     bool
	debug       bool
}

// NewRootCmd builds the prepr command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "prepr",
		Short:   "A command line client for the Prepr content API",
		Version: version,
		Long: `prepr queries the Prepr content delivery API from the terminal.

It sends REST requests with nested filter queries, GraphQL operations and
saved requests from a configuration file, with A/B testing and customer
headers set from the active environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "Configuration file (YAML or JSON)")
	flags.StringVarP(&opts.envName, "env", "e", "", "Environment from the configuration file")
	flags.StringVar(&opts.envFile, "env-file", "", "Load variables from this .env file (default ./.env when present)")
	flags.StringVar(&opts.token, "token", "", "Access token (default $PREPR_TOKEN)")
	flags.StringVar(&opts.baseURL, "base-url", "", "API base URL (default https://cdn.prepr.io)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "Request timeout (default 4s)")
	flags.StringVar(&opts.customerID, "customer-id", "", "Customer id sent with every request")
	flags.StringVar(&opts.userID, "user-id", "", "User id that enables A/B testing")
	flags.StringVarP(&opts.format, "output", "o", "text", "Output format: text, json or yaml")
	flags.StringVar(&opts.selectPath, "select", "", "Print only the value at this path of the response body")
	flags.BoolVar(&opts.noColorFlag, "no-color", false, "Disable colored output")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Show request line, timing and headers")
	flags.BoolVar(&opts.debug, "debug", false, "Print each outgoing request to stderr")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		opts.noColor = opts.noColorFlag || !output.IsTerminal(os.Stdout)
	}

	cmd.AddCommand(
		newFetchCmd(opts),
		newGraphQLCmd(opts),
		newRunCmd(opts),
		newBucketCmd(),
		newEncodeCmd(),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the root command and reports any error on stderr.
// This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		formatter := output.NewFormatter(false, !output.IsTerminal(os.Stderr))
		fmt.Fprint(os.Stderr, formatter.FormatError(err))
		return err
	}
	return nil
}

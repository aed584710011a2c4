package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/prepr/client"
	"github.com/wesleyorama2/prepr/config"
)

type runOptions struct {
	list   bool
	repeat repeatOptions
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [REQUEST]",
		Short: "Run a saved request from the configuration file",
		Example: `  prepr run articles --config prepr.yaml --env production
  prepr run --list --config prepr.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.configFile == "" {
				return fmt.Errorf("config file is required, set it with --config")
			}

			s, err := newSession(cmd, root)
			if err != nil {
				return err
			}

			if opts.list || len(args) == 0 {
				for _, name := range config.GetRequestNames(s.cfg) {
					fmt.Fprintln(s.stdout, name)
				}
				return nil
			}

			name := args[0]
			if err := config.ValidateRequest(s.cfg, name); err != nil {
				return err
			}
			req := s.cfg.Requests[name].Expand(s.env.Vars)

			return s.send(cmd.Context(), opts.repeat, func(c *client.Client) client.Overrides {
				req.Apply(c)
				return req.Overrides(s.env)
			})
		},
	}

	cmd.Flags().BoolVar(&opts.list, "list", false, "List the saved requests")
	addRepeatFlags(cmd, &opts.repeat)

	return cmd
}

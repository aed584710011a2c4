package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/prepr/querystring"
)

func newEncodeCmd() *cobra.Command {
	var sortKeys, skipIndices bool

	cmd := &cobra.Command{
		Use:     "encode JSON",
		Short:   "Print the query string a filter object encodes to",
		Example: `  prepr encode '{"tags":{"slug":["news","sport"]},"limit":5}'`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := querystring.FromJSON(args[0])
			if err != nil {
				return err
			}
			if value.Kind() != querystring.KindMap {
				return fmt.Errorf("filter must be a JSON object, got %s", value.Kind())
			}

			var opts []querystring.Option
			if sortKeys {
				opts = append(opts, querystring.WithSortedKeys())
			}
			if skipIndices {
				opts = append(opts, querystring.WithSkipIndices())
			}

			fmt.Fprintln(cmd.OutOrStdout(), querystring.Encode(value, opts...))
			return nil
		},
	}

	cmd.Flags().BoolVar(&sortKeys, "sort-keys", false, "Sort object keys")
	cmd.Flags().BoolVar(&skipIndices, "skip-indices", false, "Encode list items as key[] instead of key[i]")

	return cmd
}

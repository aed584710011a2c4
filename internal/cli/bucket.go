package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/prepr/abtest"
)

func newBucketCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bucket USER_ID...",
		Short: "Print the A/B testing bucket of user ids",
		Long: `Print the A/B testing bucket (0-9999) that the API receives for a user id.

With several ids each line holds the id and its bucket separated by a tab.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				fmt.Fprintln(out, abtest.Bucket(args[0]))
				return nil
			}
			for _, id := range args {
				fmt.Fprintf(out, "%s\t%d\n", id, abtest.Bucket(id))
			}
			return nil
		},
	}
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/prepr/client"
	"github.com/wesleyorama2/prepr/querystring"
)

type fetchOptions struct {
	query   string
	sort    string
	limit   int
	skip    int
	headers []string
	repeat  repeatOptions
}

func newFetchCmd(root *rootOptions) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch PATH",
		Short: "Send a REST request to the content API",
		Long: `Send a GET request to PATH on the content API.

The --query flag takes a JSON object that is encoded in bracket notation,
for example {"fields":"title,slug","tags":{"slug":["news"]}} becomes
fields=title%2Cslug&tags[slug][0]=news. Key order is kept.`,
		Example: `  prepr fetch /publications --limit 10 --sort -created_on
  prepr fetch /publications --query '{"fields":"title"}' --select items.#.title
  prepr fetch /publications --repeat 50 --rate 10`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query querystring.Value
			if opts.query != "" {
				q, err := querystring.FromJSON(opts.query)
				if err != nil {
					return err
				}
				query = q
			}

			headers, err := parseHeaders(opts.headers)
			if err != nil {
				return err
			}

			s, err := newSession(cmd, root)
			if err != nil {
				return err
			}

			path := args[0]
			return s.send(cmd.Context(), opts.repeat, func(c *client.Client) client.Overrides {
				c.SetPath(path).SetQuery(query)
				if opts.sort != "" {
					c.SetSort(opts.sort)
				}
				if opts.limit != 0 {
					c.SetLimit(opts.limit)
				}
				if opts.skip != 0 {
					c.SetSkip(opts.skip)
				}
				return client.Overrides{Headers: headers}
			})
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "Filter query as a JSON object")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "Sort field, prefix with - for descending")
	cmd.Flags().IntVar(&opts.limit, "limit", 0, "Maximum number of items")
	cmd.Flags().IntVar(&opts.skip, "skip", 0, "Number of items to skip")
	cmd.Flags().StringArrayVarP(&opts.headers, "header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	addRepeatFlags(cmd, &opts.repeat)

	return cmd
}

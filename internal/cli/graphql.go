package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/prepr/client"
	"github.com/wesleyorama2/prepr/config"
)

type graphQLOptions struct {
	variables string
	path      string
	headers   []string
	repeat    repeatOptions
}

func newGraphQLCmd(root *rootOptions) *cobra.Command {
	opts := &graphQLOptions{}

	cmd := &cobra.Command{
		Use:   "graphql QUERY",
		Short: "Send a GraphQL operation to the content API",
		Long: `Send a GraphQL operation as a JSON POST body.

QUERY is the operation text, or @FILE to read it from a file.`,
		Example: `  prepr graphql '{ Posts { items { title } } }'
  prepr graphql @page.graphql --variables '{"slug":"home"}' --select data.Page.title`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readOperation(args[0])
			if err != nil {
				return err
			}

			var variables map[string]any
			if opts.variables != "" {
				if err := json.Unmarshal([]byte(opts.variables), &variables); err != nil {
					return fmt.Errorf("invalid --variables: %w", err)
				}
			}

			headers, err := parseHeaders(opts.headers)
			if err != nil {
				return err
			}

			s, err := newSession(cmd, root)
			if err != nil {
				return err
			}

			return s.send(cmd.Context(), opts.repeat, func(c *client.Client) client.Overrides {
				c.SetPath(opts.path).SetGraphQLQuery(query)
				if variables != nil {
					c.SetGraphQLVariables(variables)
				}
				return client.Overrides{Headers: headers}
			})
		},
	}

	cmd.Flags().StringVar(&opts.variables, "variables", "", "Operation variables as a JSON object")
	cmd.Flags().StringVar(&opts.path, "path", config.DefaultGraphQLPath, "Endpoint path of the GraphQL API")
	cmd.Flags().StringArrayVarP(&opts.headers, "header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	addRepeatFlags(cmd, &opts.repeat)

	return cmd
}

// readOperation returns arg, or the contents of the file it names with a leading "@".
func readOperation(arg string) (string, error) {
	name, ok := strings.CutPrefix(arg, "@")
	if !ok {
		return arg, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("error reading operation: %w", err)
	}
	return string(data), nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/prepr/client"
	"github.com/wesleyorama2/prepr/config"
	"github.com/wesleyorama2/prepr/internal/latency"
	"github.com/wesleyorama2/prepr/internal/output"
)

// tokenEnvVar is read when neither the flags nor the environment set a token.
const tokenEnvVar = "PREPR_TOKEN"

// session is the resolved state of one command invocation.
type session struct {
	opts      *rootOptions
	cfg       *config.Config
	env       config.Environment
	client    *client.Client
	formatter output.FormatProvider
	stdout    io.Writer
	stderr    io.Writer
}

// newSession loads the .env file and configuration, selects the environment,
// applies flag overrides and creates the client.
func newSession(cmd *cobra.Command, opts *rootOptions) (*session, error) {
	var envFiles []string
	if opts.envFile != "" {
		envFiles = append(envFiles, opts.envFile)
	}
	if err := config.LoadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	s := &session{
		opts:   opts,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}

	if opts.configFile != "" {
		cfg, err := config.Load(opts.configFile)
		if err != nil {
			return nil, err
		}
		s.cfg = cfg

		env, err := selectEnvironment(cfg, opts.envName)
		if err != nil {
			return nil, err
		}
		s.env = env
	} else if opts.envName != "" {
		return nil, fmt.Errorf("--env %s requires --config", opts.envName)
	}

	s.applyFlags()

	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}
	s.formatter = output.GetFormatter(format, opts.verbose, opts.noColor)

	clientOpts := s.env.ClientOptions()
	if opts.debug || (opts.verbose && format == output.FormatText && opts.selectPath == "") {
		clientOpts = append(clientOpts, client.WithDebugHook(s.printRequest))
	}
	s.client = client.NewClient(clientOpts...)

	return s, nil
}

// selectEnvironment returns the named environment. Without a name it picks
// the only environment, or the one called "default".
func selectEnvironment(cfg *config.Config, name string) (config.Environment, error) {
	if name != "" {
		if err := config.ValidateEnvironment(cfg, name); err != nil {
			return config.Environment{}, err
		}
		return cfg.Environments[name], nil
	}

	if len(cfg.Environments) == 1 {
		for _, env := range cfg.Environments {
			return env, nil
		}
	}
	if env, ok := cfg.Environments["default"]; ok {
		return env, nil
	}
	if len(cfg.Environments) == 0 {
		return config.Environment{}, nil
	}

	return config.Environment{}, fmt.Errorf("multiple environments defined, choose one with --env (%s)",
		strings.Join(config.GetEnvironmentNames(cfg), ", "))
}

// applyFlags lets command line flags override the selected environment.
func (s *session) applyFlags() {
	if s.opts.token != "" {
		s.env.Token = s.opts.token
	}
	if s.env.Token == "" {
		s.env.Token = os.Getenv(tokenEnvVar)
	}
	if s.opts.baseURL != "" {
		s.env.BaseURL = s.opts.baseURL
	}
	if s.opts.timeout != 0 {
		s.env.Timeout = config.Duration(s.opts.timeout)
	}
	if s.opts.customerID != "" {
		s.env.CustomerID = s.opts.customerID
	}
	if s.opts.userID != "" {
		s.env.UserID = s.opts.userID
	}
}

func (s *session) printRequest(method, url string) {
	if s.opts.debug {
		fmt.Fprint(s.stderr, output.NewFormatter(false, s.opts.noColor).FormatRequest(method, url))
		return
	}
	fmt.Fprint(s.stdout, s.formatter.FormatRequest(method, url))
}

// printResponse writes the response, or the selected value when --select is set.
// Non-2xx responses are printed and then reported as an error.
func (s *session) printResponse(resp *client.Response) error {
	if s.opts.selectPath != "" {
		value, err := output.Select(resp.Body(), s.opts.selectPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.stdout, value)
	} else {
		fmt.Fprint(s.stdout, s.formatter.FormatResponse(resp))
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("request failed: %s", resp.Status)
	}
	return nil
}

// repeatOptions are the flags of commands that can send a request repeatedly.
type repeatOptions struct {
	count int
	rate  float64
}

func addRepeatFlags(cmd *cobra.Command, opts *repeatOptions) {
	cmd.Flags().IntVar(&opts.count, "repeat", 1, "Send the request this many times and print a latency summary")
	cmd.Flags().Float64Var(&opts.rate, "rate", 0, "Maximum requests per second with --repeat (0 means unlimited)")
}

// send drafts and fetches a request once, or repeat.count times.
// The draft is cleared by every fetch, so prepare is called before each one.
func (s *session) send(ctx context.Context, repeat repeatOptions, prepare func(*client.Client) client.Overrides) error {
	if repeat.count < 1 {
		return fmt.Errorf("--repeat must be at least 1")
	}
	if repeat.rate < 0 {
		return fmt.Errorf("--rate cannot be negative")
	}

	if repeat.count == 1 {
		resp, err := s.client.FetchWith(ctx, prepare(s.client))
		if err != nil {
			return err
		}
		return s.printResponse(resp)
	}

	summary, err := latency.Run(ctx, latency.Config{Count: repeat.count, Rate: repeat.rate},
		func(ctx context.Context, iteration int) (int, error) {
			resp, err := s.client.FetchWith(ctx, prepare(s.client))
			if err != nil {
				return 0, err
			}
			if !resp.IsSuccess() {
				return resp.StatusCode, fmt.Errorf("request failed: %s", resp.Status)
			}
			return resp.StatusCode, nil
		})
	fmt.Fprint(s.stdout, s.formatter.FormatSummary(summary))
	if err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d requests failed", summary.Failed, summary.Count)
	}
	return nil
}

// parseHeaders parses "Name: value" pairs.
func parseHeaders(headers []string) (map[string]string, error) {
	if len(headers) == 0 {
		return nil, nil
	}

	result := make(map[string]string, len(headers))
	for _, header := range headers {
		parts := strings.SplitN(header, ":", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid header %q, expected \"Name: value\"", header)
		}
		result[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return result, nil
}

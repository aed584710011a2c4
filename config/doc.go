// Package config loads prepr configuration files.
//
// A configuration file is YAML (or JSON) and defines:
//   - Environments: tokens, base URLs, timeouts, A/B user ids, default headers and variables
//   - Requests: named REST requests (path, filter query, sort, limit, skip) and GraphQL operations
//
// Basic Usage:
//
//	if err := config.LoadDotEnv(); err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg, err := config.Load("prepr.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	env := cfg.Environments["production"]
//	c := client.NewClient(env.ClientOptions()...)
//
//	req := cfg.Requests["articles"].Expand(env.Vars)
//	resp, err := req.Apply(c).FetchWith(ctx, req.Overrides(env))
//
// Variables:
//
// ${NAME} references anywhere in the file are replaced with process
// environment variables when the file is loaded, so tokens can stay out of
// the file. {{name}} placeholders in request paths, query values, headers and
// GraphQL operations are replaced from the environment's variables block by
// Request.Expand.
//
// Timeouts:
//
// The timeout of an environment is either a duration string ("4s", "1 minute")
// or an integer number of milliseconds.
//
// Validation:
//
// Load checks the document against an embedded JSON schema and then runs
// ValidateConfig. Both failures wrap ErrInvalidConfig.
package config

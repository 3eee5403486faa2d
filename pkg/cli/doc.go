// Package cli provides the configuration, output, and terminal rendering
// helpers used by the opusctl command.
//
// This package includes:
//   - Configuration management (encoder profiles, server defaults)
//   - Environment overrides from OPUSCTL_* variables and .env files
//   - Output formatting (JSON, YAML, table)
//   - Request file loading (YAML/JSON)
//   - Bordered frames and tables rendered with lipgloss
//
// Configuration is stored in ~/.opusctl/config.yaml, or in the directory
// named by OPUSCTL_CONFIG_DIR.
//
// Example usage:
//
//	cfg, err := cli.LoadConfig()
//	env, err := cli.LoadEnv(ctx)
//	cfg.ApplyEnv(env)
//
//	profile, err := cfg.ResolveProfile("")
//
//	cli.Output(result, cli.OutputOptions{
//	    Format: cli.FormatJSON,
//	    File:   outputPath,
//	})
package cli

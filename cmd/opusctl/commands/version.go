package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/cmd/opusctl/internal/build"
	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
	"github.com/haivivi/opusctl/pkg/cli"
)

type versionInfo struct {
	build.Info `yaml:",inline" json:",inline"`
	Libopus    string `yaml:"libopus" json:"libopus"`
	Config     string `yaml:"config,omitempty" json:"config,omitempty"`
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		if formatOutput == "" {
			fmt.Println(build.String())
			fmt.Printf("  libopus: %s\n", opus.Version())
			if IsVerbose() {
				if cfg, err := GetConfig(); err == nil {
					fmt.Printf("  config:  %s\n", cfg.Path())
				} else {
					fmt.Printf("  config:  (unavailable: %v)\n", err)
				}
			}
			return nil
		}

		info := versionInfo{Info: build.Get(), Libopus: opus.Version()}
		if cfg, err := GetConfig(); err == nil {
			info.Config = cfg.Path()
		}
		return output(info, cli.FormatYAML)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

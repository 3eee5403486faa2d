package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
	"github.com/haivivi/opusctl/pkg/cli"
)

var (
	profileFile          string
	profileRate          int
	profileChannels      int
	profileApplication   string
	profileVoiceDefaults bool
	profileSets          []string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage encoder profiles",
	Long: `Manage named encoder profiles stored in the configuration file.

A profile holds the encoder creation parameters and the controls applied
right after creation. 'ctl' and 'state' use the current profile unless
--profile names another one. OPUSCTL_PROFILE overrides the current profile.`,
}

type profileEntry struct {
	Name        string `yaml:"name" json:"name"`
	Current     bool   `yaml:"current" json:"current"`
	SampleRate  int    `yaml:"sample_rate" json:"sample_rate"`
	Channels    int    `yaml:"channels" json:"channels"`
	Application string `yaml:"application" json:"application"`
	Controls    int    `yaml:"controls" json:"controls"`
}

type profileList []profileEntry

func (l profileList) Headers() []string {
	return []string{"", "NAME", "RATE", "CHANNELS", "APPLICATION", "CONTROLS"}
}

func (l profileList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, e := range l {
		mark := ""
		if e.Current {
			mark = "*"
		}
		rows[i] = []string{mark, e.Name, strconv.Itoa(e.SampleRate), strconv.Itoa(e.Channels), e.Application, strconv.Itoa(e.Controls)}
	}
	return rows
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		names := cfg.ListProfiles()
		if len(names) == 0 && formatOutput == "" {
			cli.PrintInfo("No profiles configured. Use 'opusctl profile set <name>' to add one.")
			return nil
		}

		list := make(profileList, 0, len(names))
		for _, name := range names {
			p := cfg.Profiles[name]
			app := cli.DefaultApplication
			if p.Application != "" {
				app = p.Application
			}
			list = append(list, profileEntry{
				Name:        name,
				Current:     name == cfg.CurrentProfile,
				SampleRate:  p.Rate(),
				Channels:    p.ChannelCount(),
				Application: app,
				Controls:    p.Encoder.Count(),
			})
		}
		return output(list, cli.FormatTable)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile (default: current)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		p, err := cfg.ResolveProfile(name)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("no current profile set")
		}
		return output(p, cli.FormatYAML)
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <name>",
	Short: "Create or update a profile",
	Long: `Create or update a profile.

Fields are taken, in increasing priority, from the existing profile, the
voice defaults (--voice-defaults: inband FEC on, 30% expected packet loss),
a YAML or JSON file (--file, or - for stdin), and the flags.

Examples:
  opusctl profile set voice --voice-defaults --rate 16000
  opusctl profile set music --application audio --set bitrate=96000 --set signal=music
  opusctl profile set lowlat -f lowlat.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		name := args[0]

		p := &cli.Profile{}
		if existing, ok := cfg.Profiles[name]; ok {
			*p = *existing
		}
		if profileVoiceDefaults {
			p.Encoder = p.Encoder.Merge(opus.DefaultVoiceSettings())
		}
		if profileFile != "" {
			var fromFile cli.Profile
			if err := cli.LoadRequest(profileFile, &fromFile); err != nil {
				return err
			}
			mergeProfile(p, &fromFile)
		}
		if profileRate != 0 {
			p.SampleRate = profileRate
		}
		if profileChannels != 0 {
			p.Channels = profileChannels
		}
		if profileApplication != "" {
			p.Application = profileApplication
		}
		for _, kv := range profileSets {
			control, raw, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --set %q, want control=value", kv)
			}
			v, err := opus.ParseValue(raw)
			if err != nil {
				return err
			}
			if err := p.Encoder.SetControl(strings.TrimSpace(control), v); err != nil {
				return err
			}
		}

		if err := cfg.SetProfile(name, p); err != nil {
			return err
		}
		cli.PrintSuccess("Profile %q saved to %s", name, cfg.Path())
		return nil
	},
}

func mergeProfile(dst, src *cli.Profile) {
	if src.SampleRate != 0 {
		dst.SampleRate = src.SampleRate
	}
	if src.Channels != 0 {
		dst.Channels = src.Channels
	}
	if src.Application != "" {
		dst.Application = src.Application
	}
	dst.Encoder = dst.Encoder.Merge(src.Encoder)
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		wasCurrent := cfg.CurrentProfile == args[0]
		if err := cfg.DeleteProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Profile %q deleted", args[0])
		if wasCurrent {
			cli.PrintWarning("No profile is current now. Use 'opusctl profile use <name>' to pick one.")
		}
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the current profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig()
		if err != nil {
			return err
		}
		if err := cfg.UseProfile(args[0]); err != nil {
			return err
		}
		cli.PrintSuccess("Switched to profile %q", args[0])
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVarP(&profileFile, "file", "f", "", "load fields from a YAML or JSON file (- for stdin)")
	profileSetCmd.Flags().IntVar(&profileRate, "rate", 0, "sample rate in Hz")
	profileSetCmd.Flags().IntVar(&profileChannels, "channels", 0, "channel count")
	profileSetCmd.Flags().StringVar(&profileApplication, "application", "", "voip, audio, or restricted_lowdelay")
	profileSetCmd.Flags().BoolVar(&profileVoiceDefaults, "voice-defaults", false, "start from the voice chat defaults")
	profileSetCmd.Flags().StringArrayVar(&profileSets, "set", nil, "encoder control as control=value (repeatable)")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileUseCmd)
	rootCmd.AddCommand(profileCmd)
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
	"github.com/haivivi/opusctl/pkg/cli"
)

var stateFlags handleFlags

const stateWidth = 64

type stateReport struct {
	Libopus     string               `yaml:"libopus" json:"libopus"`
	Profile     string               `yaml:"profile,omitempty" json:"profile,omitempty"`
	SampleRate  int                  `yaml:"sample_rate" json:"sample_rate"`
	Channels    int                  `yaml:"channels" json:"channels"`
	Application string               `yaml:"application" json:"application"`
	Encoder     []opus.SnapshotEntry `yaml:"encoder" json:"encoder"`
	Decoder     []opus.SnapshotEntry `yaml:"decoder" json:"decoder"`
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show every readable control of a fresh encoder and decoder",
	Long: `Create an encoder (with the profile applied) and a decoder, issue every
known get request each of them accepts, and print the values and statuses.

Without --format the result is drawn as a bordered frame.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		params, err := stateFlags.resolve()
		if err != nil {
			return err
		}
		enc, err := openEncoder(params)
		if err != nil {
			return err
		}
		defer enc.Close()
		dec, err := openDecoder(params)
		if err != nil {
			return err
		}
		defer dec.Close()

		report := stateReport{
			Libopus:     opus.Version(),
			SampleRate:  params.SampleRate,
			Channels:    params.Channels,
			Application: opus.FormatValue("application", int32(params.Application)),
			Encoder:     opus.Snapshot(enc, opus.TargetEncoder),
			Decoder:     opus.Snapshot(dec, opus.TargetDecoder),
		}
		if params.Profile != nil {
			report.Profile = params.Profile.Name
		}

		if formatOutput != "" {
			return output(report, cli.FormatYAML)
		}
		frame := report.frame(cli.NewStyles(cli.DefaultTheme))
		return output(frame.Render(stateWidth, frame.FitHeight())+"\n", cli.FormatRaw)
	},
}

func (r stateReport) Headers() []string {
	return []string{"TARGET", "CONTROL", "VALUE", "STATUS"}
}

func (r stateReport) Rows() [][]string {
	rows := make([][]string, 0, len(r.Encoder)+len(r.Decoder))
	add := func(target string, entries []opus.SnapshotEntry) {
		for _, e := range entries {
			rows = append(rows, []string{target, e.Control, e.Display, e.Result})
		}
	}
	add("encoder", r.Encoder)
	add("decoder", r.Decoder)
	return rows
}

func (r stateReport) frame(styles cli.Styles) cli.Frame {
	lines := func(entries []opus.SnapshotEntry) func() []string {
		return func() []string {
			out := make([]string, 0, len(entries))
			for _, e := range entries {
				value := e.Display
				if e.Status != opus.OK {
					value = styles.Bad.Render(e.Result)
				}
				out = append(out, fmt.Sprintf("%-26s %s", e.Control, value))
			}
			return out
		}
	}

	title := "opusctl state"
	if r.Profile != "" {
		title += " (" + r.Profile + ")"
	}
	return cli.Frame{
		Styles: styles,
		Title:  title,
		Status: r.Libopus,
		Sections: []cli.Section{
			{Label: " encoder ", Content: lines(r.Encoder)},
			{Label: " decoder ", Content: lines(r.Decoder)},
		},
		Help: fmt.Sprintf("%d Hz, %d channel(s), %s", r.SampleRate, r.Channels, r.Application),
	}
}

func init() {
	stateFlags.register(stateCmd)
	rootCmd.AddCommand(stateCmd)
}

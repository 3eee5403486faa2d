package commands

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
	"github.com/haivivi/opusctl/pkg/cli"
)

var requestsTarget string

type requestEntry struct {
	Name      string `yaml:"name" json:"name"`
	Code      int32  `yaml:"code" json:"code"`
	Macro     string `yaml:"macro" json:"macro"`
	Direction string `yaml:"direction" json:"direction"`
	Targets   string `yaml:"targets" json:"targets"`
}

type requestList []requestEntry

func (l requestList) Headers() []string {
	return []string{"NAME", "CODE", "MACRO", "DIRECTION", "TARGETS"}
}

func (l requestList) Rows() [][]string {
	rows := make([][]string, len(l))
	for i, e := range l {
		rows[i] = []string{e.Name, strconv.Itoa(int(e.Code)), e.Macro, e.Direction, e.Targets}
	}
	return rows
}

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "List the known control requests",
	Long: `List the control requests opusctl knows by name.

Any other request code can still be sent with 'opusctl ctl' as a decimal
number; libopus decides whether it is supported.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter opus.Target
		if requestsTarget != "" {
			t, err := opus.ParseTarget(requestsTarget)
			if err != nil {
				return err
			}
			filter = t
		}

		var list requestList
		for _, r := range opus.Requests() {
			if filter != 0 && !r.Targets().Has(filter) {
				continue
			}
			list = append(list, requestEntry{
				Name:      r.String(),
				Code:      int32(r),
				Macro:     r.MacroName(),
				Direction: r.Direction().String(),
				Targets:   r.Targets().String(),
			})
		}
		return output(list, cli.FormatTable)
	},
}

func init() {
	requestsCmd.Flags().StringVar(&requestsTarget, "target", "", "only list requests accepted by encoder or decoder")
	rootCmd.AddCommand(requestsCmd)
}

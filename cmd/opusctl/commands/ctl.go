package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
	"github.com/haivivi/opusctl/pkg/cli"
)

var ctlFlags handleFlags

type ctlResult struct {
	Target  string `yaml:"target" json:"target"`
	Request string `yaml:"request" json:"request"`
	Code    int32  `yaml:"code" json:"code"`
	Value   *int32 `yaml:"value,omitempty" json:"value,omitempty"`
	Display string `yaml:"display,omitempty" json:"display,omitempty"`
	Status  string `yaml:"status" json:"status"`
	Message string `yaml:"message" json:"message"`
}

var ctlCmd = &cobra.Command{
	Use:   "ctl",
	Short: "Issue one control request through the shim",
	Long: `Create a fresh encoder or decoder, apply the profile (encoders only), and
issue a single set or get request through the control shim.

The raw libopus status is printed. A status other than OPUS_OK makes the
command exit with code 1.

Requests may be given as control names (bitrate), request names
(set_bitrate), C macro names (OPUS_SET_BITRATE_REQUEST) or decimal codes.
Values may be numbers or names such as auto, max, voice, fullband or 20ms.
Use -- before negative values.

Examples:
  opusctl ctl set encoder complexity 5
  opusctl ctl get encoder lookahead --rate 16000
  opusctl ctl set decoder gain -- -256
  opusctl ctl set encoder reset_state
  opusctl ctl get decoder 4999`,
}

var ctlGetCmd = &cobra.Command{
	Use:   "get <encoder|decoder> <request>",
	Short: "Read a control value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCtl(args[0], args[1], opus.DirectionGet, "")
	},
}

var ctlSetCmd = &cobra.Command{
	Use:   "set <encoder|decoder> <request> [value]",
	Short: "Write a control value",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := ""
		if len(args) == 3 {
			value = args[2]
		}
		return runCtl(args[0], args[1], opus.DirectionSet, value)
	},
}

func runCtl(targetArg, requestArg string, dir opus.Direction, valueArg string) error {
	target, err := opus.ParseTarget(targetArg)
	if err != nil {
		return err
	}
	req, err := resolveRequest(requestArg, dir)
	if err != nil {
		return err
	}

	var value int32
	if dir == opus.DirectionSet {
		switch {
		case valueArg != "":
			if value, err = opus.ParseValue(valueArg); err != nil {
				return err
			}
		case req.Known() && req.Direction() == opus.DirectionSet:
			return fmt.Errorf("a value is required for %s", req)
		}
	}

	params, err := ctlFlags.resolve()
	if err != nil {
		return err
	}
	c, closeFn, err := openController(target, params)
	if err != nil {
		return err
	}
	defer closeFn()

	res := ctlResult{
		Target:  target.String(),
		Request: req.String(),
		Code:    int32(req),
	}
	var st opus.Status
	if dir == opus.DirectionSet {
		st = c.CtlSet(req, value)
	} else {
		var v int32
		v, st = c.CtlGet(req)
		if st == opus.OK {
			res.Value = &v
			res.Display = opus.FormatValue(req.Control(), v)
		}
	}
	res.Status = st.Name()
	res.Message = st.Error()

	if err := output(res, cli.FormatYAML); err != nil {
		return err
	}
	if st != opus.OK {
		return &opus.CtlError{Op: target.String(), Request: req, Value: value, Status: st}
	}
	return nil
}

func init() {
	ctlFlags.register(ctlGetCmd)
	ctlFlags.register(ctlSetCmd)

	ctlCmd.AddCommand(ctlGetCmd)
	ctlCmd.AddCommand(ctlSetCmd)
	rootCmd.AddCommand(ctlCmd)
}

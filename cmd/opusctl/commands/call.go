package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
	"github.com/haivivi/opusctl/pkg/cli"
	"github.com/haivivi/opusctl/pkg/opusbridge"
)

var (
	callURL     string
	callJSON    bool
	callFile    string
	callTimeout time.Duration
	callStepArg callStep
)

// callStep is one bridge call as written on the command line or in a call
// script. Handle 0 on destroy and control steps means the most recently
// created handle.
type callStep struct {
	Op          string `yaml:"op" json:"op"`
	Handle      int32  `yaml:"handle,omitempty" json:"handle,omitempty"`
	SampleRate  int    `yaml:"sample_rate,omitempty" json:"sample_rate,omitempty"`
	Channels    int    `yaml:"channels,omitempty" json:"channels,omitempty"`
	Application string `yaml:"application,omitempty" json:"application,omitempty"`
	Request     string `yaml:"request,omitempty" json:"request,omitempty"`
	Value       string `yaml:"value,omitempty" json:"value,omitempty"`
}

type callResult struct {
	Op      string `yaml:"op" json:"op"`
	Handle  int32  `yaml:"handle,omitempty" json:"handle,omitempty"`
	Request string `yaml:"request,omitempty" json:"request,omitempty"`
	Status  string `yaml:"status,omitempty" json:"status,omitempty"`
	Value   *int32 `yaml:"value,omitempty" json:"value,omitempty"`
	Display string `yaml:"display,omitempty" json:"display,omitempty"`
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	Error   string `yaml:"error,omitempty" json:"error,omitempty"`
}

var callCmd = &cobra.Command{
	Use:   "call [op]",
	Short: "Send requests to a running bridge",
	Long: `Connect to a bridge started with 'opusctl serve' and send one request, or
a script of requests with --file. All requests of one invocation share a
connection, so handles created early in a script can be used later in it.

Operations:
  version, encoder.create, decoder.create, destroy,
  encoder.ctl_set, encoder.ctl_get, decoder.ctl_set, decoder.ctl_get

A script is a YAML or JSON list of steps:

  - op: encoder.create
    sample_rate: 16000
  - op: encoder.ctl_set
    request: bitrate
    value: 12000
  - op: encoder.ctl_get
    request: bitrate

The command exits with code 1 when any call fails or returns a status other
than OPUS_OK.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCall,
}

func runCall(cmd *cobra.Command, args []string) error {
	var steps []callStep
	switch {
	case callFile != "" && len(args) > 0:
		return fmt.Errorf("give either an op or --file, not both")
	case callFile != "":
		if err := cli.LoadRequest(callFile, &steps); err != nil {
			return err
		}
	case len(args) == 1:
		step := callStepArg
		step.Op = args[0]
		steps = []callStep{step}
	default:
		return fmt.Errorf("an op or --file is required")
	}

	url := callURL
	if url == "" {
		url = bridgeURL()
	}

	ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
	defer cancel()
	client, err := opusbridge.Dial(ctx, url, &opusbridge.DialOptions{JSON: callJSON})
	if err != nil {
		return err
	}
	defer client.Close()

	var (
		results []callResult
		last    int32
		failed  int
	)
	for _, step := range steps {
		req, err := step.bridgeRequest(last)
		if err != nil {
			return fmt.Errorf("step %q: %w", step.Op, err)
		}
		slog.Debug("bridge call", "op", req.Op, "handle", req.Handle, "request", req.Request.String())

		resp, err := client.Call(ctx, req)
		res := callResult{Op: req.Op, Handle: resp.Handle}
		if isCtlOp(req.Op) {
			res.Request = req.Request.String()
			res.Status = resp.Status.Name()
		}
		var remote *opusbridge.RemoteError
		switch {
		case errors.As(err, &remote):
			res.Error = remote.Message
			if remote.Status != opus.OK {
				res.Status = remote.Status.Name()
			}
			failed++
		case err != nil:
			return err
		default:
			switch req.Op {
			case opusbridge.OpVersion:
				res.Version = resp.Version
			case opusbridge.OpEncoderCreate, opusbridge.OpDecoderCreate:
				last = resp.Handle
			case opusbridge.OpEncoderCtlGet, opusbridge.OpDecoderCtlGet:
				if resp.Status == opus.OK {
					v := resp.Value
					res.Value = &v
					res.Display = opus.FormatValue(req.Request.Control(), v)
				}
			}
			if resp.Status != opus.OK {
				failed++
			}
		}
		results = append(results, res)
	}

	var out any = results
	if len(results) == 1 {
		out = results[0]
	}
	if err := output(out, cli.FormatYAML); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d calls failed", failed, len(results))
	}
	return nil
}

func isCtlOp(op string) bool {
	switch op {
	case opusbridge.OpEncoderCtlSet, opusbridge.OpEncoderCtlGet, opusbridge.OpDecoderCtlSet, opusbridge.OpDecoderCtlGet:
		return true
	}
	return false
}

func (s callStep) bridgeRequest(last int32) (opusbridge.Request, error) {
	req := opusbridge.Request{Op: s.Op, Handle: s.Handle}
	if req.Handle == 0 {
		req.Handle = last
	}

	switch s.Op {
	case opusbridge.OpVersion:
		req.Handle = 0
	case opusbridge.OpEncoderCreate, opusbridge.OpDecoderCreate:
		req.Handle = 0
		req.SampleRate, req.Channels = s.SampleRate, s.Channels
		if req.SampleRate == 0 {
			req.SampleRate = cli.DefaultSampleRate
		}
		if req.Channels == 0 {
			req.Channels = cli.DefaultChannels
		}
		if s.Op == opusbridge.OpEncoderCreate {
			app := s.Application
			if app == "" {
				app = cli.DefaultApplication
			}
			v, err := cli.ParseApplication(app)
			if err != nil {
				return req, err
			}
			req.Application = v
		}
	case opusbridge.OpDestroy:
	case opusbridge.OpEncoderCtlSet, opusbridge.OpDecoderCtlSet, opusbridge.OpEncoderCtlGet, opusbridge.OpDecoderCtlGet:
		dir := opus.DirectionGet
		if s.Op == opusbridge.OpEncoderCtlSet || s.Op == opusbridge.OpDecoderCtlSet {
			dir = opus.DirectionSet
		}
		if s.Request == "" {
			return req, fmt.Errorf("request is required")
		}
		r, err := resolveRequest(s.Request, dir)
		if err != nil {
			return req, err
		}
		req.Request = r
		if dir == opus.DirectionSet && s.Value != "" {
			if req.Value, err = opus.ParseValue(s.Value); err != nil {
				return req, err
			}
		}
	default:
		return req, fmt.Errorf("unknown op")
	}
	return req, nil
}

func init() {
	callCmd.Flags().StringVar(&callURL, "url", "", "bridge URL (default ws://<listen>/opus)")
	callCmd.Flags().BoolVar(&callJSON, "json", false, "send JSON text messages instead of msgpack")
	callCmd.Flags().StringVarP(&callFile, "file", "f", "", "run a YAML or JSON call script (- for stdin)")
	callCmd.Flags().DurationVar(&callTimeout, "timeout", 10*time.Second, "overall timeout")
	callCmd.Flags().Int32Var(&callStepArg.Handle, "handle", 0, "instance id")
	callCmd.Flags().IntVar(&callStepArg.SampleRate, "rate", 0, "sample rate for create ops (default 48000)")
	callCmd.Flags().IntVar(&callStepArg.Channels, "channels", 0, "channel count for create ops (default 1)")
	callCmd.Flags().StringVar(&callStepArg.Application, "application", "", "encoder application for encoder.create")
	callCmd.Flags().StringVar(&callStepArg.Request, "request", "", "control request for ctl ops")
	callCmd.Flags().StringVar(&callStepArg.Value, "value", "", "value for ctl_set ops")
	rootCmd.AddCommand(callCmd)
}

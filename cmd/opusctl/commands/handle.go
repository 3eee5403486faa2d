package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
	"github.com/haivivi/opusctl/pkg/cli"
)

// handleFlags are the creation flags shared by commands that open a local
// encoder or decoder. Zero values fall back to the profile, then to the
// profile defaults.
type handleFlags struct {
	rate        int
	channels    int
	application string
	profile     string
}

func (f *handleFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.rate, "rate", 0, "sample rate in Hz (default from profile, else 48000)")
	cmd.Flags().IntVar(&f.channels, "channels", 0, "channel count (default from profile, else 1)")
	cmd.Flags().StringVar(&f.application, "application", "", "encoder application: voip, audio, restricted_lowdelay")
	cmd.Flags().StringVarP(&f.profile, "profile", "p", "", "encoder profile to apply (default: current profile)")
}

type handleParams struct {
	SampleRate  int
	Channels    int
	Application int
	Profile     *cli.Profile
}

func (f *handleFlags) resolve() (handleParams, error) {
	var profile *cli.Profile
	cfg, err := GetConfig()
	switch {
	case err == nil:
		profile, err = cfg.ResolveProfile(f.profile)
		if err != nil {
			return handleParams{}, err
		}
	case f.profile != "":
		return handleParams{}, err
	}

	p := handleParams{
		SampleRate: profile.Rate(),
		Channels:   profile.ChannelCount(),
		Profile:    profile,
	}
	if p.Application, err = profile.ApplicationValue(); err != nil {
		return handleParams{}, err
	}
	if f.rate != 0 {
		p.SampleRate = f.rate
	}
	if f.channels != 0 {
		p.Channels = f.channels
	}
	if f.application != "" {
		if p.Application, err = cli.ParseApplication(f.application); err != nil {
			return handleParams{}, err
		}
	}
	return p, nil
}

// openEncoder creates an encoder and applies the profile's settings to it.
func openEncoder(p handleParams) (*opus.Encoder, error) {
	enc, err := opus.NewEncoder(p.SampleRate, p.Channels, p.Application)
	if err != nil {
		return nil, err
	}
	if p.Profile != nil {
		if err := p.Profile.Encoder.Apply(enc); err != nil {
			enc.Close()
			return nil, fmt.Errorf("profile %s: %w", p.Profile.Name, err)
		}
	}
	return enc, nil
}

func openDecoder(p handleParams) (*opus.Decoder, error) {
	return opus.NewDecoder(p.SampleRate, p.Channels)
}

// openController opens an encoder or decoder for target and returns it with
// its close function.
func openController(target opus.Target, p handleParams) (opus.Controller, func(), error) {
	switch target {
	case opus.TargetEncoder:
		enc, err := openEncoder(p)
		if err != nil {
			return nil, nil, err
		}
		return enc, enc.Close, nil
	case opus.TargetDecoder:
		dec, err := openDecoder(p)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	}
	return nil, nil, fmt.Errorf("unsupported target %s", target)
}

// resolveRequest maps a command line argument to a request code. Control
// names ("bitrate") are looked up for dir; request names, macro names and
// decimal codes are parsed as is. Known requests of the wrong direction are
// rejected, unknown codes pass through.
func resolveRequest(arg string, dir opus.Direction) (opus.Request, error) {
	if r, ok := opus.LookupControl(arg, dir); ok {
		return r, nil
	}
	if dir == opus.DirectionSet {
		if r, ok := opus.LookupControl(arg, opus.DirectionAction); ok {
			return r, nil
		}
	}
	r, err := opus.ParseRequest(arg)
	if err != nil {
		return 0, err
	}
	if !r.Known() {
		return r, nil
	}
	switch {
	case dir == opus.DirectionGet && r.Direction() != opus.DirectionGet:
		return 0, fmt.Errorf("%s is not a get request", r)
	case dir == opus.DirectionSet && r.Direction() == opus.DirectionGet:
		return 0, fmt.Errorf("%s is not a set request", r)
	}
	return r, nil
}

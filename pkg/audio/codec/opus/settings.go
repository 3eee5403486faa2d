package opus

import "fmt"

// EncoderSettings is a reusable set of encoder controls. Nil fields are left
// untouched by Apply.
type EncoderSettings struct {
	Bitrate                *int32 `yaml:"bitrate,omitempty" json:"bitrate,omitempty" msgpack:"bitrate,omitempty"`
	Complexity             *int32 `yaml:"complexity,omitempty" json:"complexity,omitempty" msgpack:"complexity,omitempty"`
	MaxBandwidth           *int32 `yaml:"max_bandwidth,omitempty" json:"max_bandwidth,omitempty" msgpack:"max_bandwidth,omitempty"`
	Signal                 *int32 `yaml:"signal,omitempty" json:"signal,omitempty" msgpack:"signal,omitempty"`
	ForceChannels          *int32 `yaml:"force_channels,omitempty" json:"force_channels,omitempty" msgpack:"force_channels,omitempty"`
	InbandFEC              *bool  `yaml:"inband_fec,omitempty" json:"inband_fec,omitempty" msgpack:"inband_fec,omitempty"`
	PacketLossPercentage   *int32 `yaml:"packet_loss_perc,omitempty" json:"packet_loss_perc,omitempty" msgpack:"packet_loss_perc,omitempty"`
	VBR                    *bool  `yaml:"vbr,omitempty" json:"vbr,omitempty" msgpack:"vbr,omitempty"`
	VBRConstraint          *bool  `yaml:"vbr_constraint,omitempty" json:"vbr_constraint,omitempty" msgpack:"vbr_constraint,omitempty"`
	DTX                    *bool  `yaml:"dtx,omitempty" json:"dtx,omitempty" msgpack:"dtx,omitempty"`
	LSBDepth               *int32 `yaml:"lsb_depth,omitempty" json:"lsb_depth,omitempty" msgpack:"lsb_depth,omitempty"`
	PredictionDisabled     *bool  `yaml:"prediction_disabled,omitempty" json:"prediction_disabled,omitempty" msgpack:"prediction_disabled,omitempty"`
	PhaseInversionDisabled *bool  `yaml:"phase_inversion_disabled,omitempty" json:"phase_inversion_disabled,omitempty" msgpack:"phase_inversion_disabled,omitempty"`
}

// DefaultVoiceSettings returns the settings voice chat encoders start with:
// inband FEC on and 30% expected packet loss.
func DefaultVoiceSettings() EncoderSettings {
	return EncoderSettings{
		InbandFEC:            Ptr(true),
		PacketLossPercentage: Ptr[int32](30),
	}
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

type settingField struct {
	set, get Request
	i        **int32
	b        **bool
}

// fields lists the settings in the order Apply sends them.
func (s *EncoderSettings) fields() []settingField {
	return []settingField{
		{set: SetBitrate, get: GetBitrate, i: &s.Bitrate},
		{set: SetComplexity, get: GetComplexity, i: &s.Complexity},
		{set: SetMaxBandwidth, get: GetMaxBandwidth, i: &s.MaxBandwidth},
		{set: SetSignal, get: GetSignal, i: &s.Signal},
		{set: SetForceChannels, get: GetForceChannels, i: &s.ForceChannels},
		{set: SetInbandFEC, get: GetInbandFEC, b: &s.InbandFEC},
		{set: SetPacketLossPerc, get: GetPacketLossPerc, i: &s.PacketLossPercentage},
		{set: SetVBR, get: GetVBR, b: &s.VBR},
		{set: SetVBRConstraint, get: GetVBRConstraint, b: &s.VBRConstraint},
		{set: SetDTX, get: GetDTX, b: &s.DTX},
		{set: SetLSBDepth, get: GetLSBDepth, i: &s.LSBDepth},
		{set: SetPredictionDisabled, get: GetPredictionDisabled, b: &s.PredictionDisabled},
		{set: SetPhaseInversionDisabled, get: GetPhaseInversionDisabled, b: &s.PhaseInversionDisabled},
	}
}

// Apply sends a set request for every non-nil field and stops at the first
// request libopus rejects.
func (s EncoderSettings) Apply(c Controller) error {
	for _, f := range s.fields() {
		switch {
		case f.i != nil && *f.i != nil:
			if err := setCtl(c, "apply", f.set, **f.i); err != nil {
				return err
			}
		case f.b != nil && *f.b != nil:
			if err := setCtl(c, "apply", f.set, boolValue(**f.b)); err != nil {
				return err
			}
		}
	}
	return nil
}

// Merge returns s with every non-nil field of o copied over it.
func (s EncoderSettings) Merge(o EncoderSettings) EncoderSettings {
	dst := s.fields()
	for i, f := range o.fields() {
		switch {
		case f.i != nil && *f.i != nil:
			*dst[i].i = Ptr(**f.i)
		case f.b != nil && *f.b != nil:
			*dst[i].b = Ptr(**f.b)
		}
	}
	return s
}

// SetControl sets the field for a control name such as "bitrate" or
// "inband_fec". Boolean fields take any non-zero value as true.
func (s *EncoderSettings) SetControl(control string, v int32) error {
	for _, f := range s.fields() {
		if f.set.Control() != control {
			continue
		}
		if f.i != nil {
			*f.i = Ptr(v)
		} else {
			*f.b = Ptr(v != 0)
		}
		return nil
	}
	return fmt.Errorf("opus: %q is not an encoder setting", control)
}

// Count returns the number of fields that are set.
func (s EncoderSettings) Count() int {
	n := 0
	for _, f := range s.fields() {
		if (f.i != nil && *f.i != nil) || (f.b != nil && *f.b != nil) {
			n++
		}
	}
	return n
}

// Controls returns the control names SetControl accepts, in Apply order.
func (s EncoderSettings) Controls() []string {
	var names []string
	for _, f := range s.fields() {
		names = append(names, f.set.Control())
	}
	return names
}

// ReadEncoderSettings reads every field of EncoderSettings back from c.
func ReadEncoderSettings(c Controller) (EncoderSettings, error) {
	var s EncoderSettings
	for _, f := range s.fields() {
		v, err := getCtl(c, "read", f.get)
		if err != nil {
			return EncoderSettings{}, err
		}
		if f.i != nil {
			*f.i = Ptr(v)
		} else {
			*f.b = Ptr(v != 0)
		}
	}
	return s, nil
}

// SnapshotEntry is the result of one get request.
type SnapshotEntry struct {
	Request Request `yaml:"-" json:"-" msgpack:"request"`
	Control string  `yaml:"control" json:"control" msgpack:"control"`
	Value   int32   `yaml:"value" json:"value" msgpack:"value"`
	Display string  `yaml:"display" json:"display" msgpack:"-"`
	Status  Status  `yaml:"-" json:"-" msgpack:"status"`
	Result  string  `yaml:"status" json:"status" msgpack:"-"`
}

// Snapshot issues every known get request that t implements and records the
// value and status of each, including failures.
func Snapshot(c Controller, t Target) []SnapshotEntry {
	var entries []SnapshotEntry
	for _, r := range Requests() {
		if r.Direction() != DirectionGet || !r.Targets().Has(t) {
			continue
		}
		v, st := c.CtlGet(r)
		e := SnapshotEntry{
			Request: r,
			Control: r.Control(),
			Value:   v,
			Status:  st,
			Result:  st.Name(),
		}
		if st == OK {
			e.Display = FormatValue(r.Control(), v)
		}
		entries = append(entries, e)
	}
	return entries
}

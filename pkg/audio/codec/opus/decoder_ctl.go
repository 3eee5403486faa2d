package opus

func (d *Decoder) set(req Request, value int32) error {
	if d.cDec == nil {
		return ErrClosed
	}
	return setCtl(d, "decoder", req, value)
}

func (d *Decoder) get(req Request) (int32, error) {
	if d.cDec == nil {
		return 0, ErrClosed
	}
	return getCtl(d, "decoder", req)
}

// SetGain sets the output gain in Q8 dB units (-32768 to 32767).
func (d *Decoder) SetGain(gain int) error {
	return d.set(SetGain, int32(gain))
}

// Gain returns the configured output gain in Q8 dB units.
func (d *Decoder) Gain() (int, error) {
	v, err := d.get(GetGain)
	return int(v), err
}

// Bandwidth returns the bandwidth of the last decoded packet.
func (d *Decoder) Bandwidth() (int32, error) {
	return d.get(GetBandwidth)
}

// LastPacketDuration returns the duration in samples of the last decoded
// packet.
func (d *Decoder) LastPacketDuration() (int, error) {
	v, err := d.get(GetLastPacketDuration)
	return int(v), err
}

// Pitch returns the pitch of the last decoded frame, or 0 if unvoiced.
func (d *Decoder) Pitch() (int, error) {
	v, err := d.get(GetPitch)
	return int(v), err
}

// QuerySampleRate returns the sample rate reported by libopus.
func (d *Decoder) QuerySampleRate() (int, error) {
	v, err := d.get(GetSampleRate)
	return int(v), err
}

// FinalRange returns the final state of the range decoder.
func (d *Decoder) FinalRange() (uint32, error) {
	v, err := d.get(GetFinalRange)
	return uint32(v), err
}

// SetPhaseInversionDisabled disables stereo phase inversion when true.
func (d *Decoder) SetPhaseInversionDisabled(disabled bool) error {
	return d.set(SetPhaseInversionDisabled, boolValue(disabled))
}

// PhaseInversionDisabled reports whether stereo phase inversion is disabled.
func (d *Decoder) PhaseInversionDisabled() (bool, error) {
	v, err := d.get(GetPhaseInversionDisabled)
	return v != 0, err
}

// Reset restores the decoder to its freshly initialized state.
func (d *Decoder) Reset() error {
	return d.set(ResetState, 0)
}

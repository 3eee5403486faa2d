package opus

func (e *Encoder) set(req Request, value int32) error {
	if e.cEnc == nil {
		return ErrClosed
	}
	return setCtl(e, "encoder", req, value)
}

func (e *Encoder) get(req Request) (int32, error) {
	if e.cEnc == nil {
		return 0, ErrClosed
	}
	return getCtl(e, "encoder", req)
}

func (e *Encoder) getBool(req Request) (bool, error) {
	v, err := e.get(req)
	return v != 0, err
}

// SetBitrate sets the target bitrate in bits per second. Auto and
// BitrateMax are accepted.
func (e *Encoder) SetBitrate(bitrate int) error {
	return e.set(SetBitrate, int32(bitrate))
}

// Bitrate returns the bitrate the encoder is targeting.
func (e *Encoder) Bitrate() (int, error) {
	v, err := e.get(GetBitrate)
	return int(v), err
}

// SetComplexity sets the encoder's computational complexity (0-10).
func (e *Encoder) SetComplexity(complexity int) error {
	return e.set(SetComplexity, int32(complexity))
}

// Complexity returns the encoder's computational complexity.
func (e *Encoder) Complexity() (int, error) {
	v, err := e.get(GetComplexity)
	return int(v), err
}

// SetMaxBandwidth caps the bandwidth the encoder may select.
func (e *Encoder) SetMaxBandwidth(bw int32) error {
	return e.set(SetMaxBandwidth, bw)
}

// MaxBandwidth returns the configured bandwidth cap.
func (e *Encoder) MaxBandwidth() (int32, error) {
	return e.get(GetMaxBandwidth)
}

// SetBandwidth forces a bandwidth, or Auto.
func (e *Encoder) SetBandwidth(bw int32) error {
	return e.set(SetBandwidth, bw)
}

// Bandwidth returns the bandwidth of the most recently encoded packet.
func (e *Encoder) Bandwidth() (int32, error) {
	return e.get(GetBandwidth)
}

// SetPacketLossPercentage tells the encoder the expected packet loss (0-100).
func (e *Encoder) SetPacketLossPercentage(perc int) error {
	return e.set(SetPacketLossPerc, int32(perc))
}

// PacketLossPercentage returns the configured expected packet loss.
func (e *Encoder) PacketLossPercentage() (int, error) {
	v, err := e.get(GetPacketLossPerc)
	return int(v), err
}

// SetSignal sets the signal type hint (Auto, SignalVoice, SignalMusic).
func (e *Encoder) SetSignal(signal int32) error {
	return e.set(SetSignal, signal)
}

// Signal returns the configured signal type hint.
func (e *Encoder) Signal() (int32, error) {
	return e.get(GetSignal)
}

// SetForceChannels forces mono or stereo coding, or Auto.
func (e *Encoder) SetForceChannels(channels int32) error {
	return e.set(SetForceChannels, channels)
}

// ForceChannels returns the forced channel count, or Auto.
func (e *Encoder) ForceChannels() (int32, error) {
	return e.get(GetForceChannels)
}

// SetInbandFEC enables or disables inband forward error correction.
func (e *Encoder) SetInbandFEC(enabled bool) error {
	return e.set(SetInbandFEC, boolValue(enabled))
}

// InbandFEC reports whether inband forward error correction is enabled.
func (e *Encoder) InbandFEC() (bool, error) {
	return e.getBool(GetInbandFEC)
}

// SetVBR enables or disables variable bitrate.
func (e *Encoder) SetVBR(enabled bool) error {
	return e.set(SetVBR, boolValue(enabled))
}

// VBR reports whether variable bitrate is enabled.
func (e *Encoder) VBR() (bool, error) {
	return e.getBool(GetVBR)
}

// SetVBRConstraint enables or disables constrained VBR.
func (e *Encoder) SetVBRConstraint(constrained bool) error {
	return e.set(SetVBRConstraint, boolValue(constrained))
}

// VBRConstraint reports whether constrained VBR is enabled.
func (e *Encoder) VBRConstraint() (bool, error) {
	return e.getBool(GetVBRConstraint)
}

// SetDTX enables or disables discontinuous transmission.
func (e *Encoder) SetDTX(enabled bool) error {
	return e.set(SetDTX, boolValue(enabled))
}

// DTX reports whether discontinuous transmission is enabled.
func (e *Encoder) DTX() (bool, error) {
	return e.getBool(GetDTX)
}

// InDTX reports whether the last encoded frame was a DTX frame.
func (e *Encoder) InDTX() (bool, error) {
	return e.getBool(GetInDTX)
}

// SetApplication changes the application type. libopus only accepts a
// different value before the first frame is encoded.
func (e *Encoder) SetApplication(application int) error {
	return e.set(SetApplication, int32(application))
}

// Application returns the application type reported by libopus.
func (e *Encoder) Application() (int, error) {
	v, err := e.get(GetApplication)
	return int(v), err
}

// Lookahead returns the encoder's lookahead in samples.
func (e *Encoder) Lookahead() (int, error) {
	v, err := e.get(GetLookahead)
	return int(v), err
}

// QuerySampleRate returns the sample rate reported by libopus.
func (e *Encoder) QuerySampleRate() (int, error) {
	v, err := e.get(GetSampleRate)
	return int(v), err
}

// FinalRange returns the final state of the range coder.
func (e *Encoder) FinalRange() (uint32, error) {
	v, err := e.get(GetFinalRange)
	return uint32(v), err
}

// SetLSBDepth sets the depth of the input signal in bits (8-24).
func (e *Encoder) SetLSBDepth(depth int) error {
	return e.set(SetLSBDepth, int32(depth))
}

// LSBDepth returns the configured input signal depth.
func (e *Encoder) LSBDepth() (int, error) {
	v, err := e.get(GetLSBDepth)
	return int(v), err
}

// SetExpertFrameDuration sets a fixed frame duration (one of the FrameSize
// constants).
func (e *Encoder) SetExpertFrameDuration(fs int32) error {
	return e.set(SetExpertFrameDuration, fs)
}

// ExpertFrameDuration returns the configured frame duration.
func (e *Encoder) ExpertFrameDuration() (int32, error) {
	return e.get(GetExpertFrameDuration)
}

// SetPredictionDisabled disables inter-frame prediction when true.
func (e *Encoder) SetPredictionDisabled(disabled bool) error {
	return e.set(SetPredictionDisabled, boolValue(disabled))
}

// PredictionDisabled reports whether inter-frame prediction is disabled.
func (e *Encoder) PredictionDisabled() (bool, error) {
	return e.getBool(GetPredictionDisabled)
}

// SetPhaseInversionDisabled disables stereo phase inversion when true.
func (e *Encoder) SetPhaseInversionDisabled(disabled bool) error {
	return e.set(SetPhaseInversionDisabled, boolValue(disabled))
}

// PhaseInversionDisabled reports whether stereo phase inversion is disabled.
func (e *Encoder) PhaseInversionDisabled() (bool, error) {
	return e.getBool(GetPhaseInversionDisabled)
}

// Reset restores the encoder to its freshly initialized state without
// changing its configuration.
func (e *Encoder) Reset() error {
	return e.set(ResetState, 0)
}

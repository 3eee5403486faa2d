package opus

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Request is an Opus control request code, the second argument of
// opus_encoder_ctl and opus_decoder_ctl.
type Request int32

// Control request codes from opus_defines.h.
const (
	SetApplication            Request = 4000
	GetApplication            Request = 4001
	SetBitrate                Request = 4002
	GetBitrate                Request = 4003
	SetMaxBandwidth           Request = 4004
	GetMaxBandwidth           Request = 4005
	SetVBR                    Request = 4006
	GetVBR                    Request = 4007
	SetBandwidth              Request = 4008
	GetBandwidth              Request = 4009
	SetComplexity             Request = 4010
	GetComplexity             Request = 4011
	SetInbandFEC              Request = 4012
	GetInbandFEC              Request = 4013
	SetPacketLossPerc         Request = 4014
	GetPacketLossPerc         Request = 4015
	SetDTX                    Request = 4016
	GetDTX                    Request = 4017
	SetVBRConstraint          Request = 4020
	GetVBRConstraint          Request = 4021
	SetForceChannels          Request = 4022
	GetForceChannels          Request = 4023
	SetSignal                 Request = 4024
	GetSignal                 Request = 4025
	GetLookahead              Request = 4027
	ResetState                Request = 4028
	GetSampleRate             Request = 4029
	GetFinalRange             Request = 4031
	GetPitch                  Request = 4033
	SetGain                   Request = 4034
	SetLSBDepth               Request = 4036
	GetLSBDepth               Request = 4037
	GetLastPacketDuration     Request = 4039
	SetExpertFrameDuration    Request = 4040
	GetExpertFrameDuration    Request = 4041
	SetPredictionDisabled     Request = 4042
	GetPredictionDisabled     Request = 4043
	GetGain                   Request = 4045
	SetPhaseInversionDisabled Request = 4046
	GetPhaseInversionDisabled Request = 4047
	GetInDTX                  Request = 4049
)

// Direction tells whether a request writes, reads, or takes no argument.
type Direction uint8

const (
	DirectionSet Direction = iota + 1
	DirectionGet
	DirectionAction
)

func (d Direction) String() string {
	switch d {
	case DirectionSet:
		return "set"
	case DirectionGet:
		return "get"
	case DirectionAction:
		return "action"
	}
	return "unknown"
}

// Target is a set of instance kinds that accept a request.
type Target uint8

const (
	TargetEncoder Target = 1 << iota
	TargetDecoder

	TargetBoth = TargetEncoder | TargetDecoder
)

// Has reports whether t includes every kind in o.
func (t Target) Has(o Target) bool {
	return t&o == o && o != 0
}

func (t Target) String() string {
	switch t {
	case TargetEncoder:
		return "encoder"
	case TargetDecoder:
		return "decoder"
	case TargetBoth:
		return "encoder,decoder"
	}
	return "none"
}

// ParseTarget parses "encoder" or "decoder" (also "enc" and "dec").
func ParseTarget(s string) (Target, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "encoder", "enc":
		return TargetEncoder, nil
	case "decoder", "dec":
		return TargetDecoder, nil
	}
	return 0, fmt.Errorf("opus: unknown target %q", s)
}

type requestInfo struct {
	control string
	dir     Direction
	targets Target
}

var requestInfos = map[Request]requestInfo{
	SetApplication:            {"application", DirectionSet, TargetEncoder},
	GetApplication:            {"application", DirectionGet, TargetEncoder},
	SetBitrate:                {"bitrate", DirectionSet, TargetEncoder},
	GetBitrate:                {"bitrate", DirectionGet, TargetEncoder},
	SetMaxBandwidth:           {"max_bandwidth", DirectionSet, TargetEncoder},
	GetMaxBandwidth:           {"max_bandwidth", DirectionGet, TargetEncoder},
	SetVBR:                    {"vbr", DirectionSet, TargetEncoder},
	GetVBR:                    {"vbr", DirectionGet, TargetEncoder},
	SetBandwidth:              {"bandwidth", DirectionSet, TargetEncoder},
	GetBandwidth:              {"bandwidth", DirectionGet, TargetBoth},
	SetComplexity:             {"complexity", DirectionSet, TargetEncoder},
	GetComplexity:             {"complexity", DirectionGet, TargetEncoder},
	SetInbandFEC:              {"inband_fec", DirectionSet, TargetEncoder},
	GetInbandFEC:              {"inband_fec", DirectionGet, TargetEncoder},
	SetPacketLossPerc:         {"packet_loss_perc", DirectionSet, TargetEncoder},
	GetPacketLossPerc:         {"packet_loss_perc", DirectionGet, TargetEncoder},
	SetDTX:                    {"dtx", DirectionSet, TargetEncoder},
	GetDTX:                    {"dtx", DirectionGet, TargetEncoder},
	SetVBRConstraint:          {"vbr_constraint", DirectionSet, TargetEncoder},
	GetVBRConstraint:          {"vbr_constraint", DirectionGet, TargetEncoder},
	SetForceChannels:          {"force_channels", DirectionSet, TargetEncoder},
	GetForceChannels:          {"force_channels", DirectionGet, TargetEncoder},
	SetSignal:                 {"signal", DirectionSet, TargetEncoder},
	GetSignal:                 {"signal", DirectionGet, TargetEncoder},
	GetLookahead:              {"lookahead", DirectionGet, TargetEncoder},
	ResetState:                {"reset_state", DirectionAction, TargetBoth},
	GetSampleRate:             {"sample_rate", DirectionGet, TargetBoth},
	GetFinalRange:             {"final_range", DirectionGet, TargetBoth},
	GetPitch:                  {"pitch", DirectionGet, TargetDecoder},
	SetGain:                   {"gain", DirectionSet, TargetDecoder},
	GetGain:                   {"gain", DirectionGet, TargetDecoder},
	SetLSBDepth:               {"lsb_depth", DirectionSet, TargetEncoder},
	GetLSBDepth:               {"lsb_depth", DirectionGet, TargetEncoder},
	GetLastPacketDuration:     {"last_packet_duration", DirectionGet, TargetDecoder},
	SetExpertFrameDuration:    {"expert_frame_duration", DirectionSet, TargetEncoder},
	GetExpertFrameDuration:    {"expert_frame_duration", DirectionGet, TargetEncoder},
	SetPredictionDisabled:     {"prediction_disabled", DirectionSet, TargetEncoder},
	GetPredictionDisabled:     {"prediction_disabled", DirectionGet, TargetEncoder},
	SetPhaseInversionDisabled: {"phase_inversion_disabled", DirectionSet, TargetBoth},
	GetPhaseInversionDisabled: {"phase_inversion_disabled", DirectionGet, TargetBoth},
	GetInDTX:                  {"in_dtx", DirectionGet, TargetEncoder},
}

// Requests returns every known request code in ascending order.
func Requests() []Request {
	reqs := make([]Request, 0, len(requestInfos))
	for r := range requestInfos {
		reqs = append(reqs, r)
	}
	slices.Sort(reqs)
	return reqs
}

// Known reports whether r is a request code this package has metadata for.
// Unknown codes can still be sent through the shim.
func (r Request) Known() bool {
	_, ok := requestInfos[r]
	return ok
}

// Control returns the control name shared by a set/get pair, e.g. "bitrate".
func (r Request) Control() string {
	return requestInfos[r].control
}

// Direction returns whether r sets, gets, or is an action.
func (r Request) Direction() Direction {
	return requestInfos[r].dir
}

// Targets returns the instance kinds that implement r.
func (r Request) Targets() Target {
	return requestInfos[r].targets
}

// Pair returns the request with the same control and the opposite
// direction, e.g. GetBitrate for SetBitrate.
func (r Request) Pair() (Request, bool) {
	info, ok := requestInfos[r]
	if !ok {
		return 0, false
	}
	var want Direction
	switch info.dir {
	case DirectionSet:
		want = DirectionGet
	case DirectionGet:
		want = DirectionSet
	default:
		return 0, false
	}
	return LookupControl(info.control, want)
}

// String returns names like "set_bitrate", "get_gain" or "reset_state".
// Unknown codes are formatted as "request(N)".
func (r Request) String() string {
	info, ok := requestInfos[r]
	if !ok {
		return fmt.Sprintf("request(%d)", int32(r))
	}
	if info.dir == DirectionAction {
		return info.control
	}
	return info.dir.String() + "_" + info.control
}

// MacroName returns the C macro name, e.g. "OPUS_SET_BITRATE_REQUEST".
func (r Request) MacroName() string {
	if !r.Known() {
		return ""
	}
	if r == ResetState {
		return "OPUS_RESET_STATE"
	}
	return "OPUS_" + strings.ToUpper(r.String()) + "_REQUEST"
}

// LookupControl finds the request for a control name and direction.
func LookupControl(control string, dir Direction) (Request, bool) {
	control = strings.ToLower(strings.TrimSpace(control))
	for r, info := range requestInfos {
		if info.control == control && info.dir == dir {
			return r, true
		}
	}
	return 0, false
}

// ParseRequest parses a request from its String form ("set_bitrate"), its C
// macro name ("OPUS_SET_BITRATE_REQUEST" or "OPUS_SET_BITRATE"), or a
// decimal code. Decimal codes are accepted even when unknown.
func ParseRequest(s string) (Request, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseInt(s, 10, 32); err == nil {
		return Request(n), nil
	}
	name := strings.ToLower(s)
	name = strings.TrimPrefix(name, "opus_")
	name = strings.TrimSuffix(name, "_request")
	for r := range requestInfos {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("opus: unknown request %q", s)
}

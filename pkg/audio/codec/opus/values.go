package opus

import (
	"fmt"
	"strconv"
	"strings"
)

// Special values accepted by several set requests.
const (
	Auto       int32 = -1000
	BitrateMax int32 = -1
)

// Application types for encoder initialization and SetApplication.
const (
	// ApplicationVoIP gives best quality at a given bitrate for voice signals.
	ApplicationVoIP = 2048

	// ApplicationAudio gives best quality at a given bitrate for most non-voice signals.
	ApplicationAudio = 2049

	// ApplicationRestrictedLowdelay configures the minimum possible coding delay.
	ApplicationRestrictedLowdelay = 2051
)

// Signal hints for SetSignal.
const (
	SignalVoice int32 = 3001
	SignalMusic int32 = 3002
)

// Bandwidth values for SetBandwidth and SetMaxBandwidth.
const (
	BandwidthNarrowband    int32 = 1101
	BandwidthMediumband    int32 = 1102
	BandwidthWideband      int32 = 1103
	BandwidthSuperwideband int32 = 1104
	BandwidthFullband      int32 = 1105
)

// Frame size values for SetExpertFrameDuration.
const (
	FrameSizeArg   int32 = 5000
	FrameSize2_5ms int32 = 5001
	FrameSize5ms   int32 = 5002
	FrameSize10ms  int32 = 5003
	FrameSize20ms  int32 = 5004
	FrameSize40ms  int32 = 5005
	FrameSize60ms  int32 = 5006
	FrameSize80ms  int32 = 5007
	FrameSize100ms int32 = 5008
	FrameSize120ms int32 = 5009
)

var namedValues = map[string]int32{
	"auto":                Auto,
	"max":                 BitrateMax,
	"voip":                ApplicationVoIP,
	"audio":               ApplicationAudio,
	"restricted_lowdelay": ApplicationRestrictedLowdelay,
	"voice":               SignalVoice,
	"music":               SignalMusic,
	"narrowband":          BandwidthNarrowband,
	"nb":                  BandwidthNarrowband,
	"mediumband":          BandwidthMediumband,
	"mb":                  BandwidthMediumband,
	"wideband":            BandwidthWideband,
	"wb":                  BandwidthWideband,
	"superwideband":       BandwidthSuperwideband,
	"swb":                 BandwidthSuperwideband,
	"fullband":            BandwidthFullband,
	"fb":                  BandwidthFullband,
	"framesize_arg":       FrameSizeArg,
	"2.5ms":               FrameSize2_5ms,
	"5ms":                 FrameSize5ms,
	"10ms":                FrameSize10ms,
	"20ms":                FrameSize20ms,
	"40ms":                FrameSize40ms,
	"60ms":                FrameSize60ms,
	"80ms":                FrameSize80ms,
	"100ms":               FrameSize100ms,
	"120ms":               FrameSize120ms,
	"true":                1,
	"on":                  1,
	"false":               0,
	"off":                 0,
}

// ParseValue parses a control value given either as a decimal integer or as
// a symbolic name such as "auto", "max", "voice", "fullband" or "20ms".
func ParseValue(s string) (int32, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if v, ok := namedValues[s]; ok {
		return v, nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("opus: invalid control value %q", s)
	}
	return int32(n), nil
}

// FormatValue returns a symbolic name for v when the control has one,
// otherwise the decimal value.
func FormatValue(control string, v int32) string {
	switch control {
	case "application":
		switch v {
		case ApplicationVoIP:
			return "voip"
		case ApplicationAudio:
			return "audio"
		case ApplicationRestrictedLowdelay:
			return "restricted_lowdelay"
		}
	case "signal", "force_channels", "bitrate", "max_bandwidth", "bandwidth":
		if v == Auto {
			return "auto"
		}
		switch {
		case control == "signal" && v == SignalVoice:
			return "voice"
		case control == "signal" && v == SignalMusic:
			return "music"
		case control == "bitrate" && v == BitrateMax:
			return "max"
		case strings.HasSuffix(control, "bandwidth") && v >= BandwidthNarrowband && v <= BandwidthFullband:
			return [...]string{"narrowband", "mediumband", "wideband", "superwideband", "fullband"}[v-BandwidthNarrowband]
		}
	case "expert_frame_duration":
		if v >= FrameSizeArg && v <= FrameSize120ms {
			return [...]string{"framesize_arg", "2.5ms", "5ms", "10ms", "20ms", "40ms", "60ms", "80ms", "100ms", "120ms"}[v-FrameSizeArg]
		}
	}
	return strconv.FormatInt(int64(v), 10)
}

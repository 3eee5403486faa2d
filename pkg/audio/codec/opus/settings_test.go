package opus

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type ctlCall struct {
	Request Request
	Value   int32
	Get     bool
}

// fakeController records every request and answers gets from a map.
type fakeController struct {
	calls  []ctlCall
	values map[Request]int32
	fail   map[Request]Status
}

func newFakeController() *fakeController {
	return &fakeController{values: map[Request]int32{}, fail: map[Request]Status{}}
}

func (f *fakeController) CtlSet(req Request, value int32) Status {
	f.calls = append(f.calls, ctlCall{Request: req, Value: value})
	if st, ok := f.fail[req]; ok {
		return st
	}
	if get, ok := req.Pair(); ok {
		f.values[get] = value
	}
	return OK
}

func (f *fakeController) CtlGet(req Request) (int32, Status) {
	f.calls = append(f.calls, ctlCall{Request: req, Get: true})
	if st, ok := f.fail[req]; ok {
		return 0, st
	}
	return f.values[req], OK
}

func TestEncoderSettingsApply(t *testing.T) {
	fc := newFakeController()
	s := EncoderSettings{
		Bitrate:       Ptr[int32](24000),
		Signal:        Ptr(SignalVoice),
		InbandFEC:     Ptr(true),
		DTX:           Ptr(false),
		VBRConstraint: Ptr(true),
	}

	if err := s.Apply(fc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	want := []ctlCall{
		{Request: SetBitrate, Value: 24000},
		{Request: SetSignal, Value: SignalVoice},
		{Request: SetInbandFEC, Value: 1},
		{Request: SetVBRConstraint, Value: 1},
		{Request: SetDTX, Value: 0},
	}
	if diff := cmp.Diff(want, fc.calls); diff != "" {
		t.Errorf("Apply calls mismatch (-want +got):\n%s", diff)
	}
}

func TestEncoderSettingsApplyStopsOnFailure(t *testing.T) {
	fc := newFakeController()
	fc.fail[SetComplexity] = BadArg
	s := EncoderSettings{
		Bitrate:    Ptr[int32](24000),
		Complexity: Ptr[int32](99),
		DTX:        Ptr(true),
	}

	err := s.Apply(fc)
	if !errors.Is(err, BadArg) {
		t.Fatalf("Apply error = %v, want OPUS_BAD_ARG", err)
	}
	var ce *CtlError
	if !errors.As(err, &ce) || ce.Request != SetComplexity || ce.Value != 99 {
		t.Errorf("CtlError = %+v", ce)
	}
	if len(fc.calls) != 2 {
		t.Errorf("made %d calls after failure, want 2", len(fc.calls))
	}
}

func TestReadEncoderSettings(t *testing.T) {
	fc := newFakeController()
	in := EncoderSettings{
		Bitrate:                Ptr[int32](48000),
		Complexity:             Ptr[int32](9),
		MaxBandwidth:           Ptr(BandwidthFullband),
		Signal:                 Ptr(SignalMusic),
		ForceChannels:          Ptr(Auto),
		InbandFEC:              Ptr(true),
		PacketLossPercentage:   Ptr[int32](10),
		VBR:                    Ptr(true),
		VBRConstraint:          Ptr(false),
		DTX:                    Ptr(false),
		LSBDepth:               Ptr[int32](24),
		PredictionDisabled:     Ptr(false),
		PhaseInversionDisabled: Ptr(true),
	}
	if err := in.Apply(fc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := ReadEncoderSettings(fc)
	if err != nil {
		t.Fatalf("ReadEncoderSettings: %v", err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	fc.fail[GetLSBDepth] = Unimplemented
	if _, err := ReadEncoderSettings(fc); !errors.Is(err, Unimplemented) {
		t.Errorf("ReadEncoderSettings error = %v, want OPUS_UNIMPLEMENTED", err)
	}
}

func TestEncoderSettingsMerge(t *testing.T) {
	base := DefaultVoiceSettings()
	got := base.Merge(EncoderSettings{
		PacketLossPercentage: Ptr[int32](5),
		Bitrate:              Ptr[int32](16000),
	})

	want := EncoderSettings{
		Bitrate:              Ptr[int32](16000),
		InbandFEC:            Ptr(true),
		PacketLossPercentage: Ptr[int32](5),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
	if *base.PacketLossPercentage != 30 {
		t.Errorf("Merge modified the receiver: packet loss = %d", *base.PacketLossPercentage)
	}
}

func TestSnapshotTargets(t *testing.T) {
	fc := newFakeController()
	fc.values[GetGain] = -256
	fc.fail[GetPitch] = Unimplemented

	entries := Snapshot(fc, TargetDecoder)

	var gotReqs []Request
	for _, e := range entries {
		if !e.Request.Targets().Has(TargetDecoder) || e.Request.Direction() != DirectionGet {
			t.Errorf("snapshot included %s", e.Request)
		}
		gotReqs = append(gotReqs, e.Request)
	}
	wantReqs := []Request{GetBandwidth, GetSampleRate, GetFinalRange, GetPitch, GetLastPacketDuration, GetGain, GetPhaseInversionDisabled}
	if diff := cmp.Diff(wantReqs, gotReqs); diff != "" {
		t.Errorf("snapshot requests mismatch (-want +got):\n%s", diff)
	}

	for _, e := range entries {
		switch e.Request {
		case GetGain:
			if e.Value != -256 || e.Result != "OPUS_OK" || e.Display != "-256" {
				t.Errorf("gain entry = %+v", e)
			}
		case GetPitch:
			if e.Status != Unimplemented || e.Display != "" {
				t.Errorf("pitch entry = %+v", e)
			}
		}
	}
}

// Snapshots of a real decoder only touch the decoder control function.
func TestSnapshotDecoder(t *testing.T) {
	dec := newTestDecoder(t, 24000, 2)
	for _, e := range Snapshot(dec, TargetDecoder) {
		if e.Status != OK {
			t.Errorf("%s: %s", e.Request, e.Status.Name())
		}
		if e.Request == GetSampleRate && e.Value != 24000 {
			t.Errorf("sample rate = %d, want 24000", e.Value)
		}
	}
}

func TestApplyToEncoder(t *testing.T) {
	enc := newTestEncoder(t, 48000, 1)
	s := DefaultVoiceSettings().Merge(EncoderSettings{
		Bitrate:    Ptr[int32](20000),
		Complexity: Ptr[int32](3),
	})
	if err := s.Apply(enc); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	got, err := ReadEncoderSettings(enc)
	if err != nil {
		t.Fatalf("ReadEncoderSettings: %v", err)
	}
	if *got.Bitrate != 20000 || *got.Complexity != 3 || !*got.InbandFEC || *got.PacketLossPercentage != 30 {
		t.Errorf("read back %+v", got)
	}
}

func TestEncoderSettingsSetControl(t *testing.T) {
	var s EncoderSettings
	for _, c := range []struct {
		control string
		value   int32
	}{
		{"bitrate", 24000},
		{"max_bandwidth", BandwidthWideband},
		{"dtx", 1},
		{"vbr", 0},
	} {
		if err := s.SetControl(c.control, c.value); err != nil {
			t.Fatalf("SetControl(%s): %v", c.control, err)
		}
	}
	want := EncoderSettings{
		Bitrate:      Ptr[int32](24000),
		MaxBandwidth: Ptr(BandwidthWideband),
		DTX:          Ptr(true),
		VBR:          Ptr(false),
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("settings mismatch (-want +got):\n%s", diff)
	}

	if err := s.SetControl("gain", 1); err == nil {
		t.Error("SetControl accepted a decoder control")
	}
	if got := s.Count(); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
	if got := len(s.Controls()); got != 13 {
		t.Errorf("Controls() has %d names, want 13", got)
	}
}

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
)

func newTestConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := LoadConfigWithPath(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}
	return cfg
}

func TestLoadConfigWithPath_NewConfig(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := LoadConfigWithPath(configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}
	if cfg.Profiles == nil {
		t.Error("Profiles should be initialized")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file should be created")
	}
	if cfg.Path() != configPath || cfg.Dir() != filepath.Dir(configPath) {
		t.Errorf("Path() = %q, Dir() = %q", cfg.Path(), cfg.Dir())
	}
}

func TestLoadConfig_ConfigDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if want := filepath.Join(dir, DefaultConfigFile); cfg.Path() != want {
		t.Errorf("Path() = %q, want %q", cfg.Path(), want)
	}
}

func TestLoadConfigWithPath_Parse(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	data := `current_profile: voice
listen: 127.0.0.1:7070
log_level: debug
profiles:
  voice:
    sample_rate: 16000
    encoder:
      bitrate: 16000
      inband_fec: true
      packet_loss_perc: 30
  empty:
`
	if err := os.WriteFile(configPath, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigWithPath(configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}

	want := &Profile{
		Name:       "voice",
		SampleRate: 16000,
		Encoder: opus.EncoderSettings{
			Bitrate:              opus.Ptr[int32](16000),
			InbandFEC:            opus.Ptr(true),
			PacketLossPercentage: opus.Ptr[int32](30),
		},
	}
	if diff := cmp.Diff(want, cfg.Profiles["voice"]); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
	if p := cfg.Profiles["empty"]; p == nil || p.Name != "empty" {
		t.Errorf("empty profile = %+v", p)
	}
	if cfg.Listen != "127.0.0.1:7070" || cfg.LogLevel != "debug" || cfg.CurrentProfile != "voice" {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLoadConfigWithPath_Invalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(configPath, []byte("profiles: [1, 2"), 0600)

	if _, err := LoadConfigWithPath(configPath); err == nil {
		t.Error("LoadConfigWithPath should fail on malformed YAML")
	}
}

func TestConfig_Profiles(t *testing.T) {
	cfg := newTestConfig(t)

	if err := cfg.SetProfile("music", &Profile{Application: "audio", Channels: 2}); err != nil {
		t.Fatalf("SetProfile error: %v", err)
	}
	if err := cfg.SetProfile("voice", &Profile{}); err != nil {
		t.Fatalf("SetProfile error: %v", err)
	}
	if err := cfg.SetProfile("bad", &Profile{Application: "karaoke"}); err == nil {
		t.Error("SetProfile should reject an unknown application")
	}
	if err := cfg.SetProfile("", &Profile{}); err == nil {
		t.Error("SetProfile should reject an empty name")
	}

	if diff := cmp.Diff([]string{"music", "voice"}, cfg.ListProfiles()); diff != "" {
		t.Errorf("ListProfiles mismatch (-want +got):\n%s", diff)
	}

	p, err := cfg.GetProfile("music")
	if err != nil {
		t.Fatalf("GetProfile error: %v", err)
	}
	if p.Name != "music" || p.ChannelCount() != 2 || p.Rate() != 48000 {
		t.Errorf("music profile = %+v", p)
	}
	if _, err := cfg.GetProfile("missing"); err == nil {
		t.Error("GetProfile should fail for a missing profile")
	}

	if err := cfg.UseProfile("missing"); err == nil {
		t.Error("UseProfile should fail for a missing profile")
	}
	if err := cfg.UseProfile("voice"); err != nil {
		t.Fatalf("UseProfile error: %v", err)
	}
	if err := cfg.DeleteProfile("voice"); err != nil {
		t.Fatalf("DeleteProfile error: %v", err)
	}
	if cfg.CurrentProfile != "" {
		t.Errorf("CurrentProfile = %q after deleting it", cfg.CurrentProfile)
	}
	if err := cfg.DeleteProfile("voice"); err == nil {
		t.Error("DeleteProfile should fail for a missing profile")
	}
}

func TestConfig_ResolveProfile(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.SetProfile("a", &Profile{SampleRate: 8000})
	cfg.SetProfile("b", &Profile{SampleRate: 24000})

	p, err := cfg.ResolveProfile("")
	if err != nil || p != nil {
		t.Errorf("ResolveProfile with no current = %v, %v", p, err)
	}

	cfg.UseProfile("a")
	if p, _ := cfg.ResolveProfile(""); p == nil || p.Name != "a" {
		t.Errorf("ResolveProfile(\"\") = %+v, want a", p)
	}
	if p, _ := cfg.ResolveProfile("b"); p == nil || p.Rate() != 24000 {
		t.Errorf("ResolveProfile(b) = %+v", p)
	}
	if _, err := cfg.ResolveProfile("c"); err == nil {
		t.Error("ResolveProfile should fail for a missing profile")
	}
}

func TestProfileDefaults(t *testing.T) {
	var p *Profile
	app, err := p.ApplicationValue()
	if err != nil || app != opus.ApplicationVoIP {
		t.Errorf("nil profile application = %d, %v", app, err)
	}
	if p.Rate() != DefaultSampleRate || p.ChannelCount() != DefaultChannels {
		t.Errorf("nil profile rate/channels = %d/%d", p.Rate(), p.ChannelCount())
	}
}

func TestParseApplication(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"voip", opus.ApplicationVoIP, false},
		{"VOIP", opus.ApplicationVoIP, false},
		{"audio", opus.ApplicationAudio, false},
		{"2049", opus.ApplicationAudio, false},
		{"lowdelay", opus.ApplicationRestrictedLowdelay, false},
		{"restricted_lowdelay", opus.ApplicationRestrictedLowdelay, false},
		{"music", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseApplication(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseApplication(%q) = %d, %v", tt.in, got, err)
		}
	}
}

func TestConfig_Persistence(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	cfg1, err := LoadConfigWithPath(configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}
	in := &Profile{
		SampleRate:  24000,
		Application: "audio",
		Encoder: opus.DefaultVoiceSettings().Merge(opus.EncoderSettings{
			MaxBandwidth: opus.Ptr(opus.BandwidthWideband),
			DTX:          opus.Ptr(false),
		}),
	}
	cfg1.SetProfile("test", in)
	cfg1.UseProfile("test")
	cfg1.Listen = ":9000"
	if err := cfg1.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	cfg2, err := LoadConfigWithPath(configPath)
	if err != nil {
		t.Fatalf("LoadConfigWithPath error: %v", err)
	}
	if cfg2.CurrentProfile != "test" || cfg2.Listen != ":9000" {
		t.Errorf("reloaded config = %+v", cfg2)
	}
	if diff := cmp.Diff(in, cfg2.Profiles["test"]); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

package commands

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
	"github.com/haivivi/opusctl/pkg/opusbridge"
)

func startBridge(t *testing.T) string {
	t.Helper()
	srv := opusbridge.NewServer(nil)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		srv.Close()
		ts.Close()
	})
	return "ws" + strings.TrimPrefix(ts.URL, "http")
}

func TestCallVersion(t *testing.T) {
	setupTestEnv(t)
	url := startBridge(t)

	for _, mode := range [][]string{nil, {"--json"}} {
		args := append([]string{"--format", "json", "call", "version", "--url", url}, mode...)
		stdout, stderr, code := runCmd(t, args...)
		if code != 0 {
			t.Fatalf("%v: exit %d: %s", mode, code, stderr)
		}
		var res callResult
		if err := json.Unmarshal([]byte(stdout), &res); err != nil {
			t.Fatalf("expected JSON, got: %s", stdout)
		}
		if res.Version != opus.Version() {
			t.Errorf("%v: version = %q, want %q", mode, res.Version, opus.Version())
		}
	}
}

func TestCallScript(t *testing.T) {
	setupTestEnv(t)
	url := startBridge(t)

	script := writeTestYAML(t, "script.yaml", `
- op: encoder.create
  sample_rate: 16000
- op: encoder.ctl_set
  request: bitrate
  value: "12000"
- op: encoder.ctl_get
  request: bitrate
- op: decoder.create
- op: decoder.ctl_get
  request: sample_rate
- op: destroy
  handle: 1
`)
	stdout, stderr, code := runCmd(t, "--format", "json", "call", "-f", script, "--url", url)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var got []callResult
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("expected JSON, got: %s", stdout)
	}

	bitrate, rate := int32(12000), int32(48000)
	want := []callResult{
		{Op: opusbridge.OpEncoderCreate, Handle: 1},
		{Op: opusbridge.OpEncoderCtlSet, Handle: 1, Request: "set_bitrate", Status: "OPUS_OK"},
		{Op: opusbridge.OpEncoderCtlGet, Handle: 1, Request: "get_bitrate", Status: "OPUS_OK", Value: &bitrate, Display: opus.FormatValue("bitrate", bitrate)},
		{Op: opusbridge.OpDecoderCreate, Handle: 2},
		{Op: opusbridge.OpDecoderCtlGet, Handle: 2, Request: "get_sample_rate", Status: "OPUS_OK", Value: &rate, Display: opus.FormatValue("sample_rate", rate)},
		{Op: opusbridge.OpDestroy, Handle: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestCallScriptFromStdin(t *testing.T) {
	setupTestEnv(t)
	url := startBridge(t)

	setStdin(t, "- op: decoder.create\n  sample_rate: 24000\n- op: decoder.ctl_get\n  request: sample_rate\n")
	stdout, stderr, code := runCmd(t, "--format", "json", "call", "-f", "-", "--url", url)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	var got []callResult
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("expected JSON, got: %s", stdout)
	}
	if len(got) != 2 || got[1].Value == nil || *got[1].Value != 24000 {
		t.Errorf("results = %+v", got)
	}
}

func TestCallFailures(t *testing.T) {
	setupTestEnv(t)
	url := startBridge(t)

	script := writeTestYAML(t, "script.yaml", `
- op: encoder.create
- op: encoder.ctl_set
  request: complexity
  value: "11"
- op: decoder.ctl_get
  request: gain
`)
	stdout, stderr, code := runCmd(t, "--format", "json", "call", "-f", script, "--url", url)
	if code == 0 {
		t.Fatal("expected non-zero exit")
	}
	if !strings.Contains(stderr, "2 of 3 calls failed") {
		t.Errorf("stderr = %q", stderr)
	}
	var got []callResult
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("expected JSON, got: %s", stdout)
	}
	if len(got) != 3 {
		t.Fatalf("got %d results, want 3", len(got))
	}
	if got[1].Status != "OPUS_BAD_ARG" {
		t.Errorf("complexity 11 status = %q, want OPUS_BAD_ARG", got[1].Status)
	}
	if got[2].Error == "" {
		t.Error("decoder request on an encoder handle should carry a bridge error")
	}
}

func TestCallArgumentErrors(t *testing.T) {
	setupTestEnv(t)
	url := startBridge(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no op", []string{"call", "--url", url}, "an op or --file is required"},
		{"unknown op", []string{"call", "encoder.encode", "--url", url}, "unknown op"},
		{"missing request", []string{"call", "encoder.ctl_get", "--url", url}, "request is required"},
		{"bad application", []string{"call", "encoder.create", "--application", "karaoke", "--url", url}, "unknown application"},
		{"no bridge", []string{"call", "version", "--url", "ws://127.0.0.1:1/opus", "--timeout", "2s"}, "failed to connect"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCmd(t, tt.args...)
			if code == 0 {
				t.Fatal("expected non-zero exit")
			}
			if !strings.Contains(stderr, tt.want) {
				t.Errorf("stderr = %q, want it to contain %q", stderr, tt.want)
			}
		})
	}
}

func TestBridgeURLFollowsListen(t *testing.T) {
	setupTestEnv(t)
	t.Setenv("OPUSCTL_LISTEN", "127.0.0.1:9999")

	// Load configuration through a command that needs no bridge.
	if _, _, code := runCmd(t, "requests"); code != 0 {
		t.Fatalf("requests failed, exit %d", code)
	}
	if got, want := bridgeURL(), "ws://127.0.0.1:9999/opus"; got != want {
		t.Errorf("bridgeURL() = %q, want %q", got, want)
	}
}

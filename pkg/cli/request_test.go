package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
)

func TestLoadRequest(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "voice.yaml")
	jsonPath := filepath.Join(dir, "voice.json")
	plainPath := filepath.Join(dir, "voice.profile")
	os.WriteFile(yamlPath, []byte("sample_rate: 16000\nencoder:\n  bitrate: 12000\n  dtx: true\n"), 0600)
	os.WriteFile(jsonPath, []byte(`{"SampleRate": 16000, "Encoder": {"bitrate": 12000, "dtx": true}}`), 0600)
	os.WriteFile(plainPath, []byte("sample_rate: 16000\nencoder:\n  bitrate: 12000\n  dtx: true\n"), 0600)

	want := Profile{
		SampleRate: 16000,
		Encoder: opus.EncoderSettings{
			Bitrate: opus.Ptr[int32](12000),
			DTX:     opus.Ptr(true),
		},
	}
	for _, path := range []string{yamlPath, jsonPath, plainPath} {
		t.Run(filepath.Ext(path), func(t *testing.T) {
			var got Profile
			if err := LoadRequest(path, &got); err != nil {
				t.Fatalf("LoadRequest error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("profile mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadRequest_Errors(t *testing.T) {
	dir := t.TempDir()
	var p Profile
	if err := LoadRequest(filepath.Join(dir, "missing.yaml"), &p); err == nil {
		t.Error("LoadRequest should fail for a missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	os.WriteFile(bad, []byte("{"), 0600)
	if err := LoadRequest(bad, &p); err == nil {
		t.Error("LoadRequest should fail for malformed JSON")
	}
}

// setStdin replaces os.Stdin with a pipe holding content.
func setStdin(t *testing.T, content string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	w.WriteString(content)
	w.Close()
	old := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = old
		r.Close()
	})
}

func TestLoadRequestStdin(t *testing.T) {
	want := Profile{
		Channels: 2,
		Encoder:  opus.EncoderSettings{Complexity: opus.Ptr[int32](5)},
	}
	for name, content := range map[string]string{
		"json": `{"Channels": 2, "Encoder": {"complexity": 5}}`,
		"yaml": "channels: 2\nencoder:\n  complexity: 5\n",
	} {
		t.Run(name, func(t *testing.T) {
			setStdin(t, content)
			var got Profile
			if err := LoadRequest("-", &got); err != nil {
				t.Fatalf("LoadRequest(-) error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("profile mismatch (-want +got):\n%s", diff)
			}
		})
	}

	setStdin(t, "{not: [valid")
	var p Profile
	if err := LoadRequest("-", &p); err == nil {
		t.Error("expected a parse error")
	}
}

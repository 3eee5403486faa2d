package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/haivivi/opusctl/pkg/audio/codec/opus"
)

const (
	// DefaultBaseDir is the configuration directory under the home directory.
	DefaultBaseDir = ".opusctl"
	// DefaultConfigFile is the default configuration filename
	DefaultConfigFile = "config.yaml"
)

// Config is the opusctl configuration file.
type Config struct {
	// CurrentProfile is the profile used when none is named.
	CurrentProfile string `yaml:"current_profile,omitempty"`

	// Profiles maps profile names to encoder profiles.
	Profiles map[string]*Profile `yaml:"profiles,omitempty"`

	// Listen is the default address for the bridge server.
	Listen string `yaml:"listen,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`

	configPath string
}

// Profile is a named encoder setup: creation parameters plus controls
// applied right after creation.
type Profile struct {
	Name string `yaml:"name"`

	// SampleRate in Hz. Zero means 48000.
	SampleRate int `yaml:"sample_rate,omitempty"`

	// Channels is 1 or 2. Zero means 1.
	Channels int `yaml:"channels,omitempty"`

	// Application is voip, audio, or restricted_lowdelay. Empty means voip.
	Application string `yaml:"application,omitempty"`

	// Encoder holds the controls to apply.
	Encoder opus.EncoderSettings `yaml:"encoder,omitempty"`
}

// Defaults for profile fields left empty.
const (
	DefaultSampleRate  = 48000
	DefaultChannels    = 1
	DefaultApplication = "voip"
)

// Rate returns the sample rate, defaulting to 48000.
func (p *Profile) Rate() int {
	if p == nil || p.SampleRate == 0 {
		return DefaultSampleRate
	}
	return p.SampleRate
}

// ChannelCount returns the channel count, defaulting to 1.
func (p *Profile) ChannelCount() int {
	if p == nil || p.Channels == 0 {
		return DefaultChannels
	}
	return p.Channels
}

// ApplicationValue returns the libopus application constant.
func (p *Profile) ApplicationValue() (int, error) {
	name := DefaultApplication
	if p != nil && p.Application != "" {
		name = p.Application
	}
	return ParseApplication(name)
}

// ParseApplication maps an application name or numeric code to its
// libopus constant.
func ParseApplication(s string) (int, error) {
	switch strings.ToLower(s) {
	case "voip", "2048":
		return opus.ApplicationVoIP, nil
	case "audio", "2049":
		return opus.ApplicationAudio, nil
	case "restricted_lowdelay", "lowdelay", "2051":
		return opus.ApplicationRestrictedLowdelay, nil
	}
	return 0, fmt.Errorf("unknown application %q (want voip, audio, or restricted_lowdelay)", s)
}

// LoadConfig loads the configuration from the default location, creating an
// empty file when none exists. OPUSCTL_CONFIG_DIR overrides the directory.
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath("")
}

// LoadConfigWithPath loads configuration from a custom path
func LoadConfigWithPath(customPath string) (*Config, error) {
	configPath := customPath
	if configPath == "" {
		paths, err := NewPaths("")
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configPath = paths.ConfigFile()
	}

	// Ensure config directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := &Config{
		Profiles:   make(map[string]*Profile),
		configPath: configPath,
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, cfg.Save()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Profiles == nil {
		cfg.Profiles = make(map[string]*Profile)
	}
	for name, p := range cfg.Profiles {
		if p == nil {
			p = &Profile{}
			cfg.Profiles[name] = p
		}
		p.Name = name
	}
	cfg.configPath = configPath

	return cfg, nil
}

// Save saves the configuration to disk
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Path returns the config file path
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the config directory path
func (c *Config) Dir() string {
	return filepath.Dir(c.configPath)
}

// SetProfile adds or replaces a profile and saves the file.
func (c *Config) SetProfile(name string, p *Profile) error {
	if name == "" {
		return fmt.Errorf("profile name is required")
	}
	if _, err := p.ApplicationValue(); err != nil {
		return err
	}
	p.Name = name
	c.Profiles[name] = p
	return c.Save()
}

// DeleteProfile removes a profile
func (c *Config) DeleteProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	delete(c.Profiles, name)
	if c.CurrentProfile == name {
		c.CurrentProfile = ""
	}
	return c.Save()
}

// UseProfile sets the current profile
func (c *Config) UseProfile(name string) error {
	if _, ok := c.Profiles[name]; !ok {
		return fmt.Errorf("profile %q not found", name)
	}
	c.CurrentProfile = name
	return c.Save()
}

// GetProfile returns a specific profile
func (c *Config) GetProfile(name string) (*Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q not found", name)
	}
	return p, nil
}

// ResolveProfile returns the named profile, or the current profile when name
// is empty. With neither set it returns nil and no error.
func (c *Config) ResolveProfile(name string) (*Profile, error) {
	if name == "" {
		name = c.CurrentProfile
	}
	if name == "" {
		return nil, nil
	}
	return c.GetProfile(name)
}

// ListProfiles returns all profile names, sorted.
func (c *Config) ListProfiles() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

package cli

import (
	"os"
	"path/filepath"
)

// Paths provides access to the opusctl directory layout.
type Paths struct {
	// Dir is the configuration directory, ~/.opusctl by default.
	Dir string
}

// NewPaths resolves the configuration directory: configDir if set, then
// $OPUSCTL_CONFIG_DIR, then ~/.opusctl.
func NewPaths(configDir string) (*Paths, error) {
	if configDir == "" {
		configDir = os.Getenv(EnvConfigDir)
	}
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, DefaultBaseDir)
	}
	return &Paths{Dir: configDir}, nil
}

// ConfigFile returns the config file path (<dir>/config.yaml)
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.Dir, DefaultConfigFile)
}

// EnvFile returns the per-user dotenv file (<dir>/.env)
func (p *Paths) EnvFile() string {
	return filepath.Join(p.Dir, ".env")
}

// EnsureDir creates the configuration directory if it doesn't exist
func (p *Paths) EnsureDir() error {
	return os.MkdirAll(p.Dir, 0755)
}

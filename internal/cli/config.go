package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	ferrors "github.com/matzehuels/frametree/pkg/errors"
	"github.com/matzehuels/frametree/pkg/frames"
)

const (
	policyProportional = "proportional"
	policyPriority     = "priority"
)

// Config holds user defaults read from config.toml. Zero values leave the
// layout file's own settings in place.
//
//	width = 1920
//	height = 1080
//	policy = "priority"
//	formats = ["svg", "json"]
type Config struct {
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	Policy  string   `toml:"policy"`
	Formats []string `toml:"formats"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{Policy: policyProportional, Formats: []string{formatSVG}}
}

// OverflowPolicy resolves the configured policy name.
func (c Config) OverflowPolicy() (frames.OverflowPolicy, error) {
	switch strings.ToLower(c.Policy) {
	case "", policyProportional:
		return frames.Proportional, nil
	case policyPriority:
		return frames.Priority, nil
	}
	return nil, ferrors.New(ferrors.ErrCodeInvalidInput,
		"invalid policy: %s (must be '%s' or '%s')", c.Policy, policyProportional, policyPriority)
}

// configPath returns the config file location using the XDG standard
// (~/.config/frametree/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadConfigFile decodes path over the defaults. A missing file is only an
// error when the user named it.
func loadConfigFile(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return cfg, ferrors.New(ferrors.ErrCodeFileNotFound, "config file not found: %s", path)
		}
		return DefaultConfig(), nil
	}
	if err != nil {
		return cfg, ferrors.Wrap(ferrors.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, ferrors.New(ferrors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := validateFormats(cfg.Formats); err != nil {
		return cfg, err
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type GPGConfig struct {
	Binary     string `yaml:"binary,omitempty"`
	HomeDir    string `yaml:"homedir,omitempty"`
	LocalUser  string `yaml:"local_user,omitempty"`
	DigestAlgo string `yaml:"digest_algo,omitempty"`
}

// ProjectConfig mirrors htmlsign.yaml. Pointer fields distinguish an
// absent key from its zero value.
type ProjectConfig struct {
	GPG        GPGConfig         `yaml:"gpg"`
	Marker     string            `yaml:"marker,omitempty"`
	Extensions []string          `yaml:"extensions,omitempty"`
	SkipSigned *bool             `yaml:"skip_signed,omitempty"`
	Retries    *int              `yaml:"retries,omitempty"`
	Timeout    string            `yaml:"timeout,omitempty"`
	Env        map[string]string `yaml:"env,omitempty"`
}

const ConfigFileName = "htmlsign.yaml"

// Load reads htmlsign.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}
	return &cfg, nil
}

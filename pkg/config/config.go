package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type PakToolConfig struct {
	Extract struct {
		OutputDir string
		Overwrite bool
	}
}

// LoadPakToolConfig reads a YAML configuration file. Unknown keys are rejected.
func LoadPakToolConfig(path string) (*PakToolConfig, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read configuration file '%s': %w", path, err)
	}

	config := PakToolConfig{}
	if err := v.UnmarshalExact(&config); err != nil {
		return nil, fmt.Errorf("could not unmarshal configuration '%s': %w", path, err)
	}

	return &config, nil
}

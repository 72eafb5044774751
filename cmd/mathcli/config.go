package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

// cliConfig is the REPL's optional ~/.mathutils.yaml: a yaml.v3 document
// following the teacher's own internal/evaluator/builtins_yaml.go use of
// yaml.v3 for config/data decoding.
type cliConfig struct {
	Prompt        string `yaml:"prompt"`
	HistorySize   int    `yaml:"history_size"`
	RoundDecimals int    `yaml:"round_decimals"`
}

func defaultConfig() cliConfig {
	return cliConfig{Prompt: "math> ", HistorySize: 20, RoundDecimals: 6}
}

// loadCLIConfig reads path if it exists, overlaying its fields onto the
// defaults. A missing file is not an error; a malformed one is.
func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

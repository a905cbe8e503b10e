package satilp

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// A Config carries the folder layout and the external backends to
// register. It is passed by value into constructors rather than held in
// package state, so tests can run isolated registries side by side.
type Config struct {
	DataDir    string          `mapstructure:"data_dir"`
	SaveDir    string          `mapstructure:"save_dir"`
	ResultFile string          `mapstructure:"result_file"`
	Backends   []BackendConfig `mapstructure:"backends"`
}

// A BackendConfig describes one external solver executable.
type BackendConfig struct {
	Name string   `mapstructure:"name"`
	Kind string   `mapstructure:"kind"` // "sat" or "ilp"
	Path string   `mapstructure:"path"`
	Args []string `mapstructure:"args"`
}

// DefaultConfig is the conventional data/saves/result layout.
func DefaultConfig() Config {
	return Config{
		DataDir:    "data",
		SaveDir:    "saves",
		ResultFile: filepath.Join("result", "result.sol"),
	}
}

// LoadConfig reads a JSON configuration file. Fields missing from the
// file keep their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return Config{}, fmt.Errorf("config %s: %v", path, err)
	}
	cfg := DefaultConfig()
	if err := mapstructure.Decode(m, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %v", path, err)
	}
	return cfg, nil
}

// Backend instantiates the subprocess backend this entry describes.
func (bc BackendConfig) Backend() (Backend, error) {
	switch strings.ToLower(bc.Kind) {
	case "sat":
		return NewExecSATBackend(bc.Name, bc.Path, bc.Args...), nil
	case "ilp":
		return NewExecILPBackend(bc.Name, bc.Path, bc.Args...), nil
	}
	return nil, fmt.Errorf("backend %s: unknown kind %q", bc.Name, bc.Kind)
}

// Package config resolves bob's settings from JSONC files and flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/tailscale/hujson"
)

// Error variables for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrDataFileEmpty      = errors.New("data-file cannot be empty")
	ErrInvalidLogLevel    = errors.New("invalid log level")
)

// FileName is the project config file looked up in the work dir.
const FileName = ".bob.json"

// Config holds all configuration options.
type Config struct {
	DataFile    string
	Save        bool
	HistoryFile string
	LogLevel    string

	// Resolved paths (computed)
	EffectiveCwd   string
	DataFileAbs    string
	HistoryFileAbs string // empty when history is off

	Sources Sources
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project or explicit config if loaded, empty otherwise
}

// fileConfig is the serialized form. Pointers tell "unset" from "set to zero".
type fileConfig struct {
	DataFile    *string `json:"data_file"`
	Save        *bool   `json:"save"`
	HistoryFile *string `json:"history_file"`
	LogLevel    *string `json:"log_level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		DataFile: filepath.Join(".bob", "tasks.txt"),
		Save:     true,
		LogLevel: "warn",
	}
}

// Input holds the inputs for Load.
type Input struct {
	WorkDirOverride  string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath       string            // -c/--config flag value
	DataFileOverride *string           // --data-file flag value; nil means no override
	NoSave           bool              // --no-save flag
	LogLevelOverride string            // --log-level flag value
	Env              map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/bob/config.json or ~/.config/bob/config.json)
// 3. Project config file (.bob.json) or the explicit -c file
// 4. CLI overrides.
func Load(input Input) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	if globalPath := globalConfigPath(input.Env); globalPath != "" {
		globalCfg, loaded, err := loadFile(globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
			cfg = merge(cfg, globalCfg)
		}
	}

	projectPath, mustExist := filepath.Join(workDir, FileName), false
	if input.ConfigPath != "" {
		projectPath, mustExist = input.ConfigPath, true
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}
	}

	projectCfg, loaded, err := loadFile(projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
		cfg = merge(cfg, projectCfg)
	}

	// Apply CLI overrides
	if input.DataFileOverride != nil {
		if *input.DataFileOverride == "" {
			return Config{}, ErrDataFileEmpty
		}

		cfg.DataFile = *input.DataFileOverride
	}

	if input.NoSave {
		cfg.Save = false
	}

	if input.LogLevelOverride != "" {
		cfg.LogLevel = input.LogLevelOverride
	}

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	cfg.EffectiveCwd = workDir
	cfg.DataFileAbs = resolve(workDir, cfg.DataFile)

	if cfg.HistoryFile != "" {
		cfg.HistoryFileAbs = resolve(workDir, cfg.HistoryFile)
	}

	return cfg, nil
}

// Level returns the parsed log level. Load has already validated it.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.WarnLevel
	}

	return level
}

// globalConfigPath returns the path to the global config file, or empty
// if no home directory is known.
func globalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "bob", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "bob", "config.json")
	}

	return ""
}

// loadFile loads a config file. If mustExist is false, a missing file is
// reported as not loaded.
func loadFile(path string, mustExist bool) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !mustExist {
			return fileConfig{}, false, nil
		}

		if os.IsNotExist(err) {
			return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
		}

		return fileConfig{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, parseErr := parse(data)
	if parseErr != nil {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	if cfg.DataFile != nil && *cfg.DataFile == "" {
		return fileConfig{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrDataFileEmpty)
	}

	return cfg, true, nil
}

func parse(data []byte) (fileConfig, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg fileConfig

	unmarshalErr := json.Unmarshal(standardized, &cfg)
	if unmarshalErr != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", unmarshalErr)
	}

	return cfg, nil
}

func merge(base Config, overlay fileConfig) Config {
	if overlay.DataFile != nil {
		base.DataFile = *overlay.DataFile
	}

	if overlay.Save != nil {
		base.Save = *overlay.Save
	}

	if overlay.HistoryFile != nil {
		base.HistoryFile = *overlay.HistoryFile
	}

	if overlay.LogLevel != nil {
		base.LogLevel = *overlay.LogLevel
	}

	return base
}

func validate(cfg Config) error {
	if cfg.DataFile == "" {
		return ErrDataFileEmpty
	}

	_, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}

	return nil
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(workDir, path)
}

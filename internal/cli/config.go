package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/posix/pkg/signal"
	"github.com/calvinalkan/posix/pkg/stat"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	KillSignal  string `json:"kill_signal,omitempty"`
	Timeout     uint   `json:"timeout,omitempty"` // seconds, 0 = none
	FifoMode    string `json:"fifo_mode,omitempty"`
	LockTimeout string `json:"lock_timeout,omitempty"`
	Shell       string `json:"shell,omitempty"`

	// Resolved values (computed, not serialized)
	EffectiveCwd string        `json:"-"`
	Kill         signal.Signal `json:"-"`
	Fifo         stat.Mode     `json:"-"`
	LockWait     time.Duration `json:"-"`

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		KillSignal:  "SIGTERM",
		FifoMode:    "0644",
		LockTimeout: "0s",
		Shell:       "/bin/sh",
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".posixctl.json"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/posixctl/config.json if set, otherwise
// ~/.config/posixctl/config.json. Returns empty string if home directory
// cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "posixctl", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "posixctl", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/posixctl/config.json)
// 3. Project config file at default location (.posixctl.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
//
// Command flags override the result per invocation.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if err := resolveConfig(&cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir

	return cfg, nil
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads .posixctl.json from workDir, or the explicit
// config file, which must exist.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	cfgFile := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		if _, statErr := os.Stat(cfgFile); statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files
// return a zero config.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.KillSignal != "" {
		base.KillSignal = overlay.KillSignal
	}

	if overlay.Timeout != 0 {
		base.Timeout = overlay.Timeout
	}

	if overlay.FifoMode != "" {
		base.FifoMode = overlay.FifoMode
	}

	if overlay.LockTimeout != "" {
		base.LockTimeout = overlay.LockTimeout
	}

	if overlay.Shell != "" {
		base.Shell = overlay.Shell
	}

	return base
}

// resolveConfig validates the merged config and fills the resolved fields.
func resolveConfig(cfg *Config) error {
	sig, err := signal.Parse(cfg.KillSignal)
	if err != nil {
		return fmt.Errorf("%w: kill_signal: %w", ErrConfigInvalid, err)
	}

	mode, err := parseMode(cfg.FifoMode)
	if err != nil {
		return fmt.Errorf("%w: fifo_mode: %w", ErrConfigInvalid, err)
	}

	lockWait, err := time.ParseDuration(cfg.LockTimeout)
	if err != nil {
		return fmt.Errorf("%w: lock_timeout: %w", ErrConfigInvalid, err)
	}

	if lockWait < 0 {
		return fmt.Errorf("%w: lock_timeout: negative duration %s", ErrConfigInvalid, cfg.LockTimeout)
	}

	cfg.Kill = sig
	cfg.Fifo = mode
	cfg.LockWait = lockWait

	return nil
}

// parseMode parses an octal permission string such as "0644".
func parseMode(s string) (stat.Mode, error) {
	n, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid octal mode %q", s)
	}

	return stat.ModeFromBits(uint32(n))
}

// FormatConfig formats a config as JSON for display.
func FormatConfig(cfg Config) (string, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}

// Package config loads and saves relic's YAML configuration and converts
// it into the persistence settings the store consumes.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/relicdev/relic/internal/persist"
)

// CategorySettings is one {enabled, max_entries, scope} triple. Scope is
// "global", "workspace", or an explicit directory path.
type CategorySettings struct {
	Enabled    bool   `yaml:"enabled"`
	MaxEntries int    `yaml:"max_entries"`
	Scope      string `yaml:"scope,omitempty"`
}

// Settings is the full configuration file. All is the mandatory default;
// the per-category entries override the whole triple when present.
type Settings struct {
	StateDir  string            `yaml:"state_dir,omitempty"`
	All       CategorySettings  `yaml:"all"`
	Commands  *CategorySettings `yaml:"commands,omitempty"`
	Search    *CategorySettings `yaml:"search,omitempty"`
	Files     *CategorySettings `yaml:"files,omitempty"`
	Clipboard *CategorySettings `yaml:"clipboard,omitempty"`
	Splits    *CategorySettings `yaml:"splits,omitempty"`
	Exclude   []string          `yaml:"exclude,omitempty"`
}

// DefaultSettings returns the configuration used when no file exists.
func DefaultSettings() *Settings {
	return &Settings{
		All: CategorySettings{Enabled: true, MaxEntries: 100, Scope: "global"},
	}
}

// Manager handles configuration persistence.
type Manager struct {
	configPath string
}

// NewManager creates a manager over the default config path,
// ~/.config/relic/config.yaml.
func NewManager() (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewManagerWithPath(filepath.Join(homeDir, ".config", "relic", "config.yaml")), nil
}

// NewManagerWithPath creates a manager over a custom config path.
func NewManagerWithPath(configPath string) *Manager {
	return &Manager{configPath: configPath}
}

// ConfigPath returns the path to the config file.
func (m *Manager) ConfigPath() string {
	return m.configPath
}

// Load reads the configuration, or returns the default when the file does
// not exist.
func (m *Manager) Load() (*Settings, error) {
	if _, err := os.Stat(m.configPath); os.IsNotExist(err) {
		return DefaultSettings(), nil
	}

	data, err := os.ReadFile(m.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings := DefaultSettings()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validate(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// Save writes the configuration to file, creating the directory if needed.
func (m *Manager) Save(settings *Settings) error {
	if err := validate(settings); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func validate(settings *Settings) error {
	check := func(name string, cs *CategorySettings) error {
		if cs == nil {
			return nil
		}
		if cs.MaxEntries <= 0 {
			return fmt.Errorf("%s.max_entries must be greater than 0", name)
		}
		if cs.MaxEntries > 100000 {
			return fmt.Errorf("%s.max_entries cannot exceed 100000", name)
		}
		if _, err := ParseScope(cs.Scope); err != nil {
			return fmt.Errorf("%s.scope: %w", name, err)
		}
		return nil
	}

	if err := check("all", &settings.All); err != nil {
		return err
	}
	for name, cs := range settings.overrides() {
		if err := check(name, cs); err != nil {
			return err
		}
	}
	for _, pattern := range settings.Exclude {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
	}
	return nil
}

func (s *Settings) overrides() map[string]*CategorySettings {
	return map[string]*CategorySettings{
		"commands":  s.Commands,
		"search":    s.Search,
		"files":     s.Files,
		"clipboard": s.Clipboard,
		"splits":    s.Splits,
	}
}

// ParseScope maps a scope string to a persist.Scope. Empty means global.
func ParseScope(s string) (persist.Scope, error) {
	switch s {
	case "", "global":
		return persist.GlobalScope(), nil
	case "workspace":
		return persist.WorkspaceScope(), nil
	default:
		if !filepath.IsAbs(s) {
			return persist.Scope{}, fmt.Errorf("scope must be \"global\", \"workspace\", or an absolute path, got %q", s)
		}
		return persist.DirScope(s), nil
	}
}

// ToPersist converts validated settings into the store's configuration.
func (s *Settings) ToPersist() (persist.Config, error) {
	convert := func(cs CategorySettings) (persist.Options, error) {
		scope, err := ParseScope(cs.Scope)
		if err != nil {
			return persist.Options{}, err
		}
		return persist.Options{Enabled: cs.Enabled, MaxEntries: cs.MaxEntries, Scope: scope}, nil
	}
	convertPtr := func(cs *CategorySettings) (*persist.Options, error) {
		if cs == nil {
			return nil, nil
		}
		opts, err := convert(*cs)
		if err != nil {
			return nil, err
		}
		return &opts, nil
	}

	var cfg persist.Config
	var err error
	if cfg.All, err = convert(s.All); err != nil {
		return cfg, err
	}
	if cfg.Commands, err = convertPtr(s.Commands); err != nil {
		return cfg, err
	}
	if cfg.Search, err = convertPtr(s.Search); err != nil {
		return cfg, err
	}
	if cfg.Files, err = convertPtr(s.Files); err != nil {
		return cfg, err
	}
	if cfg.Clipboard, err = convertPtr(s.Clipboard); err != nil {
		return cfg, err
	}
	if cfg.Splits, err = convertPtr(s.Splits); err != nil {
		return cfg, err
	}

	for _, pattern := range s.Exclude {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return cfg, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}
		cfg.Exclude = append(cfg.Exclude, re)
	}
	return cfg, nil
}

// StateDirPath resolves the persistence root: the configured state_dir if
// set, else $XDG_STATE_HOME/relic, else ~/.local/state/relic.
func (s *Settings) StateDirPath() (string, error) {
	if s.StateDir != "" {
		return s.StateDir, nil
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "relic"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "state", "relic"), nil
}

// Update modifies a single configuration value addressed by a dotted key,
// e.g. "all.max_entries" or "search.enabled", and saves the file. Setting a
// value on an unset category creates the override from the all default.
func (m *Manager) Update(key, value string) error {
	settings, err := m.Load()
	if err != nil {
		return err
	}

	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	cs, err := settings.section(section, true)
	if err != nil {
		return err
	}

	switch field {
	case "enabled":
		switch value {
		case "true":
			cs.Enabled = true
		case "false":
			cs.Enabled = false
		default:
			return fmt.Errorf("invalid boolean value for %s: %s (must be 'true' or 'false')", key, value)
		}
	case "max_entries":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		cs.MaxEntries = n
	case "scope":
		cs.Scope = value
	default:
		return fmt.Errorf("unknown configuration field: %s", field)
	}

	return m.Save(settings)
}

// Get returns the value for a dotted configuration key.
func (m *Manager) Get(key string) (string, error) {
	settings, err := m.Load()
	if err != nil {
		return "", err
	}

	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	cs, err := settings.section(section, false)
	if err != nil {
		return "", err
	}
	if cs == nil {
		return "[unset]", nil
	}

	switch field {
	case "enabled":
		return strconv.FormatBool(cs.Enabled), nil
	case "max_entries":
		return strconv.Itoa(cs.MaxEntries), nil
	case "scope":
		if cs.Scope == "" {
			return "global", nil
		}
		return cs.Scope, nil
	default:
		return "", fmt.Errorf("unknown configuration field: %s", field)
	}
}

// List returns every configuration key and its effective value.
func (m *Manager) List() (map[string]string, error) {
	settings, err := m.Load()
	if err != nil {
		return nil, err
	}

	result := map[string]string{
		"all.enabled":     strconv.FormatBool(settings.All.Enabled),
		"all.max_entries": strconv.Itoa(settings.All.MaxEntries),
		"all.scope":       scopeOrGlobal(settings.All.Scope),
	}
	for name, cs := range settings.overrides() {
		if cs == nil {
			result[name] = "[unset]"
			continue
		}
		result[name+".enabled"] = strconv.FormatBool(cs.Enabled)
		result[name+".max_entries"] = strconv.Itoa(cs.MaxEntries)
		result[name+".scope"] = scopeOrGlobal(cs.Scope)
	}
	return result, nil
}

func scopeOrGlobal(scope string) string {
	if scope == "" {
		return "global"
	}
	return scope
}

func splitKey(key string) (section, field string, err error) {
	for i, r := range key {
		if r == '.' {
			return key[:i], key[i+1:], nil
		}
	}
	return "", "", fmt.Errorf("configuration key must be <section>.<field>, got %q", key)
}

// section returns the settings block for a section name. When create is
// set, a missing category override is initialized from the all default.
func (s *Settings) section(name string, create bool) (*CategorySettings, error) {
	if name == "all" {
		return &s.All, nil
	}

	var slot **CategorySettings
	switch name {
	case "commands":
		slot = &s.Commands
	case "search":
		slot = &s.Search
	case "files":
		slot = &s.Files
	case "clipboard":
		slot = &s.Clipboard
	case "splits":
		slot = &s.Splits
	default:
		return nil, fmt.Errorf("unknown configuration section: %s", name)
	}

	if *slot == nil && create {
		defaults := s.All
		*slot = &defaults
	}
	return *slot, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	apperrors "github.com/gitbro/gitbro/internal/pkg/errors"
)

const (
	// ConfigFileName is the settings file name inside the config directory.
	ConfigFileName = "config.json"
	// ConfigDirName is the per-user configuration directory.
	ConfigDirName = ".gitbro"
)

// Store manages the settings record and its persistence. Every setter
// mutates the in-memory record and immediately persists the full record;
// the file is the durable source of truth across invocations.
type Store struct {
	v        *viper.Viper
	path     string
	settings *Settings
}

// DefaultPath returns the per-user settings file path (~/.gitbro/config.json).
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ConfigDirName, ConfigFileName), nil
}

// NewStore creates a store backed by the file at path and loads it.
// If path is empty, the default per-user path is used. A missing file is
// not an error: the default record is synthesized and persisted on first
// write. A corrupt file is reported as a warning and replaced by defaults
// in memory (the file itself is left untouched until the next write).
func NewStore(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetConfigType("json")
	v.SetConfigFile(path)

	v.SetEnvPrefix("GITBRO")
	_ = v.BindEnv("provider", "GITBRO_PROVIDER")
	_ = v.BindEnv("temperature", "GITBRO_TEMPERATURE")

	v.SetDefault("provider", "")
	v.SetDefault("credentials", map[string]string{})
	v.SetDefault("models", map[string]string{})
	v.SetDefault("endpoints", map[string]string{})
	v.SetDefault("temperature", DefaultTemperature)

	s := &Store{v: v, path: path}
	s.load()
	return s, nil
}

// load reads the settings file into memory. Missing and corrupt files both
// yield the default record; corruption is surfaced as a warning rather
// than an error so a broken config never blocks the tool.
func (s *Store) load() {
	s.settings = DefaultSettings()

	if err := s.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				apperrors.Warn("settings file %s is unreadable or corrupt, using defaults: %v", s.path, err)
			}
		}
		return
	}

	var loaded Settings
	if err := s.v.Unmarshal(&loaded); err != nil {
		apperrors.Warn("settings file %s could not be decoded, using defaults: %v", s.path, err)
		return
	}

	if loaded.Credentials == nil {
		loaded.Credentials = map[string]string{}
	}
	if loaded.Models == nil {
		loaded.Models = map[string]string{}
	}
	if loaded.Endpoints == nil {
		loaded.Endpoints = map[string]string{}
	}
	if loaded.Provider != "" && !IsKnownProvider(loaded.Provider) {
		apperrors.Warn("settings file %s selects unknown provider %q, ignoring selection", s.path, loaded.Provider)
		loaded.Provider = ""
	}
	loaded.Temperature = ClampTemperature(loaded.Temperature)

	s.settings = &loaded
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the settings file exists on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Settings returns a copy of the current in-memory record.
func (s *Store) Settings() Settings {
	out := *s.settings
	out.Credentials = make(map[string]string, len(s.settings.Credentials))
	for k, v := range s.settings.Credentials {
		out.Credentials[k] = v
	}
	out.Models = make(map[string]string, len(s.settings.Models))
	for k, v := range s.settings.Models {
		out.Models[k] = v
	}
	out.Endpoints = make(map[string]string, len(s.settings.Endpoints))
	for k, v := range s.settings.Endpoints {
		out.Endpoints[k] = v
	}
	return out
}

// Save serializes the full record to disk with owner-only permissions.
// Failures are ConfigIO errors; callers that only needed to read may
// report and continue.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewConfigIOError(err, "failed to create config directory")
	}

	s.v.Set("provider", s.settings.Provider)
	s.v.Set("credentials", s.settings.Credentials)
	s.v.Set("models", s.settings.Models)
	s.v.Set("endpoints", s.settings.Endpoints)
	s.v.Set("temperature", s.settings.Temperature)

	if err := s.v.WriteConfigAs(s.path); err != nil {
		return apperrors.NewConfigIOError(err, "failed to write settings file")
	}

	// Owner read/write only: the file may contain API keys.
	if err := os.Chmod(s.path, 0600); err != nil {
		return apperrors.NewConfigIOError(err, "failed to set settings file permissions")
	}

	return nil
}

// Provider returns the currently selected provider identifier, or "" if
// none is selected.
func (s *Store) Provider() string {
	return s.settings.Provider
}

// SetProvider selects a provider. Unknown identifiers are rejected with
// an InvalidArgument error and leave prior state untouched.
func (s *Store) SetProvider(id string) error {
	if !IsKnownProvider(id) {
		return apperrors.NewInvalidArgumentError(
			fmt.Sprintf("unknown provider %q (valid: %v)", id, KnownProviders))
	}
	s.settings.Provider = id
	return s.Save()
}

// APIKey returns the stored credential for a provider, or "" if none.
func (s *Store) APIKey(id string) string {
	return s.settings.Credentials[id]
}

// SetAPIKey stores a credential for a provider.
func (s *Store) SetAPIKey(id, key string) error {
	if !IsKnownProvider(id) {
		return apperrors.NewInvalidArgumentError(fmt.Sprintf("unknown provider %q", id))
	}
	s.settings.Credentials[id] = key
	return s.Save()
}

// Model returns the stored model for a provider, or the built-in default
// when unset.
func (s *Store) Model(id string) string {
	if m, ok := s.settings.Models[id]; ok && m != "" {
		return m
	}
	return DefaultModel(id)
}

// SetModel stores a model name for a provider.
func (s *Store) SetModel(id, model string) error {
	if !IsKnownProvider(id) {
		return apperrors.NewInvalidArgumentError(fmt.Sprintf("unknown provider %q", id))
	}
	s.settings.Models[id] = model
	return s.Save()
}

// Endpoint returns the stored endpoint override for a provider, or "" when
// the provider's built-in default endpoint should be used.
func (s *Store) Endpoint(id string) string {
	return s.settings.Endpoints[id]
}

// SetEndpoint stores an endpoint override for a provider.
func (s *Store) SetEndpoint(id, endpoint string) error {
	if !IsKnownProvider(id) {
		return apperrors.NewInvalidArgumentError(fmt.Sprintf("unknown provider %q", id))
	}
	s.settings.Endpoints[id] = endpoint
	return s.Save()
}

// Temperature returns the global sampling temperature.
func (s *Store) Temperature() float64 {
	return s.settings.Temperature
}

// SetTemperature stores the temperature, clamped into [0.0, 2.0].
func (s *Store) SetTemperature(t float64) error {
	s.settings.Temperature = ClampTemperature(t)
	return s.Save()
}

// IsConfigured reports whether a provider is ready for use. The local
// ollama provider needs no credential and is always configured; remote
// providers require a stored key. An empty id evaluates the currently
// selected provider and is false when none is selected.
func (s *Store) IsConfigured(id string) bool {
	if id == "" {
		id = s.settings.Provider
	}
	if id == "" {
		return false
	}
	if id == ProviderOllama {
		return true
	}
	return s.settings.Credentials[id] != ""
}

// ListProviders returns the configuration status of all four providers,
// used to render setup menus.
func (s *Store) ListProviders() map[string]bool {
	out := make(map[string]bool, len(KnownProviders))
	for _, id := range KnownProviders {
		out[id] = s.IsConfigured(id)
	}
	return out
}

package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	errs "talkworld/internal/errors"
)

// Default service endpoints for a local development stack.
const (
	DefaultAPIServer       = "http://localhost:5000"
	DefaultWSServer        = "ws://localhost:5000/ws"
	DefaultSpeechServer    = "http://localhost:5001"
	DefaultTTSServer       = "http://localhost:5002"
	DefaultTranslateServer = "http://localhost:5003"
)

// Profile holds the local user's identity.
type Profile struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Language string `json:"language,omitempty"` // preferred language code, e.g. "en"
}

// Servers holds the endpoints of the backend services.
type Servers struct {
	API       string `json:"api,omitempty"`
	WS        string `json:"ws,omitempty"`
	Speech    string `json:"speech,omitempty"`    // whisper transcription
	TTS       string `json:"tts,omitempty"`       // voice synthesis
	Translate string `json:"translate,omitempty"` // m2m100 translation
}

// Config holds the application configuration
type Config struct {
	Profile Profile `json:"profile"`
	Servers Servers `json:"servers"`

	WelcomeShown         bool   `json:"welcome_shown,omitempty"`         // Whether welcome modal has been shown
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications for new messages
	AutoTranslate        bool   `json:"auto_translate,omitempty"`        // Translate incoming messages to the profile language
	Theme                string `json:"theme,omitempty"`                 // UI theme name

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".talkworld"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Used directly by tests
// and by the clean command.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.ensureInitialized()
		return cfg, nil
	}
	if err != nil {
		return nil, errs.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errs.ConfigLoadFailed(path, err)
	}

	// Fill in default endpoints before validating; Validate() only reads.
	cfg.ensureInitialized()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ensureInitialized fills empty server endpoints with defaults.
//
// Thread-safety: NOT thread-safe; only called from Load/LoadFrom before the
// Config is shared across goroutines.
func (c *Config) ensureInitialized() {
	if c.Servers.API == "" {
		c.Servers.API = DefaultAPIServer
	}
	if c.Servers.WS == "" {
		c.Servers.WS = DefaultWSServer
	}
	if c.Servers.Speech == "" {
		c.Servers.Speech = DefaultSpeechServer
	}
	if c.Servers.TTS == "" {
		c.Servers.TTS = DefaultTTSServer
	}
	if c.Servers.Translate == "" {
		c.Servers.Translate = DefaultTranslateServer
	}
}

// Validate checks that the config is internally consistent.
// This is a read-only operation - call ensureInitialized() first if needed.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	endpoints := map[string]string{
		"api":       c.Servers.API,
		"ws":        c.Servers.WS,
		"speech":    c.Servers.Speech,
		"tts":       c.Servers.TTS,
		"translate": c.Servers.Translate,
	}
	for name, endpoint := range endpoints {
		u, err := url.Parse(endpoint)
		if err != nil {
			return errs.E(errs.Op("config.Validate"), errs.KindInvalid,
				fmt.Sprintf("invalid %s server URL %q", name, endpoint), err)
		}
		if u.Scheme == "" || u.Host == "" {
			return errs.ConfigInvalid(fmt.Sprintf("invalid %s server URL %q: missing scheme or host", name, endpoint))
		}
	}

	if c.Profile.ID != "" && c.Profile.Name == "" {
		return errs.ConfigInvalid(fmt.Sprintf("profile %s has empty name", c.Profile.ID))
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return errs.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errs.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return errs.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file path this config is persisted to.
func (c *Config) Path() string {
	return c.filePath
}

// GetProfile returns a copy of the user profile
func (c *Config) GetProfile() Profile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Profile
}

// SetProfile replaces the user profile
func (c *Config) SetProfile(p Profile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Profile = p
}

// HasProfile returns whether the user has completed profile setup
func (c *Config) HasProfile() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Profile.ID != ""
}

// GetServers returns a copy of the server endpoints
func (c *Config) GetServers() Servers {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Servers
}

// HasSeenWelcome returns whether the welcome modal has been shown
func (c *Config) HasSeenWelcome() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WelcomeShown
}

// MarkWelcomeShown marks the welcome modal as shown
func (c *Config) MarkWelcomeShown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.WelcomeShown = true
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetAutoTranslate returns whether incoming messages are auto-translated
func (c *Config) GetAutoTranslate() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AutoTranslate
}

// SetAutoTranslate sets whether incoming messages are auto-translated
func (c *Config) SetAutoTranslate(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AutoTranslate = enabled
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

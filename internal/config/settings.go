package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Settings holds the runtime options of the process. Occasion tables are
// compiled in and never read from here.
type Settings struct {
	// Port is the localhost TCP port of the HTTP server.
	Port string `yaml:"port"`

	// RefreshCron is a standard 5-field cron expression for feed regeneration.
	RefreshCron string `yaml:"refresh"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Language selects the message catalog.
	Language string `yaml:"language"`

	Discord DiscordSettings `yaml:"discord"`
}

// DiscordSettings configures the optional chat adapter.
type DiscordSettings struct {
	Enabled bool   `yaml:"enabled"`
	Prefix  string `yaml:"prefix"`
	// KeyringUser is the account name looked up in the OS keyring when the
	// token environment variable is empty.
	KeyringUser string `yaml:"keyring_user"`
}

// DefaultSettings returns the in-memory defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Port:        DefaultPort,
		RefreshCron: DefaultRefreshCron,
		LogLevel:    DefaultLogLevel,
		Language:    DefaultLanguage,
		Discord: DiscordSettings{
			Enabled:     false,
			Prefix:      DefaultBotPrefix,
			KeyringUser: DefaultKeyringUser,
		},
	}
}

// Normalize fills zero values with defaults so partial files still work.
func (s *Settings) Normalize() {
	if s.Port == "" {
		s.Port = DefaultPort
	}
	if s.RefreshCron == "" {
		s.RefreshCron = DefaultRefreshCron
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	if s.Language == "" {
		s.Language = DefaultLanguage
	}
	if s.Discord.Prefix == "" {
		s.Discord.Prefix = DefaultBotPrefix
	}
	if s.Discord.KeyringUser == "" {
		s.Discord.KeyringUser = DefaultKeyringUser
	}
}

// Validate reports the first invalid field.
func (s *Settings) Validate() error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(s.RefreshCron); err != nil {
		return fmt.Errorf("%s %q: %w", ErrCronSpec, s.RefreshCron, err)
	}
	if _, err := s.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel onto slog levels.
func (s *Settings) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("%s: %q", ErrLogLevel, s.LogLevel)
	}
	return lvl, nil
}

// ValidatePort checks that port is a number in [1, 65535].
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < 1 || n > 65535 {
		return errors.New(ErrPortRange)
	}
	return nil
}

// LoadSettings reads the YAML file at path. A missing file yields defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Info(MsgSettingsMiss,
				LogKeyComponent, CompSettings,
				LogKeyPath, path)
			return DefaultSettings(), nil
		}
		return nil, fmt.Errorf("%s: %w", ErrSettingsRead, err)
	}

	s := DefaultSettings()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsParse, err)
	}
	s.Normalize()

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrSettingsInvalid, err)
	}
	return s, nil
}

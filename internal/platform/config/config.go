package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel             = "gemini-3-flash-preview"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultRequestsPerMinute = 15
	DefaultSyncIndicator     = 800 * time.Millisecond
	DefaultLogLevel          = "info"

	progressFileName = "jornada_biblica_user.json"
	configFileName   = "config.yaml"
)

type Config struct {
	DataDir      string
	ProgressPath string
	CacheDBPath  string
	LogPath      string
	JournalDir   string

	Model             string
	APIKey            string
	RequestTimeout    time.Duration
	RequestsPerMinute int

	SyncIndicator time.Duration
	LogLevel      string
	TimeZone      string
	Location      *time.Location
}

// fileConfig mirrors the optional <data>/config.yaml document.
type fileConfig struct {
	Model             string        `yaml:"model"`
	APIKey            string        `yaml:"api_key"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	SyncIndicator     time.Duration `yaml:"sync_indicator"`
	LogLevel          string        `yaml:"log_level"`
	TimeZone          string        `yaml:"time_zone"`
	JournalDir        string        `yaml:"journal_dir"`
}

func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:           dataDir,
		ProgressPath:      filepath.Join(dataDir, progressFileName),
		CacheDBPath:       filepath.Join(dataDir, "offline.db"),
		LogPath:           filepath.Join(dataDir, "logs", "jornada.log"),
		JournalDir:        filepath.Join(dataDir, "journal"),
		Model:             DefaultModel,
		RequestTimeout:    DefaultRequestTimeout,
		RequestsPerMinute: DefaultRequestsPerMinute,
		SyncIndicator:     DefaultSyncIndicator,
		LogLevel:          DefaultLogLevel,
	}
	if err := cfg.applyFile(filepath.Join(dataDir, configFileName)); err != nil {
		return Config{}, err
	}
	cfg.applyEnvOverrides()

	loc, err := loadLocation(cfg.TimeZone)
	if err != nil {
		return Config{}, err
	}
	cfg.Location = loc
	return cfg, nil
}

// DefaultDataDir returns $HOME/.jornada, or .jornada when no home is known.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".jornada"
	}
	return filepath.Join(home, ".jornada")
}

// GenerationEnabled reports whether an API key is available.
func (c Config) GenerationEnabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	file := fileConfig{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if file.Model != "" {
		c.Model = file.Model
	}
	if file.APIKey != "" {
		c.APIKey = file.APIKey
	}
	if file.RequestTimeout > 0 {
		c.RequestTimeout = file.RequestTimeout
	}
	if file.RequestsPerMinute > 0 {
		c.RequestsPerMinute = file.RequestsPerMinute
	}
	if file.SyncIndicator > 0 {
		c.SyncIndicator = file.SyncIndicator
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
	}
	if file.TimeZone != "" {
		c.TimeZone = file.TimeZone
	}
	if file.JournalDir != "" {
		c.JournalDir = file.JournalDir
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	} else if v := os.Getenv("API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("JORNADA_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("JORNADA_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("JORNADA_TZ"); v != "" {
		c.TimeZone = v
	}
	if v := os.Getenv("JORNADA_RPM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RequestsPerMinute = n
		}
	}
}

func loadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", name, err)
	}
	return loc, nil
}

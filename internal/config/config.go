package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "UTC"

	// DefaultCompletionTimeout bounds a single completion call.
	DefaultCompletionTimeout = 60 * time.Second

	configPathEnv         = "CONTENT_CURATOR_CONFIG"
	completionAPIKeyEnv   = "CODY_ACCESS_TOKEN"
	completionURLEnv      = "SOURCEGRAPH_API_URL"
	completionInsecureEnv = "COMPLETION_INSECURE_SKIP_VERIFY"
	mediumAPIKeyEnv       = "MEDIUM_API_KEY"
	mediumUserIDEnv       = "MEDIUM_USER_ID"
	databasePathEnv       = "DATABASE_PATH"
	telegramTokenEnv      = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv     = "TELEGRAM_CHAT_ID"
	logLevelEnv           = "LOG_LEVEL"
)

// Config holds the settings shared by every run. It is read-only once loaded.
type Config struct {
	Completion    CompletionConfig   `yaml:"completion"`
	Publish       PublishConfig      `yaml:"publish"`
	Database      DatabaseConfig     `yaml:"database"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Notifications NotificationConfig `yaml:"notifications"`
	Logging       LoggingConfig      `yaml:"logging"`
	Sites         []SiteConfig       `yaml:"sites"`
}

// CompletionConfig describes the remote completion endpoint.
type CompletionConfig struct {
	APIKey string `yaml:"apiKey"`
	URL    string `yaml:"url"`
	// InsecureSkipVerify disables TLS certificate validation. Only meant for
	// internal endpoints that serve self-signed certificates.
	InsecureSkipVerify bool          `yaml:"insecureSkipVerify"`
	Timeout            time.Duration `yaml:"timeout"`
	Temperature        float64       `yaml:"temperature"`
	MaxTokens          int           `yaml:"maxTokens"`
}

// PublishConfig wires the publishing platform credentials.
type PublishConfig struct {
	APIKey  string        `yaml:"apiKey"`
	UserID  string        `yaml:"userId"`
	Profile string        `yaml:"profile"`
	Delay   time.Duration `yaml:"delay"`
}

// DatabaseConfig points at the run-history SQLite file. Empty disables history.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SchedulerConfig defines how often scheduled runs fire.
type SchedulerConfig struct {
	Interval time.Duration  `yaml:"interval"`
	Timezone string         `yaml:"timezone"`
	location *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone; scheduled trigger times are
// reported in it.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// NotificationConfig encapsulates outbound channels.
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// LoggingConfig selects log verbosity and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SiteConfig describes a single discovery site with its scanner strategy.
type SiteConfig struct {
	Name    string            `yaml:"name"`
	Scanner string            `yaml:"scanner"`
	Feeds   []FeedConfig      `yaml:"feeds"`
	Limit   int               `yaml:"limit"`
	Options map[string]string `yaml:"options"`
}

// FeedConfig holds a concrete listing page to crawl.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Load reads YAML configuration from CONTENT_CURATOR_CONFIG (if set) and applies
// environment overrides.
func Load() Config {
	return LoadFile(os.Getenv(configPathEnv))
}

// LoadFile reads YAML configuration from path (if non-empty) and applies
// environment overrides. Unreadable files fall back to defaults.
func LoadFile(path string) Config {
	cfg := defaultConfig()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			var explicit explicitFields
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else if err := yaml.Unmarshal(raw, &explicit); err == nil {
				cfg = mergeConfig(cfg, fileCfg)
				explicit.apply(&cfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

// Validate reports settings a run cannot proceed without.
func (c Config) Validate() error {
	if c.Completion.URL == "" {
		return fmt.Errorf("completion url is not configured")
	}
	if c.Completion.MaxTokens <= 0 {
		return fmt.Errorf("completion maxTokens must be positive, got %d", c.Completion.MaxTokens)
	}
	if len(c.Sites) == 0 {
		return fmt.Errorf("no discovery sites configured")
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(completionAPIKeyEnv); v != "" {
		c.Completion.APIKey = v
	}

	if v := os.Getenv(completionURLEnv); v != "" {
		c.Completion.URL = v
	}

	if v := os.Getenv(completionInsecureEnv); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Completion.InsecureSkipVerify = parsed
		} else {
			log.Printf("config: ignoring %s=%q: %v", completionInsecureEnv, v, err)
		}
	}

	if v := os.Getenv(mediumAPIKeyEnv); v != "" {
		c.Publish.APIKey = v
	}

	if v := os.Getenv(mediumUserIDEnv); v != "" {
		c.Publish.UserID = v
	}

	if v := os.Getenv(databasePathEnv); v != "" {
		c.Database.Path = v
	}

	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}

	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}

	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Scheduler.location = loc
}

// explicitFields captures settings whose zero value is meaningful, so they
// override defaults only when the key is present in the file.
type explicitFields struct {
	Completion struct {
		Temperature *float64 `yaml:"temperature"`
	} `yaml:"completion"`
}

func (e explicitFields) apply(c *Config) {
	if e.Completion.Temperature != nil {
		c.Completion.Temperature = *e.Completion.Temperature
	}
}

func mergeConfig(base, override Config) Config {
	if override.Completion.APIKey != "" {
		base.Completion.APIKey = override.Completion.APIKey
	}
	if override.Completion.URL != "" {
		base.Completion.URL = override.Completion.URL
	}
	if override.Completion.InsecureSkipVerify {
		base.Completion.InsecureSkipVerify = true
	}
	if override.Completion.Timeout > 0 {
		base.Completion.Timeout = override.Completion.Timeout
	}
	if override.Completion.MaxTokens > 0 {
		base.Completion.MaxTokens = override.Completion.MaxTokens
	}

	if override.Publish.APIKey != "" {
		base.Publish.APIKey = override.Publish.APIKey
	}
	if override.Publish.UserID != "" {
		base.Publish.UserID = override.Publish.UserID
	}
	if override.Publish.Profile != "" {
		base.Publish.Profile = override.Publish.Profile
	}
	if override.Publish.Delay > 0 {
		base.Publish.Delay = override.Publish.Delay
	}

	if override.Database.Path != "" {
		base.Database = override.Database
	}

	if override.Scheduler.Interval > 0 {
		base.Scheduler.Interval = override.Scheduler.Interval
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Completion: CompletionConfig{
			APIKey:      "demo-key",
			URL:         "https://sourcegraph.example.org/.api/completions/stream?api-version=1&client-name=web&client-version=0.0.1",
			Timeout:     DefaultCompletionTimeout,
			Temperature: 0.2,
			MaxTokens:   2000,
		},
		Publish: PublishConfig{
			APIKey:  "demo-key",
			UserID:  "demo-user",
			Profile: "yourprofile",
			Delay:   2 * time.Second,
		},
		Database:  DatabaseConfig{Path: ".contentcurator/runs.db"},
		Scheduler: SchedulerConfig{Interval: 24 * time.Hour, Timezone: defaultTimezone, location: tz},
		Logging:   LoggingConfig{Level: "info", Format: "text"},
		Sites: []SiteConfig{
			{
				Name:    "devto",
				Scanner: "devto",
				Limit:   5,
				Feeds: []FeedConfig{
					{Name: "ai", URL: "https://dev.to/t/ai"},
				},
				Options: map[string]string{"fallbackUrl": "https://dev.to"},
			},
		},
	}
}

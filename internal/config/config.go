// Load envs from .env
// Load JSON/YAML config over the defaults
// Validate config
// Provide default values

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Divyaj16/JobCrawler/internal/browser"
	"github.com/Divyaj16/JobCrawler/internal/extract"
	"github.com/Divyaj16/JobCrawler/internal/filter"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigName   = "crawler.json"
	DatabaseName        = "database.json"
	DefaultJobURL       = "https://www.linkedin.com/jobs/search/?f_TPR=r86400&f_E=2%2C3&keywords=data%20engineer&location=United%20States&start=0"
	RendererPlaywright  = "playwright"
	RendererRod         = "rod"
	defaultMaxRetries   = 3
	defaultRetentionMin = 60
)

type Delay struct {
	MinSeconds float64 `json:"min_seconds" yaml:"min_seconds"`
	MaxSeconds float64 `json:"max_seconds" yaml:"max_seconds"`
}

func (d Delay) Min() time.Duration { return seconds(d.MinSeconds) }
func (d Delay) Max() time.Duration { return seconds(d.MaxSeconds) }

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

type Config struct {
	JobURL string `json:"job_url" yaml:"job_url"`
	//Search criteria
	Keywords         []string `json:"keywords" yaml:"keywords"`
	ExcludedKeywords []string `json:"excluded_keywords" yaml:"excluded_keywords"`
	MaskChar         string   `json:"mask_char" yaml:"mask_char"`
	//Paths
	DatabaseFile string `json:"database_file" yaml:"database_file"`
	CookiesPath  string `json:"cookies_path,omitempty" yaml:"cookies_path,omitempty"`
	//Browser
	Renderer     string   `json:"renderer" yaml:"renderer"`
	Headless     bool     `json:"headless" yaml:"headless"`
	UserAgents   []string `json:"user_agents" yaml:"user_agents"`
	RequestDelay Delay    `json:"request_delay" yaml:"request_delay"`
	//Run
	MaxRetries       int               `json:"max_retries" yaml:"max_retries"`
	RetentionMinutes int               `json:"retention_minutes" yaml:"retention_minutes"`
	Selectors        extract.Selectors `json:"selectors" yaml:"selectors"`
	//Notifier, env only
	TelegramToken  string `json:"-" yaml:"-"`
	TelegramChatID int64  `json:"-" yaml:"-"`
}

// Default returns the built-in configuration rooted at dataDir
func Default(dataDir string) *Config {
	return &Config{
		JobURL:           DefaultJobURL,
		Keywords:         []string{"python", "developer", "engineer", "data engineer", "airflow", "etl", "aws", "snowflake", "databricks"},
		ExcludedKeywords: []string{"5+ years", "4+ years", "manager", "director"},
		MaskChar:         filter.DefaultMaskChar,
		DatabaseFile:     filepath.Join(dataDir, DatabaseName),
		Renderer:         RendererPlaywright,
		Headless:         true,
		UserAgents: []string{
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		},
		RequestDelay:     Delay{MinSeconds: 3, MaxSeconds: 7},
		MaxRetries:       defaultMaxRetries,
		RetentionMinutes: defaultRetentionMin,
		Selectors:        DefaultSelectors(),
	}
}

// Load builds the config for dataDir. configPath may be empty (defaults to
// <dataDir>/crawler.json). A missing config file is created from the
// defaults. The database path is always <dataDir>/database.json, whatever
// the file says.
func Load(dataDir, configPath, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	} else {
		//.env is optional
		_ = godotenv.Load()
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	if configPath == "" {
		configPath = filepath.Join(dataDir, DefaultConfigName)
	}

	cfg := Default(dataDir)

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := decode(configPath, data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", configPath, err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err := writeDefault(configPath, cfg); err != nil {
			log.Printf("Warning: Could not write default config: %v", err)
		} else {
			log.Printf("📝 Wrote default config to %s", configPath)
		}
	default:
		return nil, fmt.Errorf("could not read %s: %w", configPath, err)
	}

	//the database always lives in the data dir
	cfg.DatabaseFile = filepath.Join(dataDir, DatabaseName)

	//Override with env vars
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.TelegramToken = token
	}
	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func decode(path string, data []byte, cfg *Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func writeDefault(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "    ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	var errs []string

	if u, err := url.Parse(c.JobURL); c.JobURL == "" || err != nil || u.Host == "" {
		errs = append(errs, "job_url must be an absolute URL")
	}
	if c.RequestDelay.MinSeconds < 0 || c.RequestDelay.MaxSeconds < c.RequestDelay.MinSeconds {
		errs = append(errs, "request_delay must satisfy 0 <= min_seconds <= max_seconds")
	}
	if c.MaxRetries < 1 {
		errs = append(errs, "max_retries must be >= 1")
	}
	if c.RetentionMinutes < 1 {
		errs = append(errs, "retention_minutes must be >= 1")
	}
	if c.Renderer != RendererPlaywright && c.Renderer != RendererRod {
		errs = append(errs, fmt.Sprintf("renderer must be %q or %q", RendererPlaywright, RendererRod))
	}
	if len(c.Selectors.Cards) == 0 {
		errs = append(errs, "selectors.cards must not be empty")
	}
	if len(c.Selectors.Title) == 0 || len(c.Selectors.Company) == 0 {
		errs = append(errs, "selectors.title and selectors.company must not be empty")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// RequireTelegram checks the settings the notifier needs
func (c *Config) RequireTelegram() error {
	if c.TelegramToken == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}
	if c.TelegramChatID == 0 {
		return errors.New("TELEGRAM_CHAT_ID is required")
	}
	return nil
}

func (c *Config) Retention() time.Duration {
	return time.Duration(c.RetentionMinutes) * time.Minute
}

func (c *Config) Policy() filter.Policy {
	return filter.Policy{
		RequiredKeywords: c.Keywords,
		ExcludedKeywords: c.ExcludedKeywords,
		MaskChar:         c.MaskChar,
	}
}

// BrowserOptions maps the config onto renderer options. RequestDelay is the
// settle pause after each navigation.
func (c *Config) BrowserOptions(screenshotDir string) browser.Options {
	pacing := browser.DefaultPacing()
	pacing.SettleMin = c.RequestDelay.Min()
	pacing.SettleMax = c.RequestDelay.Max()
	return browser.Options{
		Headless:      c.Headless,
		UserAgents:    c.UserAgents,
		CookiesPath:   c.CookiesPath,
		ScreenshotDir: screenshotDir,
		Pacing:        pacing,
	}
}

// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type BotConfig struct {
	Token   string `yaml:"token"`
	AdminID int64  `yaml:"admin_id"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type ProvisionConfig struct {
	USBaseURL string `yaml:"us_base_url"`
	SGBaseURL string `yaml:"sg_base_url"`
	// InsecureSkipVerify trusts self-signed certificates on the management
	// endpoints. Off by default; enable only for self-hosted servers.
	InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
}

type PaymentConfig struct {
	KPayNumber string `yaml:"kpay_number"`
	WaveNumber string `yaml:"wave_number"`
}

type WebConfig struct {
	Port int `yaml:"port"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"` // empty = use in-memory session store
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type RuntimeConfig struct {
	LockFile     string        `yaml:"lock_file"`
	ProofWindow  time.Duration `yaml:"proof_window"`
	ExpirySweep  time.Duration `yaml:"expiry_sweep"`
	SupportURL   string        `yaml:"support_url"`
	SupportEmail string        `yaml:"support_email"`
}

type Config struct {
	Bot       BotConfig       `yaml:"bot"`
	Log       LogConfig       `yaml:"log"`
	Provision ProvisionConfig `yaml:"provision"`
	Payment   PaymentConfig   `yaml:"payment"`
	Web       WebConfig       `yaml:"web"`
	Redis     RedisConfig     `yaml:"redis"`
	Runtime   RuntimeConfig   `yaml:"runtime"`
}

// Load reads the YAML file (when present), overlays environment variables,
// applies defaults, and validates. Missing required values are fatal to the
// caller.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	overlayEnv(&cfg)
	applyDefaults(&cfg)

	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required (BOT_TOKEN)")
	}
	if cfg.Bot.AdminID == 0 {
		return nil, errors.New("bot.admin_id is required (ADMIN_ID)")
	}
	if cfg.Provision.USBaseURL == "" || cfg.Provision.SGBaseURL == "" {
		return nil, errors.New("provision.us_base_url and provision.sg_base_url are required (US_OUTLINE_API, SG_OUTLINE_API)")
	}
	return &cfg, nil
}

func overlayEnv(cfg *Config) {
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("ADMIN_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Bot.AdminID = id
		}
	}
	if v := os.Getenv("US_OUTLINE_API"); v != "" {
		cfg.Provision.USBaseURL = v
	}
	if v := os.Getenv("SG_OUTLINE_API"); v != "" {
		cfg.Provision.SGBaseURL = v
	}
	if v := os.Getenv("KPAY_NUMBER"); v != "" {
		cfg.Payment.KPayNumber = v
	}
	if v := os.Getenv("WAVE_NUMBER"); v != "" {
		cfg.Payment.WaveNumber = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Web.Port = p
		}
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("LOCK_FILE"); v != "" {
		cfg.Runtime.LockFile = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 3000
	}
	if cfg.Payment.KPayNumber == "" {
		cfg.Payment.KPayNumber = "09123456789"
	}
	if cfg.Runtime.LockFile == "" {
		cfg.Runtime.LockFile = "/tmp/vaultvpn-bot.lock"
	}
	if cfg.Runtime.ProofWindow <= 0 {
		cfg.Runtime.ProofWindow = 5 * time.Minute
	}
	if cfg.Runtime.ExpirySweep <= 0 {
		cfg.Runtime.ExpirySweep = time.Hour
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = 15 * time.Minute
	}
	if cfg.Runtime.SupportURL == "" {
		cfg.Runtime.SupportURL = "https://t.me/edenvault_88"
	}
	if cfg.Runtime.SupportEmail == "" {
		cfg.Runtime.SupportEmail = "edenvault888@gmail.com"
	}
}

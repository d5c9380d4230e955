package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	JWT struct {
		Secret        string `yaml:"secret"`
		TTLMinutes    int    `yaml:"ttl_minutes"`
		RefreshSecret string `yaml:"refresh_secret"`
		RefreshDays   int    `yaml:"refresh_days"`
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Billing struct {
		CallbackSecret string `yaml:"callback_secret"`
		CheckoutURL    string `yaml:"checkout_url"`
		PortalURL      string `yaml:"portal_url"`
	} `yaml:"billing"`

	Marketplace struct {
		DefaultCitySlug string `yaml:"default_city_slug"`
		FrontendURL     string `yaml:"frontend_url"`
	} `yaml:"marketplace"`
}

var AppConfig *Config

// LoadConfig fills AppConfig from config.yaml, or entirely from environment
// variables when DATABASE_URL is set (test / container mode).
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.RefreshSecret = os.Getenv("JWT_REFRESH_SECRET")
	cfg.JWT.TTLMinutes = 60
	cfg.JWT.RefreshDays = 30
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Billing.CallbackSecret = os.Getenv("BILLING_CALLBACK_SECRET")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTLMinutes == 0 {
		cfg.JWT.TTLMinutes = 60
	}
	if cfg.JWT.RefreshDays == 0 {
		cfg.JWT.RefreshDays = 30
	}
	if cfg.Email.FromEmail == "" {
		cfg.Email.FromEmail = "noreply@conectacg.net"
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "ConectaCG"
	}
	if cfg.Marketplace.DefaultCitySlug == "" {
		cfg.Marketplace.DefaultCitySlug = "campo-grande"
	}
	if cfg.Marketplace.FrontendURL == "" {
		cfg.Marketplace.FrontendURL = "http://localhost:3000"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

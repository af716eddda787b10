package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	APIPort           string `mapstructure:"API_PORT"`
	Env               string `mapstructure:"ENV"`
	MongoURI          string `mapstructure:"MONGO_URI"`
	MongoDatabase     string `mapstructure:"MONGO_DATABASE"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`
	ClinicTimezone    string `mapstructure:"CLINIC_TIMEZONE"`
	SlotHorizonDays   int    `mapstructure:"SLOT_HORIZON_DAYS"`
	SlotDuration      int    `mapstructure:"SLOT_DURATION_MINUTES"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	TextbeltAPIKey    string `mapstructure:"TEXTBELT_API_KEY"`
	RequestTimeout    int    `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	AdminEmail        string `mapstructure:"ADMIN_EMAIL"`
	AdminPassword     string `mapstructure:"ADMIN_PASSWORD"`
}

var keys = []string{
	"API_PORT", "ENV", "MONGO_URI", "MONGO_DATABASE", "JWT_SECRET", "CORS_ORIGINS",
	"CLINIC_TIMEZONE", "SLOT_HORIZON_DAYS", "SLOT_DURATION_MINUTES",
	"MAX_REQUESTS_PER_MIN", "TEXTBELT_API_KEY", "REQUEST_TIMEOUT_SECONDS",
	"ADMIN_EMAIL", "ADMIN_PASSWORD",
}

// Load reads an optional .env file, then environment variables, on top of
// the defaults below.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	v := viper.New()
	v.AutomaticEnv()
	// Unmarshal only sees keys viper knows about.
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}

	v.SetDefault("API_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "medibook")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("CLINIC_TIMEZONE", "UTC")
	v.SetDefault("SLOT_HORIZON_DAYS", 7)
	v.SetDefault("SLOT_DURATION_MINUTES", 60)
	v.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 10)
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if _, err := time.LoadLocation(c.ClinicTimezone); err != nil {
		errs = append(errs, fmt.Errorf("CLINIC_TIMEZONE: %w", err))
	}
	if c.SlotHorizonDays <= 0 {
		errs = append(errs, fmt.Errorf("SLOT_HORIZON_DAYS must be positive, got %d", c.SlotHorizonDays))
	}
	if c.SlotDuration <= 0 {
		errs = append(errs, fmt.Errorf("SLOT_DURATION_MINUTES must be positive, got %d", c.SlotDuration))
	}
	if c.MaxRequestsPerMin <= 0 {
		errs = append(errs, fmt.Errorf("MAX_REQUESTS_PER_MIN must be positive, got %d", c.MaxRequestsPerMin))
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}

// SeedsAdmin reports whether an admin account should be ensured at startup.
func (c *Config) SeedsAdmin() bool {
	return c.AdminEmail != ""
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location returns the clinic timezone. Validate has already checked it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ClinicTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

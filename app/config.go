package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sushihentaime/folio/internal/common"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`
	TLSCertFile    string   `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile     string   `mapstructure:"TLS_KEY_FILE"`

	// Store selects the post store: "memory" (seeded with sample posts) or "postgres".
	Store      string `mapstructure:"STORE"`
	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`
	DBSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`

	AdminSecret     string        `mapstructure:"ADMIN_SECRET"`
	AdminSessionTTL time.Duration `mapstructure:"ADMIN_SESSION_TTL"`

	ConvertKitURL    string `mapstructure:"CONVERTKIT_API_URL"`
	ConvertKitKey    string `mapstructure:"CONVERTKIT_API_KEY"`
	ConvertKitFormID string `mapstructure:"CONVERTKIT_FORM_ID"`

	SubscribeRateLimit float64 `mapstructure:"SUBSCRIBE_RATE_LIMIT"`
	SubscribeRateBurst int     `mapstructure:"SUBSCRIBE_RATE_BURST"`

	MailHost     string `mapstructure:"MAIL_HOST"`
	MailPort     int    `mapstructure:"MAIL_PORT"`
	MailUser     string `mapstructure:"MAIL_USER"`
	MailPassword string `mapstructure:"MAIL_PASSWORD"`
	MailSender   string `mapstructure:"MAIL_SENDER"`
	NotifyEmail  string `mapstructure:"NOTIFY_EMAIL"`

	// An empty MQHost runs the site without a broker: analytics are dropped and no
	// subscriber notifications are sent.
	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`
}

var defaults = map[string]any{
	"PORT":                 ":4000",
	"ENVIRONMENT":          "development",
	"VERSION":              "1.0.0",
	"TRUSTED_ORIGINS":      []string{},
	"TLS_CERT_FILE":        "",
	"TLS_KEY_FILE":         "",
	"STORE":                "memory",
	"POSTGRES_HOST":        "localhost",
	"POSTGRES_PORT":        "5432",
	"POSTGRES_USER":        "",
	"POSTGRES_PASSWORD":    "",
	"POSTGRES_DB":          "",
	"POSTGRES_SSLMODE":     "disable",
	"ADMIN_SECRET":         "",
	"ADMIN_SESSION_TTL":    "12h",
	"CONVERTKIT_API_URL":   "https://api.convertkit.com",
	"CONVERTKIT_API_KEY":   "",
	"CONVERTKIT_FORM_ID":   "",
	"SUBSCRIBE_RATE_LIMIT": 0.2,
	"SUBSCRIBE_RATE_BURST": 3,
	"MAIL_HOST":            "",
	"MAIL_PORT":            587,
	"MAIL_USER":            "",
	"MAIL_PASSWORD":        "",
	"MAIL_SENDER":          "",
	"NOTIFY_EMAIL":         "",
	"RABBITMQ_HOST":        "",
	"RABBITMQ_PORT":        "5672",
	"RABBITMQ_USER":        "guest",
	"RABBITMQ_PASSWORD":    "guest",
}

// loadConfig reads path when it exists; environment variables override the file.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.AdminSecret == "" {
		errs = append(errs, errors.New("ADMIN_SECRET must be set"))
	}

	c.Store = strings.ToLower(c.Store)
	switch c.Store {
	case "memory":
	case "postgres":
		if c.DBUser == "" || c.DBName == "" {
			errs = append(errs, errors.New("POSTGRES_USER and POSTGRES_DB must be set when STORE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("STORE must be memory or postgres, got %q", c.Store))
	}

	if c.Environment == "production" && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		errs = append(errs, errors.New("TLS_CERT_FILE and TLS_KEY_FILE must be set in production"))
	}

	if c.SubscribeRateLimit <= 0 || c.SubscribeRateBurst < 1 {
		errs = append(errs, errors.New("SUBSCRIBE_RATE_LIMIT and SUBSCRIBE_RATE_BURST must be positive"))
	}

	return errors.Join(errs...)
}

func (c *Config) dsn() string {
	return common.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) brokerURI() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.MQUser, c.MQPassword, c.MQHost, c.MQPort)
}

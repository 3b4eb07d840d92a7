package configs

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"server"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	JWT struct {
		Secret         string `mapstructure:"secret"`
		ExpiresMinutes int    `mapstructure:"expires_minutes"`
	} `mapstructure:"jwt"`
	Webhook struct {
		Secret string `mapstructure:"secret"`
	} `mapstructure:"webhook"`
	Seed struct {
		Enabled       bool   `mapstructure:"enabled"`
		AdminEmail    string `mapstructure:"admin_email"`
		AdminPassword string `mapstructure:"admin_password"`
	} `mapstructure:"seed"`

	v *viper.Viper
}

// Load reads configs/config.yaml and the environment into a Config. The
// struct is passed to every component that needs it; nothing reads viper
// globals after startup.
func Load() (*Config, error) {
	v := viper.New()
	v.AddConfigPath("./configs")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("jwt.expires_minutes", 60)

	v.AutomaticEnv()
	bindEnv(v)

	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	if cfg.Webhook.Secret == "" {
		return nil, errors.New("webhook secret is not configured")
	}
	return cfg, nil
}

func bindEnv(v *viper.Viper) {
	v.BindEnv("server.addr", "SERVER_ADDR")
	v.BindEnv("db.dsn", "DATABASE_DSN")
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("jwt.expires_minutes", "JWT_EXPIRES_MINUTES")
	v.BindEnv("webhook.secret", "WEBHOOK_SECRET")
	v.BindEnv("seed.enabled", "SEED_ENABLED")
	v.BindEnv("seed.admin_email", "SEED_ADMIN_EMAIL")
	v.BindEnv("seed.admin_password", "SEED_ADMIN_PASSWORD")
}

// WebhookSecret is looked up live rather than from the unmarshaled snapshot,
// so rotating WEBHOOK_SECRET takes effect without a restart.
func (c *Config) WebhookSecret() string {
	if c.v != nil {
		if s := c.v.GetString("webhook.secret"); s != "" {
			return s
		}
	}
	return c.Webhook.Secret
}

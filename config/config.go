package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Storage StorageConfig `yaml:"storage"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Email   EmailConfig   `yaml:"email"`
	Catalog CatalogConfig `yaml:"catalog"`
	OTP     OTPConfig     `yaml:"otp"`
}

type HTTPConfig struct {
	Address string `yaml:"address"`
}

type StorageConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type EmailConfig struct {
	BaseURL          string `yaml:"base_url"`
	ServiceID        string `yaml:"service_id"`
	UserID           string `yaml:"user_id"`
	OTPTemplate      string `yaml:"otp_template"`
	BookingTemplate  string `yaml:"booking_template"`
	ApprovalTemplate string `yaml:"approval_template"`
}

type CatalogConfig struct {
	BaseURL string `yaml:"base_url"`
}

type OTPConfig struct {
	TTLMinutes            int `yaml:"ttl_minutes"`
	ResendCooldownSeconds int `yaml:"resend_cooldown_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Секрет почтового сервиса можно переопределить из окружения
	if v := os.Getenv("EMAIL_USER_ID"); v != "" {
		cfg.Email.UserID = v
	}

	if cfg.OTP.TTLMinutes == 0 {
		cfg.OTP.TTLMinutes = 15
	}
	if cfg.OTP.ResendCooldownSeconds == 0 {
		cfg.OTP.ResendCooldownSeconds = 300
	}

	return &cfg, nil
}

package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration values
type Config struct {
	Environment string

	NotifyWebhookURL     string
	NotifyWebhookURLTest string
	SheetsWebhookURL     string
	SheetsWebhookURLTest string

	CoupangNotifyWebhookURL     string
	CoupangNotifyWebhookURLTest string
	CoupangSheetsWebhookURL     string
	CoupangSheetsWebhookURLTest string

	// SuppressNotify sends only the structured record and skips the
	// human-readable notification channel (test/staging traffic).
	SuppressNotify bool

	MicroCMSServiceDomain string
	MicroCMSAPIKey        string

	KanaAPIAppID string
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	suppress, _ := strconv.ParseBool(os.Getenv("SUPPRESS_NOTIFY"))

	return &Config{
		Environment:                 envOr("APP_ENV", "production"),
		NotifyWebhookURL:            os.Getenv("NOTIFY_WEBHOOK_URL"),
		NotifyWebhookURLTest:        os.Getenv("NOTIFY_WEBHOOK_URL_TEST"),
		SheetsWebhookURL:            os.Getenv("SHEETS_WEBHOOK_URL"),
		SheetsWebhookURLTest:        os.Getenv("SHEETS_WEBHOOK_URL_TEST"),
		CoupangNotifyWebhookURL:     os.Getenv("COUPANG_NOTIFY_WEBHOOK_URL"),
		CoupangNotifyWebhookURLTest: os.Getenv("COUPANG_NOTIFY_WEBHOOK_URL_TEST"),
		CoupangSheetsWebhookURL:     os.Getenv("COUPANG_SHEETS_WEBHOOK_URL"),
		CoupangSheetsWebhookURLTest: os.Getenv("COUPANG_SHEETS_WEBHOOK_URL_TEST"),
		SuppressNotify:              suppress,
		MicroCMSServiceDomain:       os.Getenv("MICROCMS_SERVICE_DOMAIN"),
		MicroCMSAPIKey:              os.Getenv("MICROCMS_API_KEY"),
		KanaAPIAppID:                os.Getenv("KANA_API_APP_ID"),
	}
}

// IsProduction reports whether the app serves production traffic.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// NotifyURL returns the notification webhook for the current environment.
func (c *Config) NotifyURL() string {
	if !c.IsProduction() && c.NotifyWebhookURLTest != "" {
		return c.NotifyWebhookURLTest
	}
	return c.NotifyWebhookURL
}

// SheetsURL returns the data-sink webhook for the current environment.
func (c *Config) SheetsURL() string {
	if !c.IsProduction() && c.SheetsWebhookURLTest != "" {
		return c.SheetsWebhookURLTest
	}
	return c.SheetsWebhookURL
}

// CoupangNotifyURL returns the coupang notification webhook for the
// current environment.
func (c *Config) CoupangNotifyURL() string {
	if !c.IsProduction() && c.CoupangNotifyWebhookURLTest != "" {
		return c.CoupangNotifyWebhookURLTest
	}
	return c.CoupangNotifyWebhookURL
}

// CoupangSheetsURL returns the coupang data-sink webhook for the current
// environment.
func (c *Config) CoupangSheetsURL() string {
	if !c.IsProduction() && c.CoupangSheetsWebhookURLTest != "" {
		return c.CoupangSheetsWebhookURLTest
	}
	return c.CoupangSheetsWebhookURL
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

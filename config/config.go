package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	DatabaseURL string
	Timezone    string
	CronSpec    string
	Messaging   MessagingConfig
	Redis       RedisConfig
}

type MessagingConfig struct {
	Provider    string // "twilio" or "meta"
	CountryCode string // digits only, e.g. "91"
	BulkDelay   time.Duration

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioPhoneNumber    string
	TwilioWhatsAppNumber string

	MetaAccessToken   string
	MetaPhoneNumberID string
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DedupEnabled bool
}

// App holds the loaded configuration for the process
var App Config

// Load reads configuration from the environment with sane defaults.
func Load() (*Config, error) {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("CRON_SPEC", "30 0 * * *")
	viper.SetDefault("MESSAGING_PROVIDER", "meta")
	viper.SetDefault("COUNTRY_CODE", "91")
	viper.SetDefault("BULK_DELAY_MS", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("DEDUP_ENABLED", false)

	viper.AutomaticEnv()

	App = Config{
		Port:        viper.GetString("PORT"),
		DatabaseURL: viper.GetString("DB_URL"),
		Timezone:    viper.GetString("TIMEZONE"),
		CronSpec:    viper.GetString("CRON_SPEC"),
		Messaging: MessagingConfig{
			Provider:             viper.GetString("MESSAGING_PROVIDER"),
			CountryCode:          viper.GetString("COUNTRY_CODE"),
			BulkDelay:            time.Duration(viper.GetInt("BULK_DELAY_MS")) * time.Millisecond,
			TwilioAccountSID:     viper.GetString("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:      viper.GetString("TWILIO_AUTH_TOKEN"),
			TwilioPhoneNumber:    viper.GetString("TWILIO_PHONE_NUMBER"),
			TwilioWhatsAppNumber: viper.GetString("TWILIO_WHATSAPP_NUMBER"),
			MetaAccessToken:      viper.GetString("META_ACCESS_TOKEN"),
			MetaPhoneNumberID:    viper.GetString("META_PHONE_NUMBER_ID"),
		},
		Redis: RedisConfig{
			Addr:         viper.GetString("REDIS_ADDR"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			DedupEnabled: viper.GetBool("DEDUP_ENABLED"),
		},
	}

	return &App, nil
}

// Location resolves the business timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

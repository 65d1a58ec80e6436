// Package config loads the configuration of the ledger from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrAPIURLNotSet  = errors.New("environment variable API_URL must be set")
	ErrAPIURLInvalid = errors.New("environment variable API_URL must be a valid URL")
)

// Config holds the application configuration.
type Config struct {
	GinMode          string
	LogFormat        string
	APIURL           *url.URL
	CORSAllowOrigins string
	EnablePprof      bool
	DBPath           string
	Port             string
	CurrencyLocale   string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if it exists, variables already set in
// the environment take precedence.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log_format", "")
	v.SetDefault("api_url", "")
	v.SetDefault("cors_allow_origins", "")
	v.SetDefault("enable_pprof", false)
	v.SetDefault("db_path", "data/ledger.db")
	v.SetDefault("port", "8080")
	v.SetDefault("currency_locale", "en-US")
	v.AutomaticEnv()

	c := Config{
		GinMode:          v.GetString("gin_mode"),
		LogFormat:        v.GetString("log_format"),
		CORSAllowOrigins: v.GetString("cors_allow_origins"),
		EnablePprof:      v.GetBool("enable_pprof"),
		DBPath:           v.GetString("db_path"),
		Port:             v.GetString("port"),
		CurrencyLocale:   v.GetString("currency_locale"),
	}

	if raw := v.GetString("api_url"); raw != "" {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return Config{}, fmt.Errorf("%w: %q", ErrAPIURLInvalid, raw)
		}
		c.APIURL = u
	}

	return c, nil
}

// RequireAPIURL returns an error if no API URL is configured. The API URL
// is only needed to serve the HTTP API.
func (c Config) RequireAPIURL() error {
	if c.APIURL == nil {
		return ErrAPIURLNotSet
	}
	return nil
}

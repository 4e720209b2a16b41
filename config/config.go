// Package config loads the API keys from an INI file with an [API]
// section. A load failure is fatal at startup; nothing else reads the
// keys once the client is built.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ErrConfig marks unusable configuration: unreadable file or empty keys.
var ErrConfig = errors.New("config error")

// Config holds the per-endpoint API keys.
type Config struct {
	GeocoderKey string
	PlacesKey   string
}

// Load reads keys from path (default config.ini) with environment
// overrides YAMAPVIEW_API_GEOCODER_KEY / YAMAPVIEW_API_PLACES_KEY.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path == "" {
		path = "config.ini"
	}
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	v.SetEnvPrefix("YAMAPVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConfig, path, err)
	}

	cfg := &Config{
		GeocoderKey: v.GetString("api.geocoder_key"),
		PlacesKey:   v.GetString("api.places_key"),
	}
	if cfg.GeocoderKey == "" {
		return nil, fmt.Errorf("%w: %s: missing [API] geocoder_key", ErrConfig, path)
	}
	if cfg.PlacesKey == "" {
		return nil, fmt.Errorf("%w: %s: missing [API] places_key", ErrConfig, path)
	}
	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/spf13/viper"
)

const (
	DefaultKeyFile   = "./service-account-key.json"
	DefaultPort      = "3000"
	DefaultPublicDir = "public"
)

var ErrMissingPropertyID = errors.New("GA4_PROPERTY_ID is not set")

type Settings struct {
	PropertyID string `mapstructure:"ga4_property_id"`
	KeyFile    string `mapstructure:"service_account_key_path"`
	Host       string `mapstructure:"server_host"`
	Port       string `mapstructure:"server_port"`
	PublicDir  string `mapstructure:"public_dir"`
}

// LoadSettings resolves settings from defaults, the optional config file at path and the
// environment, in increasing order of precedence.
func LoadSettings(path string) (*Settings, error) {
	v := viper.New()

	v.SetDefault("ga4_property_id", "")
	v.SetDefault("service_account_key_path", DefaultKeyFile)
	v.SetDefault("server_host", "")
	v.SetDefault("server_port", DefaultPort)
	v.SetDefault("public_dir", DefaultPublicDir)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if settings.PropertyID == "" {
		return nil, ErrMissingPropertyID
	}

	return &settings, nil
}

func (s *Settings) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

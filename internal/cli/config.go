package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	gdata "github.com/feedkit/gdata.go"
	"github.com/feedkit/gdata.go/pkg/query"
)

const envPrefix = "GDATA"

// Config is the file/env configuration of the gdata command.
type Config struct {
	ApplicationName string        `mapstructure:"application_name"`
	Service         string        `mapstructure:"service"`
	Scope           string        `mapstructure:"scope"`
	Endpoint        string        `mapstructure:"endpoint"`
	Auth            AuthConfig    `mapstructure:"auth"`
	Codec           string        `mapstructure:"codec"`
	Timeout         time.Duration `mapstructure:"timeout"`
	Log             LogConfig     `mapstructure:"log"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	Listen          string        `mapstructure:"listen"`
}

type AuthConfig struct {
	Protocol string `mapstructure:"protocol"`
	Domain   string `mapstructure:"domain"`
	// Token is a login token obtained out of band.
	Token string `mapstructure:"token"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	Path  string `mapstructure:"path"`
}

// Defaults returns the configuration used for keys missing from file and env.
func Defaults() Config {
	return Config{
		ApplicationName: "feedkit-gdata-1",
		Service:         string(gdata.Base),
		Scope:           "all",
		Codec:           "cbor",
		Timeout:         30 * time.Second,
		Log:             LogConfig{Level: "info"},
		Listen:          ":8080",
	}
}

// LoadConfig reads path, if given, then GDATA_* environment variables on top
// of the defaults. GDATA_AUTH_TOKEN sets auth.token.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	d := Defaults()
	v.SetDefault("application_name", d.ApplicationName)
	v.SetDefault("service", d.Service)
	v.SetDefault("scope", d.Scope)
	v.SetDefault("endpoint", "")
	v.SetDefault("auth.protocol", "")
	v.SetDefault("auth.domain", "")
	v.SetDefault("auth.token", "")
	v.SetDefault("codec", d.Codec)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.path", "")
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("listen", d.Listen)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// ClientConfig turns c into a client configuration and scope policy.
func (c *Config) ClientConfig(l zerolog.Logger) (*gdata.Config, query.Scope, error) {
	service, err := gdata.ParseServiceName(c.Service)
	if err != nil {
		return nil, query.AllItems, err
	}
	scope, err := query.ParseScope(c.Scope)
	if err != nil {
		return nil, query.AllItems, err
	}

	cfg := gdata.NewConfig(c.ApplicationName, service)
	cfg.Endpoint = c.Endpoint
	cfg.AuthProtocol = c.Auth.Protocol
	cfg.AuthDomain = c.Auth.Domain
	cfg.Codec = c.Codec
	cfg.Timeout = c.Timeout
	cfg.Logger = l
	return cfg, scope, nil
}

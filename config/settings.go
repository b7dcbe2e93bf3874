package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	SessionStoreCookie = "cookie"
	SessionStoreRedis  = "redis"
)

// Settings is the runtime configuration of the web server.
type Settings struct {
	Web      WebSettings    `mapstructure:"web"`
	Redis    RedisSettings  `mapstructure:"redis"`
	Database DatabaseConfig `mapstructure:"database"`
}

type WebSettings struct {
	Listen        string `mapstructure:"listen"`
	Port          int    `mapstructure:"port"`
	SecretKey     string `mapstructure:"secretKey"`
	SessionStore  string `mapstructure:"sessionStore"`
	SessionMaxAge int    `mapstructure:"sessionMaxAge"` // minutes
}

// RedisSettings configures the redis session store. An empty Addr starts an
// embedded server.
type RedisSettings struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Load reads settings from an optional file and CADASTRO_* environment
// variables. With an empty path, ./cadastro.{yaml,toml,json} is used when present.
func Load(path string) (*Settings, error) {
	v := viper.New()
	def := GetDefaultDatabaseConfig()

	v.SetDefault("web.listen", "")
	v.SetDefault("web.port", 5000)
	v.SetDefault("web.secretKey", "")
	v.SetDefault("web.sessionStore", SessionStoreCookie)
	v.SetDefault("web.sessionMaxAge", 60*24*7)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.type", string(def.Type))
	v.SetDefault("database.sqlite.path", def.SQLite.Path)
	v.SetDefault("database.mysql.host", def.MySQL.Host)
	v.SetDefault("database.mysql.port", def.MySQL.Port)
	v.SetDefault("database.mysql.database", def.MySQL.Database)
	v.SetDefault("database.mysql.username", def.MySQL.Username)
	v.SetDefault("database.mysql.password", "")

	v.SetEnvPrefix("CADASTRO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName(GetName())
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	s := &Settings{}
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) Validate() error {
	if s.Web.Port <= 0 || s.Web.Port > 65535 {
		return fmt.Errorf("web port is not a valid port: %d", s.Web.Port)
	}
	switch s.Web.SessionStore {
	case SessionStoreCookie, SessionStoreRedis:
	default:
		return fmt.Errorf("unsupported session store: %q", s.Web.SessionStore)
	}
	if s.Web.SessionMaxAge <= 0 {
		return fmt.Errorf("session max age must be positive")
	}
	return s.Database.ValidateConfig()
}

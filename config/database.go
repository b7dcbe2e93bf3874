package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DatabaseType represents the type of database
type DatabaseType string

const (
	DatabaseTypeSQLite DatabaseType = "sqlite"
	DatabaseTypeMySQL  DatabaseType = "mysql"
)

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type   DatabaseType `mapstructure:"type"`
	SQLite SQLiteConfig `mapstructure:"sqlite"`
	MySQL  MySQLConfig  `mapstructure:"mysql"`
}

// SQLiteConfig holds SQLite specific configuration
type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

// MySQLConfig holds MySQL specific configuration
type MySQLConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// GetDSN returns the data source name for the database
func (c *DatabaseConfig) GetDSN() string {
	switch c.Type {
	case DatabaseTypeMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.MySQL.Username,
			c.MySQL.Password,
			c.MySQL.Host,
			c.MySQL.Port,
			c.MySQL.Database,
		)
	default:
		path := c.SQLite.Path
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		return path + sep + "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=1"
	}
}

// GetDefaultDatabaseConfig returns default database configuration
func GetDefaultDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: GetDBPath(),
		},
		MySQL: MySQLConfig{
			Host:     "127.0.0.1",
			Port:     3306,
			Database: "cadastro",
			Username: "cadastro",
		},
	}
}

// ValidateConfig validates the database configuration
func (c *DatabaseConfig) ValidateConfig() error {
	switch c.Type {
	case DatabaseTypeSQLite:
		if c.SQLite.Path == "" {
			return fmt.Errorf("SQLite path cannot be empty")
		}
	case DatabaseTypeMySQL:
		if c.MySQL.Host == "" {
			return fmt.Errorf("MySQL host cannot be empty")
		}
		if c.MySQL.Database == "" {
			return fmt.Errorf("MySQL database name cannot be empty")
		}
		if c.MySQL.Username == "" {
			return fmt.Errorf("MySQL username cannot be empty")
		}
		if c.MySQL.Port <= 0 || c.MySQL.Port > 65535 {
			return fmt.Errorf("MySQL port must be between 1 and 65535")
		}
	default:
		return fmt.Errorf("unsupported database type: %s", c.Type)
	}
	return nil
}

// IsSQLite returns true if the database type is SQLite
func (c *DatabaseConfig) IsSQLite() bool {
	return c.Type == DatabaseTypeSQLite
}

// EnsureDirectoryExists creates the parent directory of the SQLite file.
func (c *DatabaseConfig) EnsureDirectoryExists() error {
	if c.IsSQLite() {
		return os.MkdirAll(filepath.Dir(c.SQLite.Path), 0o755)
	}
	return nil
}

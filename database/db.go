// Package database owns the gorm connection and the schema of the registration app.
package database

import (
	"errors"
	"fmt"

	"github.com/ifsp/cadastro/config"
	"github.com/ifsp/cadastro/database/model"
	"github.com/ifsp/cadastro/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	db       *gorm.DB
	dbConfig *config.DatabaseConfig
)

func initModels() error {
	models := []any{
		&model.Role{},
		&model.User{},
		&model.Disciplina{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			logger.Errorf("Error auto migrating model %T: %v", m, err)
			return err
		}
	}
	return nil
}

// Open connects to the configured database without touching the schema.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return nil, err
	}

	var gormLogger gormlogger.Interface
	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		TranslateError:         true,
	}

	var dialector gorm.Dialector
	switch cfg.Type {
	case config.DatabaseTypeMySQL:
		dialector = mysql.Open(cfg.GetDSN())
	default:
		dialector = sqlite.Open(cfg.GetDSN())
	}

	conn, err := gorm.Open(dialector, c)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Type, err)
	}
	return conn, nil
}

// InitDB opens the database, migrates the schema and installs the
// package-level handle returned by GetDB.
func InitDB(cfg *config.DatabaseConfig) error {
	conn, err := Open(cfg)
	if err != nil {
		return err
	}
	db = conn
	dbConfig = cfg

	if err := initModels(); err != nil {
		return err
	}
	return nil
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	if err := Checkpoint(); err != nil {
		logger.Warning("error executing checkpoint:", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	db = nil
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func IsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Checkpoint flushes the SQLite WAL into the main database file. It is a
// no-op on other databases.
func Checkpoint() error {
	if db == nil || dbConfig == nil || !dbConfig.IsSQLite() {
		return nil
	}
	return db.Exec("PRAGMA wal_checkpoint;").Error
}

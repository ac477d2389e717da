// Package database opens the sqlite store, migrates the schema and seeds the
// default administrator.
package database

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"github.com/healthai/riskpanel/config"
	"github.com/healthai/riskpanel/database/model"
	"github.com/healthai/riskpanel/logger"
	"github.com/healthai/riskpanel/util/common"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels(conn *gorm.DB) error {
	models := []any{
		&model.User{},
		&model.Prediction{},
	}
	for _, m := range models {
		if err := conn.AutoMigrate(m); err != nil {
			logger.Errorf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// Open connects to the database described by cfg, migrates the schema and makes
// sure the default administrator exists.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if err := cfg.ValidateConfig(); err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectoryExists(); err != nil {
		return nil, err
	}
	if err := checkExistingFile(cfg.Path); err != nil {
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

	conn, err := gorm.Open(sqlite.Open(cfg.GetDSN()), c)
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer; funnel every statement through one connection so
	// concurrent sessions queue here instead of failing with SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if _, err = sqlDB.Exec("PRAGMA temp_store = MEMORY;"); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	if err := initModels(conn); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := EnsureAdminExists(context.Background(), conn); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return conn, nil
}

// InitDB opens the process-wide database at dbPath.
func InitDB(dbPath string) error {
	cfg := config.GetDefaultDatabaseConfig()
	cfg.Path = dbPath

	conn, err := Open(cfg)
	if err != nil {
		return err
	}
	db = conn
	return nil
}

func CloseDB() error {
	if db == nil {
		return nil
	}
	err := Close(db)
	db = nil
	return err
}

// Close checkpoints the WAL and closes conn.
func Close(conn *gorm.DB) error {
	if err := Checkpoint(conn); err != nil {
		logger.Warningf("error executing checkpoint: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func GetDB() *gorm.DB {
	return db
}

// checkExistingFile refuses a non-empty file at path that is not a sqlite database.
// A missing or empty file is created by the driver.
func checkExistingFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return err
	}
	if st.Size() == 0 {
		return nil
	}
	ok, err := IsSQLiteDB(f)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	if !ok {
		return common.NewErrorf("%s is not a sqlite database", path)
	}
	return nil
}

func IsSQLiteDB(file io.ReaderAt) (bool, error) {
	signature := []byte("SQLite format 3\x00")
	buf := make([]byte, len(signature))
	_, err := file.ReadAt(buf, 0)
	if err != nil {
		return false, err
	}
	return bytes.Equal(buf, signature), nil
}

// Checkpoint flushes the write-ahead log into the main database file.
func Checkpoint(conn *gorm.DB) error {
	return conn.Exec("PRAGMA wal_checkpoint;").Error
}

// Package config exposes the environment-driven settings of the panel: log level,
// storage paths, listen address and session parameters.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const (
	defaultPort          = 8501
	defaultSessionMaxAge = 60 // minutes
)

// LoadEnv reads variables from the given .env files (".env" when none are given)
// without overriding what is already set in the process environment.
// A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("RISKPANEL_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("RISKPANEL_DEBUG") == "true"
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("RISKPANEL_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/riskpanel"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("RISKPANEL_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}

func GetListen() string {
	return os.Getenv("RISKPANEL_LISTEN")
}

func GetPort() int {
	return getInt("RISKPANEL_PORT", defaultPort)
}

// GetSessionSecret returns the secret the session keys are derived from.
// An empty value means the server generates a random one at startup.
func GetSessionSecret() string {
	return os.Getenv("RISKPANEL_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	return getInt("RISKPANEL_SESSION_MAX_AGE", defaultSessionMaxAge)
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

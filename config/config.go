// Package config loads runtime settings from the environment. A .env file in
// the working directory is read first when present; real environment
// variables win over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	defaultPort           = 8080
	defaultDBPath         = "ojt.db"
	defaultLogLevel       = "info"
	defaultAllowedOrigins = "http://localhost:5173,http://localhost:8080"
	defaultHorizon        = 500
)

type Config struct {
	Port           int
	DBPath         string
	LogLevel       logrus.Level
	AllowedOrigins []string
	// Calendar days the completion projection may examine.
	ProjectionHorizon int
}

// Load reads .env files (all optional) and then the OJT_* variables.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	level, err := logrus.ParseLevel(getEnv("OJT_LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return Config{}, fmt.Errorf("OJT_LOG_LEVEL: %w", err)
	}

	cfg := Config{
		Port:              getEnvAsInt("OJT_PORT", defaultPort),
		DBPath:            getEnv("OJT_DB_PATH", defaultDBPath),
		LogLevel:          level,
		AllowedOrigins:    splitList(getEnv("OJT_ALLOWED_ORIGINS", defaultAllowedOrigins)),
		ProjectionHorizon: getEnvAsInt("OJT_PROJECTION_HORIZON", defaultHorizon),
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("OJT_PORT: %d is not a valid port", cfg.Port)
	}
	if cfg.DBPath == "" {
		return Config{}, errors.New("OJT_DB_PATH must not be empty")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	valStr := getEnv(name, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

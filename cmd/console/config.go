package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/fleetory/console/internal/logger"
)

const (
	defaultBaseURL      = "http://localhost:8080/api/v1"
	defaultTimeout      = 10 * time.Second
	defaultLoggingLevel = logger.LevelInfo
	defaultEnvironment  = logger.EnvDevelopment
)

type Config struct {
	// Default logging level
	LogLevel string

	// Environment
	Environment string

	// Base URL of the platform API, prepended to every call
	BaseURL string

	// Per request timeout
	Timeout time.Duration

	// Where the session record is persisted
	// Empty means the default location under the user config dir
	SessionFile string
}

func NewConfig() *Config {
	return &Config{
		LogLevel:    defaultLoggingLevel,
		Environment: defaultEnvironment,
		BaseURL:     defaultBaseURL,
		Timeout:     defaultTimeout,
	}
}

// Load variables from '.env' file (should be located at working directory)
func (c *Config) LoadDotEnv(getwd func() (string, error)) error {
	wd, err := getwd()
	if err != nil {
		return err
	}

	envMap, err := godotenv.Read(filepath.Join(wd, ".env"))

	switch {
	case err == nil:
		c.LoadEnv(func(key string) string {
			return envMap[key]
		})
		return nil
	case errors.Is(err, os.ErrNotExist):
		return nil
	default:
		return err
	}
}

func (c *Config) LoadEnv(getenv func(string) string) {
	// Set option to value if it not empty
	setString := func(o *string) func(value string) {
		return func(value string) {
			if value != "" {
				*o = value
			}
		}
	}
	setDuration := func(o *time.Duration) func(value string) {
		return func(value string) {
			if value == "" {
				return
			}
			if d, err := time.ParseDuration(value); err == nil {
				*o = d
			}
		}
	}

	envMap := map[string]func(string){
		"FLEETORY_API_URL":      setString(&c.BaseURL),
		"FLEETORY_TIMEOUT":      setDuration(&c.Timeout),
		"FLEETORY_LOG_LEVEL":    setString(&c.LogLevel),
		"FLEETORY_ENVIRONMENT":  setString(&c.Environment),
		"FLEETORY_SESSION_FILE": setString(&c.SessionFile),
	}

	for key, parseFn := range envMap {
		parseFn(getenv(key))
	}
}

// ParseFlags parses global flags and returns the remaining command arguments
func (c *Config) ParseFlags(args []string) ([]string, error) {
	fs := pflag.NewFlagSet("fleetory-console", pflag.ContinueOnError)

	fs.StringVarP(&c.BaseURL, "api", "a", c.BaseURL, "Platform API base URL")
	fs.DurationVarP(&c.Timeout, "timeout", "t", c.Timeout, "Per request timeout")
	fs.StringVarP(&c.LogLevel, "log-level", "l", c.LogLevel, "Logging level (debug, info, warn, error)")
	fs.StringVarP(&c.Environment, "environment", "e", c.Environment, "Environment (dev, prod)")
	fs.StringVarP(&c.SessionFile, "session-file", "s", c.SessionFile, "Session record location")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

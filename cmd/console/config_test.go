package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("set default option", func(t *testing.T) {
		c := NewConfig()

		require.Equal(t, "http://localhost:8080/api/v1", c.BaseURL, "default base URL not set")
		require.Equal(t, 10*time.Second, c.Timeout, "default timeout not set")
		require.Equal(t, "info", c.LogLevel, "default log level not set")
		require.Equal(t, "dev", c.Environment, "default environment not set")
		require.Equal(t, "", c.SessionFile, "session file should be empty by default")
	})

	t.Run("load env", func(t *testing.T) {
		c := NewConfig()
		getenv := func(key string) string {
			switch key {
			case "FLEETORY_API_URL":
				return "https://api.fleetory.dev/api/v1"
			case "FLEETORY_TIMEOUT":
				return "5s"
			case "FLEETORY_LOG_LEVEL":
				return "debug"
			case "FLEETORY_ENVIRONMENT":
				return "prod"
			case "FLEETORY_SESSION_FILE":
				return "/tmp/session.json"
			default:
				return ""
			}
		}

		c.LoadEnv(getenv)

		require.Equal(t, "https://api.fleetory.dev/api/v1", c.BaseURL)
		require.Equal(t, 5*time.Second, c.Timeout)
		require.Equal(t, "debug", c.LogLevel)
		require.Equal(t, "prod", c.Environment)
		require.Equal(t, "/tmp/session.json", c.SessionFile)
	})

	t.Run("load env ignores malformed timeout", func(t *testing.T) {
		c := NewConfig()

		c.LoadEnv(func(key string) string {
			if key == "FLEETORY_TIMEOUT" {
				return "not-a-duration"
			}
			return ""
		})

		require.Equal(t, 10*time.Second, c.Timeout, "malformed timeout should keep the default")
	})

	t.Run("parse flags", func(t *testing.T) {
		t.Run("valid flags", func(t *testing.T) {
			tests := []struct {
				name  string
				flags []string
			}{
				{
					name: "short",
					flags: []string{
						"-a", "https://api.fleetory.dev/api/v1",
						"-t", "5s",
						"-l", "debug",
						"-e", "prod",
						"-s", "/tmp/session.json",
					},
				},
				{
					name: "long",
					flags: []string{
						"--api", "https://api.fleetory.dev/api/v1",
						"--timeout", "5s",
						"--log-level", "debug",
						"--environment", "prod",
						"--session-file", "/tmp/session.json",
					},
				},
			}

			for _, tt := range tests {
				t.Run(tt.name, func(t *testing.T) {
					c := NewConfig()

					_, err := c.ParseFlags(tt.flags)

					require.NoError(t, err, "correct flags must pursed without error")
					require.Equal(t, "https://api.fleetory.dev/api/v1", c.BaseURL)
					require.Equal(t, 5*time.Second, c.Timeout)
					require.Equal(t, "debug", c.LogLevel)
					require.Equal(t, "prod", c.Environment)
					require.Equal(t, "/tmp/session.json", c.SessionFile)
				})
			}
		})

		t.Run("remaining args returned as the command", func(t *testing.T) {
			c := NewConfig()

			args, err := c.ParseFlags([]string{"-l", "debug", "orders", "list"})

			require.NoError(t, err)
			require.Equal(t, []string{"orders", "list"}, args)
		})

		t.Run("invalid flags", func(t *testing.T) {
			c := NewConfig()

			_, err := c.ParseFlags([]string{
				"--invalid-flag", "value",
			})

			require.Error(t, err, "invalid flag should return an error")
		})
	})
}

package main

import (
	"flag"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func newLogLevelContext(t *testing.T, level string) *cli.Context {
	t.Helper()
	set := flag.NewFlagSet("test", flag.ContinueOnError)
	set.String("log-level", level, "")
	return cli.NewContext(cli.NewApp(), set, nil)
}

func TestSetupLogger(t *testing.T) {
	original := slog.Default()
	defer slog.SetDefault(original)

	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			assert.NoError(t, setupLogger(newLogLevelContext(t, level)), "level %q", level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := setupLogger(newLogLevelContext(t, "verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verbose")
	})
}

func TestApiKeyFromEnv(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "")
		os.Unsetenv("GOOGLE_API_KEY")
		_, err := apiKeyFromEnv()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv("GOOGLE_API_KEY", "from-env")
		key, err := apiKeyFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "from-env", key)
	})
}

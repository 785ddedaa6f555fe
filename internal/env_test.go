package internal

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, name string, value string) func() {
	require.NoError(t, os.Setenv(name, value))
	return func() { os.Unsetenv(name) }
}

func TestRequireEnv(t *testing.T) {
	defer setEnv(t, "SMARTFLY_TEST_TABLE", "sessions")()
	require.Equal(t, "sessions", RequireEnv("SMARTFLY_TEST_TABLE"))

	require.PanicsWithValue(t, "SMARTFLY_TEST_MISSING is empty", func() {
		RequireEnv("SMARTFLY_TEST_MISSING")
	})
}

func TestEnvOr(t *testing.T) {
	require.Equal(t, "fallback", EnvOr("SMARTFLY_TEST_MISSING", "fallback"))

	defer setEnv(t, "SMARTFLY_TEST_LEVEL", "debug")()
	require.Equal(t, "debug", EnvOr("SMARTFLY_TEST_LEVEL", "info"))
}

func TestEnvHours(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "Unset", value: "", want: 24 * time.Hour},
		{name: "Whole hours", value: "6", want: 6 * time.Hour},
		{name: "Not a number", value: "six", want: 24 * time.Hour},
		{name: "Negative", value: "-1", want: 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer setEnv(t, "SMARTFLY_TEST_TTL", tt.value)()
			require.Equal(t, tt.want, EnvHours("SMARTFLY_TEST_TTL", 24*time.Hour))
		})
	}
}

func TestEnvLocation(t *testing.T) {
	loc, err := EnvLocation("SMARTFLY_TEST_MISSING")
	require.NoError(t, err)
	require.Equal(t, time.Local, loc)

	cleanup := setEnv(t, "SMARTFLY_TEST_TZ", "UTC")
	loc, err = EnvLocation("SMARTFLY_TEST_TZ")
	cleanup()
	require.NoError(t, err)
	require.Equal(t, "UTC", loc.String())

	defer setEnv(t, "SMARTFLY_TEST_TZ", "Mars/Olympus")()
	_, err = EnvLocation("SMARTFLY_TEST_TZ")
	require.Error(t, err)
}

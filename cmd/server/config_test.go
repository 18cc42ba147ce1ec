package main

import (
	"line-chat/errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	for _, key := range []string{"HOST", "PORT", "LOG_LEVEL", "STATUS_BUFFER_SIZE",
		"METRIC_INTERVAL", "WRITE_TIMEOUT", "CENSORED_DIR", "CENSORED_CHAR"} {
		t.Setenv(key, "")
		req.NoError(os.Unsetenv(key))
	}

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal("0.0.0.0", config.Host)
	req.Equal(8080, config.Port)
	req.Equal("INFO", config.LogLevel)
	req.Equal(64, config.StatusBufferSize)
	req.Equal(30*time.Second, config.MetricInterval)
	req.Equal(5*time.Second, config.WriteTimeout)
	req.Empty(config.CensoredDir)
	r, err := config.CharacterRune()
	req.NoError(err)
	req.Equal('*', r)
}

func TestLoadConfig_Overrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9000")
	t.Setenv("METRIC_INTERVAL", "5s")
	t.Setenv("WRITE_TIMEOUT", "250ms")
	t.Setenv("CENSORED_CHAR", "#")

	config, err := LoadConfig()

	req.NoError(err)
	req.Equal("127.0.0.1", config.Host)
	req.Equal(9000, config.Port)
	req.Equal(5*time.Second, config.MetricInterval)
	req.Equal(250*time.Millisecond, config.WriteTimeout)
	r, err := config.CharacterRune()
	req.NoError(err)
	req.Equal('#', r)
}

func TestLoadConfig_Rejects_Out_Of_Range_Port(t *testing.T) {
	req := require.New(t)
	t.Setenv("PORT", "70000")

	_, err := LoadConfig()

	req.Error(err)
}

func TestConfig_CharacterRune_Must_Be_Single(t *testing.T) {
	req := require.New(t)
	config := Config{CensoredChar: "**"}

	_, err := config.CharacterRune()

	req.ErrorIs(err, errors.ErrInvalidCharacter)
}

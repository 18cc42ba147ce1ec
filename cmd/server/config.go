package main

import (
	"fmt"
	"line-chat/errors"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Config struct {
	Host             string        `env:"HOST,default=0.0.0.0" validate:"required"`
	Port             int           `env:"PORT,default=8080" validate:"min=0,max=65535"`
	LogLevel         string        `env:"LOG_LEVEL,default=INFO" validate:"required"`
	StatusBufferSize int           `env:"STATUS_BUFFER_SIZE,default=64" validate:"min=1"`
	MetricInterval   time.Duration `env:"METRIC_INTERVAL,default=30s" validate:"gt=0"`
	WriteTimeout     time.Duration `env:"WRITE_TIMEOUT,default=5s" validate:"min=0"`
	CensoredDir      string        `env:"CENSORED_DIR"`
	CensoredChar     string        `env:"CENSORED_CHAR,default=*"`
}

// LoadConfig reads the server configuration from the environment.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return config, fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(config); err != nil {
		return config, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) CharacterRune() (rune, error) {
	r := []rune(c.CensoredChar)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: CENSORED_CHAR=%q", errors.ErrInvalidCharacter, c.CensoredChar)
	}
	return r[0], nil
}

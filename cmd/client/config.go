package main

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerHost string `envconfig:"CHAT_SERVER_HOST" default:"127.0.0.1"`
	ServerPort int    `envconfig:"CHAT_SERVER_PORT" default:"8080"`
	LogLevel   string `envconfig:"CHAT_LOG_LEVEL" default:"INFO"`
	// CHAT_COLOURS colours sender prefixes in the terminal
	Colours bool `envconfig:"CHAT_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

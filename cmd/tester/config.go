package main

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HubURL   string `envconfig:"HUB_URL" default:"ws://localhost:8080"`
	Username string `envconfig:"USERNAME" default:"tester"`
	// TESTER_COLOURS enables colorized output for better readability
	Colours bool `envconfig:"TESTER_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

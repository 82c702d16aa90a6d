package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// HUB_ADDR points at a running hub, e.g. ws://localhost:8080.
	// The suite skips itself when unset.
	HubAddr string `envconfig:"HUB_ADDR"`
	// E2E_DEBUG_FRAMES dumps every raw frame exchanged over the socket
	DebugFrames bool `envconfig:"E2E_DEBUG_FRAMES" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}

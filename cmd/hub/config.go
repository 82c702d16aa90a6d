package main

import "time"

type Config struct {
	Host     string `env:"HOST,default=localhost"`
	Port     int    `env:"PORT,default=8080"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`
	RoomName string `env:"ROOM_NAME,default=the study room"`

	ModelBaseURL string `env:"MODEL_BASE_URL,required=true"`
	ModelAPIKey  string `env:"MODEL_API_KEY,required=true"`
	PlannerModel string `env:"PLANNER_MODEL,required=true"`
	// FacilitatorModel and SelectorModel fall back to PlannerModel when unset
	FacilitatorModel    string        `env:"FACILITATOR_MODEL"`
	SelectorModel       string        `env:"SELECTOR_MODEL"`
	ModelRequestTimeout time.Duration `env:"MODEL_REQUEST_TIMEOUT,default=2m"`

	TurnSentinel  string `env:"TURN_SENTINEL,default=WAIT"`
	MaxUtterances int    `env:"MAX_UTTERANCES,default=3"`
	ResponderRole string `env:"RESPONDER_ROLE,default=Planner"`

	TelemetryInterval time.Duration `env:"TELEMETRY_INTERVAL,default=30s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
}

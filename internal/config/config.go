package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel           string   `yaml:"log-level" env-default:"info"`
	Server             Server   `yaml:"server"`
	Realtime           Realtime `yaml:"realtime"`
	PollIntervalMs     int      `yaml:"poll-interval-ms" env-default:"3000"`
	BotPollIntervalMs  int      `yaml:"bot-poll-interval-ms" env-default:"1000"`
	SessionStoragePath string   `yaml:"session-storage-path" env-default:"sessions.db"`
}

type Server struct {
	BaseURL          string `yaml:"base-url" env-default:"http://localhost:8000"`
	RequestTimeoutMs int    `yaml:"request-timeout-ms" env-default:"10000"`
}

type Realtime struct {
	Driver string `yaml:"driver" env-default:"redis"`
	Redis  Redis  `yaml:"redis"`
	NATS   NATS   `yaml:"nats"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type NATS struct {
	URL string `yaml:"url" env-default:"nats://localhost:4222"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Config) PollInterval() time.Duration {
	return time.Duration(that.PollIntervalMs) * time.Millisecond
}

func (that *Config) BotPollInterval() time.Duration {
	return time.Duration(that.BotPollIntervalMs) * time.Millisecond
}

func (that *Server) RequestTimeout() time.Duration {
	return time.Duration(that.RequestTimeoutMs) * time.Millisecond
}

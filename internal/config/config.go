package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage    string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	SessionTTL time.Duration `yaml:"session-ttl" env:"SESSION_TTL" env-default:"1h"`
	Redis      Redis         `yaml:"redis"`
	Players    Players       `yaml:"players"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Players holds the names shown before anyone types their own.
type Players struct {
	X string `yaml:"x" env:"PLAYER_X" env-default:"Player X"`
	O string `yaml:"o" env:"PLAYER_O" env-default:"Player O"`
}

// MustLoad - load all configurations from the file at path, panics on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load reads the config file at path, environment variables take precedence.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadEnv(config); err != nil {
		return nil, fmt.Errorf("unable to read environment: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) validate() error {
	if that.Storage != StorageMemory && that.Storage != StorageRedis {
		return fmt.Errorf("unknown storage %q", that.Storage)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

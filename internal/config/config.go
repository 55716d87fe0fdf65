package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string   `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Redis      Redis    `yaml:"redis"`
	Postgres   Postgres `yaml:"postgres"`
	Peer       Peer     `yaml:"peer"`
	Game       Game     `yaml:"game"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// Postgres - an empty DSN disables the results archive.
type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN" env-default:""`
}

type Peer struct {
	ListenAddr    string        `yaml:"listen-addr" env:"PEER_LISTEN_ADDR" env-default:"127.0.0.1:0"`
	AdvertiseHost string        `yaml:"advertise-host" env:"PEER_ADVERTISE_HOST" env-default:""`
	DialTimeout   time.Duration `yaml:"dial-timeout" env:"PEER_DIAL_TIMEOUT" env-default:"10s"`
	SignalTTL     time.Duration `yaml:"signal-ttl" env:"PEER_SIGNAL_TTL" env-default:"10m"`
}

type Game struct {
	// GuardedUpdates makes move writes conditional on the revision the player saw.
	GuardedUpdates bool `yaml:"guarded-updates" env:"GAME_GUARDED_UPDATES" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Postgres) Enabled() bool {
	return that.DSN != ""
}

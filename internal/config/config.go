package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"local"`
	MySQL      MySQL  `yaml:"mysql"`
	HTTPServer `yaml:"http_server"`
	WSServer   WSServer `yaml:"ws_server"`
	Pusher     Pusher   `yaml:"pusher"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type WSServer struct {
	Address     string        `yaml:"address" env-default:"localhost:8081"`
	URL         string        `yaml:"url" env-default:"ws://localhost:8081/ws?room=games"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type MySQL struct {
	User     string `yaml:"user" env:"MYSQL_USER" env-default:"root"`
	Password string `yaml:"password" env:"MYSQL_PASSWORD" env-default:""`
	Host     string `yaml:"host" env:"MYSQL_HOST" env-default:"localhost:3306"`
	Database string `yaml:"database" env:"MYSQL_DATABASE" env-default:"coinclash"`
}

type Pusher struct {
	Enabled bool   `yaml:"enabled" env:"PUSHER_ENABLED" env-default:"false"`
	AppID   string `yaml:"app_id" env:"PUSHER_APP_ID"`
	Key     string `yaml:"key" env:"PUSHER_KEY"`
	Secret  string `yaml:"secret" env:"PUSHER_SECRET"`
	Cluster string `yaml:"cluster" env:"PUSHER_CLUSTER" env-default:"eu"`
}

func MustLoad() *Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			panic("failed to read config from env: " + err.Error())
		}

		return &cfg
	}

	if _, err := os.Stat(path); err != nil {
		panic("config file does not exist: " + path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}

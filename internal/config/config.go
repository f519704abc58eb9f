package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	TelnetPort string `yaml:"telnet-port" env-default:"11329"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	Assets     Assets `yaml:"assets"`
	Game       Game   `yaml:"game"`
}

type Assets struct {
	Banner string `yaml:"banner" env-default:"assets/banner.txt"`
	Words  string `yaml:"words" env-default:"assets/words.txt"`
}

type Game struct {
	OpponentWait time.Duration `yaml:"opponent-wait" env-default:"2m30s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

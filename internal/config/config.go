package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env-default:"info"`

	// Mode - local keeps both seats on this terminal, host waits for a peer
	// on ListenAddr, join connects to a hosting peer at ConnectAddr.
	Mode string `yaml:"mode" env-default:"local"`

	ListenAddr  string `yaml:"listen-addr" env-default:":7777"`
	ConnectAddr string `yaml:"connect-addr" env-default:"127.0.0.1:7777"`

	// HostMark and HostFirst are the seat the hosting side keeps for itself;
	// the connecting side is assigned the complement during the handshake.
	HostMark  string `yaml:"host-mark" env-default:"X"`
	HostFirst bool   `yaml:"host-first" env-default:"true"`

	// Opponent - who sits on the second seat in local mode.
	Opponent      string `yaml:"opponent" env-default:"bot"`
	BotDifficulty string `yaml:"bot-difficulty" env-default:"hard"`

	BoardStyle string `yaml:"board-style" env-default:"ascii"`
	BoardColor bool   `yaml:"board-color" env-default:"true"`

	Archive Archive `yaml:"archive"`
}

type Archive struct {
	Enabled bool  `yaml:"enabled" env-default:"false"`
	Redis   Redis `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
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

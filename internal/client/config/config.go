package config

import "time"

// Config holds runtime settings for the hoverboard CLI.
type Config struct {
	ServerEndpointAddr  string
	OnlineCheckInterval time.Duration
	SessionDir          string
	MaxAvatarBytes      int64
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.SessionDir = ".hoverboard"
	c.MaxAvatarBytes = 5 << 20
}

// LoadConfig applies defaults, then the JSON file, then flags; later
// sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

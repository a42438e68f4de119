package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/hoverboard/internal/flagx"
	"github.com/dmitrijs2005/hoverboard/internal/timex"
)

// JsonConfig is the on-disk form of Config. Intervals accept "3s" or
// integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr  string          `json:"server_endpoint_addr"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	SessionDir          string          `json:"session_dir"`
	MaxAvatarBytes      *int64          `json:"max_avatar_bytes"`
}

// parseJson overlays values from the file named by -c or -config. Missing
// keys keep their current values; unreadable or invalid files panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.SessionDir != "" {
		cfg.SessionDir = jc.SessionDir
	}
	if jc.MaxAvatarBytes != nil {
		cfg.MaxAvatarBytes = *jc.MaxAvatarBytes
	}
}

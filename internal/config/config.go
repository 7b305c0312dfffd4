package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server  Server  `yaml:"server" json:"server"`
	Storage Storage `yaml:"storage" json:"storage"`
	Refresh Refresh `yaml:"refresh" json:"refresh"`
}

type Server struct {
	Addr string `yaml:"addr" json:"addr"`
}

type Storage struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

// Refresh controls the periodic status recompute.
type Refresh struct {
	Cron string `yaml:"cron" json:"cron"`
}

func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = ":8099"
	}
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		c.Storage.DataDir = "data"
	}
	if strings.TrimSpace(c.Refresh.Cron) == "" {
		c.Refresh.Cron = "@hourly"
	}
}

// Load reads the YAML config at path. A missing file is not an error;
// the service runs on defaults.
func Load(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	c.ApplyDefaults()
	c.applyEnv()
	return &c, nil
}

// applyEnv lets environment variables override file values.
func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("WARTUNGSPLANER_ADDR")); v != "" {
		c.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv("WARTUNGSPLANER_DATA_DIR")); v != "" {
		c.Storage.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("WARTUNGSPLANER_REFRESH_CRON")); v != "" {
		c.Refresh.Cron = v
	}
}

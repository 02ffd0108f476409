package agentbay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentbay/agentbay-go/internal/jsonc"
)

// Config resolves the three scalars the control-plane client needs:
// endpoint, region and timeout. Resolution order, highest precedence
// first: explicit constructor args, then the JSONC dotfile, then
// environment variables, then built-in defaults.
type Config struct {
	Endpoint         string
	RegionID         string
	TimeoutMs        int64
	ReadTimeoutMs    int64
	ConnectTimeoutMs int64
}

// DotfileName is the optional JSONC config file resolved relative to the
// current working directory.
const DotfileName = ".agentbay.jsonc"

const envAPIKey = "AGENTBAY_API_KEY"

func defaultConfig() Config {
	return Config{
		TimeoutMs:        30000,
		ReadTimeoutMs:    60000,
		ConnectTimeoutMs: 10000,
	}
}

type dotfileConfig struct {
	RegionID  string `json:"region_id"`
	Endpoint  string `json:"endpoint"`
	TimeoutMs int64  `json:"timeout_ms"`
}

// resolveConfig merges explicit (may be nil or partially populated) over
// the dotfile, over the environment, over built-in defaults.
func resolveConfig(explicit *Config) (Config, error) {
	cfg := defaultConfig()

	if v := os.Getenv("AGENTBAY_REGION_ID"); v != "" {
		cfg.RegionID = v
	}
	if v := os.Getenv("AGENTBAY_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}

	if dotCfg, ok, err := loadDotfile(); err != nil {
		return Config{}, err
	} else if ok {
		if dotCfg.RegionID != "" {
			cfg.RegionID = dotCfg.RegionID
		}
		if dotCfg.Endpoint != "" {
			cfg.Endpoint = dotCfg.Endpoint
		}
		if dotCfg.TimeoutMs != 0 {
			cfg.TimeoutMs = dotCfg.TimeoutMs
		}
	}

	if explicit != nil {
		if explicit.RegionID != "" {
			cfg.RegionID = explicit.RegionID
		}
		if explicit.Endpoint != "" {
			cfg.Endpoint = explicit.Endpoint
		}
		if explicit.TimeoutMs != 0 {
			cfg.TimeoutMs = explicit.TimeoutMs
		}
		if explicit.ReadTimeoutMs != 0 {
			cfg.ReadTimeoutMs = explicit.ReadTimeoutMs
		}
		if explicit.ConnectTimeoutMs != 0 {
			cfg.ConnectTimeoutMs = explicit.ConnectTimeoutMs
		}
	}

	if cfg.Endpoint == "" {
		return Config{}, fmt.Errorf("agentbay: no endpoint configured (set explicitly, via %s, or in %s)", "AGENTBAY_ENDPOINT", DotfileName)
	}

	return cfg, nil
}

func loadDotfile() (dotfileConfig, bool, error) {
	wd, err := os.Getwd()
	if err != nil {
		return dotfileConfig{}, false, nil
	}
	path := filepath.Join(wd, DotfileName)
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dotfileConfig{}, false, nil
		}
		return dotfileConfig{}, false, fmt.Errorf("agentbay: reading %s: %w", path, err)
	}

	stripped := jsonc.Strip(raw)
	var dc dotfileConfig
	if err := json.Unmarshal(stripped, &dc); err != nil {
		return dotfileConfig{}, false, fmt.Errorf("agentbay: parsing %s: %w", path, err)
	}
	return dc, true, nil
}

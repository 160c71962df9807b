package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"tangled.org/atscan.net/termbar"
)

// FileConfig carries bar defaults loadable from a JSON config file.
// Flags always win over the file; the file wins over built-in defaults.
type FileConfig struct {
	Width          int  `json:"width,omitempty"`
	DrawAtBottom   bool `json:"draw_at_bottom,omitempty"`
	AvoidBlink     bool `json:"avoid_blink,omitempty"`
	ClearAfterStop bool `json:"clear_after_stop,omitempty"`
}

// loadFileConfig reads the config file at path, or the default location
// ($TERMBAR_CONFIG, then ~/.config/termbar/config.json) when path is
// empty. A missing default file is not an error.
func loadFileConfig(path string) (*FileConfig, error) {
	explicit := path != ""
	if path == "" {
		path = os.Getenv("TERMBAR_CONFIG")
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return &FileConfig{}, nil
		}
		path = filepath.Join(home, ".config", "termbar", "config.json")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// barOptions converts a file config into bar options.
func barOptions(cfg *FileConfig) []termbar.Option {
	var opts []termbar.Option
	if cfg.Width != 0 {
		opts = append(opts, termbar.WithWidth(cfg.Width))
	}
	if cfg.DrawAtBottom {
		opts = append(opts, termbar.WithDrawAtBottom(true))
	}
	if cfg.AvoidBlink {
		opts = append(opts, termbar.WithAvoidBlink(true))
	}
	if cfg.ClearAfterStop {
		opts = append(opts, termbar.WithClearAfterStop(true))
	}
	return opts
}

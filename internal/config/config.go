package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all user-facing configuration for geostamp.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Stamp   StampConfig   `toml:"stamp"`
	MapTile MapTileConfig `toml:"maptile"`
}

type ServerConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MaxUploadMB int    `toml:"max_upload_mb"`
}

type StorageConfig struct {
	Dir string `toml:"dir"`
}

type StampConfig struct {
	Style       string   `toml:"style"` // "badge", "textbar" or "exif"
	Attribution string   `toml:"attribution"`
	FontPaths   []string `toml:"font_paths"`
}

type MapTileConfig struct {
	Enabled     bool    `toml:"enabled"`
	URLTemplate string  `toml:"url_template"`
	Zoom        int     `toml:"zoom"`
	TimeoutSecs int     `toml:"timeout_seconds"`
	RateLimit   float64 `toml:"rate_limit"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server:  ServerConfig{Host: "localhost", Port: 8000, MaxUploadMB: 16},
		Storage: StorageConfig{Dir: "data"},
		Stamp: StampConfig{
			Style:       "badge",
			Attribution: "© OpenStreetMap contributors",
		},
		MapTile: MapTileConfig{
			Enabled:     true,
			URLTemplate: "https://staticmap.openstreetmap.de/staticmap.php?center={lat},{lng}&zoom={zoom}&size={width}x{height}",
			Zoom:        14,
			TimeoutSecs: 5,
			RateLimit:   1.0,
		},
	}
}

// Load reads a TOML config file. If the file does not exist, built-in
// defaults are returned without error.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

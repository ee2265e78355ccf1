package config

import (
	"embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed default/config.toml
var configFS embed.FS

// Current holds the loaded configuration for the running application.
var Current = Load()

type Config struct {
	UI     UIConfig         `toml:"ui"`
	Colors map[string]Color `toml:"colors"`
}

type UIConfig struct {
	// DefaultView names the view shown at startup and whenever a deep link
	// cannot be resolved. It must be registered before the program starts.
	DefaultView string `toml:"default_view"`
	// DefaultLayout wraps views that do not declare their own layout.
	DefaultLayout string `toml:"default_layout"`
	// FrameIntervalMs is the coalescing window for render passes.
	FrameIntervalMs int    `toml:"frame_interval_ms"`
	Title           string `toml:"title"`
}

type Color struct {
	Fg        string `toml:"fg"`
	Bg        string `toml:"bg"`
	Bold      *bool  `toml:"bold"`
	Italic    *bool  `toml:"italic"`
	Underline *bool  `toml:"underline"`
	Reverse   *bool  `toml:"reverse"`
}

func (c *Config) Merge(data string) error {
	if _, err := toml.Decode(data, c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func loadDefaultConfig() *Config {
	data, err := configFS.ReadFile("default/config.toml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: no embedded default config found: %v\n", err)
		os.Exit(1)
	}
	config := &Config{}
	if err := config.Merge(string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: failed to load embedded default config: %v\n", err)
		os.Exit(1)
	}
	return config
}

// Load returns the embedded defaults merged with the user's config file,
// if one exists.
func Load() *Config {
	config := loadDefaultConfig()
	path := getConfigFilePath()
	if path == "" {
		return config
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config
	}
	if err := config.Merge(string(data)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring invalid config %s: %v\n", path, err)
		return loadDefaultConfig()
	}
	return config
}

package game

import (
	"github.com/samdwyer/readydeck/internal/config"
	"github.com/samdwyer/readydeck/internal/telemetry"
)

// Config holds game configuration options.
type Config struct {
	// Seed for the deck shuffle. A seed of 0 means a time-based seed.
	Seed int64 `env:"READYDECK_SEED" envDefault:"0"`
	// Shuffle base cards within their category when dealing.
	Shuffle bool `env:"READYDECK_SHUFFLE" envDefault:"false"`
	// ExportDir is where summary exports are written.
	ExportDir string `env:"READYDECK_EXPORT_DIR" envDefault:"."`
	// ExportHTML also writes an HTML rendition of the export.
	ExportHTML bool `env:"READYDECK_EXPORT_HTML" envDefault:"false"`
	// LogFile receives log output while the terminal is in use. Empty discards logs.
	LogFile string `env:"READYDECK_LOG_FILE"`

	Telemetry telemetry.Config
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

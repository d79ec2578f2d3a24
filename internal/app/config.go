package app

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/MacsInSpace/plex-tui/internal/usecases"
)

// Config holds the application configuration loaded from environment
// variables.
type Config struct {
	PlexBaseURL string `env:"PLEX_BASE_URL,notEmpty"`
	PlexToken   string `env:"PLEX_TOKEN,notEmpty"`

	LargePlaylistThreshold int `env:"PLEX_LARGE_PLAYLIST_THRESHOLD" envDefault:"1000"`
	LargePlaylistLimit     int `env:"PLEX_LARGE_PLAYLIST_LIMIT" envDefault:"50"`
	RegularPlaylistLimit   int `env:"PLEX_REGULAR_PLAYLIST_LIMIT" envDefault:"100"`
	MaxAPIResults          int `env:"PLEX_MAX_API_RESULTS" envDefault:"1000"`
	ShuffleThreshold       int `env:"PLEX_SHUFFLE_THRESHOLD" envDefault:"50"`
	SearchLimit            int `env:"PLEX_SEARCH_LIMIT" envDefault:"20"`

	PlayerCommand string        `env:"PLAYER_CMD" envDefault:"ffplay"`
	HTTPTimeout   time.Duration `env:"PLEX_HTTP_TIMEOUT" envDefault:"30s"`
	Debug         bool          `env:"PLEX_DEBUG" envDefault:"false"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE" envDefault:"plex-tui.log"`
}

// LoadConfig loads configuration from environment variables, reading a
// local .env file first if one exists. Returns an error if required fields
// are missing.
func LoadConfig() (*Config, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Limits returns the fetch limit set derived from the configuration.
func (c *Config) Limits() usecases.Limits {
	return usecases.Limits{
		LargePlaylistThreshold: c.LargePlaylistThreshold,
		LargePlaylistLimit:     c.LargePlaylistLimit,
		RegularPlaylistLimit:   c.RegularPlaylistLimit,
		MaxAPIResults:          c.MaxAPIResults,
	}
}

// Package config loads the deployment configuration from environment
// variables, with a .env file honored for local development.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// Outbound fetch policy. AllowedHosts are matched exactly;
	// AllowedDomains also admit any subdomain.
	AllowedHosts   []string      `env:"ALLOWED_HOSTS" envSeparator:"," envDefault:"www.bfv.de"`
	AllowedDomains []string      `env:"ALLOWED_DOMAINS" envSeparator:"," envDefault:"bfv.de"`
	FetchTimeout   time.Duration `env:"FETCH_TIMEOUT" envDefault:"20s"`

	// Team identity used by the home/away classifier.
	ClubName   string   `env:"CLUB_NAME" envDefault:"FC Stern München"`
	TeamName   string   `env:"TEAM_NAME"`
	CityTokens []string `env:"CITY_TOKENS" envSeparator:"," envDefault:"München"`

	// HomeVenue fills the location of home fixtures when the source
	// supplies none.
	HomeVenue string `env:"HOME_VENUE" envDefault:"Feldbergstraße 55, 81825 München"`

	// Timezone for kickoff times scraped from HTML (wall-clock, no
	// conversion).
	Timezone string `env:"TIMEZONE" envDefault:"Europe/Berlin"`

	// ScanWorkers bounds concurrent feed fetches in a multi-team scan.
	ScanWorkers int `env:"SCAN_WORKERS" envDefault:"4"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves the configured timezone, falling back to local time
// when the name is unknown.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

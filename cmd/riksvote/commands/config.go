package commands

import (
	"fmt"
	"riksvote/internal/enrich"
	"riksvote/internal/scrapers/riksdagen"
	"riksvote/lib/configutil"
	"time"
)

// Config is the content of riksvote.json5, durations use time.ParseDuration syntax.
// MaxRate caps requests per second on top of the delay, a negative value removes the cap.
type Config struct {
	Input    string  `json:"input"`
	Output   string  `json:"output"`
	Delay    string  `json:"delay"`
	BaseUrl  string  `json:"base_url"`
	Timeout  string  `json:"timeout"`
	MaxRate  float64 `json:"max_rate"`
	Cache    string  `json:"cache"`
	Schedule string  `json:"schedule"`
}

func defaultConfig() Config {
	return Config{
		Input:    "data/votings-final.csv",
		Output:   "data/votings-final-updated.csv",
		Delay:    enrich.DefaultDelay.String(),
		BaseUrl:  riksdagen.DefaultBaseUrl,
		Timeout:  riksdagen.DefaultTimeout.String(),
		MaxRate:  2,
		Schedule: "0 3 * * *",
	}
}

// LoadConfig reads the config at path over the defaults, a missing file is not an error.
func LoadConfig(path string) (Config, error) {
	return configutil.ReadOptional(path, defaultConfig())
}

// EnrichFlags are the command line overrides of an enrichment run, empty means unset.
type EnrichFlags struct {
	In      string
	Out     string
	Delay   string
	Cache   string
	BaseUrl string
}

type enrichSettings struct {
	Input   string
	Output  string
	Delay   time.Duration
	Timeout time.Duration
	MaxRate float64
	BaseUrl string
	Cache   string
}

func override(value, flag string) string {
	if flag != "" {
		return flag
	}
	return value
}

func resolveEnrichSettings(c Config, flags EnrichFlags) (enrichSettings, error) {
	s := enrichSettings{
		Input:   override(c.Input, flags.In),
		Output:  override(c.Output, flags.Out),
		BaseUrl: override(c.BaseUrl, flags.BaseUrl),
		Cache:   override(c.Cache, flags.Cache),
	}
	if s.Input == "" || s.Output == "" {
		return enrichSettings{}, fmt.Errorf("both an input and an output path are required")
	}

	delay, err := time.ParseDuration(override(c.Delay, flags.Delay))
	if err != nil {
		return enrichSettings{}, fmt.Errorf("invalid delay: %w", err)
	}
	if delay < 0 {
		return enrichSettings{}, fmt.Errorf("invalid delay: %s is negative", delay)
	}
	s.Delay = delay

	if c.MaxRate > 0 {
		s.MaxRate = c.MaxRate
	}

	if c.Timeout != "" {
		timeout, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return enrichSettings{}, fmt.Errorf("invalid timeout: %w", err)
		}
		// riksdagen.ClientOptions treats zero as "use the default", a configured zero
		// means no timeout.
		if timeout <= 0 {
			timeout = -1
		}
		s.Timeout = timeout
	}
	return s, nil
}

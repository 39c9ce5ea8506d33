// Package config loads the pipeline configuration from a single YAML file
// and applies defaults for everything the file leaves out.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aerofix/aerofix"
)

// Config holds every knob of the batch pipeline. All stages share one file
// so a run is reproducible from a single artifact.
type Config struct {
	// WorkDir is where the stage output files (cities.json, records.json,
	// reports) are written.
	WorkDir string `yaml:"work_dir"`
	// DataDir holds the raw reference dataset downloads.
	DataDir string `yaml:"data_dir"`
	// CacheDir holds the parsed reference-set cache.
	CacheDir string `yaml:"cache_dir"`

	// Countries to cover during city discovery.
	Countries []string `yaml:"countries"`

	LLM     LLMConfig             `yaml:"llm"`
	Matcher aerofix.MatcherConfig `yaml:"matcher"`

	// DiscoverCitiesPerCountry is how many cities the discovery stage asks
	// for per country.
	DiscoverCitiesPerCountry int `yaml:"discover_cities_per_country"`

	// DuplicateRadiusKm is the validation pass's proximity threshold: two
	// records matched to distinct reference airports closer than this are
	// flagged as suspected duplicates of one physical airport.
	DuplicateRadiusKm float64 `yaml:"duplicate_radius_km"`
}

// Duration wraps time.Duration so YAML configs can say "500ms" or "2s".
type Duration time.Duration

// UnmarshalYAML accepts Go duration strings.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"500ms\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// LLMConfig configures the local language-model endpoint.
type LLMConfig struct {
	Endpoint string `yaml:"endpoint"`
	Model    string `yaml:"model"`
	// RequestDelay is the fixed pause between consecutive requests. The
	// pipeline deliberately has no retry policy: a failed call skips the
	// record and moves on.
	RequestDelay Duration `yaml:"request_delay"`
	Timeout      Duration `yaml:"timeout"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		WorkDir:  "./work",
		DataDir:  "./aerofix-data",
		CacheDir: "./aerofix-cache",
		LLM: LLMConfig{
			Endpoint:     "http://localhost:11434",
			Model:        "llama3.1",
			RequestDelay: Duration(500 * time.Millisecond),
			Timeout:      Duration(120 * time.Second),
		},
		Matcher:                  aerofix.DefaultMatcherConfig(),
		DiscoverCitiesPerCountry: 30,
		DuplicateRadiusKm:        3,
	}
}

// Load reads a YAML config file on top of the defaults. A missing file path
// ("") yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.WorkDir == "" {
		return fmt.Errorf("work_dir must not be empty")
	}
	if c.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint must not be empty")
	}
	if c.LLM.RequestDelay < 0 {
		return fmt.Errorf("llm.request_delay must not be negative")
	}
	if c.Matcher.PartialMinNameLen < 1 || c.Matcher.PartialMinTokenLen < 1 || c.Matcher.PartialOverlapCap < 1 {
		return fmt.Errorf("matcher thresholds must be positive")
	}
	if c.DuplicateRadiusKm <= 0 {
		return fmt.Errorf("duplicate_radius_km must be positive")
	}
	if c.DiscoverCitiesPerCountry < 1 {
		return fmt.Errorf("discover_cities_per_country must be positive")
	}
	return nil
}

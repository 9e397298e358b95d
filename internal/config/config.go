package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "lessonbuilder.yaml"

// Config represents the lessonbuilder configuration.
type Config struct {
	Input    string         `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Site     SiteConfig     `yaml:"site"`
	Build    BuildConfig    `yaml:"build"`
	Retrofit RetrofitConfig `yaml:"retrofit"`
	Metrics  MetricsConfig  `yaml:"metrics,omitempty"`
}

// OutputConfig controls where compiled pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	PagesDir  string `yaml:"pages_dir"`  // single path segment below Directory
	IndexFile string `yaml:"index_file"` // listing page at the output root
	Report    *bool  `yaml:"report,omitempty"`
}

// ReportEnabled reports whether build-report.json/.txt should be written (default true).
func (o OutputConfig) ReportEnabled() bool {
	return o.Report == nil || *o.Report
}

// HeadLink is an extra resource referenced from every page head (CDN scripts, font CSS).
type HeadLink struct {
	Type string `yaml:"type"` // script|stylesheet
	Href string `yaml:"href"`
}

// SiteConfig carries presentation strings and asset references.
type SiteConfig struct {
	Title      string     `yaml:"title,omitempty"`
	Lang       string     `yaml:"lang"`
	Subtitle   string     `yaml:"subtitle,omitempty"`
	Footer     string     `yaml:"footer,omitempty"`
	HeadLinks  []HeadLink `yaml:"head_links,omitempty"`
	Stylesheet string     `yaml:"stylesheet"` // relative to the output root
	Script     string     `yaml:"script"`     // relative to the output root
}

// BuildConfig toggles compile behavior.
type BuildConfig struct {
	StrictSequence bool `yaml:"strict_sequence"`
	MarkdownText   bool `yaml:"markdown_text"`
	VerifyLinks    bool `yaml:"verify_links"`
}

// RetrofitConfig describes the page range the retrofit patcher may touch.
// First and Last are pointers so an explicit 0 survives defaulting.
type RetrofitConfig struct {
	PagesDir string `yaml:"pages_dir"`
	First    *int   `yaml:"first,omitempty"`
	Last     *int   `yaml:"last,omitempty"`
	Marker   string `yaml:"marker"`
}

// Bounds returns the configured range; unset ends read as 0.
func (r RetrofitConfig) Bounds() (first, last int) {
	if r.First != nil {
		first = *r.First
	}
	if r.Last != nil {
		last = *r.Last
	}
	return first, last
}

func intPtr(v int) *int { return &v }

// ResolveInput gives a non-empty CLI override precedence over the configured input.
func (c *Config) ResolveInput(override string) string {
	if override != "" {
		return override
	}
	return c.Input
}

// ResolveOutputDir gives a non-empty CLI override precedence over output.directory.
func (c *Config) ResolveOutputDir(override string) string {
	if override != "" {
		return override
	}
	return c.Output.Directory
}

// MetricsConfig enables the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, lberrors.ConfigNotFound(configPath)
	}

	// #nosec G304 -- path comes from the operator's CLI flag
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, lberrors.ConfigInvalid(configPath, fmt.Errorf("read: %w", err))
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, lberrors.ConfigInvalid(configPath, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when configPath does not exist.
func LoadOrDefault(configPath string) (*Config, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return Load(configPath)
		}
	}
	loadEnvFiles()
	cfg := &Config{}
	if err := applyDefaults(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Input: "data/book.json",
		Output: OutputConfig{
			Directory: ".",
			PagesDir:  "pages",
			IndexFile: "index.html",
		},
		Site: SiteConfig{
			Lang: "fa",
			HeadLinks: []HeadLink{
				{Type: "script", Href: "https://cdn.tailwindcss.com"},
				{Type: "stylesheet", Href: "https://cdn.jsdelivr.net/gh/rastikerdar/vazirmatn@v33.003/Vazirmatn-font-face.css"},
			},
			Stylesheet: "assets/styles.css",
			Script:     "assets/app.js",
		},
		Build: BuildConfig{VerifyLinks: true},
		Retrofit: RetrofitConfig{
			PagesDir: "pages",
			First:    intPtr(7),
			Last:     intPtr(43),
			Marker:   "global-sidebar",
		},
		Metrics: MetricsConfig{Textfile: "${LESSONBUILDER_METRICS_TEXTFILE}"},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// #nosec G306 -- config file is meant to be readable
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

package config

import "strings"

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// OutputDefaultApplier handles Input and Output defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if strings.TrimSpace(cfg.Input) == "" {
		cfg.Input = "data/book.json"
	}
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "."
	}
	if cfg.Output.PagesDir == "" {
		cfg.Output.PagesDir = "pages"
	}
	if cfg.Output.IndexFile == "" {
		cfg.Output.IndexFile = "index.html"
	}
	return nil
}

// SiteDefaultApplier handles Site defaults. Title, subtitle and footer stay empty
// so the localized labels fill them in.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Lang == "" {
		cfg.Site.Lang = "fa"
	}
	if cfg.Site.Stylesheet == "" {
		cfg.Site.Stylesheet = "assets/styles.css"
	}
	if cfg.Site.Script == "" {
		cfg.Site.Script = "assets/app.js"
	}
	for i := range cfg.Site.HeadLinks {
		cfg.Site.HeadLinks[i].Type = strings.ToLower(strings.TrimSpace(cfg.Site.HeadLinks[i].Type))
	}
	return nil
}

// RetrofitDefaultApplier handles Retrofit defaults.
type RetrofitDefaultApplier struct{}

func (RetrofitDefaultApplier) Domain() string { return "retrofit" }

func (RetrofitDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Retrofit.PagesDir == "" {
		cfg.Retrofit.PagesDir = "pages"
	}
	if cfg.Retrofit.First == nil {
		cfg.Retrofit.First = intPtr(7)
	}
	if cfg.Retrofit.Last == nil {
		cfg.Retrofit.Last = intPtr(43)
	}
	if cfg.Retrofit.Marker == "" {
		cfg.Retrofit.Marker = "global-sidebar"
	}
	return nil
}

var defaultAppliers = []DefaultApplier{
	OutputDefaultApplier{},
	SiteDefaultApplier{},
	RetrofitDefaultApplier{},
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

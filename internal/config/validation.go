package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the fully-defaulted configuration for values the build cannot work with.
func Validate(cfg *Config) error {
	if err := validateSegment("output.pages_dir", cfg.Output.PagesDir); err != nil {
		return err
	}
	if err := validateSegment("output.index_file", cfg.Output.IndexFile); err != nil {
		return err
	}
	for i, l := range cfg.Site.HeadLinks {
		switch l.Type {
		case "script", "stylesheet":
		default:
			return fmt.Errorf("site.head_links[%d].type: unsupported value %q (want script or stylesheet)", i, l.Type)
		}
		if strings.TrimSpace(l.Href) == "" {
			return fmt.Errorf("site.head_links[%d].href: must not be empty", i)
		}
	}
	if first, last := cfg.Retrofit.Bounds(); first < 0 || last < first {
		return fmt.Errorf("retrofit range %d..%d is invalid", first, last)
	}
	if strings.ContainsAny(cfg.Retrofit.Marker, `"<> `) {
		return fmt.Errorf("retrofit.marker %q is not a valid element id", cfg.Retrofit.Marker)
	}
	return nil
}

// validateSegment requires a single relative path element; page links assume
// lesson pages sit exactly one directory below the index.
func validateSegment(field, v string) error {
	if v == "" || v == "." || v == ".." || strings.ContainsAny(v, `/\`) || filepath.IsAbs(v) {
		return fmt.Errorf("%s: %q must be a single path segment", field, v)
	}
	return nil
}

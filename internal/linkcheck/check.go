// Package linkcheck verifies relative links and fragments between emitted pages.
package linkcheck

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BrokenLink is one unresolvable link.
type BrokenLink struct {
	Source string `json:"source"` // page path relative to the root
	Href   string `json:"href"`
	Reason string `json:"reason"`
}

// Result summarizes a verification run.
type Result struct {
	Pages  int          `json:"pages"`
	Links  int          `json:"links"`
	Broken []BrokenLink `json:"broken,omitempty"`
}

// OK reports whether no broken links were found.
func (r *Result) OK() bool { return len(r.Broken) == 0 }

// Summary returns a human-readable single-line summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("pages=%d links=%d broken=%d", r.Pages, r.Links, len(r.Broken))
}

// Check verifies every .html file below root.
func Check(root string) (*Result, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".html") {
			rel, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return CheckFiles(root, files)
}

// CheckFiles verifies the given pages (slash-separated, relative to root).
// Link targets outside the list are still resolved against the filesystem.
func CheckFiles(root string, files []string) (*Result, error) {
	c := &checker{root: root, cache: map[string]*page{}}
	res := &Result{}
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	for _, rel := range sorted {
		p, err := c.load(rel)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", rel, err)
		}
		res.Pages++
		for _, href := range p.links {
			res.Links++
			if reason := c.resolve(rel, href); reason != "" {
				res.Broken = append(res.Broken, BrokenLink{Source: rel, Href: href, Reason: reason})
			}
		}
	}
	return res, nil
}

type checker struct {
	root  string
	cache map[string]*page
}

func (c *checker) load(rel string) (*page, error) {
	if p, ok := c.cache[rel]; ok {
		return p, nil
	}
	p, err := parseFile(filepath.Join(c.root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	c.cache[rel] = p
	return p, nil
}

// resolve returns "" when href resolves, otherwise the reason it does not.
func (c *checker) resolve(source, href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return "unparseable href"
	}
	if u.Scheme != "" || u.Host != "" || strings.HasPrefix(u.Path, "/") {
		return ""
	}

	target := source
	if u.Path != "" {
		target = filepath.ToSlash(filepath.Join(filepath.Dir(filepath.FromSlash(source)), filepath.FromSlash(u.Path)))
		if target == ".." || strings.HasPrefix(target, "../") {
			return "target outside output root"
		}
		info, err := os.Stat(filepath.Join(c.root, filepath.FromSlash(target)))
		if err != nil {
			return "target file missing"
		}
		if info.IsDir() {
			return ""
		}
	}

	if u.Fragment == "" || !strings.EqualFold(filepath.Ext(target), ".html") {
		return ""
	}
	p, err := c.load(target)
	if err != nil {
		return "target not parseable"
	}
	if !p.ids[u.Fragment] {
		return fmt.Sprintf("fragment #%s not found", u.Fragment)
	}
	return ""
}

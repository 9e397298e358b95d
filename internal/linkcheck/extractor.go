package linkcheck

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/net/html"
)

// page is what the checker needs from one HTML document.
type page struct {
	ids   map[string]bool
	links []string
}

func parseFile(path string) (*page, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close() // read-only
	}()
	return parse(f)
}

func parse(r io.Reader) (*page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	p := &page{ids: map[string]bool{}}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if id := getAttr(n, "id"); id != "" {
				p.ids[id] = true
			}
			if n.Data == "a" {
				if href := getAttr(n, "href"); href != "" {
					p.links = append(p.links, href)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return p, nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

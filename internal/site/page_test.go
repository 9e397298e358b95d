package site

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

// sectionAnchors returns every element id and the hrefs of in-page anchors.
func sectionAnchors(t *testing.T, page []byte) (map[string]bool, []string) {
	t.Helper()
	doc, err := html.Parse(bytes.NewReader(page))
	require.NoError(t, err)
	ids := map[string]bool{}
	var hrefs []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" {
					ids[a.Val] = true
				}
				if n.Data == "a" && a.Key == "href" && strings.HasPrefix(a.Val, "#") {
					hrefs = append(hrefs, a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return ids, hrefs
}

func TestAssemblePage_FragmentLinksMatchNonASCIIIDs(t *testing.T) {
	b := mustDecode(t, `{"lessons":[{"seq":1,"title":"درس","sections":[{"title":"مقدمه درس"},{"title":"Intro"}]}]}`)
	out, err := AssemblePage(b.Lessons, 0, Env{})
	require.NoError(t, err)

	ids, hrefs := sectionAnchors(t, out.Content)
	require.Len(t, hrefs, 4, "section strip and lesson map")
	for _, h := range hrefs {
		assert.True(t, ids[strings.TrimPrefix(h, "#")], "href %q does not name an element id", h)
	}
	assert.Contains(t, string(out.Content), `data-section href="#مقدمه-درس"`)
	assert.NotContains(t, string(out.Content), "%d9")
}

func TestFragmentHref_EscapesQuotes(t *testing.T) {
	assert.Equal(t, `href="#a&#34;b"`, string(fragmentHref(`a"b`)))
}

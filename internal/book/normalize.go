package book

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
	"git.home.luguber.info/inful/lessonbuilder/internal/slug"
)

const (
	defaultHeadingLevel = 3
	defaultSectionTitle = "section"
)

// fields is one decoded JSON/YAML object.
type fields map[string]any

func asFields(v any) (fields, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(fields, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}

// list returns the sequence under key. Absent or null is an empty sequence;
// any other non-sequence value is a structural error.
func (f fields) list(key, where string) ([]any, error) {
	v, ok := f[key]
	if !ok || v == nil {
		return nil, nil
	}
	l, ok := v.([]any)
	if !ok {
		return nil, lberrors.DocumentMalformed(fmt.Sprintf("%s.%s is not a list", where, key), nil)
	}
	return l, nil
}

// str returns the value under key when it is a string, else "".
func (f fields) str(key string) string {
	s, _ := f[key].(string)
	return s
}

func (f fields) trimmed(key string) string {
	return strings.TrimSpace(f.str(key))
}

func normalizeBook(raw any) (*Book, error) {
	root, ok := asFields(raw)
	if !ok {
		return nil, lberrors.DocumentMalformed("document is not an object", nil)
	}
	rawLessons, err := root.list("lessons", "document")
	if err != nil {
		return nil, err
	}
	b := &Book{Lessons: make([]Lesson, 0, len(rawLessons))}
	for i, rl := range rawLessons {
		where := fmt.Sprintf("lessons[%d]", i)
		lf, ok := asFields(rl)
		if !ok {
			return nil, lberrors.DocumentMalformed(where+" is not an object", nil)
		}
		l, err := normalizeLesson(lf, i, where)
		if err != nil {
			return nil, err
		}
		b.Lessons = append(b.Lessons, l)
	}
	return b, nil
}

func normalizeLesson(f fields, idx int, where string) (Lesson, error) {
	l := Lesson{Title: f.str("title")}
	if seq, ok := toInt(f["seq"]); ok && seq > 0 {
		l.Seq = seq
	} else {
		l.Seq = idx + 1
	}

	rawSections, err := f.list("sections", where)
	if err != nil {
		return l, err
	}
	used := make(map[string]bool, len(rawSections))
	l.Sections = make([]Section, 0, len(rawSections))
	for j, rs := range rawSections {
		swhere := fmt.Sprintf("%s.sections[%d]", where, j)
		sf, ok := asFields(rs)
		if !ok {
			return l, lberrors.DocumentMalformed(swhere+" is not an object", nil)
		}
		s, err := normalizeSection(sf, swhere)
		if err != nil {
			return l, err
		}
		s.ID = uniqueID(s.ID, used)
		l.Sections = append(l.Sections, s)
	}
	return l, nil
}

func normalizeSection(f fields, where string) (Section, error) {
	s := Section{Title: f.str("title")}
	switch id := f.trimmed("id"); {
	case id != "":
		s.ID = slug.Slugify(id)
	case s.Title != "":
		s.ID = slug.Slugify(s.Title)
	default:
		s.ID = slug.Slugify(defaultSectionTitle)
	}

	rawBlocks, err := f.list("content", where)
	if err != nil {
		return s, err
	}
	s.Blocks = make([]Block, 0, len(rawBlocks))
	for k, rb := range rawBlocks {
		bf, ok := asFields(rb)
		if !ok {
			return s, lberrors.DocumentMalformed(fmt.Sprintf("%s.content[%d] is not an object", where, k), nil)
		}
		s.Blocks = append(s.Blocks, normalizeBlock(bf))
	}
	return s, nil
}

// uniqueID suffixes repeated ids with -2, -3... in document order.
func uniqueID(id string, used map[string]bool) string {
	candidate := id
	for n := 2; used[candidate]; n++ {
		candidate = id + "-" + strconv.Itoa(n)
	}
	used[candidate] = true
	return candidate
}

func normalizeBlock(f fields) Block {
	switch Tag(f.trimmed("type")) {
	case TagHeading:
		level, ok := toInt(f["level"])
		if !ok || level < 1 {
			level = defaultHeadingLevel
		}
		return &Heading{Level: level, Text: f.trimmed("text")}
	case TagText:
		return &Text{Text: f.trimmed("text")}
	case TagList:
		return normalizeList(f)
	case TagTable:
		return normalizeTable(f)
	case TagBox:
		return &Box{
			Style:   boxStyle(f.str("style")),
			Title:   f.trimmed("title"),
			Content: f.trimmed("content"),
		}
	default:
		return &Unknown{Type: f.trimmed("type")}
	}
}

func normalizeList(f fields) *List {
	l := &List{Ordered: truthy(f["ordered"]), Title: f.trimmed("title")}
	items, _ := f["items"].([]any)
	for _, it := range items {
		if s, ok := it.(string); ok && strings.TrimSpace(s) != "" {
			l.Items = append(l.Items, strings.TrimSpace(s))
		}
	}
	return l
}

func normalizeTable(f fields) *Table {
	t := &Table{Title: f.trimmed("title"), Note: f.trimmed("note")}
	if headers, ok := f["headers"].([]any); ok {
		t.Headers = make([]string, len(headers))
		for i, h := range headers {
			t.Headers[i] = cellText(h)
		}
	}
	rows, _ := f["rows"].([]any)
	for _, r := range rows {
		cells, ok := r.([]any)
		if !ok {
			cells = []any{r}
		}
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = cellText(c)
		}
		t.Rows = append(t.Rows, row)
	}
	if len(t.Headers) == 0 && len(t.Rows) > 0 {
		t.Headers = make([]string, len(t.Rows[0]))
	}
	return t
}

func boxStyle(raw string) BoxStyle {
	switch s := BoxStyle(strings.ToLower(strings.TrimSpace(raw))); s {
	case "":
		return BoxStyleNote
	case BoxStyleNote, BoxStyleWarning, BoxStyleSummary:
		return s
	default:
		return BoxStyleCard
	}
}

// cellText renders a scalar verbatim. Nested values are JSON-encoded.
func cellText(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case json.Number:
		return c.String()
	case bool:
		return strconv.FormatBool(c)
	case int:
		return strconv.Itoa(c)
	case int64:
		return strconv.FormatInt(c, 10)
	case uint64:
		return strconv.FormatUint(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	default:
		if b, err := json.Marshal(c); err == nil {
			return string(b)
		}
		return fmt.Sprint(c)
	}
}

// toInt accepts integers, integral floats and numeric strings.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return toInt(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case int:
		return b != 0
	case float64:
		return b != 0
	case []any:
		return len(b) > 0
	case map[string]any:
		return len(b) > 0
	}
	return true
}

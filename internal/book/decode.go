package book

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	lberrors "git.home.luguber.info/inful/lessonbuilder/internal/errors"
)

// Format is the serialization of a lesson document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q", filepath.Ext(path))
	}
}

// Load reads and decodes the document at path.
func Load(path string) (*Book, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, lberrors.DocumentUnreadable(path, err)
	}
	// #nosec G304 -- document path is operator supplied
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, lberrors.DocumentUnreadable(path, err)
	}
	b, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		if lbe, ok := lberrors.As(err); ok {
			return nil, lbe.WithContext("path", path)
		}
		return nil, err
	}
	return b, nil
}

// Decode parses a document and normalizes it into a fully-defaulted Book.
// Only structural problems (wrong container types) are errors.
func Decode(r io.Reader, format Format) (*Book, error) {
	var raw any
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, lberrors.DocumentMalformed("invalid JSON", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
			return nil, lberrors.DocumentMalformed("invalid YAML", err)
		}
	default:
		return nil, lberrors.DocumentMalformed(fmt.Sprintf("unknown format %q", format), nil)
	}
	return normalizeBook(raw)
}

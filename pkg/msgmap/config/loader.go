package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/msgmap/pkg/msgmap"
	"github.com/randalmurphal/msgmap/pkg/msgmap/store"
)

// FromFile loads a definition from a file, auto-detecting format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string, opts ...Option) (msgmap.Definition, error) {
	format, err := formatForExt(filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition file: %w", err)
	}
	return decodeBytes(format, data, opts)
}

// FromYAML parses YAML data into a Definition.
func FromYAML(data []byte, opts ...Option) (msgmap.Definition, error) {
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return Decode(m, opts...)
}

// FromJSON parses JSON data into a Definition.
func FromJSON(data []byte, opts ...Option) (msgmap.Definition, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return Decode(m, opts...)
}

// FromURL fetches a definition over HTTP. The format is taken from the
// response Content-Type, falling back to the URL path's extension and then
// to JSON.
func FromURL(ctx context.Context, client *http.Client, rawURL string, opts ...Option) (msgmap.Definition, error) {
	if client == nil {
		return nil, errors.New("definition loader: http client is not configured")
	}
	if rawURL == "" {
		return nil, errors.New("definition loader: url is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch definition: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch definition: unexpected status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read definition body: %w", err)
	}

	return decodeBytes(formatForResponse(resp.Header.Get("Content-Type"), rawURL), data, opts)
}

// FromStore loads the named document from s.
func FromStore(s store.Store, name string, opts ...Option) (msgmap.Definition, error) {
	doc, err := s.Load(name)
	if err != nil {
		return nil, fmt.Errorf("load definition %q: %w", name, err)
	}
	return decodeBytes(doc.Format, doc.Data, opts)
}

func decodeBytes(format store.Format, data []byte, opts []Option) (msgmap.Definition, error) {
	switch format {
	case store.FormatYAML:
		return FromYAML(data, opts...)
	case store.FormatJSON:
		return FromJSON(data, opts...)
	default:
		return nil, fmt.Errorf("unsupported definition format: %s", format)
	}
}

func formatForExt(ext string) (store.Format, error) {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return store.FormatYAML, nil
	case ".json":
		return store.FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported definition file extension: %s", ext)
	}
}

func formatForResponse(contentType, rawURL string) store.Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return store.FormatYAML
	case strings.Contains(ct, "json"):
		return store.FormatJSON
	}
	if u, err := url.Parse(rawURL); err == nil {
		if f, err := formatForExt(filepath.Ext(u.Path)); err == nil {
			return f
		}
	}
	return store.FormatJSON
}

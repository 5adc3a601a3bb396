// Package config loads renderer settings from a YAML file.
//
//	limits:
//	  max_total_pages: 18
//	  max_section_pages: 10
//	assets:
//	  dir: ./assets
//	  brand_name: Harbour Street Bakery
//	letterhead: ./letterhead.pdf
//	watermark:
//	  text: DRAFT
//	  opacity: 0.2
//	cover_code: pdf417
//	log_level: debug
//
// Relative paths are resolved against the directory holding the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	policypdf "github.com/Jontyellis1212/policysprint-ai-sub000"
	"github.com/Jontyellis1212/policysprint-ai-sub000/cover"
)

// File is the on-disk configuration. Zero values keep the renderer's
// defaults.
type File struct {
	Limits     Limits    `yaml:"limits"`
	Assets     Assets    `yaml:"assets"`
	Letterhead string    `yaml:"letterhead,omitempty"`
	Watermark  Watermark `yaml:"watermark"`
	CoverCode  string    `yaml:"cover_code,omitempty"`
	Compress   *bool     `yaml:"compress,omitempty"`
	LogLevel   string    `yaml:"log_level,omitempty"`

	base string // directory relative paths resolve against
}

// Limits mirrors policypdf.Limits.
type Limits struct {
	MaxTotalPages   int `yaml:"max_total_pages,omitempty"`
	MaxSectionPages int `yaml:"max_section_pages,omitempty"`
}

// Assets locates brand images.
type Assets struct {
	Dir             string   `yaml:"dir,omitempty"`
	BrandCandidates []string `yaml:"brand_candidates,omitempty"`
	BrandName       string   `yaml:"brand_name,omitempty"`
}

// Watermark configures the preview watermark.
type Watermark struct {
	Text    string  `yaml:"text,omitempty"`
	Opacity float64 `yaml:"opacity,omitempty"`
}

// Load reads and validates the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	f.base = filepath.Dir(path)
	return f, nil
}

// Parse decodes and validates YAML. Unknown keys are rejected so a typo does
// not silently fall back to a default. An empty document is valid.
func Parse(data []byte) (*File, error) {
	f := &File{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parsing YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate reports the first out-of-range setting.
func (f *File) Validate() error {
	switch {
	case f.Limits.MaxTotalPages != 0 && f.Limits.MaxTotalPages < 2:
		return fmt.Errorf("config: limits.max_total_pages must be at least 2, got %d", f.Limits.MaxTotalPages)
	case f.Limits.MaxSectionPages < 0:
		return fmt.Errorf("config: limits.max_section_pages must be positive, got %d", f.Limits.MaxSectionPages)
	case f.Watermark.Opacity < 0 || f.Watermark.Opacity > 1:
		return fmt.Errorf("config: watermark.opacity must be within [0, 1], got %g", f.Watermark.Opacity)
	}
	if _, err := cover.ParseCodeKind(f.CoverCode); err != nil {
		return fmt.Errorf("config: cover_code: %w", err)
	}
	if _, err := parseLevel(f.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level, info when unset.
func (f *File) Level() slog.Level {
	l, _ := parseLevel(f.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelInfo, nil
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("config: log_level: %w", err)
	}
	return l, nil
}

// Options converts the file into render options. Unset settings produce no
// option.
func (f *File) Options() []policypdf.Option {
	var opts []policypdf.Option
	if n := f.Limits.MaxTotalPages; n > 0 {
		opts = append(opts, policypdf.WithMaxTotalPages(n))
	}
	if n := f.Limits.MaxSectionPages; n > 0 {
		opts = append(opts, policypdf.WithMaxSectionPages(n))
	}
	if f.Assets.Dir != "" {
		opts = append(opts, policypdf.WithAssetDir(f.resolve(f.Assets.Dir)))
	}
	if len(f.Assets.BrandCandidates) > 0 {
		opts = append(opts, policypdf.WithBrandCandidates(f.Assets.BrandCandidates...))
	}
	if f.Assets.BrandName != "" {
		opts = append(opts, policypdf.WithBrandName(f.Assets.BrandName))
	}
	if f.Letterhead != "" {
		opts = append(opts, policypdf.WithLetterhead(f.resolve(f.Letterhead)))
	}
	if f.Watermark.Text != "" {
		opts = append(opts, policypdf.WithWatermarkText(f.Watermark.Text))
	}
	if f.Watermark.Opacity > 0 {
		opts = append(opts, policypdf.WithWatermarkOpacity(f.Watermark.Opacity))
	}
	if f.CoverCode != "" {
		kind, _ := cover.ParseCodeKind(f.CoverCode)
		opts = append(opts, policypdf.WithCoverCode(kind))
	}
	if f.Compress != nil {
		opts = append(opts, policypdf.WithCompression(*f.Compress))
	}
	return opts
}

func (f *File) resolve(p string) string {
	if filepath.IsAbs(p) || f.base == "" {
		return p
	}
	return filepath.Join(f.base, p)
}

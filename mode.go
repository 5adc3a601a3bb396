package policypdf

import (
	"mime"
	"strings"
)

// Mode selects how a document is delivered.
type Mode int

const (
	// ModeDownload renders the final document without a watermark.
	ModeDownload Mode = iota
	// ModePreview stamps a watermark on every page, cover included.
	ModePreview
)

// ParseMode maps a mode string to a Mode. Matching is case-insensitive and
// anything other than "preview" selects ModeDownload.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "preview") {
		return ModePreview
	}
	return ModeDownload
}

func (m Mode) String() string {
	if m == ModePreview {
		return "preview"
	}
	return "download"
}

// ContentDisposition returns the Content-Disposition header value for
// serving a rendered document: inline for previews, attachment otherwise.
func ContentDisposition(m Mode, filename string) string {
	disposition := "attachment"
	if m == ModePreview {
		disposition = "inline"
	}
	if filename == "" {
		return disposition
	}
	return mime.FormatMediaType(disposition, map[string]string{"filename": filename})
}

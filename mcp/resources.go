package mcp

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/lvillar/gofpdf/reader"

	policypdf "github.com/Jontyellis1212/policysprint-ai-sub000"
)

// Resource URIs.
const (
	LimitsURI = "policypdf://limits"
	TextURI   = "policypdf://text"
)

// RegisterDefaultResources adds the limits and text resources. opts must
// match the ones given to RegisterDefaultTools so the reported limits are
// the ones renders use.
func RegisterDefaultResources(s *Server, opts ...policypdf.Option) {
	RegisterResources(s, StaticOptions(opts...))
}

// RegisterResources adds the limits and text resources, reading the limits
// from src on every read.
func RegisterResources(s *Server, src OptionSource) {
	s.AddResource(Resource{
		URI:         LimitsURI,
		Name:        "Page budgets",
		Description: "The total and per-section page caps applied to every render.",
		MIMEType:    "application/json",
		Handler: func(uri string) ([]ResourceContent, error) {
			data, err := json.MarshalIndent(policypdf.EffectiveLimits(src()...), "", "  ")
			if err != nil {
				return nil, err
			}
			return []ResourceContent{{URI: uri, MIMEType: "application/json", Text: string(data)}}, nil
		},
	})

	s.AddResource(Resource{
		URI:         TextURI,
		Name:        "PDF text",
		Description: "Text of every page of a PDF file, e.g. policypdf://text?path=/tmp/policy.pdf",
		MIMEType:    "text/plain",
		Handler:     handleTextResource,
	})
}

// resourceKey strips the query so parameterised URIs find their resource.
func resourceKey(uri string) string {
	if i := strings.IndexByte(uri, '?'); i >= 0 {
		return uri[:i]
	}
	return uri
}

func handleTextResource(uri string) ([]ResourceContent, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parsing URI: %w", err)
	}
	path := u.Query().Get("path")
	if path == "" {
		return nil, fmt.Errorf("missing 'path' parameter in URI")
	}
	doc, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	for n, text := range pageTexts(doc) {
		fmt.Fprintf(&b, "--- Page %d ---\n%s\n\n", n+1, text)
	}
	return []ResourceContent{{URI: uri, MIMEType: "text/plain", Text: b.String()}}, nil
}

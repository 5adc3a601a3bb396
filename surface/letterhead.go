package surface

import (
	"fmt"

	"github.com/lvillar/gofpdf/contrib/gofpdi"
	"github.com/lvillar/gofpdf/reader"

	"github.com/Jontyellis1212/policysprint-ai-sub000/theme"
)

type letterhead struct {
	imp   *gofpdi.Importer
	tplID int
}

// ImportLetterhead loads the first page of the PDF at path as a template
// that DrawLetterhead paints under page content. The file is checked with
// the reader first; any failure leaves the surface untouched.
func (s *Surface) ImportLetterhead(path string) (err error) {
	if err := s.Err(); err != nil {
		return err
	}
	doc, err := reader.Open(path)
	if err != nil {
		return fmt.Errorf("surface: letterhead %s: %w", path, err)
	}
	if doc.NumPages() < 1 {
		return fmt.Errorf("surface: letterhead %s: no pages", path)
	}

	// gofpdi panics on some inputs the reader accepts.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("surface: letterhead %s: %v", path, r)
		}
	}()

	imp := gofpdi.NewImporter()
	tplID := imp.ImportPage(s.pdf, path, 1, "/MediaBox")
	if s.pdf.Err() {
		cause := s.pdf.Error()
		s.pdf.ClearError()
		return fmt.Errorf("surface: letterhead %s: %w", path, cause)
	}
	s.letterhead = &letterhead{imp: imp, tplID: tplID}
	return nil
}

// HasLetterhead reports whether a letterhead template was imported.
func (s *Surface) HasLetterhead() bool {
	return s.letterhead != nil
}

// DrawLetterhead paints the imported template over the whole current page.
// It does nothing when no letterhead was imported.
func (s *Surface) DrawLetterhead() {
	if s.letterhead == nil {
		return
	}
	s.letterhead.imp.UseImportedTemplate(s.pdf, s.letterhead.tplID, 0, 0, theme.PageWidth, theme.PageHeight)
}

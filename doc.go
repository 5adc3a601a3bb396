/*
Package policypdf renders AI-use policies and staff quizzes as paginated PDF
documents.

Both renderers share one pipeline. Page 1 is a fixed-layout cover. Each
section then starts on a fresh page and flows across continuation pages
with a "continued" header. Every page after the cover gets a
"Page i of N" footer once the final count is known.

Generated text has no length bound, so every render enforces two page
budgets: a cap on the whole document (cover included, 18 by default) and a
cap on each policy section (10 by default). When a budget runs out the
section stops and a truncation notice is drawn on its last page. A
truncated render still succeeds; the notice is the only signal in the
document, and Result.Sections reports it to the caller.

	res, err := policypdf.RenderPolicy(policypdf.PolicyPayload{
		BusinessName: "Harbour Street Bakery",
		PolicyText:   text,
	}, policypdf.ParseMode(r.Header.Get("X-Render-Mode")))
	if errors.Is(err, policypdf.ErrInvalidPayload) {
		// 400
	}

In preview mode a diagonal watermark is stamped on every page. Brand
images are read from an optional asset filesystem before drawing starts;
a missing or unreadable image falls back to a text wordmark.
*/
package policypdf

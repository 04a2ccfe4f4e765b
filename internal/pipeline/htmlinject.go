package pipeline

import (
	"context"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StyleID marks the style block InjectCSS writes. Injecting into a page
// that already carries one replaces it.
const StyleID = "mdstrike-style"

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects a stylesheet, typically the chroma classes from
// StyleSheet, as a <style> block.
type CSSInjection struct{}

// InjectCSS places the stylesheet in HTML content: over an earlier block
// with StyleID, else before </head>, else after <body>, else in front.
// Tags are found with an HTML tokenizer, so lookalikes inside comments,
// attributes or scripts are ignored. CSS content is sanitized to prevent
// injection attacks.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	block := `<style id="` + StyleID + `">` + sanitizeCSS(cssContent) + "</style>"
	at := findInsertionPoints(htmlContent)

	switch {
	case at.styleEnd >= 0:
		return htmlContent[:at.styleStart] + block + htmlContent[at.styleEnd:]
	case at.headClose >= 0:
		return htmlContent[:at.headClose] + block + htmlContent[at.headClose:]
	case at.bodyOpen >= 0:
		return htmlContent[:at.bodyOpen] + block + htmlContent[at.bodyOpen:]
	}
	return block + htmlContent
}

// insertionPoints holds byte offsets into a page, -1 when absent.
type insertionPoints struct {
	styleStart, styleEnd int // an earlier StyleID block
	headClose            int // start of </head>
	bodyOpen             int // end of <body ...>
}

func findInsertionPoints(content string) insertionPoints {
	at := insertionPoints{styleStart: -1, styleEnd: -1, headClose: -1, bodyOpen: -1}
	z := html.NewTokenizer(strings.NewReader(content))

	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return at
		}
		start := offset
		offset += len(z.Raw())

		if tt != html.StartTagToken && tt != html.EndTagToken {
			continue
		}
		name, hasAttr := z.TagName()

		switch a := atom.Lookup(name); {
		case a == atom.Style && tt == html.StartTagToken && at.styleStart < 0 && hasAttr && hasStyleID(z):
			at.styleStart = start
		case a == atom.Style && tt == html.EndTagToken && at.styleStart >= 0 && at.styleEnd < 0:
			at.styleEnd = offset
		case a == atom.Head && tt == html.EndTagToken && at.headClose < 0:
			at.headClose = start
		case a == atom.Body && tt == html.StartTagToken && at.bodyOpen < 0:
			at.bodyOpen = offset
		}
	}
}

func hasStyleID(z *html.Tokenizer) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "id" && string(val) == StyleID {
			return true
		}
		if !more {
			return false
		}
	}
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

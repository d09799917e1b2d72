package render

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?1?[-.\s]?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}`)
	urlPattern   = regexp.MustCompile(`https?://[^\s<>"']+`)
)

// linker wraps contact details found in document text in anchors.
type linker struct {
	style string
}

func newLinker(color string) linker {
	style := "text-decoration: underline;"
	if color != "" {
		style = "color: " + color + "; " + style
	}
	return linker{style: style}
}

// Linkify runs the e-mail, phone and URL passes in that order. Each pass only
// rewrites text nodes that sit outside tags, outside existing anchors, and
// outside style or script blocks.
func (l linker) Linkify(doc string) string {
	doc = rewriteText(doc, l.emails)
	doc = rewriteText(doc, l.phones)
	doc = rewriteText(doc, l.urls)
	return doc
}

func (l linker) emails(text string) string {
	return emailPattern.ReplaceAllStringFunc(text, func(addr string) string {
		return `<a href="mailto:` + addr + `" style="` + l.style + `">` + addr + `</a>`
	})
}

func (l linker) phones(text string) string {
	return phonePattern.ReplaceAllStringFunc(text, func(match string) string {
		number := strings.TrimLeft(match, " \t\r\n\f")
		lead := match[:len(match)-len(number)]
		return lead + `<a href="tel:` + number + `" style="` + l.style + `">` + number + `</a>`
	})
}

func (l linker) urls(text string) string {
	locs := urlPattern.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		if quotedHref(text[:start]) {
			continue
		}
		url := text[start:end]
		b.WriteString(text[last:start])
		b.WriteString(`<a href="` + url + `" target="_blank" rel="noopener noreferrer" style="` + l.style + `">` + url + `</a>`)
		last = end
	}
	b.WriteString(text[last:])
	return b.String()
}

func quotedHref(prefix string) bool {
	return strings.HasSuffix(prefix, `href="`) || strings.HasSuffix(prefix, `href='`)
}

// rewriteText tokenizes doc and applies fn to eligible text nodes, copying
// every other token through byte for byte.
func rewriteText(doc string, fn func(string) string) string {
	z := html.NewTokenizer(strings.NewReader(doc))
	var out bytes.Buffer
	out.Grow(len(doc))

	anchors, raw := 0, 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// A tag cut off by the end of input comes back as raw bytes.
			out.Write(z.Raw())
			break
		}
		// TagName lowercases the buffer in place, so copy first.
		chunk := append([]byte(nil), z.Raw()...)
		switch tt {
		case html.TextToken:
			if anchors == 0 && raw == 0 {
				out.WriteString(fn(string(chunk)))
				continue
			}
		case html.StartTagToken:
			switch tagName(z) {
			case "a":
				anchors++
			case "style", "script":
				raw++
			}
		case html.EndTagToken:
			switch tagName(z) {
			case "a":
				if anchors > 0 {
					anchors--
				}
			case "style", "script":
				if raw > 0 {
					raw--
				}
			}
		}
		out.Write(chunk)
	}
	return out.String()
}

func tagName(z *html.Tokenizer) string {
	name, _ := z.TagName()
	return string(name)
}

// Package render turns chat text into HTML with activation controls that
// open pages in the browser pane.
//
// Bot text goes through two passes: **Name** emphasis becomes a control for
// catalog products (or plain <strong> otherwise), then raw http(s) URLs in
// visible text become controls. The URL pass walks HTML text tokens only and
// skips text already inside a control, so it never rewrites an attribute or
// a label produced by the first pass. User text is sanitized and only gets
// the URL pass.
package render

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/lojasmm/sonora/internal/catalog"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

const (
	maxLabelLen   = 50
	truncatedKeep = 47

	// ControlClass marks activation controls in rendered output.
	ControlClass = "product-link"
	// NavigateAttr carries the destination URL of an activation control.
	NavigateAttr = "data-navigate"
)

var (
	emphasisPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)
	urlPattern      = regexp.MustCompile(`(?i)https?://[^\s<>"']+`)
)

type Renderer struct {
	products  *catalog.Catalog
	sanitizer *bluemonday.Policy
}

func New(products *catalog.Catalog) *Renderer {
	return &Renderer{
		products:  products,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Render dispatches on role; anything that is not a bot message is treated
// as user text.
func (r *Renderer) Render(text string, role Role) string {
	if role == RoleBot {
		return r.Bot(text)
	}
	return r.User(text)
}

// Bot renders a bot response: emphasis first, then URLs.
func (r *Renderer) Bot(text string) string {
	return linkify(r.emphasis(text))
}

// User renders user-authored text: markup stripped, URLs linkified.
func (r *Renderer) User(text string) string {
	return linkify(r.sanitizer.Sanitize(text))
}

// FindURL returns the first http(s) URL in text.
func FindURL(text string) (string, bool) {
	u := urlPattern.FindString(text)
	return u, u != ""
}

// Label is the visible text of a URL control: the URL itself, or its first
// 47 characters plus "..." when it is longer than 50.
func Label(url string) string {
	runes := []rune(url)
	if len(runes) <= maxLabelLen {
		return url
	}
	return string(runes[:truncatedKeep]) + "..."
}

func (r *Renderer) emphasis(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range emphasisPattern.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		name := text[loc[2]:loc[3]]
		if url, ok := r.products.URL(name); ok {
			b.WriteString(control(url, name, "View "+name+" in browser"))
		} else {
			b.WriteString("<strong>" + html.EscapeString(name) + "</strong>")
		}
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

func control(url, label, title string) string {
	return fmt.Sprintf(`<a class="%s" href="#" %s="%s" title="%s">%s</a>`,
		ControlClass, NavigateAttr, html.EscapeString(url), html.EscapeString(title), html.EscapeString(label))
}

// linkify rewrites URLs found in the text nodes of an HTML fragment. Tags,
// attributes and anchor contents are copied through untouched.
func linkify(fragment string) string {
	z := xhtml.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	anchorDepth := 0
	for {
		tt := z.Next()
		switch tt {
		case xhtml.ErrorToken:
			// io.EOF is the only error a strings.Reader can produce
			return b.String()
		case xhtml.StartTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.A {
				anchorDepth++
			}
			b.Write(z.Raw())
		case xhtml.EndTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.A && anchorDepth > 0 {
				anchorDepth--
			}
			b.Write(z.Raw())
		case xhtml.TextToken:
			if anchorDepth > 0 {
				b.Write(z.Raw())
				continue
			}
			b.WriteString(linkifyText(string(z.Text())))
		default:
			b.Write(z.Raw())
		}
	}
}

// linkifyText escapes plain text and wraps each URL in a control.
func linkifyText(text string) string {
	var b strings.Builder
	last := 0
	for _, loc := range urlPattern.FindAllStringIndex(text, -1) {
		b.WriteString(html.EscapeString(text[last:loc[0]]))
		url := text[loc[0]:loc[1]]
		b.WriteString(control(url, Label(url), "Open in browser"))
		last = loc[1]
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String()
}

// Package sanitize neutralises user-supplied markup before it is sent to a
// client. Allow-listed tags survive with a reduced attribute set; any other
// tag is escaped so it renders as text instead of executing.
package sanitize

import (
	"strings"

	"golang.org/x/net/html"
)

// allowedTags maps each permitted element to its permitted attributes.
var allowedTags = map[string][]string{
	"a":          {"target", "href", "title"},
	"abbr":       {"title"},
	"b":          nil,
	"blockquote": {"cite"},
	"br":         nil,
	"code":       nil,
	"del":        {"datetime"},
	"div":        nil,
	"em":         nil,
	"h1":         nil,
	"h2":         nil,
	"h3":         nil,
	"h4":         nil,
	"h5":         nil,
	"h6":         nil,
	"hr":         nil,
	"i":          nil,
	"img":        {"src", "alt", "title", "width", "height"},
	"ins":        {"datetime"},
	"li":         nil,
	"mark":       nil,
	"ol":         nil,
	"p":          nil,
	"pre":        nil,
	"s":          nil,
	"small":      nil,
	"span":       nil,
	"strong":     nil,
	"sub":        nil,
	"sup":        nil,
	"u":          nil,
	"ul":         nil,
}

// urlAttrs hold URLs and are checked against safeURLPrefixes.
var urlAttrs = map[string]bool{"href": true, "src": true, "cite": true}

var safeURLPrefixes = []string{"http://", "https://", "mailto:", "tel:", "#", "/", "./", "../"}

var (
	textEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "<", "&lt;", ">", "&gt;")
)

// HTML returns s with executable markup neutralised. It is idempotent:
// HTML(HTML(s)) == HTML(s).
func HTML(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader can produce.
			return b.String()
		case html.TextToken:
			b.WriteString(textEscaper.Replace(string(z.Raw())))
		case html.CommentToken:
			// dropped
		case html.StartTagToken, html.SelfClosingTagToken:
			raw := string(z.Raw())
			tok := z.Token()
			attrs, ok := allowedTags[tok.Data]
			if !ok {
				b.WriteString(textEscaper.Replace(raw))
				continue
			}
			writeStartTag(&b, tok, attrs, tt == html.SelfClosingTagToken)
		case html.EndTagToken:
			raw := string(z.Raw())
			name, _ := z.TagName()
			if _, ok := allowedTags[string(name)]; ok {
				b.WriteString("</" + string(name) + ">")
				continue
			}
			b.WriteString(textEscaper.Replace(raw))
		default:
			b.WriteString(textEscaper.Replace(string(z.Raw())))
		}
	}
}

func writeStartTag(b *strings.Builder, tok html.Token, allowed []string, selfClosing bool) {
	b.WriteString("<")
	b.WriteString(tok.Data)
	for _, a := range tok.Attr {
		if a.Namespace != "" || !contains(allowed, a.Key) {
			continue
		}
		b.WriteString(" ")
		b.WriteString(a.Key)
		if v := safeAttrValue(a.Key, a.Val); v != "" {
			b.WriteString(`="`)
			b.WriteString(attrEscaper.Replace(v))
			b.WriteString(`"`)
		}
	}
	if selfClosing {
		b.WriteString(" /")
	}
	b.WriteString(">")
}

func safeAttrValue(key, val string) string {
	val = strings.TrimSpace(val)
	if !urlAttrs[key] || val == "" {
		return val
	}
	lower := strings.ToLower(val)
	for _, p := range safeURLPrefixes {
		if strings.HasPrefix(lower, p) {
			return val
		}
	}
	return ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

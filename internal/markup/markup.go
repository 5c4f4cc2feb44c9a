// Package markup cleans the HTML summaries returned by Spoonacular for display
// and converts them to plain text for exports.
package markup

import (
	"html/template"
	"net/url"
	"strings"
	"sync"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
	"golang.org/x/net/html"
)

// allowed lists the elements kept by Sanitize; everything else is unwrapped
var allowed = map[string]bool{
	"b": true, "strong": true, "i": true, "em": true,
	"p": true, "br": true, "ul": true, "ol": true, "li": true, "a": true,
}

// dropped elements lose their content as well as their tags
var dropped = map[string]bool{
	"script": true, "style": true, "iframe": true, "noscript": true, "template": true,
}

var (
	converterOnce sync.Once
	converter     *md.Converter
)

// Sanitize returns summary markup reduced to a small set of formatting
// elements. Links keep only http and https targets. Open tags are closed at
// the end so the result can be embedded anywhere.
func Sanitize(raw string) template.HTML {
	var sb strings.Builder
	var open []string
	skip := 0

	z := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			for i := len(open) - 1; i >= 0; i-- {
				sb.WriteString("</" + open[i] + ">")
			}
			return template.HTML(sb.String())

		case html.TextToken:
			if skip == 0 {
				sb.WriteString(html.EscapeString(string(z.Text())))
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if dropped[tok.Data] {
				if tt == html.StartTagToken {
					skip++
				}
				continue
			}
			if skip > 0 || !allowed[tok.Data] {
				continue
			}
			if tok.Data == "br" {
				sb.WriteString("<br>")
				continue
			}
			sb.WriteString(openTag(tok))
			if tt == html.SelfClosingTagToken {
				sb.WriteString("</" + tok.Data + ">")
				continue
			}
			open = append(open, tok.Data)

		case html.EndTagToken:
			tok := z.Token()
			if dropped[tok.Data] {
				if skip > 0 {
					skip--
				}
				continue
			}
			if skip > 0 || !allowed[tok.Data] || tok.Data == "br" {
				continue
			}
			for i := len(open) - 1; i >= 0; i-- {
				if open[i] != tok.Data {
					continue
				}
				for j := len(open) - 1; j >= i; j-- {
					sb.WriteString("</" + open[j] + ">")
				}
				open = open[:i]
				break
			}
		}
	}
}

func openTag(tok html.Token) string {
	if tok.Data != "a" {
		return "<" + tok.Data + ">"
	}
	for _, attr := range tok.Attr {
		if attr.Key == "href" && safeLink(attr.Val) {
			return `<a href="` + html.EscapeString(attr.Val) + `" rel="nofollow noopener" target="_blank">`
		}
	}
	return "<a>"
}

func safeLink(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// ToText converts summary markup to markdown-flavoured plain text. On a
// conversion error the raw value is returned together with the error.
func ToText(raw string) (string, error) {
	converterOnce.Do(func() {
		converter = md.NewConverter("", true, nil)
		converter.Use(plugin.GitHubFlavored())
	})

	text, err := converter.ConvertString(raw)
	if err != nil {
		return raw, err
	}
	return strings.TrimSpace(text), nil
}

package dom

import (
	"golang.org/x/net/html"
)

var hiddenTags = map[string]bool{
	"head": true, "script": true, "style": true, "template": true, "title": true,
	"meta": true, "link": true, "noscript": true, "base": true,
}

var blockTags = map[string]bool{
	"html": true, "body": true, "div": true, "p": true, "section": true, "main": true,
	"nav": true, "header": true, "footer": true, "article": true, "aside": true,
	"form": true, "fieldset": true, "ul": true, "ol": true, "dl": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "address": true, "hr": true,
}

var headingSizes = map[string]string{
	"h1": "2em", "h2": "1.5em", "h3": "1.17em", "h4": "1em", "h5": "0.83em", "h6": "0.67em",
}

var boldTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"b": true, "strong": true, "th": true,
}

func defaultDisplay(tag string) string {
	switch {
	case hiddenTags[tag]:
		return "none"
	case blockTags[tag]:
		return "block"
	case tag == "li":
		return "list-item"
	case tag == "table":
		return "table"
	}
	return "inline"
}

// uaStyle é a folha padrão do navegador, reduzida ao que as checagens leem
func uaStyle(n *html.Node) Style {
	s := Style{}
	if size, ok := headingSizes[n.Data]; ok {
		s["font-size"] = size
	}
	if boldTags[n.Data] {
		s["font-weight"] = "700"
	}
	if n.Data == "a" && hasAttr(n, "href") {
		s["color"] = "#0000ee"
	}
	if hasAttr(n, "hidden") {
		s["display"] = "none"
	}
	return s
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}

package a11y

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const contentSelector = `img, a, button, input, select, textarea, [role], [tabindex], [aria-live], ` +
	`h1, h2, h3, h4, h5, h6, nav, main`

// CheckLandmarks: página sem main e várias navs sem rótulo que as distinga.
// Documento sem conteúdo nenhum não é avaliado.
func CheckLandmarks(doc Document) []Finding {
	body := doc.Find("body")
	if body.Length() == 0 || !hasContent(body) {
		return nil
	}

	var out []Finding
	if doc.Find(`main, [role="main"]`).Length() == 0 {
		out = append(out, newError(CategoryLandmarks, SevMedium,
			"Página sem região principal (<main> ou role=\"main\")", nil,
			"Envolva o conteúdo principal em <main>"))
	}

	navs := doc.Find(`nav, [role="navigation"]`)
	if navs.Length() > 1 {
		seen := map[string]bool{}
		ambiguous := 0
		navs.Each(func(_ int, s *goquery.Selection) {
			label := foldText(s.AttrOr("aria-label", ""))
			if label == "" {
				label = foldText(s.AttrOr("aria-labelledby", ""))
			}
			if label == "" || seen[label] {
				ambiguous++
			}
			seen[label] = true
		})
		if ambiguous > 0 {
			out = append(out, newWarning(CategoryLandmarks, SevLow,
				fmt.Sprintf("%d regiões de navegação sem aria-label que as distinga", navs.Length()), nil,
				"Dê um aria-label diferente a cada <nav>"))
		}
	}
	return out
}

func hasContent(body *goquery.Selection) bool {
	if body.Find(contentSelector).Length() > 0 {
		return true
	}
	found := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil && !found; c = c.NextSibling {
			switch c.Type {
			case html.TextNode:
				if strings.TrimSpace(c.Data) != "" {
					found = true
				}
			case html.ElementNode:
				if !nonTextTags[c.Data] {
					walk(c)
				}
			}
		}
	}
	walk(body.Get(0))
	return found
}

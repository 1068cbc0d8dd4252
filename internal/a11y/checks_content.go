package a11y

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// textos de link que não dizem para onde o link leva
var genericLinkText = map[string]bool{
	"click here": true, "here": true, "read more": true, "link": true, "more": true,
	"clique aqui": true, "aqui": true, "leia mais": true, "saiba mais": true, "mais": true,
}

var nonTextTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// CheckContrast compara cor do texto e fundo efetivo de cada elemento com texto próprio.
// Texto grande (>=18px, ou >=14px com peso >=700) exige 3:1; o resto 4.5:1.
func CheckContrast(doc Document) []Finding {
	var out []Finding
	doc.Find("body, body *").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if nonTextTags[n.Data] || !hasOwnText(n) || !IsVisible(doc, s) {
			return
		}

		st := doc.ComputedStyle(n)
		fg := st.Get("color")
		bg := BackgroundColor(doc, s)
		ratio := CalculateContrast(fg, bg)

		size := parsePx(st.Get("font-size"))
		weight, _ := strconv.Atoi(st.Get("font-weight"))
		required := 4.5
		if size >= 18 || (size >= 14 && weight >= 700) {
			required = 3
		}
		data := map[string]float64{
			"ratio":    math.Round(ratio*100) / 100,
			"required": required,
		}

		switch {
		case ratio < required:
			f := newError(CategoryContrast, SevHigh,
				fmt.Sprintf("Contraste insuficiente: %.2f:1 (mínimo %.1f:1)", ratio, required), s,
				fmt.Sprintf("Ajuste as cores %s sobre %s até atingir %.1f:1", fg, bg, required))
			f.Data = data
			out = append(out, f)
		case ratio < required+1:
			f := newWarning(CategoryContrast, SevMedium,
				fmt.Sprintf("Contraste no limite: %.2f:1 (mínimo %.1f:1)", ratio, required), s,
				"Aumente o contraste para ter folga em telas ruins")
			f.Data = data
			out = append(out, f)
		}
	})
	return out
}

func hasOwnText(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) != "" {
			return true
		}
	}
	return false
}

// CheckImages: alt ausente é erro; alt vazio pede confirmação;
// imagem decorativa deve ter alt vazio.
func CheckImages(doc Document) []Finding {
	var out []Finding
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		alt, hasAlt := s.Attr("alt")
		role := strings.ToLower(strings.TrimSpace(s.AttrOr("role", "")))
		decorative := role == "presentation" || strings.TrimSpace(s.AttrOr("aria-hidden", "")) == "true"

		switch {
		case decorative:
			if hasAlt && strings.TrimSpace(alt) != "" {
				out = append(out, newWarning(CategoryImages, SevLow,
					"Imagem decorativa com texto alternativo", s,
					"Use alt=\"\" em imagens decorativas"))
			}
		case !hasAlt:
			out = append(out, newError(CategoryImages, SevHigh,
				"Imagem sem atributo alt", s,
				"Descreva a imagem no atributo alt"))
		case strings.TrimSpace(alt) == "":
			out = append(out, newWarning(CategoryImages, SevLow,
				"Imagem com alt vazio: confirme se é decorativa", s,
				"Se for decorativa, adicione role=\"presentation\"; senão descreva no alt"))
		}
	})
	return out
}

// CheckForms exige rótulo em todo campo visível ao usuário.
func CheckForms(doc Document) []Finding {
	labeled := map[string]bool{}
	doc.Find("label[for]").Each(func(_ int, s *goquery.Selection) {
		labeled[strings.TrimSpace(s.AttrOr("for", ""))] = true
	})

	var out []Finding
	doc.Find("input, select, textarea").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "input" && strings.EqualFold(strings.TrimSpace(s.AttrOr("type", "")), "hidden") {
			return
		}

		id := strings.TrimSpace(s.AttrOr("id", ""))
		ariaLabeled := attrNonBlank(s, "aria-label") || attrNonBlank(s, "aria-labelledby")
		switch {
		case id != "" && !labeled[id] && !ariaLabeled:
			out = append(out, newError(CategoryForms, SevHigh,
				fmt.Sprintf("Campo #%s sem <label for> nem aria-label", id), s,
				fmt.Sprintf("Adicione <label for=\"%s\"> ou aria-label", id)))
		case id == "" && !ariaLabeled:
			out = append(out, newError(CategoryForms, SevHigh,
				fmt.Sprintf("Campo %s sem id e sem aria-label", goquery.NodeName(s)), s,
				"Dê um id ao campo e associe um <label for>, ou use aria-label"))
		}

		if _, required := s.Attr("required"); required {
			if _, ok := s.Attr("aria-required"); !ok {
				out = append(out, newWarning(CategoryForms, SevLow,
					"Campo obrigatório sem aria-required", s,
					"Adicione aria-required=\"true\""))
			}
		}
	})
	return out
}

// CheckHeadings: nível pulado, mais de um h1 e título vazio.
func CheckHeadings(doc Document) []Finding {
	var out []Finding
	prev, h1Count := 0, 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		name := goquery.NodeName(s)
		level := int(name[1] - '0')
		if level == 1 {
			h1Count++
		}
		if prev > 0 && level > prev+1 {
			out = append(out, newWarning(CategoryHeadings, SevMedium,
				fmt.Sprintf("Nível de título pulado: h%d para h%d", prev, level), s,
				fmt.Sprintf("Use h%d antes de h%d", prev+1, level)))
		}
		if !HasTextContent(s) && !attrNonBlank(s, "aria-label") {
			out = append(out, newError(CategoryHeadings, SevHigh,
				fmt.Sprintf("Título %s vazio", name), s,
				"Escreva o texto do título ou remova o elemento"))
		}
		prev = level
	})

	if h1Count > 1 {
		out = append(out, newWarning(CategoryHeadings, SevMedium,
			fmt.Sprintf("A página tem %d elementos h1", h1Count), nil,
			"Mantenha um único h1 com o assunto principal da página"))
	}
	return out
}

// CheckLinks: link sem texto, texto genérico e href vazio ou "#".
func CheckLinks(doc Document) []Finding {
	var out []Finding
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		name := accessibleName(doc, s)
		switch {
		case name == "":
			out = append(out, newError(CategoryLinks, SevHigh,
				"Link sem texto acessível", s,
				"Adicione texto ao link ou aria-label"))
		case genericLinkText[foldText(name)]:
			out = append(out, newWarning(CategoryLinks, SevMedium,
				fmt.Sprintf("Texto de link genérico: \"%s\"", name), s,
				"Descreva o destino do link no próprio texto"))
		}

		if href := strings.TrimSpace(s.AttrOr("href", "")); href == "" || href == "#" {
			out = append(out, newWarning(CategoryLinks, SevLow,
				"Link com href vazio ou \"#\"", s,
				"Aponte para um destino real ou use <button>"))
		}
	})
	return out
}

// CheckButtons: botão sem texto acessível e <button> sem type.
func CheckButtons(doc Document) []Finding {
	var out []Finding
	doc.Find(`button, [role="button"]`).Each(func(_ int, s *goquery.Selection) {
		if accessibleName(doc, s) == "" {
			out = append(out, newError(CategoryButtons, SevHigh,
				"Botão sem texto acessível", s,
				"Adicione texto ao botão ou aria-label"))
		}
		if goquery.NodeName(s) == "button" {
			if _, ok := s.Attr("type"); !ok {
				out = append(out, newWarning(CategoryButtons, SevLow,
					"<button> sem atributo type", s,
					"Declare type=\"button\" ou type=\"submit\""))
			}
		}
	})
	return out
}

package a11y

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var interactiveRoles = map[string]bool{
	"button": true, "link": true, "checkbox": true, "radio": true, "textbox": true, "combobox": true,
}

var ariaInvalidValues = map[string]bool{
	"true": true, "false": true, "grammar": true, "spelling": true,
}

var ariaLiveValues = map[string]bool{
	"polite": true, "assertive": true, "off": true,
}

func hasARIA(s *goquery.Selection) bool {
	for _, a := range s.Get(0).Attr {
		if a.Key == "role" || strings.HasPrefix(a.Key, "aria-") {
			return true
		}
	}
	return false
}

// CheckARIA cobre papéis interativos sem nome, aria-invalid inválido,
// aria-hidden com rótulo e aria-labelledby apontando para id inexistente.
func CheckARIA(doc Document) []Finding {
	var out []Finding

	ids := map[string]bool{}
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		ids[s.AttrOr("id", "")] = true
	})

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		if !hasARIA(s) {
			return
		}

		role := strings.ToLower(strings.TrimSpace(s.AttrOr("role", "")))
		if interactiveRoles[role] && !attrNonBlank(s, "aria-label") && !attrNonBlank(s, "aria-labelledby") && !HasTextContent(s) {
			out = append(out, newError(CategoryARIA, SevHigh,
				fmt.Sprintf("Elemento com role=\"%s\" não tem nome acessível", role), s,
				"Adicione aria-label, aria-labelledby ou texto visível"))
		}

		if v, ok := s.Attr("aria-invalid"); ok && !ariaInvalidValues[strings.ToLower(strings.TrimSpace(v))] {
			out = append(out, newError(CategoryARIA, SevMedium,
				fmt.Sprintf("Valor inválido para aria-invalid: \"%s\"", v), s,
				"Use true, false, grammar ou spelling"))
		}

		if strings.TrimSpace(s.AttrOr("aria-hidden", "")) == "true" && attrNonBlank(s, "aria-label") {
			out = append(out, newWarning(CategoryARIA, SevLow,
				"aria-label em elemento com aria-hidden=\"true\" nunca é anunciado", s,
				"Remova o aria-label ou o aria-hidden"))
		}

		for _, id := range strings.Fields(s.AttrOr("aria-labelledby", "")) {
			if !ids[id] {
				out = append(out, newError(CategoryARIA, SevMedium,
					fmt.Sprintf("aria-labelledby referencia id inexistente: \"%s\"", id), s,
					"Aponte aria-labelledby para um elemento que exista na página"))
			}
		}
	})
	return out
}

// CheckLiveRegions valida aria-live e o par assertive/aria-atomic.
func CheckLiveRegions(doc Document) []Finding {
	var out []Finding
	doc.Find("[aria-live]").Each(func(_ int, s *goquery.Selection) {
		raw := s.AttrOr("aria-live", "")
		v := strings.ToLower(strings.TrimSpace(raw))
		if !ariaLiveValues[v] {
			out = append(out, newError(CategoryLiveRegions, SevMedium,
				fmt.Sprintf("Valor inválido para aria-live: \"%s\"", raw), s,
				"Use polite, assertive ou off"))
			return
		}
		if v == "assertive" && strings.TrimSpace(s.AttrOr("aria-atomic", "")) != "true" {
			out = append(out, newWarning(CategoryLiveRegions, SevLow,
				"Região aria-live=\"assertive\" sem aria-atomic=\"true\"", s,
				"Adicione aria-atomic=\"true\" para anunciar a região inteira"))
		}
	})
	return out
}

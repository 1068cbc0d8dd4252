package a11y

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/cases"
)

// Check é uma regra independente. Run varre o documento inteiro e devolve achados;
// nunca deve falhar por atributo ausente ou valor malformado.
type Check struct {
	Name     string
	Category Category
	Run      func(Document) []Finding
}

// DefaultChecks devolve as onze checagens na ordem de registro.
func DefaultChecks() []Check {
	return []Check{
		{Name: "aria", Category: CategoryARIA, Run: CheckARIA},
		{Name: "keyboard", Category: CategoryKeyboard, Run: CheckKeyboard},
		{Name: "contrast", Category: CategoryContrast, Run: CheckContrast},
		{Name: "images", Category: CategoryImages, Run: CheckImages},
		{Name: "forms", Category: CategoryForms, Run: CheckForms},
		{Name: "headings", Category: CategoryHeadings, Run: CheckHeadings},
		{Name: "links", Category: CategoryLinks, Run: CheckLinks},
		{Name: "buttons", Category: CategoryButtons, Run: CheckButtons},
		{Name: "focus", Category: CategoryFocus, Run: CheckFocusIndicators},
		{Name: "landmarks", Category: CategoryLandmarks, Run: CheckLandmarks},
		{Name: "live-regions", Category: CategoryLiveRegions, Run: CheckLiveRegions},
	}
}

const focusableSelector = `a[href], button, input:not([type="hidden"]), select, textarea, [tabindex], [role="button"], [role="link"]`

// focusables devolve os elementos que recebem foco, sem input hidden
// (que casa [tabindex] mesmo fora da ordem de tabulação).
func focusables(doc Document) *goquery.Selection {
	return doc.Find(focusableSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return !(goquery.NodeName(s) == "input" && strings.EqualFold(strings.TrimSpace(s.AttrOr("type", "")), "hidden"))
	})
}

func attrNonBlank(s *goquery.Selection, name string) bool {
	return strings.TrimSpace(s.AttrOr(name, "")) != ""
}

// textByID devolve o texto do elemento com esse id, ou "" se não existir
func textByID(doc Document, id string) (string, bool) {
	match := doc.Find("[id]").FilterFunction(func(_ int, e *goquery.Selection) bool {
		return e.AttrOr("id", "") == id
	})
	if match.Length() == 0 {
		return "", false
	}
	return collapseSpace(match.First().Text()), true
}

// accessibleName resolve o nome acessível de links e botões:
// aria-label, aria-labelledby, texto, title e alt de imagem filha.
func accessibleName(doc Document, s *goquery.Selection) string {
	if label := collapseSpace(s.AttrOr("aria-label", "")); label != "" {
		return label
	}
	if ids := strings.Fields(s.AttrOr("aria-labelledby", "")); len(ids) > 0 {
		var parts []string
		for _, id := range ids {
			if text, ok := textByID(doc, id); ok && text != "" {
				parts = append(parts, text)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	if text := collapseSpace(s.Text()); text != "" {
		return text
	}
	if title := collapseSpace(s.AttrOr("title", "")); title != "" {
		return title
	}
	var alt string
	s.Find("img[alt]").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		alt = collapseSpace(img.AttrOr("alt", ""))
		return alt == ""
	})
	return alt
}

func foldText(s string) string {
	return cases.Fold().String(collapseSpace(s))
}

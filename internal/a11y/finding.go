package a11y

import (
	"github.com/PuerkitoBio/goquery"
)

type Type string

const (
	TypeError   Type = "error"
	TypeWarning Type = "warning"
)

type Severity string

const (
	SevHigh   Severity = "high"
	SevMedium Severity = "medium"
	SevLow    Severity = "low"
)

type Category string

const (
	CategoryARIA        Category = "aria"
	CategoryKeyboard    Category = "keyboard"
	CategoryContrast    Category = "contrast"
	CategoryImages      Category = "images"
	CategoryForms       Category = "forms"
	CategoryHeadings    Category = "headings"
	CategoryLinks       Category = "links"
	CategoryButtons     Category = "buttons"
	CategoryFocus       Category = "focus"
	CategoryLandmarks   Category = "landmarks"
	CategoryLiveRegions Category = "live-regions"
)

// Categories lista as categorias na ordem em que as checagens rodam.
var Categories = []Category{
	CategoryARIA, CategoryKeyboard, CategoryContrast, CategoryImages, CategoryForms,
	CategoryHeadings, CategoryLinks, CategoryButtons, CategoryFocus, CategoryLandmarks,
	CategoryLiveRegions,
}

// ElementInfo é uma cópia descritiva do nó no momento da auditoria.
// Não guarda referência ao nó: o DOM pode mudar antes do relatório.
type ElementInfo struct {
	TagName     string `json:"tagName"`
	ID          string `json:"id,omitempty"`
	ClassName   string `json:"className,omitempty"`
	TextContent string `json:"textContent,omitempty"`
	Selector    string `json:"selector"`
}

// Finding é um problema encontrado por uma checagem.
type Finding struct {
	Type     Type               `json:"type"`
	Category Category           `json:"category"`
	Severity Severity           `json:"severity"`
	Message  string             `json:"message"`
	Element  *ElementInfo       `json:"element,omitempty"`
	Fix      string             `json:"fix,omitempty"`
	Data     map[string]float64 `json:"data,omitempty"`
}

func newError(c Category, sev Severity, msg string, s *goquery.Selection, fix string) Finding {
	return Finding{Type: TypeError, Category: c, Severity: sev, Message: msg, Element: ElementInfoOf(s), Fix: fix}
}

func newWarning(c Category, sev Severity, msg string, s *goquery.Selection, fix string) Finding {
	return Finding{Type: TypeWarning, Category: c, Severity: sev, Message: msg, Element: ElementInfoOf(s), Fix: fix}
}

func copyFindings(in []Finding) []Finding {
	out := make([]Finding, len(in))
	for i, f := range in {
		if f.Element != nil {
			el := *f.Element
			f.Element = &el
		}
		if f.Data != nil {
			data := make(map[string]float64, len(f.Data))
			for k, v := range f.Data {
				data[k] = v
			}
			f.Data = data
		}
		out[i] = f
	}
	return out
}

package a11y

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"a11y-auditor/internal/dom"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document é o que o motor precisa do DOM. dom.Document implementa;
// testes podem trocar por qualquer DOM compatível.
type Document interface {
	Find(selector string) *goquery.Selection
	ComputedStyle(n *html.Node) dom.Style
	StyleSheets() []string
	// ReplaceStyles troca as folhas do autor por css até restore ser chamado
	ReplaceStyles(css string) (restore func())
	// Forget invalida o estilo guardado de um nó cujos atributos mudaram
	Forget(n *html.Node)
}

const (
	defaultBackground = "rgb(255, 255, 255)"
	fallbackLuminance = 0.5
	excerptLimit      = 50
)

// RGB é uma cor opaca já parseada.
type RGB struct {
	R, G, B int
}

var (
	hexColor     = regexp.MustCompile(`^#([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)
	rgbColor     = regexp.MustCompile(`^rgba?\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})`)
	transparentC = regexp.MustCompile(`^rgba\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*0*(\.0+)?\s*\)$`)
)

// só estas cinco; hsl, var() e currentColor ficam sem cor (luminância 0.5)
var namedColors = map[string]RGB{
	"black": {0, 0, 0},
	"white": {255, 255, 255},
	"red":   {255, 0, 0},
	"green": {0, 128, 0},
	"blue":  {0, 0, 255},
}

// IsVisible: display, visibility, opacity e dimensões não nulas.
// Um ancestral com display:none também esconde o elemento; os estilos dos
// ancestrais já vêm do cache do documento.
func IsVisible(doc Document, s *goquery.Selection) bool {
	if s == nil || s.Length() == 0 {
		return false
	}
	n := s.Get(0)
	st := doc.ComputedStyle(n)
	if v := st.Get("visibility"); v == "hidden" || v == "collapse" {
		return false
	}
	if strings.TrimSpace(st.Get("opacity")) == "0" {
		return false
	}
	if isZeroLength(st.Get("width")) || isZeroLength(st.Get("height")) {
		return false
	}
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && doc.ComputedStyle(p).Get("display") == "none" {
			return false
		}
	}
	return true
}

// BackgroundColor sobe pelos ancestrais até o <body> atrás do primeiro fundo opaco.
func BackgroundColor(doc Document, s *goquery.Selection) string {
	if s != nil && s.Length() > 0 {
		for n := s.Get(0); n != nil; n = n.Parent {
			if n.Type != html.ElementNode {
				continue
			}
			if bg := doc.ComputedStyle(n).Get("background-color"); !isTransparent(bg) {
				return bg
			}
			if n.Data == "body" {
				break
			}
		}
	}
	if body := doc.Find("body"); body.Length() > 0 {
		if bg := doc.ComputedStyle(body.Get(0)).Get("background-color"); !isTransparent(bg) {
			return bg
		}
	}
	return defaultBackground
}

func isTransparent(color string) bool {
	c := strings.ToLower(strings.TrimSpace(color))
	return c == "" || c == "transparent" || transparentC.MatchString(c)
}

// ParseColor entende #rrggbb, rgb()/rgba() e cinco nomes. O resto devolve false.
func ParseColor(color string) (RGB, bool) {
	c := strings.ToLower(strings.TrimSpace(color))
	if m := hexColor.FindStringSubmatch(c); m != nil {
		r, _ := strconv.ParseUint(m[1], 16, 8)
		g, _ := strconv.ParseUint(m[2], 16, 8)
		b, _ := strconv.ParseUint(m[3], 16, 8)
		return RGB{int(r), int(g), int(b)}, true
	}
	if m := rgbColor.FindStringSubmatch(c); m != nil {
		var ch [3]int
		for i := range ch {
			v, err := strconv.Atoi(m[i+1])
			if err != nil || v > 255 {
				return RGB{}, false
			}
			ch[i] = v
		}
		return RGB{ch[0], ch[1], ch[2]}, true
	}
	if rgb, ok := namedColors[c]; ok {
		return rgb, true
	}
	return RGB{}, false
}

// Luminance é a luminância relativa sRGB; cor ilegível vale 0.5.
func Luminance(color string) float64 {
	rgb, ok := ParseColor(color)
	if !ok {
		return fallbackLuminance
	}
	channel := func(v int) float64 {
		c := float64(v) / 255
		if c <= 0.03928 {
			return c / 12.92
		}
		return math.Pow((c+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(rgb.R) + 0.7152*channel(rgb.G) + 0.0722*channel(rgb.B)
}

// CalculateContrast é a razão de contraste WCAG entre duas cores.
func CalculateContrast(a, b string) float64 {
	la, lb := Luminance(a), Luminance(b)
	return (math.Max(la, lb) + 0.05) / (math.Min(la, lb) + 0.05)
}

// ElementInfoOf tira o retrato do elemento para o relatório. nil sem elemento.
func ElementInfoOf(s *goquery.Selection) *ElementInfo {
	if s == nil || s.Length() == 0 {
		return nil
	}
	s = s.First()
	return &ElementInfo{
		TagName:     goquery.NodeName(s),
		ID:          strings.TrimSpace(s.AttrOr("id", "")),
		ClassName:   truncate(strings.TrimSpace(s.AttrOr("class", ""))),
		TextContent: truncate(collapseSpace(s.Text())),
		Selector:    GenerateSelector(s),
	}
}

// GenerateSelector: #id, senão .classes, senão a tag.
func GenerateSelector(s *goquery.Selection) string {
	if s == nil || s.Length() == 0 {
		return ""
	}
	s = s.First()
	if id := strings.TrimSpace(s.AttrOr("id", "")); id != "" {
		return "#" + id
	}
	if classes := strings.Fields(s.AttrOr("class", "")); len(classes) > 0 {
		return "." + strings.Join(classes, ".")
	}
	return strings.ToLower(goquery.NodeName(s))
}

func HasTextContent(s *goquery.Selection) bool {
	return s != nil && strings.TrimSpace(s.Text()) != ""
}

// GenerateLabel usa o texto, depois o placeholder, depois um nome genérico.
func GenerateLabel(s *goquery.Selection) string {
	if text := collapseSpace(s.Text()); text != "" {
		return text
	}
	if ph := strings.TrimSpace(s.AttrOr("placeholder", "")); ph != "" {
		return ph
	}
	return "Elemento sem rótulo"
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= excerptLimit {
		return s
	}
	return string([]rune(s)[:excerptLimit]) + "..."
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isZeroLength(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	f, err := strconv.ParseFloat(strings.TrimRight(v, "pxemr%"), 64)
	return err == nil && f == 0
}

func parsePx(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 16
	}
	return f
}

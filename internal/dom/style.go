package dom

import (
	"sort"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// Style é o estilo computado de um elemento: propriedade -> valor.
// Propriedade ausente devolve "" em Get.
type Style map[string]string

func (s Style) Get(prop string) string {
	return s[prop]
}

// propriedades herdadas do pai quando o elemento não declara nada
var inheritedProps = []string{"color", "font-size", "font-weight", "visibility"}

var rootDefaults = Style{
	"color":            "rgb(0, 0, 0)",
	"font-size":        "16px",
	"font-weight":      "400",
	"visibility":       "visible",
	"opacity":          "1",
	"background-color": "rgba(0, 0, 0, 0)",
}

// ComputedStyle aplica a cascata ao nó e resolve herança e font-size em px.
// outline-style sem declaração fica vazio: significa o anel de foco padrão do navegador.
// O resultado é uma cópia: o chamador pode alterar sem afetar o cache.
func (d *Document) ComputedStyle(n *html.Node) Style {
	if n == nil || n.Type != html.ElementNode {
		return copyStyle(rootDefaults)
	}
	return copyStyle(d.computed(n))
}

// computed devolve o estilo guardado de n, calculando a cadeia de ancestrais uma vez só
func (d *Document) computed(n *html.Node) Style {
	if d.dirty {
		d.loadRules()
	}
	if s, ok := d.styles[n]; ok {
		return s
	}

	parent := rootDefaults
	if p := parentElement(n); p != nil {
		parent = d.computed(p)
	}

	s := d.cascade(n)

	for _, prop := range inheritedProps {
		if v, ok := s[prop]; !ok || v == "inherit" {
			if prop == "font-size" {
				continue
			}
			s[prop] = parent[prop]
		}
	}

	parentPx := parsePx(parent["font-size"], 16)
	if raw, ok := s["font-size"]; ok && raw != "inherit" {
		s["font-size"] = formatPx(resolveFontSize(raw, parentPx))
	} else {
		s["font-size"] = formatPx(parentPx)
	}
	s["font-weight"] = normalizeWeight(s["font-weight"])

	for prop, v := range rootDefaults {
		if _, ok := s[prop]; !ok {
			s[prop] = v
		}
	}
	if _, ok := s["display"]; !ok {
		s["display"] = defaultDisplay(n.Data)
	}

	if d.styles == nil {
		d.styles = map[*html.Node]Style{}
	}
	d.styles[n] = s
	return s
}

// cascade: UA < autor (especificidade, ordem) < inline < !important autor < !important inline
func (d *Document) cascade(n *html.Node) Style {
	s := uaStyle(n)

	var matched []rule
	for _, r := range d.loadRules() {
		if r.sel.Match(n) {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.specificity != b.specificity {
			return a.specificity.Less(b.specificity)
		}
		return a.order < b.order
	})

	inline := inlineDeclarations(n)

	for _, r := range matched {
		applyDecls(s, r.decls, false)
	}
	applyDecls(s, inline, false)
	for _, r := range matched {
		applyDecls(s, r.decls, true)
	}
	applyDecls(s, inline, true)
	return s
}

func inlineDeclarations(n *html.Node) []*css.Declaration {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == "style" {
			decls, err := parser.ParseDeclarations(a.Val)
			if err != nil {
				return nil
			}
			return decls
		}
	}
	return nil
}

func applyDecls(s Style, decls []*css.Declaration, important bool) {
	for _, decl := range decls {
		value := strings.TrimSpace(decl.Value)
		isImportant := decl.Important
		if strings.HasSuffix(strings.ToLower(value), "!important") {
			isImportant = true
			value = strings.TrimSpace(value[:len(value)-len("!important")])
		}
		if isImportant != important {
			continue
		}
		setProperty(s, strings.ToLower(strings.TrimSpace(decl.Property)), value)
	}
}

// setProperty expande os atalhos que o motor consulta
func setProperty(s Style, prop, value string) {
	switch prop {
	case "background":
		if strings.EqualFold(value, "none") {
			s["background-color"] = "transparent"
			return
		}
		for _, tok := range splitTokens(value) {
			if looksLikeColor(tok) {
				s["background-color"] = tok
				return
			}
		}
	case "outline", "border":
		expandLine(s, prop, value)
	case "font":
		expandFont(s, value)
	default:
		s[prop] = value
	}
}

var lineStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true, "auto": true,
}

// expandLine trata outline/border. Partes omitidas voltam ao valor inicial, como no CSS.
func expandLine(s Style, prefix, value string) {
	style, width, color := "none", "medium", "currentcolor"
	for _, tok := range splitTokens(value) {
		lower := strings.ToLower(tok)
		switch {
		case lineStyles[lower]:
			style = lower
		case isLength(lower) || lower == "thin" || lower == "medium" || lower == "thick":
			width = lower
		default:
			color = tok
		}
	}
	s[prefix+"-style"] = style
	s[prefix+"-width"] = width
	s[prefix+"-color"] = color
}

func expandFont(s Style, value string) {
	for _, tok := range splitTokens(value) {
		lower := strings.ToLower(tok)
		if i := strings.Index(lower, "/"); i > 0 {
			lower = lower[:i]
		}
		switch {
		case lower == "bold" || lower == "bolder" || lower == "lighter" || lower == "normal":
			s["font-weight"] = lower
		case isNumericWeight(lower):
			s["font-weight"] = lower
		case isLength(lower) || fontKeywords[lower] > 0:
			s["font-size"] = lower
		}
	}
}

// splitTokens separa por espaço sem quebrar rgb(...)
func splitTokens(value string) []string {
	var tokens []string
	var b strings.Builder
	depth := 0
	for _, r := range value {
		switch {
		case r == '(':
			depth++
			b.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			b.WriteRune(r)
		case (r == ' ' || r == '\t' || r == '\n') && depth == 0:
			if b.Len() > 0 {
				tokens = append(tokens, b.String())
				b.Reset()
			}
		default:
			b.WriteRune(r)
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

var namedColors = map[string]bool{
	"transparent": true, "black": true, "white": true, "red": true, "green": true,
	"blue": true, "gray": true, "grey": true, "currentcolor": true,
}

func looksLikeColor(tok string) bool {
	lower := strings.ToLower(tok)
	return strings.HasPrefix(lower, "#") || strings.HasPrefix(lower, "rgb") ||
		strings.HasPrefix(lower, "hsl") || namedColors[lower]
}

func isLength(tok string) bool {
	if tok == "0" {
		return true
	}
	for _, unit := range []string{"px", "pt", "rem", "em", "%"} {
		if strings.HasSuffix(tok, unit) {
			_, err := strconv.ParseFloat(strings.TrimSuffix(tok, unit), 64)
			return err == nil
		}
	}
	return false
}

func isNumericWeight(tok string) bool {
	n, err := strconv.Atoi(tok)
	return err == nil && n >= 100 && n <= 900 && n%100 == 0
}

var fontKeywords = map[string]float64{
	"xx-small": 9, "x-small": 10, "small": 13, "medium": 16,
	"large": 18, "x-large": 24, "xx-large": 32,
}

func resolveFontSize(raw string, parentPx float64) float64 {
	v := strings.ToLower(strings.TrimSpace(raw))
	if px, ok := fontKeywords[v]; ok {
		return px
	}
	num := func(unit string) (float64, bool) {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, unit), 64)
		return f, err == nil
	}
	switch {
	case strings.HasSuffix(v, "rem"):
		if f, ok := num("rem"); ok {
			return f * 16
		}
	case strings.HasSuffix(v, "em"):
		if f, ok := num("em"); ok {
			return f * parentPx
		}
	case strings.HasSuffix(v, "%"):
		if f, ok := num("%"); ok {
			return f / 100 * parentPx
		}
	case strings.HasSuffix(v, "pt"):
		if f, ok := num("pt"); ok {
			return f * 4 / 3
		}
	case strings.HasSuffix(v, "px"):
		if f, ok := num("px"); ok {
			return f
		}
	}
	return parentPx
}

func parsePx(v string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return fallback
	}
	return f
}

func formatPx(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}

func normalizeWeight(v string) string {
	switch strings.ToLower(v) {
	case "bold", "bolder":
		return "700"
	case "lighter":
		return "300"
	case "", "normal", "inherit":
		return "400"
	}
	if isNumericWeight(v) {
		return v
	}
	return "400"
}

func parentElement(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

func copyStyle(src Style) Style {
	out := make(Style, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

package a11y

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"a11y-auditor/internal/dom"

	"github.com/PuerkitoBio/goquery"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

const focusMarkClass = "a11y-focus-mark"

var focusPseudo = regexp.MustCompile(`:focus(-visible)?`)

// marcador temporário para :focus-within não casar com focusPseudo
const focusWithinMark = "\x00focus-within\x00"

// CheckKeyboard: tabindex positivo e outline removido sem borda no lugar.
func CheckKeyboard(doc Document) []Finding {
	var out []Finding
	focusables(doc).Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("tabindex"); ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				out = append(out, newWarning(CategoryKeyboard, SevMedium,
					fmt.Sprintf("tabindex=\"%d\" altera a ordem natural de navegação", n), s,
					"Use tabindex=\"0\" ou reorganize o DOM"))
			}
		}

		if !IsVisible(doc, s) {
			return
		}
		st := doc.ComputedStyle(s.Get(0))
		if outlineRemoved(st) && !hasBorder(st) {
			out = append(out, newWarning(CategoryKeyboard, SevMedium,
				fmt.Sprintf("%s focável sem outline nem borda visível", GenerateLabel(s)), s,
				"Não remova o outline sem oferecer outro indicador de foco"))
		}
	})
	return out
}

// CheckFocusIndicators mede o estilo de :focus sem focar o elemento: as folhas do
// autor são reescritas trocando :focus por uma classe temporária e injetadas num
// <style> no lugar das originais; a classe é aplicada elemento a elemento e tudo é
// desfeito com defer.
func CheckFocusIndicators(doc Document) []Finding {
	targets := focusables(doc)
	if targets.Length() == 0 {
		return nil
	}

	restore := doc.ReplaceStyles(focusSheetCSS(doc.StyleSheets()))
	defer restore()

	var out []Finding
	targets.Each(func(_ int, s *goquery.Selection) {
		if !IsVisible(doc, s) {
			return
		}
		st := markedFocusStyle(doc, s.Get(0))
		if outlineRemoved(st) && !hasShadow(st) {
			out = append(out, newWarning(CategoryFocus, SevMedium,
				fmt.Sprintf("%s não mostra indicador de foco", GenerateLabel(s)), s,
				"Defina um estilo :focus com outline ou box-shadow visível"))
		}
	})
	return out
}

// markedFocusStyle aplica a classe de teste e restaura os atributos originais.
func markedFocusStyle(doc Document, n *html.Node) dom.Style {
	saved := n.Attr
	attrs := make([]html.Attribute, 0, len(saved)+1)
	hasClass := false
	for _, a := range saved {
		if a.Namespace == "" && a.Key == "class" {
			a.Val = strings.TrimSpace(a.Val + " " + focusMarkClass)
			hasClass = true
		}
		attrs = append(attrs, a)
	}
	if !hasClass {
		attrs = append(attrs, html.Attribute{Key: "class", Val: focusMarkClass})
	}
	n.Attr = attrs
	doc.Forget(n)
	defer func() {
		n.Attr = saved
		doc.Forget(n)
	}()

	return doc.ComputedStyle(n)
}

// focusSheetCSS copia todas as regras do autor, na ordem, com :focus e :focus-visible
// trocados pela classe de teste. :not(:focus) vira :not(.classe) e deixa de casar
// no elemento sondado; :focus-within fica como está.
func focusSheetCSS(sheets []string) string {
	var b strings.Builder
	for _, text := range sheets {
		sheet, err := parser.Parse(text)
		if err != nil {
			continue
		}
		for _, r := range sheet.Rules {
			if r.Kind != css.QualifiedRule || len(r.Selectors) == 0 {
				continue
			}
			selectors := make([]string, 0, len(r.Selectors))
			for _, sel := range r.Selectors {
				sel = strings.ReplaceAll(sel, ":focus-within", focusWithinMark)
				sel = focusPseudo.ReplaceAllString(sel, "."+focusMarkClass)
				selectors = append(selectors, strings.ReplaceAll(sel, focusWithinMark, ":focus-within"))
			}
			b.WriteString(strings.Join(selectors, ", "))
			b.WriteString(" {")
			for _, d := range r.Declarations {
				b.WriteString(" ")
				b.WriteString(d.Property)
				b.WriteString(": ")
				value := strings.TrimSpace(d.Value)
				important := d.Important || strings.HasSuffix(value, "!important")
				b.WriteString(strings.TrimSpace(strings.TrimSuffix(value, "!important")))
				if important {
					b.WriteString(" !important")
				}
				b.WriteString(";")
			}
			b.WriteString(" }\n")
		}
	}
	return b.String()
}

// outline-style vazio é o anel padrão do navegador, que conta como indicador
func outlineRemoved(st dom.Style) bool {
	style := st.Get("outline-style")
	if style == "" {
		return false
	}
	return style == "none" || style == "hidden" || isZeroLength(st.Get("outline-width"))
}

func hasBorder(st dom.Style) bool {
	style := st.Get("border-style")
	if style == "" || style == "none" || style == "hidden" {
		return false
	}
	return !isZeroLength(st.Get("border-width"))
}

func hasShadow(st dom.Style) bool {
	v := strings.TrimSpace(st.Get("box-shadow"))
	return v != "" && v != "none"
}

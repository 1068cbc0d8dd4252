// Package dom é o acessor de documento usado pelo motor de auditoria:
// um HTML parseado com goquery mais uma cascata CSS pequena que responde
// consultas no estilo getComputedStyle, sem navegador.
package dom

import (
	"io"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document envolve o goquery.Document e guarda as regras CSS já compiladas
// e os estilos já computados por nó. Os dois caches caem quando um <style>
// é injetado, removido ou desligado. Não é seguro para uso concorrente.
type Document struct {
	doc      *goquery.Document
	rules    []rule
	dirty    bool
	disabled map[*html.Node]bool
	styles   map[*html.Node]Style
}

type rule struct {
	sel         cascadia.Sel
	specificity cascadia.Specificity
	order       int
	decls       []*css.Declaration
}

// NewDocument parseia o HTML lido de r.
func NewDocument(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return FromGoquery(doc), nil
}

// FromGoquery reaproveita um documento já baixado (ex: pelo fetch).
func FromGoquery(doc *goquery.Document) *Document {
	return &Document{doc: doc, dirty: true, disabled: map[*html.Node]bool{}}
}

// Find executa um seletor CSS no documento inteiro. Seletor inválido não casa nada.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// StyleSheets devolve o texto de cada <style>, na ordem do documento.
func (d *Document) StyleSheets() []string {
	var sheets []string
	d.doc.Find("style").Each(func(i int, s *goquery.Selection) {
		sheets = append(sheets, s.Text())
	})
	return sheets
}

// InjectStyle adiciona um <style> de verdade no fim do <body> (ou do <head>).
// A função devolvida remove o elemento; chamar mais de uma vez não faz nada.
func (d *Document) InjectStyle(cssText string) func() {
	node := &html.Node{Type: html.ElementNode, Data: "style", DataAtom: atom.Style}
	node.AppendChild(&html.Node{Type: html.TextNode, Data: cssText})

	parent := d.injectionPoint()
	parent.AppendChild(node)
	d.markDirty()

	var once sync.Once
	return func() {
		once.Do(func() {
			if node.Parent != nil {
				node.Parent.RemoveChild(node)
			}
			d.markDirty()
		})
	}
}

// ReplaceStyles desliga as folhas atuais e injeta cssText no lugar delas.
// restore remove a folha injetada e religa as originais; é idempotente.
func (d *Document) ReplaceStyles(cssText string) (restore func()) {
	var off []*html.Node
	d.doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		if !d.disabled[n] {
			d.disabled[n] = true
			off = append(off, n)
		}
	})
	remove := d.InjectStyle(cssText)

	var once sync.Once
	return func() {
		once.Do(func() {
			remove()
			for _, n := range off {
				delete(d.disabled, n)
			}
			d.markDirty()
		})
	}
}

// Forget descarta o estilo guardado de n e dos descendentes.
// Quem altera atributos de um nó chama Forget antes de reler o estilo.
func (d *Document) Forget(n *html.Node) {
	if n == nil || d.styles == nil {
		return
	}
	delete(d.styles, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.Forget(c)
	}
}

func (d *Document) markDirty() {
	d.dirty = true
	d.styles = nil
}

func (d *Document) injectionPoint() *html.Node {
	for _, sel := range []string{"body", "head", "html"} {
		if s := d.doc.Find(sel); s.Length() > 0 {
			return s.Get(0)
		}
	}
	return d.doc.Get(0)
}

func (d *Document) loadRules() []rule {
	if !d.dirty {
		return d.rules
	}

	var sheets []string
	d.doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		if !d.disabled[s.Get(0)] {
			sheets = append(sheets, s.Text())
		}
	})

	var rules []rule
	order := 0
	for _, text := range sheets {
		sheet, err := parser.Parse(text)
		if err != nil {
			continue
		}
		for _, r := range sheet.Rules {
			// @media e afins ficam de fora: não existe viewport aqui
			if r.Kind != css.QualifiedRule {
				continue
			}
			for _, selText := range r.Selectors {
				group, err := cascadia.ParseGroup(selText)
				if err != nil {
					continue
				}
				for _, sel := range group {
					if sel.PseudoElement() != "" {
						continue
					}
					rules = append(rules, rule{
						sel:         sel,
						specificity: sel.Specificity(),
						order:       order,
						decls:       r.Declarations,
					})
					order++
				}
			}
		}
	}

	d.rules = rules
	d.dirty = false
	d.styles = nil
	return d.rules
}

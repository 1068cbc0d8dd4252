package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := NewDocument(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func TestComputedStyle_Cascade(t *testing.T) {
	doc := parse(t, `<html><head><style>
		p { color: red; }
		.nota { color: blue; }
		#unico { color: green; }
		p.forte { color: white !important; }
	</style></head><body>
		<p id="a">a</p>
		<p id="b" class="nota">b</p>
		<p id="unico" class="nota">c</p>
		<p id="d" class="nota" style="color: black">d</p>
		<p id="e" class="forte" style="color: black">e</p>
	</body></html>`)

	tests := []struct {
		id   string
		want string
	}{
		{"a", "red"},
		{"b", "blue"},
		{"unico", "green"},
		{"d", "black"},
		{"e", "white"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			n := doc.Find("#" + tt.id).Get(0)
			assert.Equal(t, tt.want, doc.ComputedStyle(n).Get("color"))
		})
	}
}

func TestComputedStyle_InheritanceAndFontSize(t *testing.T) {
	doc := parse(t, `<body style="color: #333333; font-size: 20px">
		<div><span id="s">texto</span></div>
		<div style="font-size: 1.5em"><span id="em">texto</span></div>
		<h1 id="h">titulo</h1>
		<p style="font: bold 12pt Arial"><span id="f">x</span></p>
	</body>`)

	s := doc.ComputedStyle(doc.Find("#s").Get(0))
	assert.Equal(t, "#333333", s.Get("color"))
	assert.Equal(t, "20px", s.Get("font-size"))
	assert.Equal(t, "400", s.Get("font-weight"))
	assert.Equal(t, "rgba(0, 0, 0, 0)", s.Get("background-color"))

	assert.Equal(t, "30px", doc.ComputedStyle(doc.Find("#em").Get(0)).Get("font-size"))

	h := doc.ComputedStyle(doc.Find("#h").Get(0))
	assert.Equal(t, "40px", h.Get("font-size"))
	assert.Equal(t, "700", h.Get("font-weight"))
	assert.Equal(t, "block", h.Get("display"))

	f := doc.ComputedStyle(doc.Find("#f").Get(0))
	assert.Equal(t, "16px", f.Get("font-size"))
	assert.Equal(t, "700", f.Get("font-weight"))
}

func TestComputedStyle_Shorthands(t *testing.T) {
	doc := parse(t, `<head><style>
		button { outline: none; border: 1px solid rgb(0,0,0); background: #ffffff url(x.png); }
		a { outline: 2px dashed blue; }
	</style></head><body><button id="b">ok</button><a id="l" href="/">x</a><div hidden id="h">y</div></body>`)

	b := doc.ComputedStyle(doc.Find("#b").Get(0))
	assert.Equal(t, "none", b.Get("outline-style"))
	assert.Equal(t, "solid", b.Get("border-style"))
	assert.Equal(t, "1px", b.Get("border-width"))
	assert.Equal(t, "rgb(0,0,0)", b.Get("border-color"))
	assert.Equal(t, "#ffffff", b.Get("background-color"))

	l := doc.ComputedStyle(doc.Find("#l").Get(0))
	assert.Equal(t, "dashed", l.Get("outline-style"))
	assert.Equal(t, "2px", l.Get("outline-width"))
	assert.Equal(t, "#0000ee", l.Get("color"))

	assert.Equal(t, "none", doc.ComputedStyle(doc.Find("#h").Get(0)).Get("display"))
}

func TestComputedStyle_IgnoresUnsupportedRules(t *testing.T) {
	doc := parse(t, `<head><style>
		@media print { p { color: red; } }
		p:hover { color: blue; }
		p::before { content: "x"; }
		p { color: green; }
	</style></head><body><p id="p">x</p></body>`)

	assert.Equal(t, "green", doc.ComputedStyle(doc.Find("#p").Get(0)).Get("color"))
}

func TestInjectStyle_RemovesElement(t *testing.T) {
	doc := parse(t, `<body><p id="p" class="x">x</p></body>`)
	require.Len(t, doc.StyleSheets(), 0)

	remove := doc.InjectStyle(`.x { color: red; }`)
	assert.Len(t, doc.StyleSheets(), 1)
	assert.Equal(t, "red", doc.ComputedStyle(doc.Find("#p").Get(0)).Get("color"))

	remove()
	remove()
	assert.Len(t, doc.StyleSheets(), 0)
	assert.Equal(t, 0, doc.Find("style").Length())
	assert.Equal(t, "rgb(0, 0, 0)", doc.ComputedStyle(doc.Find("#p").Get(0)).Get("color"))
}

func TestFind_InvalidSelector(t *testing.T) {
	doc := parse(t, `<body><p>x</p></body>`)
	assert.Equal(t, 0, doc.Find("p[[").Length())
}

func TestSplitTokens(t *testing.T) {
	assert.Equal(t, []string{"1px", "solid", "rgb(0, 0, 0)"}, splitTokens("1px solid rgb(0, 0, 0)"))
	assert.Empty(t, splitTokens("   "))
}

func TestComputedStyle_CacheFollowsStyleChanges(t *testing.T) {
	doc := parse(t, `<head><style>p { color: green; }</style></head><body><div><p id="p">x</p></div></body>`)
	p := doc.Find("#p").Get(0)

	st := doc.ComputedStyle(p)
	assert.Equal(t, "green", st.Get("color"))
	st["color"] = "alterado"
	assert.Equal(t, "green", doc.ComputedStyle(p).Get("color"))

	remove := doc.InjectStyle(`div p { color: blue; }`)
	assert.Equal(t, "blue", doc.ComputedStyle(p).Get("color"))
	remove()
	assert.Equal(t, "green", doc.ComputedStyle(p).Get("color"))
}

func TestForget_AttributeChange(t *testing.T) {
	doc := parse(t, `<head><style>.on { color: red; }</style></head><body><div id="d"><p id="p">x</p></div></body>`)
	div := doc.Find("#d").Get(0)
	p := doc.Find("#p").Get(0)
	assert.Equal(t, "rgb(0, 0, 0)", doc.ComputedStyle(p).Get("color"))

	saved := div.Attr
	div.Attr = append(append([]html.Attribute{}, saved...), html.Attribute{Key: "class", Val: "on"})
	doc.Forget(div)
	assert.Equal(t, "red", doc.ComputedStyle(p).Get("color"))

	div.Attr = saved
	doc.Forget(div)
	assert.Equal(t, "rgb(0, 0, 0)", doc.ComputedStyle(p).Get("color"))
}

func TestReplaceStyles(t *testing.T) {
	doc := parse(t, `<head><style>p { color: green; }</style></head><body><p id="p">x</p></body>`)
	p := doc.Find("#p").Get(0)

	restore := doc.ReplaceStyles(`p { font-weight: bold; }`)
	st := doc.ComputedStyle(p)
	assert.Equal(t, "rgb(0, 0, 0)", st.Get("color"))
	assert.Equal(t, "700", st.Get("font-weight"))
	assert.Len(t, doc.StyleSheets(), 2)

	restore()
	restore()
	st = doc.ComputedStyle(p)
	assert.Equal(t, "green", st.Get("color"))
	assert.Equal(t, "400", st.Get("font-weight"))
	assert.Len(t, doc.StyleSheets(), 1)
}

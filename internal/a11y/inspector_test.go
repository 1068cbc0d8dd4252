package a11y

import (
	"strings"
	"testing"

	"a11y-auditor/internal/dom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDoc(t *testing.T, src string) *dom.Document {
	t.Helper()
	doc, err := dom.NewDocument(strings.NewReader(src))
	require.NoError(t, err)
	return doc
}

func loadDocB(b *testing.B, src string) *dom.Document {
	b.Helper()
	doc, err := dom.NewDocument(strings.NewReader(src))
	if err != nil {
		b.Fatal(err)
	}
	return doc
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
		ok   bool
	}{
		{"#000000", RGB{0, 0, 0}, true},
		{"#FFFFFF", RGB{255, 255, 255}, true},
		{"#777777", RGB{119, 119, 119}, true},
		{"rgb(10, 20, 30)", RGB{10, 20, 30}, true},
		{"rgba(10,20,30,0.5)", RGB{10, 20, 30}, true},
		{"White", RGB{255, 255, 255}, true},
		{"green", RGB{0, 128, 0}, true},
		{"#fff", RGB{}, false},
		{"hsl(0, 0%, 0%)", RGB{}, false},
		{"var(--cor)", RGB{}, false},
		{"rgb(300, 0, 0)", RGB{}, false},
		{"", RGB{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLuminanceAndContrast(t *testing.T) {
	assert.InDelta(t, 0.0, Luminance("#000000"), 1e-9)
	assert.InDelta(t, 1.0, Luminance("#ffffff"), 1e-9)
	assert.Equal(t, 0.5, Luminance("currentColor"))

	assert.InDelta(t, 21.0, CalculateContrast("#000000", "#FFFFFF"), 1e-9)
	assert.InDelta(t, 21.0, CalculateContrast("#FFFFFF", "#000000"), 1e-9)
	assert.InDelta(t, 4.48, CalculateContrast("#777777", "#FFFFFF"), 0.01)
	assert.InDelta(t, 1.0, CalculateContrast("red", "rgb(255, 0, 0)"), 1e-9)
}

func TestGenerateSelectorAndInfo(t *testing.T) {
	doc := loadDoc(t, `<body>
		<p id="intro" class="a b">texto</p>
		<p class=" destaque  grande ">x</p>
		<section>y</section>
		<div id="longo">`+strings.Repeat("a", 80)+`</div>
	</body>`)

	assert.Equal(t, "#intro", GenerateSelector(doc.Find("p").First()))
	assert.Equal(t, ".destaque.grande", GenerateSelector(doc.Find("p").Eq(1)))
	assert.Equal(t, "section", GenerateSelector(doc.Find("section")))
	assert.Equal(t, "", GenerateSelector(doc.Find("article")))
	assert.Nil(t, ElementInfoOf(doc.Find("article")))

	info := ElementInfoOf(doc.Find("#longo"))
	require.NotNil(t, info)
	assert.Equal(t, "div", info.TagName)
	assert.Equal(t, "longo", info.ID)
	assert.Equal(t, strings.Repeat("a", 50)+"...", info.TextContent)
}

func TestIsVisible(t *testing.T) {
	doc := loadDoc(t, `<body>
		<p id="ok">a</p>
		<p id="none" style="display:none">b</p>
		<div style="display:none"><p id="dentro">c</p></div>
		<p id="hidden" style="visibility:hidden">d</p>
		<p id="opaco" style="opacity:0">e</p>
		<p id="zero" style="width:0">f</p>
		<p id="attr" hidden>g</p>
	</body>`)

	assert.True(t, IsVisible(doc, doc.Find("#ok")))
	for _, id := range []string{"none", "dentro", "hidden", "opaco", "zero", "attr"} {
		assert.False(t, IsVisible(doc, doc.Find("#"+id)), id)
	}
	assert.False(t, IsVisible(doc, doc.Find("#nao-existe")))
}

func TestBackgroundColor(t *testing.T) {
	doc := loadDoc(t, `<body style="background-color: #eeeeee">
		<div style="background: rgb(0,0,128)"><span id="a">x</span></div>
		<div style="background-color: transparent"><span id="b">y</span></div>
	</body>`)
	assert.Equal(t, "rgb(0,0,128)", BackgroundColor(doc, doc.Find("#a")))
	assert.Equal(t, "#eeeeee", BackgroundColor(doc, doc.Find("#b")))

	plain := loadDoc(t, `<body><span id="c">z</span></body>`)
	assert.Equal(t, "rgb(255, 255, 255)", BackgroundColor(plain, plain.Find("#c")))
}

func TestGenerateLabel(t *testing.T) {
	doc := loadDoc(t, `<body><button> Enviar </button><input placeholder="Nome"><input id="x"></body>`)
	assert.Equal(t, "Enviar", GenerateLabel(doc.Find("button")))
	assert.Equal(t, "Nome", GenerateLabel(doc.Find("input").First()))
	assert.Equal(t, "Elemento sem rótulo", GenerateLabel(doc.Find("#x")))
}

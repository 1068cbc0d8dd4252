package a11y

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func only(findings []Finding, c Category) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

func countType(findings []Finding, t Type) int {
	n := 0
	for _, f := range findings {
		if f.Type == t {
			n++
		}
	}
	return n
}

func TestCheckContrast(t *testing.T) {
	tests := []struct {
		name      string
		style     string
		wantType  Type
		wantCount int
	}{
		{"preto no branco", "color:#000000; background-color:#FFFFFF; font-size:16px; font-weight:400", "", 0},
		{"cinza texto normal", "color:#777777; background-color:#FFFFFF; font-size:16px", TypeError, 1},
		{"cinza texto grande", "color:#777777; background-color:#FFFFFF; font-size:20px", "", 0},
		{"cinza negrito 14px", "color:#777777; background-color:#FFFFFF; font-size:14px; font-weight:bold", "", 0},
		{"perto do limite", "color:#707070; background-color:#FFFFFF; font-size:16px", TypeWarning, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := loadDoc(t, `<body><p style="`+tt.style+`">Texto de exemplo</p></body>`)
			got := CheckContrast(doc)
			require.Len(t, got, tt.wantCount)
			if tt.wantCount > 0 {
				assert.Equal(t, tt.wantType, got[0].Type)
				assert.Equal(t, CategoryContrast, got[0].Category)
				assert.Contains(t, got[0].Data, "ratio")
				assert.Contains(t, got[0].Data, "required")
			}
		})
	}
}

func TestCheckContrast_SkipsHiddenText(t *testing.T) {
	doc := loadDoc(t, `<body><p style="display:none; color:#777777">x</p><script>var a = 1;</script></body>`)
	assert.Empty(t, CheckContrast(doc))
}

func TestCheckImages(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		errors   int
		warnings int
	}{
		{"sem alt", `<img src="a.png">`, 1, 0},
		{"alt vazio", `<img src="a.png" alt="">`, 0, 1},
		{"decorativa correta", `<img src="a.png" role="presentation" alt="">`, 0, 0},
		{"decorativa com alt", `<img src="a.png" aria-hidden="true" alt="logo">`, 0, 1},
		{"com alt", `<img src="a.png" alt="Sala de estar reformada">`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckImages(loadDoc(t, `<body>`+tt.html+`</body>`))
			assert.Equal(t, tt.errors, countType(got, TypeError))
			assert.Equal(t, tt.warnings, countType(got, TypeWarning))
			for _, f := range got {
				assert.Equal(t, CategoryImages, f.Category)
			}
		})
	}
}

func TestCheckHeadings(t *testing.T) {
	t.Run("dois h1", func(t *testing.T) {
		got := CheckHeadings(loadDoc(t, `<body><h1>A</h1><h1>B</h1></body>`))
		require.Len(t, got, 1)
		assert.Equal(t, TypeWarning, got[0].Type)
		assert.Nil(t, got[0].Element)
	})
	t.Run("nivel pulado", func(t *testing.T) {
		got := CheckHeadings(loadDoc(t, `<body><h1>A</h1><h3>C</h3></body>`))
		require.Len(t, got, 1)
		assert.Equal(t, TypeWarning, got[0].Type)
		assert.Contains(t, got[0].Message, "h1 para h3")
	})
	t.Run("titulo vazio", func(t *testing.T) {
		got := CheckHeadings(loadDoc(t, `<body><h1>A</h1><h2></h2></body>`))
		require.Len(t, got, 1)
		assert.Equal(t, TypeError, got[0].Type)
		assert.Equal(t, SevHigh, got[0].Severity)
	})
	t.Run("estrutura correta", func(t *testing.T) {
		assert.Empty(t, CheckHeadings(loadDoc(t, `<body><h1>A</h1><h2>B</h2><h3>C</h3><h2>D</h2></body>`)))
	})
}

func TestCheckARIA(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		errors   int
		warnings int
	}{
		{"role sem nome", `<div role="button"></div>`, 1, 0},
		{"role com aria-label", `<div role="button" aria-label="Abrir menu"></div>`, 0, 0},
		{"role com texto", `<span role="link">Portfólio</span>`, 0, 0},
		{"aria-invalid invalido", `<input aria-label="x" aria-invalid="talvez">`, 1, 0},
		{"aria-invalid valido", `<input aria-label="x" aria-invalid="TRUE">`, 0, 0},
		{"hidden com label", `<span aria-hidden="true" aria-label="icone"></span>`, 0, 1},
		{"labelledby quebrado", `<div role="button" aria-labelledby="nada"></div>`, 1, 0},
		{"labelledby ok", `<span id="t">Titulo</span><div role="dialog" aria-labelledby="t"></div>`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckARIA(loadDoc(t, `<body>`+tt.html+`</body>`))
			assert.Equal(t, tt.errors, countType(got, TypeError))
			assert.Equal(t, tt.warnings, countType(got, TypeWarning))
		})
	}
}

func TestCheckKeyboard(t *testing.T) {
	t.Run("tabindex positivo", func(t *testing.T) {
		got := CheckKeyboard(loadDoc(t, `<body><div tabindex="3">x</div><div tabindex="0">y</div><div tabindex="-1">z</div></body>`))
		require.Len(t, got, 1)
		assert.Equal(t, CategoryKeyboard, got[0].Category)
		assert.Contains(t, got[0].Message, "tabindex=\"3\"")
	})
	t.Run("outline removido", func(t *testing.T) {
		got := CheckKeyboard(loadDoc(t, `<head><style>a { outline: none; }</style></head><body><a href="/contato">Contato</a></body>`))
		require.Len(t, got, 1)
		assert.Equal(t, TypeWarning, got[0].Type)
	})
	t.Run("outline removido com borda", func(t *testing.T) {
		doc := loadDoc(t, `<head><style>a { outline: 0; border: 1px solid #000000; }</style></head><body><a href="/">x</a></body>`)
		assert.Empty(t, CheckKeyboard(doc))
	})
	t.Run("hidden ignorado", func(t *testing.T) {
		assert.Empty(t, CheckKeyboard(loadDoc(t, `<body><input type="hidden" tabindex="5"></body>`)))
	})
}

func TestCheckFocusIndicators(t *testing.T) {
	t.Run("outline removido sem estilo de foco", func(t *testing.T) {
		doc := loadDoc(t, `<head><style>button { outline: none; }</style></head><body><button type="button">Ok</button></body>`)
		got := CheckFocusIndicators(doc)
		require.Len(t, got, 1)
		assert.Equal(t, CategoryFocus, got[0].Category)
		assert.Equal(t, "button", got[0].Element.Selector)
	})
	t.Run("estilo de foco proprio", func(t *testing.T) {
		doc := loadDoc(t, `<head><style>
			button { outline: none; }
			button:focus { outline: 2px solid #0000ff; }
		</style></head><body><button type="button">Ok</button></body>`)
		assert.Empty(t, CheckFocusIndicators(doc))
	})
	t.Run("box-shadow no foco", func(t *testing.T) {
		doc := loadDoc(t, `<head><style>
			a { outline: none; }
			a:focus-visible { box-shadow: 0 0 0 3px #ff0000; }
		</style></head><body><a href="/">Home</a></body>`)
		assert.Empty(t, CheckFocusIndicators(doc))
	})
	t.Run("padrao do navegador", func(t *testing.T) {
		assert.Empty(t, CheckFocusIndicators(loadDoc(t, `<body><button type="button">Ok</button></body>`)))
	})
	t.Run("outline removido só fora do foco", func(t *testing.T) {
		doc := loadDoc(t, `<head><style>button:not(:focus) { outline: none; }</style></head><body><button type="button">Ok</button></body>`)
		assert.Empty(t, CheckFocusIndicators(doc))
	})
	t.Run("regra posterior ao :focus vence", func(t *testing.T) {
		doc := loadDoc(t, `<head><style>
			a:focus { outline: 2px solid #0000ff; }
			a.menu:focus { outline: none; }
		</style></head><body><a class="menu" href="/">Menu</a><a href="/x">Outro</a></body>`)
		got := CheckFocusIndicators(doc)
		require.Len(t, got, 1)
		assert.Equal(t, ".menu", got[0].Element.Selector)
	})
	t.Run("foco removido no :focus", func(t *testing.T) {
		doc := loadDoc(t, `<head><style>*:focus { outline: none !important; }</style></head><body><a href="/">x</a></body>`)
		assert.Len(t, CheckFocusIndicators(doc), 1)
	})
}

func TestCheckFocusIndicators_CleansUp(t *testing.T) {
	doc := loadDoc(t, `<head><style>button { outline: none; }</style></head><body><button type="button">Ok</button><a class="menu" href="/">x</a></body>`)
	before, err := doc.Find("body").Html()
	require.NoError(t, err)

	CheckFocusIndicators(doc)

	after, err := doc.Find("body").Html()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Len(t, doc.StyleSheets(), 1)
	_, hasClass := doc.Find("button").Attr("class")
	assert.False(t, hasClass)
	assert.Equal(t, "menu", doc.Find("a").AttrOr("class", ""))
}

func TestCheckForms(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		errors   int
		warnings int
	}{
		{"id sem label", `<input id="nome">`, 1, 0},
		{"label for", `<label for="nome">Nome</label><input id="nome">`, 0, 0},
		{"sem id sem aria", `<textarea></textarea>`, 1, 0},
		{"aria-label", `<select aria-label="Serviço"></select>`, 0, 0},
		{"hidden", `<input type="hidden" name="token">`, 0, 0},
		{"required sem aria-required", `<input aria-label="Email" required>`, 0, 1},
		{"required com aria-required", `<input aria-label="Email" required aria-required="true">`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckForms(loadDoc(t, `<body><form>`+tt.html+`</form></body>`))
			assert.Equal(t, tt.errors, countType(got, TypeError))
			assert.Equal(t, tt.warnings, countType(got, TypeWarning))
		})
	}
}

func TestCheckLinks(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		errors   int
		warnings int
	}{
		{"sem texto", `<a href="/x"></a>`, 1, 0},
		{"generico", `<a href="/x">Click here</a>`, 0, 1},
		{"generico pt", `<a href="/x"> Saiba   MAIS </a>`, 0, 1},
		{"href cerquilha", `<a href="#">Início</a>`, 0, 1},
		{"href vazio sem texto", `<a href="">  </a>`, 1, 1},
		{"imagem com alt", `<a href="/"><img src="logo.png" alt="Página inicial"></a>`, 0, 0},
		{"aria-label", `<a href="/p" aria-label="Ver portfólio"><svg></svg></a>`, 0, 0},
		{"sem href ignorado", `<a name="topo"></a>`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckLinks(loadDoc(t, `<body>`+tt.html+`</body>`))
			assert.Equal(t, tt.errors, countType(got, TypeError))
			assert.Equal(t, tt.warnings, countType(got, TypeWarning))
		})
	}
}

func TestCheckButtons(t *testing.T) {
	got := CheckButtons(loadDoc(t, `<body><button></button></body>`))
	assert.Equal(t, 1, countType(got, TypeError))
	assert.Equal(t, 1, countType(got, TypeWarning))

	assert.Empty(t, CheckButtons(loadDoc(t, `<body><button type="button" aria-label="Fechar">×</button></body>`)))
	assert.Len(t, CheckButtons(loadDoc(t, `<body><div role="button"></div></body>`)), 1)
}

func TestCheckLandmarks(t *testing.T) {
	t.Run("sem main", func(t *testing.T) {
		got := CheckLandmarks(loadDoc(t, `<body><p>Sobre nós</p></body>`))
		require.Len(t, got, 1)
		assert.Equal(t, TypeError, got[0].Type)
	})
	t.Run("navs sem rotulo", func(t *testing.T) {
		got := CheckLandmarks(loadDoc(t, `<body><nav>a</nav><main>x</main><nav>b</nav></body>`))
		require.Len(t, got, 1)
		assert.Equal(t, TypeWarning, got[0].Type)
	})
	t.Run("navs com rotulo igual", func(t *testing.T) {
		got := CheckLandmarks(loadDoc(t, `<body><nav aria-label="Menu">a</nav><main>x</main><nav aria-label="menu">b</nav></body>`))
		require.Len(t, got, 1)
	})
	t.Run("navs distintas", func(t *testing.T) {
		doc := loadDoc(t, `<body><nav aria-label="Principal">a</nav><div role="main">x</div><nav aria-label="Rodapé">b</nav></body>`)
		assert.Empty(t, CheckLandmarks(doc))
	})
	t.Run("documento vazio", func(t *testing.T) {
		assert.Empty(t, CheckLandmarks(loadDoc(t, `<body><div></div><script>x()</script></body>`)))
	})
}

func TestCheckLiveRegions(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		errors   int
		warnings int
	}{
		{"valor invalido", `<div aria-live="loud"></div>`, 1, 0},
		{"assertive sem atomic", `<div aria-live="assertive"></div>`, 0, 1},
		{"assertive com atomic", `<div aria-live="assertive" aria-atomic="true"></div>`, 0, 0},
		{"polite", `<div aria-live="polite"></div>`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CheckLiveRegions(loadDoc(t, `<body>`+tt.html+`</body>`))
			assert.Equal(t, tt.errors, countType(got, TypeError))
			assert.Equal(t, tt.warnings, countType(got, TypeWarning))
		})
	}
}

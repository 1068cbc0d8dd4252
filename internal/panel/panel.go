// Package panel desenha o resultado da auditoria como um painel de terminal.
// Só lê o que o motor publica; não guarda estado.
package panel

import (
	"fmt"
	"io"
	"strings"

	"a11y-auditor/internal/a11y"

	"github.com/charmbracelet/lipgloss"
)

type Options struct {
	Title    string
	Width    int  // 0 = 80 colunas
	MaxItems int  // 0 = todos os achados
	Plain    bool // sem bordas nem cores (logs, CI)
}

var (
	colorError   = lipgloss.Color("#d7263d")
	colorWarning = lipgloss.Color("#f4a259")
	colorSuccess = lipgloss.Color("#2e933c")
	colorMuted   = lipgloss.Color("245")

	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(colorWarning)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// Render monta o painel: score, contagens, categorias com achados e a lista de achados.
func Render(summary a11y.Summary, findings []a11y.Finding, opts Options) string {
	title := opts.Title
	if title == "" {
		title = "Auditoria de acessibilidade"
	}
	width := opts.Width
	if width <= 0 {
		width = 80
	}

	paint := func(st lipgloss.Style, s string) string {
		if opts.Plain {
			return s
		}
		return st.Render(s)
	}

	var lines []string
	lines = append(lines, paint(headerStyle, title))
	lines = append(lines, paint(scoreStyle(summary.Score), fmt.Sprintf("Score: %d/100", summary.Score)))
	lines = append(lines, fmt.Sprintf("%d achados | %s | %s", summary.Total,
		paint(errorStyle, fmt.Sprintf("%d erros", summary.Errors)),
		paint(warnStyle, fmt.Sprintf("%d avisos", summary.Warnings))))

	var cats []string
	for _, c := range a11y.Categories {
		if n := summary.ByCategory[c]; n > 0 {
			cats = append(cats, fmt.Sprintf("%s=%d", c, n))
		}
	}
	if len(cats) > 0 {
		lines = append(lines, paint(mutedStyle, strings.Join(cats, " ")))
	}

	if len(findings) == 0 {
		lines = append(lines, "", paint(lipgloss.NewStyle().Foreground(colorSuccess), "Nenhum problema encontrado."))
	} else {
		lines = append(lines, "")
		shown := findings
		if opts.MaxItems > 0 && len(shown) > opts.MaxItems {
			shown = shown[:opts.MaxItems]
		}
		for _, f := range shown {
			lines = append(lines, findingLine(f, paint))
		}
		if rest := len(findings) - len(shown); rest > 0 {
			lines = append(lines, paint(mutedStyle, fmt.Sprintf("... e mais %d", rest)))
		}
	}

	body := strings.Join(lines, "\n")
	if opts.Plain {
		return body
	}
	return boxStyle.Width(width - 2).Render(body)
}

func findingLine(f a11y.Finding, paint func(lipgloss.Style, string) string) string {
	marker := paint(warnStyle, "!")
	if f.Type == a11y.TypeError {
		marker = paint(errorStyle, "x")
	}
	line := fmt.Sprintf("%s [%s/%s] %s", marker, f.Category, f.Severity, f.Message)
	if f.Element != nil && f.Element.Selector != "" {
		line += " " + paint(mutedStyle, f.Element.Selector)
	}
	return line
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 90:
		return headerStyle.Foreground(colorSuccess)
	case score >= 50:
		return headerStyle.Foreground(colorWarning)
	}
	return headerStyle.Foreground(colorError)
}

// Source é o que o painel precisa do auditor.
type Source interface {
	OnResults(func([]a11y.Finding))
}

// Bind inscreve o painel para redesenhar em w a cada execução.
func Bind(src Source, w io.Writer, opts Options) {
	src.OnResults(func(findings []a11y.Finding) {
		fmt.Fprintln(w, Render(a11y.Summarize(findings), findings, opts))
	})
}

package a11y

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"
)

// Export é o documento gerado por ExportJSON.
type Export struct {
	Timestamp string    `json:"timestamp"`
	Summary   Summary   `json:"summary"`
	Results   []Finding `json:"results"`
}

func ExportJSON(findings []Finding, summary Summary, at time.Time) (string, error) {
	if findings == nil {
		findings = []Finding{}
	}
	data, err := json.MarshalIndent(Export{
		Timestamp: at.UTC().Format(time.RFC3339),
		Summary:   summary,
		Results:   findings,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("exportar json: %w", err)
	}
	return string(data), nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="UTF-8">
<title>Relatório de Acessibilidade</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 40px; color: #222222;">
<h1>Relatório de Acessibilidade</h1>
<p>Gerado em {{.Generated}}</p>

<div style="font-size: 24px; font-weight: bold;">Score: {{.Summary.Score}} / 100</div>
<ul>
<li>Total: {{.Summary.Total}}</li>
<li>Erros: {{.Summary.Errors}}</li>
<li>Avisos: {{.Summary.Warnings}}</li>
</ul>

{{define "findings"}}
<table style="border-collapse: collapse; width: 100%; margin-top: 12px;">
<tr>
<th style="border: 1px solid #dddddd; padding: 8px; background-color: #f2f2f2;">Categoria</th>
<th style="border: 1px solid #dddddd; padding: 8px; background-color: #f2f2f2;">Severidade</th>
<th style="border: 1px solid #dddddd; padding: 8px; background-color: #f2f2f2;">Problema</th>
<th style="border: 1px solid #dddddd; padding: 8px; background-color: #f2f2f2;">Elemento</th>
<th style="border: 1px solid #dddddd; padding: 8px; background-color: #f2f2f2;">Correção</th>
</tr>
{{range .}}
<tr>
<td style="border: 1px solid #dddddd; padding: 8px;">{{.Category}}</td>
<td style="border: 1px solid #dddddd; padding: 8px;">{{.Severity}}</td>
<td style="border: 1px solid #dddddd; padding: 8px;">{{.Message}}</td>
<td style="border: 1px solid #dddddd; padding: 8px;"><code>{{if .Element}}{{.Element.Selector}}{{end}}</code></td>
<td style="border: 1px solid #dddddd; padding: 8px;">{{.Fix}}</td>
</tr>
{{end}}
</table>
{{end}}

<h2 style="color: #b00020;">Erros ({{len .Errors}})</h2>
{{if .Errors}}{{template "findings" .Errors}}{{else}}<p>Nenhum erro encontrado.</p>{{end}}

<h2 style="color: #8a5a00;">Avisos ({{len .Warnings}})</h2>
{{if .Warnings}}{{template "findings" .Warnings}}{{else}}<p>Nenhum aviso encontrado.</p>{{end}}
</body>
</html>
`))

// RenderHTMLReport gera um HTML autônomo com estilo inline. O template escapa o texto dos achados.
func RenderHTMLReport(findings []Finding, summary Summary, at time.Time) (string, error) {
	view := struct {
		Generated string
		Summary   Summary
		Errors    []Finding
		Warnings  []Finding
	}{
		Generated: at.Format("02/01/2006 15:04:05"),
		Summary:   summary,
	}
	for _, f := range findings {
		switch f.Type {
		case TypeError:
			view.Errors = append(view.Errors, f)
		case TypeWarning:
			view.Warnings = append(view.Warnings, f)
		}
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("gerar relatório html: %w", err)
	}
	return buf.String(), nil
}

package sarif

import (
	"encoding/json"
	"fmt"
	"strings"

	"a11y-auditor/internal/a11y"
)

const (
	Version = "2.1.0"
	// schema RTM reconhecido por GitHub/VSCode
	Schema = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
)

type Log struct {
	Version string `json:"version"`
	Schema  string `json:"$schema"`
	Runs    []Run  `json:"runs"`
}

type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

type Tool struct {
	Driver Driver `json:"driver"`
}

type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

type Rule struct {
	ID               string  `json:"id"`
	ShortDescription Message `json:"shortDescription"`
}

type Result struct {
	RuleID    string     `json:"ruleId"`
	Message   Message    `json:"message"`
	Level     string     `json:"level"` // error, warning
	Locations []Location `json:"locations"`

	// sugestão de correção em "fix"; o fixes do SARIF exige artifactChanges
	Properties map[string]string `json:"properties,omitempty"`
}

type Message struct {
	Text string `json:"text"`
}

type Location struct {
	PhysicalLocation PhysicalLocation  `json:"physicalLocation"`
	LogicalLocations []LogicalLocation `json:"logicalLocations,omitempty"`
}

type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
}

type ArtifactLocation struct {
	URI string `json:"uri"`
}

// LogicalLocation aponta o elemento pelo seletor CSS gerado na auditoria
type LogicalLocation struct {
	Name               string `json:"name"`
	FullyQualifiedName string `json:"fullyQualifiedName,omitempty"`
	Kind               string `json:"kind"`
}

// Build converte achados do motor num log SARIF com um único run.
// source é a URI do documento auditado (arquivo ou URL).
func Build(findings []a11y.Finding, source, toolName, toolVersion string) Log {
	uri := strings.TrimSpace(source)
	if uri == "" {
		uri = "UNKNOWN"
	}

	results := make([]Result, 0, len(findings))
	used := map[a11y.Category]bool{}
	for _, f := range findings {
		used[f.Category] = true

		loc := Location{PhysicalLocation: PhysicalLocation{ArtifactLocation: ArtifactLocation{URI: uri}}}
		if f.Element != nil && f.Element.Selector != "" {
			loc.LogicalLocations = []LogicalLocation{{
				Name:               f.Element.Selector,
				FullyQualifiedName: f.Element.TagName + " " + f.Element.Selector,
				Kind:               "element",
			}}
		}

		r := Result{
			RuleID:    RuleID(f.Category),
			Level:     typeToLevel(f.Type),
			Message:   Message{Text: strings.TrimSpace(f.Message)},
			Locations: []Location{loc},
		}
		if fix := strings.TrimSpace(f.Fix); fix != "" {
			r.Properties = map[string]string{"fix": fix}
		}
		results = append(results, r)
	}

	var rules []Rule
	for _, c := range a11y.Categories {
		if used[c] {
			rules = append(rules, Rule{ID: RuleID(c), ShortDescription: Message{Text: "Checagem de acessibilidade: " + string(c)}})
		}
	}

	return Log{
		Version: Version,
		Schema:  Schema,
		Runs: []Run{{
			Tool:    Tool{Driver: Driver{Name: toolName, Version: toolVersion, Rules: rules}},
			Results: results,
		}},
	}
}

func Marshal(log Log) ([]byte, error) {
	data, err := json.MarshalIndent(log, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sarif: %w", err)
	}
	return data, nil
}

func RuleID(c a11y.Category) string {
	return "a11y/" + string(c)
}

func typeToLevel(t a11y.Type) string {
	if t == a11y.TypeError {
		return "error"
	}
	return "warning"
}

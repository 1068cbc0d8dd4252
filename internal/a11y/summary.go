package a11y

// Summary é derivado de um resultado; nunca é guardado separado dele.
type Summary struct {
	Total      int              `json:"total"`
	Errors     int              `json:"errors"`
	Warnings   int              `json:"warnings"`
	BySeverity map[Severity]int `json:"bySeverity"`
	ByCategory map[Category]int `json:"byCategory"`
	Score      int              `json:"score"`
}

const (
	errorPenalty   = 10
	warningPenalty = 2
)

func Summarize(findings []Finding) Summary {
	s := Summary{
		BySeverity: map[Severity]int{SevHigh: 0, SevMedium: 0, SevLow: 0},
		ByCategory: make(map[Category]int, len(Categories)),
	}
	for _, c := range Categories {
		s.ByCategory[c] = 0
	}

	for _, f := range findings {
		s.Total++
		switch f.Type {
		case TypeError:
			s.Errors++
		case TypeWarning:
			s.Warnings++
		}
		s.BySeverity[f.Severity]++
		s.ByCategory[f.Category]++
	}
	s.Score = CalculateScore(s.Errors, s.Warnings)
	return s
}

// CalculateScore = max(0, 100 - 10*erros - 2*avisos)
func CalculateScore(errors, warnings int) int {
	score := 100 - errorPenalty*errors - warningPenalty*warnings
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	}
	return score
}

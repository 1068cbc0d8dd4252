package models

import "a11y-auditor/internal/a11y"

// Relatorio é uma auditoria salva, com os achados do motor
type Relatorio struct {
	Id      int            `json:"id"`
	Codigo  string         `json:"codigo"`
	UrlAlvo string         `json:"url_alvo"`
	Data    string         `json:"data"`
	Score   int            `json:"score"`
	Resumo  a11y.Summary   `json:"resumo"`
	Achados []a11y.Finding `json:"achados"`
}

// ItemHistorico é uma linha da listagem de relatórios
type ItemHistorico struct {
	Id      int    `json:"id"`
	Codigo  string `json:"codigo"`
	UrlAlvo string `json:"url"`
	Data    string `json:"data"`
	Score   int    `json:"score"`
	Usuario string `json:"usuario"`
}

type Usuario struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// Credenciais para login
type Credenciais struct {
	Usuario string `json:"usuario"`
	Senha   string `json:"senha"`
}

package handlers

import (
	"net/http"

	"a11y-auditor/internal/services"

	"go.uber.org/zap"
)

// NewRouter liga as rotas da API aos handlers. static é o diretório do frontend ("" desliga).
func NewRouter(service *services.AuditoriaService, log *zap.SugaredLogger, static string) http.Handler {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	auditoriaHandler := NewAuditoriaHandler(service, log)
	authHandler := NewAuthHandler(service, log)
	relatorioHandler := NewRelatorioHandler(service, log)

	mux := http.NewServeMux()
	if static != "" {
		mux.Handle("/", http.FileServer(http.Dir(static)))
	}

	// Rotas de Auditoria
	mux.HandleFunc("/api/auditar", auditoriaHandler.Auditar)

	// Rotas de Autenticação
	mux.HandleFunc("/api/registrar", authHandler.Registrar)
	mux.HandleFunc("/api/login", authHandler.Login)

	// Rotas de Histórico e Relatórios
	mux.HandleFunc("/api/historico", relatorioHandler.ListarHistorico)
	mux.HandleFunc("/api/relatorio", relatorioHandler.Detalhes)
	mux.HandleFunc("/api/relatorio/html", relatorioHandler.DetalhesHTML)

	return RequestID(AccessLog(log)(mux))
}

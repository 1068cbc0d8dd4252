package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"a11y-auditor/internal/repositories"
	"a11y-auditor/internal/services"

	"go.uber.org/zap"
)

type AuditoriaHandler struct {
	Service *services.AuditoriaService
	Log     *zap.SugaredLogger
}

func NewAuditoriaHandler(service *services.AuditoriaService, log *zap.SugaredLogger) *AuditoriaHandler {
	return &AuditoriaHandler{Service: service, Log: log}
}

// Auditar atende POST /api/auditar com {"url": ..., "html": ..., "user_id": ...}
func (h *AuditoriaHandler) Auditar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Método inválido", http.StatusMethodNotAllowed)
		return
	}

	var reqData struct {
		Url    string `json:"url"`
		Html   string `json:"html"`
		UserId int    `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&reqData); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return
	}

	relatorio, err := h.Service.ExecutarAuditoria(r.Context(), reqData.Url, reqData.Html, reqData.UserId)
	if err != nil {
		h.Log.Warnw("auditoria falhou", "url", reqData.Url, "erro", err, "request_id", RequestIDFrom(r.Context()))
		http.Error(w, "Erro na auditoria: "+err.Error(), statusPara(err))
		return
	}

	writeJSON(w, http.StatusOK, relatorio)
}

// statusPara traduz os erros de serviço e repositório em status HTTP
func statusPara(err error) int {
	switch {
	case errors.Is(err, services.ErrEntradaInvalida):
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, repositories.ErrSenhaIncorreta):
		return http.StatusUnauthorized
	case errors.Is(err, repositories.ErrUsuarioRepetido):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package handlers

import (
	"net/http"
	"strconv"

	"a11y-auditor/internal/services"

	"go.uber.org/zap"
)

type RelatorioHandler struct {
	Service *services.AuditoriaService
	Log     *zap.SugaredLogger
}

func NewRelatorioHandler(service *services.AuditoriaService, log *zap.SugaredLogger) *RelatorioHandler {
	return &RelatorioHandler{Service: service, Log: log}
}

func (h *RelatorioHandler) ListarHistorico(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(r.URL.Query().Get("user_id"))
	if err != nil {
		http.Error(w, "user_id inválido", http.StatusBadRequest)
		return
	}

	lista, err := h.Service.ListarHistorico(r.Context(), userId)
	if err != nil {
		h.falha(r, err)
		http.Error(w, "Erro ao buscar histórico", statusPara(err))
		return
	}
	writeJSON(w, http.StatusOK, lista)
}

func (h *RelatorioHandler) Detalhes(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}

	relatorio, err := h.Service.ObterRelatorio(r.Context(), id)
	if err != nil {
		h.falha(r, err)
		http.Error(w, "Relatório não encontrado", statusPara(err))
		return
	}
	writeJSON(w, http.StatusOK, relatorio)
}

// DetalhesHTML devolve o relatório autônomo, pronto para salvar ou imprimir
func (h *RelatorioHandler) DetalhesHTML(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		http.Error(w, "id inválido", http.StatusBadRequest)
		return
	}

	page, err := h.Service.RelatorioHTML(r.Context(), id)
	if err != nil {
		h.falha(r, err)
		http.Error(w, "Relatório não encontrado", statusPara(err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (h *RelatorioHandler) falha(r *http.Request, err error) {
	if statusPara(err) == http.StatusInternalServerError {
		h.Log.Errorw("erro em relatórios", "path", r.URL.Path, "erro", err, "request_id", RequestIDFrom(r.Context()))
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"a11y-auditor/internal/models"
	"a11y-auditor/internal/repositories"
	"a11y-auditor/internal/services"

	"go.uber.org/zap"
)

type AuthHandler struct {
	Service *services.AuditoriaService // o mesmo service cuida de usuários
	Log     *zap.SugaredLogger
}

func NewAuthHandler(service *services.AuditoriaService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{Service: service, Log: log}
}

func (h *AuthHandler) Registrar(w http.ResponseWriter, r *http.Request) {
	creds, ok := lerCredenciais(w, r)
	if !ok {
		return
	}

	if err := h.Service.RegistrarUsuario(r.Context(), creds.Usuario, creds.Senha); err != nil {
		status := statusPara(err)
		if status == http.StatusInternalServerError {
			h.Log.Errorw("erro ao criar usuário", "erro", err, "request_id", RequestIDFrom(r.Context()))
		}
		http.Error(w, "Erro ao criar usuário: "+err.Error(), status)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"msg": "Criado com sucesso"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	creds, ok := lerCredenciais(w, r)
	if !ok {
		return
	}

	usuario, err := h.Service.AutenticarUsuario(r.Context(), creds.Usuario, creds.Senha)
	switch {
	case errors.Is(err, repositories.ErrNaoEncontrado), errors.Is(err, repositories.ErrSenhaIncorreta):
		http.Error(w, "Login inválido", http.StatusUnauthorized)
		return
	case err != nil:
		h.Log.Errorw("erro no login", "erro", err, "request_id", RequestIDFrom(r.Context()))
		http.Error(w, "Erro no login", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, usuario)
}

func lerCredenciais(w http.ResponseWriter, r *http.Request) (models.Credenciais, bool) {
	var creds models.Credenciais
	if r.Method != http.MethodPost {
		http.Error(w, "Método inválido", http.StatusMethodNotAllowed)
		return creds, false
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "JSON inválido", http.StatusBadRequest)
		return creds, false
	}
	return creds, true
}

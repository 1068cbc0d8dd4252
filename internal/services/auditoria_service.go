package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"a11y-auditor/internal/a11y"
	"a11y-auditor/internal/dom"
	"a11y-auditor/internal/fetch"
	"a11y-auditor/internal/models"

	"go.uber.org/zap"
)

// ErrEntradaInvalida marca erro do cliente (alvo vazio, credenciais em branco)
var ErrEntradaInvalida = errors.New("entrada inválida")

// Store é o que o serviço usa do repositório
type Store interface {
	SalvarRelatorio(ctx context.Context, userId int, url, codigo string, score int, achados []a11y.Finding) (int, error)
	ListarRelatorios(ctx context.Context, userId int) ([]models.ItemHistorico, error)
	GetRelatorioCompleto(ctx context.Context, id int) (*models.Relatorio, error)
	CriarUsuario(ctx context.Context, username, senha string) error
	BuscarUsuarioLogin(ctx context.Context, username, senha string) (*models.Usuario, error)
}

// DocumentLoader só busca páginas remotas; arquivos locais ficam para a CLI.
type DocumentLoader interface {
	LoadURL(ctx context.Context, target string) (*dom.Document, string, error)
}

type AuditoriaService struct {
	Repo   Store
	Loader DocumentLoader
	Log    *zap.SugaredLogger
	Now    func() time.Time
}

func NewAuditoriaService(repo Store, loader DocumentLoader, log *zap.SugaredLogger) *AuditoriaService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AuditoriaService{Repo: repo, Loader: loader, Log: log, Now: time.Now}
}

// === MÉTODOS DE AUTENTICAÇÃO E HISTÓRICO ===

func (s *AuditoriaService) RegistrarUsuario(ctx context.Context, user, senha string) error {
	user = strings.TrimSpace(user)
	if user == "" || senha == "" {
		return fmt.Errorf("%w: usuário e senha são obrigatórios", ErrEntradaInvalida)
	}
	return s.Repo.CriarUsuario(ctx, user, senha)
}

func (s *AuditoriaService) AutenticarUsuario(ctx context.Context, user, senha string) (*models.Usuario, error) {
	return s.Repo.BuscarUsuarioLogin(ctx, strings.TrimSpace(user), senha)
}

func (s *AuditoriaService) ListarHistorico(ctx context.Context, userId int) ([]models.ItemHistorico, error) {
	return s.Repo.ListarRelatorios(ctx, userId)
}

// ObterRelatorio devolve o relatório salvo com o resumo recalculado dos achados
func (s *AuditoriaService) ObterRelatorio(ctx context.Context, id int) (*models.Relatorio, error) {
	rel, err := s.Repo.GetRelatorioCompleto(ctx, id)
	if err != nil {
		return nil, err
	}
	rel.Resumo = a11y.Summarize(rel.Achados)
	return rel, nil
}

func (s *AuditoriaService) RelatorioHTML(ctx context.Context, id int) (string, error) {
	rel, err := s.ObterRelatorio(ctx, id)
	if err != nil {
		return "", err
	}
	return a11y.RenderHTMLReport(rel.Achados, rel.Resumo, s.Now())
}

// === MÉTODOS DE AUDITORIA ===

// ExecutarAuditoria audita o HTML enviado ou, sem ele, baixa o alvo; depois salva o relatório.
func (s *AuditoriaService) ExecutarAuditoria(ctx context.Context, alvo, html string, userId int) (*models.Relatorio, error) {
	alvo = strings.TrimSpace(alvo)

	var doc *dom.Document
	var err error
	origem := alvo
	switch {
	case strings.TrimSpace(html) != "":
		if origem == "" {
			origem = "html-enviado"
		}
		doc, err = dom.NewDocument(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("ler html enviado: %w", err)
		}
	case alvo == "":
		return nil, fmt.Errorf("%w: informe url ou html", ErrEntradaInvalida)
	default:
		doc, origem, err = s.Loader.LoadURL(ctx, alvo)
		if errors.Is(err, fetch.ErrNotURL) {
			return nil, fmt.Errorf("%w: %v", ErrEntradaInvalida, err)
		}
		if err != nil {
			return nil, err
		}
	}

	log := s.Log.With("alvo", origem, "user_id", userId)
	auditor := a11y.New(doc, a11y.WithLogger(log), a11y.WithClock(s.Now))
	achados := auditor.RunAllTests()
	resumo := auditor.Summary()

	codigo := s.gerarCodigo()
	id, err := s.Repo.SalvarRelatorio(ctx, userId, origem, codigo, resumo.Score, achados)
	if err != nil {
		return nil, err
	}
	log.Infow("relatório salvo", "id", id, "codigo", codigo, "score", resumo.Score)

	return &models.Relatorio{
		Id:      id,
		Codigo:  codigo,
		UrlAlvo: origem,
		Data:    s.Now().Format("02/01/2006 15:04:05"),
		Score:   resumo.Score,
		Resumo:  resumo,
		Achados: achados,
	}, nil
}

// gerarCodigo: ano + duas letras + quatro dígitos, ex. 2026QX0421
func (s *AuditoriaService) gerarCodigo() string {
	ano := s.Now().Year()
	letras := "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	l1 := string(letras[rand.Intn(len(letras))])
	l2 := string(letras[rand.Intn(len(letras))])
	numeros := rand.Intn(10000)
	return fmt.Sprintf("%d%s%s%04d", ano, l1, l2, numeros)
}

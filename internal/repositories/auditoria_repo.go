package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"a11y-auditor/internal/a11y"
	"a11y-auditor/internal/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNaoEncontrado   = errors.New("registro não encontrado")
	ErrSenhaIncorreta  = errors.New("senha incorreta")
	ErrUsuarioRepetido = errors.New("usuário já existe")
)

const bcryptCost = 10

// AuditoriaRepository conecta o código ao banco de dados
type AuditoriaRepository struct {
	DB  *sql.DB
	Log *zap.SugaredLogger
}

func NewAuditoriaRepository(db *sql.DB, log *zap.SugaredLogger) *AuditoriaRepository {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AuditoriaRepository{DB: db, Log: log}
}

// ==========================================
// ===       FUNÇÕES DE RELATÓRIO         ===
// ==========================================

// SalvarRelatorio grava cabeçalho e achados numa transação só
func (r *AuditoriaRepository) SalvarRelatorio(ctx context.Context, userId int, url, codigo string, score int, achados []a11y.Finding) (int, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("iniciar transação: %w", err)
	}
	defer tx.Rollback()

	var relatorioId int
	err = tx.QueryRowContext(ctx,
		`INSERT INTO relatorios (user_id, url_alvo, codigo, score) VALUES ($1, $2, $3, $4) RETURNING id`,
		userId, url, codigo, score).Scan(&relatorioId)
	if err != nil {
		return 0, fmt.Errorf("salvar relatório: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO achados
		(relatorio_id, posicao, tipo, categoria, severidade, mensagem, correcao, elemento, dados)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`)
	if err != nil {
		return 0, fmt.Errorf("preparar achados: %w", err)
	}
	defer stmt.Close()

	for i, f := range achados {
		elemento, dados, err := encodeExtras(f)
		if err != nil {
			return 0, err
		}
		if _, err := stmt.ExecContext(ctx, relatorioId, i, f.Type, f.Category, f.Severity,
			f.Message, f.Fix, elemento, dados); err != nil {
			return 0, fmt.Errorf("salvar achado %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit relatório: %w", err)
	}
	return relatorioId, nil
}

func (r *AuditoriaRepository) ListarRelatorios(ctx context.Context, userId int) ([]models.ItemHistorico, error) {
	// 1. Descobre se é Admin
	var isAdmin bool
	err := r.DB.QueryRowContext(ctx, "SELECT is_admin FROM usuarios WHERE id = $1", userId).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar permissão: %w", err)
	}

	// 2. Admin vê tudo; os demais só os próprios relatórios
	query := `
		SELECT r.id, r.codigo, r.url_alvo, to_char(r.data_auditoria, 'DD/MM/YYYY HH24:MI:SS'), r.score, u.username
		FROM relatorios r
		JOIN usuarios u ON r.user_id = u.id
		WHERE $1 OR r.user_id = $2
		ORDER BY r.data_auditoria DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, isAdmin, userId)
	if err != nil {
		return nil, fmt.Errorf("listar relatórios: %w", err)
	}
	defer rows.Close()

	lista := []models.ItemHistorico{}
	for rows.Next() {
		var item models.ItemHistorico
		if err := rows.Scan(&item.Id, &item.Codigo, &item.UrlAlvo, &item.Data, &item.Score, &item.Usuario); err != nil {
			r.Log.Warnw("linha de histórico ignorada", "erro", err)
			continue
		}
		lista = append(lista, item)
	}
	return lista, rows.Err()
}

func (r *AuditoriaRepository) GetRelatorioCompleto(ctx context.Context, id int) (*models.Relatorio, error) {
	var relatorio models.Relatorio

	// 1. Busca Cabeçalho
	err := r.DB.QueryRowContext(ctx, `
		SELECT r.id, r.codigo, r.url_alvo, to_char(r.data_auditoria, 'DD/MM/YYYY HH24:MI:SS'), r.score
		FROM relatorios r
		WHERE r.id = $1
	`, id).Scan(&relatorio.Id, &relatorio.Codigo, &relatorio.UrlAlvo, &relatorio.Data, &relatorio.Score)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("buscar relatório %d: %w", id, err)
	}

	// 2. Busca Achados na ordem em que o motor produziu
	rows, err := r.DB.QueryContext(ctx, `
		SELECT tipo, categoria, severidade, mensagem, coalesce(correcao, ''), coalesce(elemento, ''), coalesce(dados, '')
		FROM achados
		WHERE relatorio_id = $1
		ORDER BY posicao
	`, id)
	if err != nil {
		return nil, fmt.Errorf("buscar achados %d: %w", id, err)
	}
	defer rows.Close()

	relatorio.Achados = []a11y.Finding{}
	for rows.Next() {
		var f a11y.Finding
		var elemento, dados string
		if err := rows.Scan(&f.Type, &f.Category, &f.Severity, &f.Message, &f.Fix, &elemento, &dados); err != nil {
			return nil, fmt.Errorf("ler achado: %w", err)
		}
		if err := decodeExtras(&f, elemento, dados); err != nil {
			return nil, err
		}
		relatorio.Achados = append(relatorio.Achados, f)
	}
	return &relatorio, rows.Err()
}

// elemento e dados vão para colunas TEXT como JSON; ausentes viram NULL
func encodeExtras(f a11y.Finding) (elemento, dados sql.NullString, err error) {
	if f.Element != nil {
		b, err := json.Marshal(f.Element)
		if err != nil {
			return elemento, dados, fmt.Errorf("codificar elemento: %w", err)
		}
		elemento = sql.NullString{String: string(b), Valid: true}
	}
	if len(f.Data) > 0 {
		b, err := json.Marshal(f.Data)
		if err != nil {
			return elemento, dados, fmt.Errorf("codificar dados: %w", err)
		}
		dados = sql.NullString{String: string(b), Valid: true}
	}
	return elemento, dados, nil
}

func decodeExtras(f *a11y.Finding, elemento, dados string) error {
	if elemento != "" {
		f.Element = &a11y.ElementInfo{}
		if err := json.Unmarshal([]byte(elemento), f.Element); err != nil {
			return fmt.Errorf("decodificar elemento: %w", err)
		}
	}
	if dados != "" {
		if err := json.Unmarshal([]byte(dados), &f.Data); err != nil {
			return fmt.Errorf("decodificar dados: %w", err)
		}
	}
	return nil
}

// ==========================================
// ===       FUNÇÕES DE USUÁRIO           ===
// ==========================================

func (r *AuditoriaRepository) CriarUsuario(ctx context.Context, username, senhaRaw string) error {
	// o hash é gerado aqui para nunca salvar texto puro
	hash, err := bcrypt.GenerateFromPassword([]byte(senhaRaw), bcryptCost)
	if err != nil {
		return fmt.Errorf("gerar hash: %w", err)
	}

	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO usuarios (username, password_hash) VALUES ($1, $2) ON CONFLICT (username) DO NOTHING",
		username, string(hash))
	if err != nil {
		return fmt.Errorf("criar usuário: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUsuarioRepetido
	}
	return nil
}

func (r *AuditoriaRepository) BuscarUsuarioLogin(ctx context.Context, username, senhaRaw string) (*models.Usuario, error) {
	var u models.Usuario
	var hashSalvo string

	// 1. Busca o hash no banco
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, is_admin FROM usuarios WHERE username=$1", username).
		Scan(&u.Id, &u.Username, &hashSalvo, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNaoEncontrado
	}
	if err != nil {
		return nil, fmt.Errorf("buscar usuário: %w", err)
	}

	// 2. Compara a senha digitada com o hash
	if err := bcrypt.CompareHashAndPassword([]byte(hashSalvo), []byte(senhaRaw)); err != nil {
		return nil, ErrSenhaIncorreta
	}
	return &u, nil
}

// InicializarTabelas cria a estrutura do banco e o usuário Admin padrão
func (r *AuditoriaRepository) InicializarTabelas(ctx context.Context, senhaAdmin string) error {
	// 1. Cria Tabela Usuários
	if _, err := r.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS usuarios (
		id SERIAL PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN DEFAULT FALSE
	);`); err != nil {
		return fmt.Errorf("erro tabela usuarios: %w", err)
	}

	// 2. Cria Admin Padrão; ON CONFLICT evita duplicar
	hash, err := bcrypt.GenerateFromPassword([]byte(senhaAdmin), bcryptCost)
	if err != nil {
		return fmt.Errorf("gerar hash admin: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, `INSERT INTO usuarios (id, username, password_hash, is_admin)
		VALUES (1, 'Auditor Chefe', $1, TRUE)
		ON CONFLICT (id) DO NOTHING`, string(hash)); err != nil {
		r.Log.Warnw("erro ao criar admin", "erro", err)
	}
	// mantém o SERIAL à frente do id fixo do admin
	if _, err := r.DB.ExecContext(ctx,
		`SELECT setval('usuarios_id_seq', GREATEST((SELECT MAX(id) FROM usuarios), 1))`); err != nil {
		r.Log.Warnw("erro ao ajustar sequência de usuários", "erro", err)
	}

	// 3. Cria Tabela Relatórios
	if _, err := r.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS relatorios (
		id SERIAL PRIMARY KEY,
		codigo TEXT UNIQUE NOT NULL,
		user_id INT REFERENCES usuarios(id),
		url_alvo TEXT NOT NULL,
		score INT NOT NULL DEFAULT 100,
		data_auditoria TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("erro tabela relatorios: %w", err)
	}

	// 4. Cria Tabela Achados
	if _, err := r.DB.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS achados (
		id SERIAL PRIMARY KEY,
		relatorio_id INT REFERENCES relatorios(id) ON DELETE CASCADE,
		posicao INT NOT NULL,
		tipo TEXT NOT NULL,
		categoria TEXT NOT NULL,
		severidade TEXT NOT NULL,
		mensagem TEXT NOT NULL,
		correcao TEXT,
		elemento TEXT,
		dados TEXT
	);`); err != nil {
		return fmt.Errorf("erro tabela achados: %w", err)
	}

	r.Log.Infow("banco de dados inicializado e verificado")
	return nil
}

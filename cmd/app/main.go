package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"a11y-auditor/internal/config"
	"a11y-auditor/internal/fetch"
	"a11y-auditor/internal/handlers"
	"a11y-auditor/internal/logging"
	"a11y-auditor/internal/repositories"
	"a11y-auditor/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "erro:", err)
		os.Exit(1)
	}
}

func run() error {
	// 0. Configurações Iniciais
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	// fuso global para que time.Now() pegue o horário certo
	loc, err := cfg.TimeLocation()
	if err != nil {
		log.Warnw("fuso horário não carregado, usando local do sistema", "erro", err)
	}
	time.Local = loc

	// 1. Conexão com Banco
	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("abrir banco: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := db.PingContext(pingCtx); err != nil {
		log.Warnw("banco de dados demorando a responder", "erro", err)
	}
	cancel()

	// 2. INJEÇÃO DE DEPENDÊNCIA

	// CAMADA 1: Repositório (Fala com o Banco)
	auditRepo := repositories.NewAuditoriaRepository(db, log)
	if err := auditRepo.InicializarTabelas(ctx, senhaAdmin(log)); err != nil {
		return fmt.Errorf("falha ao inicializar banco de dados: %w", err)
	}

	// CAMADA 2: Serviço (motor de acessibilidade + download das páginas)
	loader := fetch.NewLoader(cfg.Fetch, log)
	auditoriaService := services.NewAuditoriaService(auditRepo, loader, log)

	// CAMADA 3: Handlers (Recebem as rotas HTTP)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewRouter(auditoriaService, log, "./static"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Infow("auditor de acessibilidade rodando", "porta", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

const senhaAdminPadrao = "123"

// senhaAdmin lê A11Y_ADMIN_PASSWORD e avisa quando o admin fica com a senha padrão
func senhaAdmin(log *zap.SugaredLogger) string {
	if senha := os.Getenv("A11Y_ADMIN_PASSWORD"); senha != "" {
		return senha
	}
	log.Warnw("A11Y_ADMIN_PASSWORD não definido; admin criado com a senha padrão",
		"usuario", "admin", "acao", "defina A11Y_ADMIN_PASSWORD em produção")
	return senhaAdminPadrao
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"a11y-auditor/internal/a11y"
	"a11y-auditor/internal/fetch"
	"a11y-auditor/internal/panel"
)

var (
	watchSpec     string
	watchPlain    bool
	watchMaxItems int
)

var watchCmd = &cobra.Command{
	Use:   "watch [arquivo|url]",
	Short: "Reaudita o alvo num agendamento e redesenha o painel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		target := args[0]
		loader := fetch.NewLoader(cfg.Fetch, logger)
		opts := panel.Options{Title: target, Plain: watchPlain, MaxItems: watchMaxItems}
		out := cmd.OutOrStdout()
		lastScore := -1

		runOnce := func() {
			jobCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
			defer cancel()

			// o alvo é recarregado a cada rodada: a página pode ter mudado
			doc, source, err := loader.Load(jobCtx, target)
			if err != nil {
				logger.Warnw("falha ao carregar alvo", "alvo", target, "erro", err)
				return
			}
			auditor := a11y.New(doc, a11y.WithLogger(logger.With("origem", source)))
			panel.Bind(auditor, out, opts)
			auditor.RunAllTests()

			if score := auditor.Summary().Score; score != lastScore {
				if lastScore >= 0 {
					logger.Infow("score mudou", "antes", lastScore, "agora", score)
				}
				lastScore = score
			}
		}

		c := cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		))
		if _, err := c.AddFunc(watchSpec, runOnce); err != nil {
			return err
		}

		runOnce()
		c.Start()
		logger.Infow("observando alvo", "alvo", target, "agenda", watchSpec)

		<-ctx.Done()
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchSpec, "every", "@every 30s", "Agenda no formato do cron (ex. \"@every 5m\")")
	watchCmd.Flags().BoolVar(&watchPlain, "plain", false, "Painel sem bordas nem cores")
	watchCmd.Flags().IntVar(&watchMaxItems, "max-items", 20, "Limite de achados no painel (0 = todos)")
}

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"a11y-auditor/internal/a11y"
	"a11y-auditor/internal/fetch"
	"a11y-auditor/internal/panel"
	"a11y-auditor/internal/sarif"
)

var (
	outputFormat string
	outFile      string
	failOnError  bool
	plainOutput  bool
	maxItems     int
)

var errHasErrors = errors.New("a auditoria encontrou erros")

var auditCmd = &cobra.Command{
	Use:   "audit [arquivo|url]",
	Short: "Audita um arquivo HTML ou uma página",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := fetch.NewLoader(cfg.Fetch, logger)
		doc, source, err := loader.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		logger.Debugw("documento carregado", "origem", source)

		auditor := a11y.New(doc, a11y.WithLogger(logger.With("origem", source)))
		findings := auditor.RunAllTests()

		var out io.Writer = cmd.OutOrStdout()
		if outFile != "" {
			f, err := os.Create(outFile)
			if err != nil {
				return fmt.Errorf("criar %s: %w", outFile, err)
			}
			defer f.Close()
			out = f
		}

		if err := writeReport(out, auditor, findings, source); err != nil {
			return err
		}
		if outFile != "" {
			logger.Infow("relatório gravado", "arquivo", outFile, "formato", outputFormat)
		}

		if failOnError && auditor.Summary().Errors > 0 {
			return errHasErrors
		}
		return nil
	},
}

func writeReport(out io.Writer, auditor *a11y.Auditor, findings []a11y.Finding, source string) error {
	switch strings.ToLower(outputFormat) {
	case "text", "":
		opts := panel.Options{Title: source, Plain: plainOutput || outFile != "", MaxItems: maxItems}
		_, err := fmt.Fprintln(out, panel.Render(auditor.Summary(), findings, opts))
		return err
	case "json":
		data, err := auditor.ExportResults()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, data)
		return err
	case "html":
		page, err := auditor.ExportHTMLReport()
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, page)
		return err
	case "sarif":
		data, err := sarif.Marshal(sarif.Build(findings, source, "a11y", version))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	return fmt.Errorf("formato desconhecido %q (use text, json, html ou sarif)", outputFormat)
}

func init() {
	auditCmd.Flags().StringVarP(&outputFormat, "output", "o", "text", "Formato: text, json, html ou sarif")
	auditCmd.Flags().StringVar(&outFile, "out", "", "Grava o relatório neste arquivo em vez do terminal")
	auditCmd.Flags().BoolVar(&failOnError, "fail-on-error", false, "Sai com código 1 se houver erros")
	auditCmd.Flags().BoolVar(&plainOutput, "plain", false, "Painel sem bordas nem cores")
	auditCmd.Flags().IntVar(&maxItems, "max-items", 0, "Limite de achados no painel (0 = todos)")
}

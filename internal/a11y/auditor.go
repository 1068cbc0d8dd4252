// Package a11y é o motor de auditoria de acessibilidade: onze checagens
// independentes sobre um Document, um orquestrador que agrega os achados
// e exportadores JSON/HTML.
package a11y

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Auditor é o handle do motor. Cada instância tem seu próprio resultado e
// sua própria lista de inscritos; duas instâncias não compartilham estado.
type Auditor struct {
	doc    Document
	checks []Check
	log    *zap.SugaredLogger
	now    func() time.Time

	runMu sync.Mutex // uma execução por vez; chamadas concorrentes esperam na fila

	mu          sync.Mutex
	results     []Finding
	ran         bool
	lastRun     time.Time
	subscribers []func([]Finding)
}

type Option func(*Auditor)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(a *Auditor) {
		if log != nil {
			a.log = log
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Auditor) {
		if now != nil {
			a.now = now
		}
	}
}

// WithExtraChecks registra regras depois das onze padrão.
func WithExtraChecks(checks ...Check) Option {
	return func(a *Auditor) {
		a.checks = append(a.checks, checks...)
	}
}

func New(doc Document, opts ...Option) *Auditor {
	a := &Auditor{
		doc:    doc,
		checks: DefaultChecks(),
		log:    zap.NewNop().Sugar(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunAllTests roda todas as checagens, substitui o resultado anterior e avisa os inscritos.
// Uma checagem que entra em pânico é registrada no log e pulada. Os inscritos
// não podem chamar RunAllTests de dentro do callback.
func (a *Auditor) RunAllTests() []Finding {
	a.runMu.Lock()
	defer a.runMu.Unlock()

	started := a.now()
	results := make([]Finding, 0)
	for _, c := range a.checks {
		found := a.runCheck(c)
		a.log.Debugw("checagem concluída", "check", c.Name, "achados", len(found))
		results = append(results, found...)
	}

	a.mu.Lock()
	a.results = results
	a.ran = true
	a.lastRun = started
	subs := append([]func([]Finding){}, a.subscribers...)
	a.mu.Unlock()

	summary := Summarize(results)
	a.log.Infow("auditoria concluída",
		"achados", summary.Total, "erros", summary.Errors, "avisos", summary.Warnings, "score", summary.Score)

	for _, fn := range subs {
		a.notify(fn, copyFindings(results))
	}
	return copyFindings(results)
}

func (a *Auditor) runCheck(c Check) (found []Finding) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("checagem falhou", "check", c.Name, "erro", r)
			found = nil
		}
	}()
	return c.Run(a.doc)
}

func (a *Auditor) notify(fn func([]Finding), results []Finding) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Errorw("inscrito falhou ao receber resultados", "erro", r)
		}
	}()
	fn(results)
}

// OnResults inscreve um callback chamado ao fim de cada execução.
func (a *Auditor) OnResults(fn func([]Finding)) {
	if fn == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.subscribers = append(a.subscribers, fn)
}

// Results devolve uma cópia do último resultado.
func (a *Auditor) Results() []Finding {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyFindings(a.results)
}

func (a *Auditor) HasRun() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ran
}

// LastRun é o início da última execução; zero se nunca rodou.
func (a *Auditor) LastRun() time.Time {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastRun
}

// Summary deriva o resumo do último resultado (zerado, score 100, antes da primeira execução).
func (a *Auditor) Summary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Summarize(a.results)
}

func (a *Auditor) ExportResults() (string, error) {
	results := a.Results()
	return ExportJSON(results, Summarize(results), a.now())
}

func (a *Auditor) ExportHTMLReport() (string, error) {
	results := a.Results()
	return RenderHTMLReport(results, Summarize(results), a.now())
}

// Package fetch carrega o documento a auditar: arquivo local ou página remota.
package fetch

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"a11y-auditor/internal/config"
	"a11y-auditor/internal/dom"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrNotURL: o alvo é caminho local ou usa protocolo diferente de http(s)
var ErrNotURL = errors.New("alvo não é uma URL http(s)")

// maxBody limita o tamanho da página baixada
const maxBody = 10 << 20

type Loader struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	log       *zap.SugaredLogger
}

func NewLoader(cfg config.Fetch, log *zap.SugaredLogger) *Loader {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}
	ua := cfg.UserAgent
	if ua == "" {
		ua = config.DefaultUserAgent
	}

	tr := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.InsecureTLS {
		// sites de governo ainda usam certificado vencido e TLS antigo
		tr.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS10,
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), 1)
	}

	return &Loader{
		client:    &http.Client{Transport: tr, Timeout: timeout},
		userAgent: ua,
		limiter:   limiter,
		log:       log,
	}
}

// Load devolve o documento e a origem normalizada (caminho do arquivo ou URL final).
func (l *Loader) Load(ctx context.Context, target string) (*dom.Document, string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, "", errors.New("alvo vazio")
	}

	if path, ok := localPath(target); ok {
		doc, err := loadFile(path)
		return doc, path, err
	}

	u := NormalizeURL(target)
	doc, err := l.download(ctx, u)
	return doc, u, err
}

// LoadURL só aceita páginas remotas; é o que a API usa para não expor o disco.
func (l *Loader) LoadURL(ctx context.Context, target string) (*dom.Document, string, error) {
	u, err := ValidateURL(target)
	if err != nil {
		return nil, "", err
	}
	doc, err := l.download(ctx, u)
	return doc, u, err
}

// ValidateURL normaliza o alvo e recusa caminhos e protocolos que não sejam http(s).
func ValidateURL(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", errors.New("alvo vazio")
	}
	if looksLikePath(target) {
		return "", fmt.Errorf("%w: %s", ErrNotURL, target)
	}
	if i := strings.Index(target, "://"); i > 0 {
		scheme := strings.ToLower(target[:i])
		if scheme != "http" && scheme != "https" {
			return "", fmt.Errorf("%w: protocolo %s", ErrNotURL, scheme)
		}
	}

	u := NormalizeURL(target)
	parsed, err := url.Parse(u)
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("%w: %s", ErrNotURL, target)
	}
	return u, nil
}

func looksLikePath(target string) bool {
	if strings.HasPrefix(target, "//") {
		return false
	}
	for _, p := range []string{"/", "./", "../", "~", `\`, ".\\"} {
		if strings.HasPrefix(target, p) {
			return true
		}
	}
	// C:\ ou C:/
	return len(target) > 2 && target[1] == ':' && (target[2] == '\\' || target[2] == '/')
}

// localPath diz se o alvo é um arquivo: existe no disco ou tem extensão .html/.htm
func localPath(target string) (string, bool) {
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return "", false
	}
	if strings.HasPrefix(lower, "file://") {
		return filepath.Clean(target[len("file://"):]), true
	}
	if _, err := os.Stat(target); err == nil {
		return filepath.Clean(target), true
	}
	ext := filepath.Ext(lower)
	if ext == ".html" || ext == ".htm" {
		return filepath.Clean(target), true
	}
	return "", false
}

func loadFile(path string) (*dom.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s é um diretório", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	defer f.Close()

	doc, err := dom.NewDocument(io.LimitReader(f, maxBody))
	if err != nil {
		return nil, fmt.Errorf("ler html de %s: %w", path, err)
	}
	return doc, nil
}

// NormalizeURL garante o protocolo; sem ele assume https.
func NormalizeURL(target string) string {
	target = strings.TrimSpace(target)
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return target
	}
	return "https://" + strings.TrimPrefix(target, "//")
}

func (l *Loader) download(ctx context.Context, u string) (*dom.Document, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("aguardando limite de requisições: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("url inválida %s: %w", u, err)
	}
	// headers completos de um Chrome no Windows
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en-US;q=0.8,en;q=0.7")

	started := time.Now()
	res, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("baixar %s: %w", u, err)
	}
	defer res.Body.Close()

	l.log.Debugw("página baixada", "url", u, "status", res.StatusCode, "duracao", time.Since(started))
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("baixar %s: status HTTP %d", u, res.StatusCode)
	}

	doc, err := dom.NewDocument(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("ler html de %s: %w", u, err)
	}
	return doc, nil
}
